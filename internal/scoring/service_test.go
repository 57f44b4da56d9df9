package scoring

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairway-app/internal/model"
	"fairway-app/internal/store"
)

type fixture struct {
	store      *store.MemoryStore
	service    *Service
	tournament model.Tournament
	round      model.Round
	card       model.Scorecard
	alice      model.User // course handicap 13
	bob        model.User // course handicap 13
	carol      model.User // course handicap 25
	holes      []model.Hole
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("APP", "prod")

	st := store.NewMemoryStore()
	f := &fixture{
		store:   st,
		service: NewService(st, slog.New(slog.NewTextHandler(io.Discard, nil))),
	}

	var err error
	f.alice, err = st.CreateUser(model.User{Username: "alice", FirstName: "Alice", LastName: "Hart", HandicapIndex: 12.5})
	require.NoError(t, err)
	f.bob, err = st.CreateUser(model.User{Username: "bob", FirstName: "Bob", LastName: "Reyes", HandicapIndex: 12.5})
	require.NoError(t, err)
	f.carol, err = st.CreateUser(model.User{Username: "carol", FirstName: "Carol", LastName: "Ng", HandicapIndex: 22.8})
	require.NoError(t, err)

	course, err := st.CreateCourse(model.Course{Name: "Heron Creek", Par: 72, SlopeRating: 128, CourseRating: 71.2})
	require.NoError(t, err)

	for i, spec := range []struct{ par, ranking int }{{4, 5}, {3, 16}, {5, 1}} {
		hole, err := st.CreateHole(model.Hole{
			CourseID:        course.ID,
			HoleNumber:      i + 1,
			Par:             spec.par,
			HandicapRanking: spec.ranking,
		})
		require.NoError(t, err)
		f.holes = append(f.holes, hole)
	}

	f.tournament, err = st.CreateTournament(model.Tournament{
		Name:      "Heron Creek Invitational",
		StartDate: time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
		Status:    model.TournamentInProgress,
		IsActive:  true,
	})
	require.NoError(t, err)
	f.round, err = st.CreateRound(model.Round{TournamentID: f.tournament.ID, CourseID: course.ID, RoundNumber: 1})
	require.NoError(t, err)
	f.card, err = st.CreateScorecard(model.Scorecard{
		RoundID:   f.round.ID,
		Name:      "Group A",
		PlayerIDs: []string{f.alice.ID, f.bob.ID, f.carol.ID},
	})
	require.NoError(t, err)
	return f
}

func TestSubmitScoresComputesNetStrokes(t *testing.T) {
	f := newFixture(t)

	// Alice plays to a 13 course handicap: one stroke on ranking 5,
	// none on ranking 16.
	saved, err := f.service.SubmitScores([]ScoreSubmission{
		{ScorecardID: f.card.ID, UserID: f.alice.ID, HoleID: f.holes[0].ID, Strokes: 5},
		{ScorecardID: f.card.ID, UserID: f.alice.ID, HoleID: f.holes[1].ID, Strokes: 4},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, 4, saved[0].NetStrokes)
	assert.Equal(t, 4, saved[1].NetStrokes)
}

func TestSubmitScoresRejectsWholeBatch(t *testing.T) {
	f := newFixture(t)

	// Hole 1 is par 4 with one handicap stroke for Alice, so 9 is the
	// cap and 10 must sink the entire batch.
	_, err := f.service.SubmitScores([]ScoreSubmission{
		{ScorecardID: f.card.ID, UserID: f.alice.ID, HoleID: f.holes[1].ID, Strokes: 3},
		{ScorecardID: f.card.ID, UserID: f.alice.ID, HoleID: f.holes[0].ID, Strokes: 10},
		{ScorecardID: f.card.ID, UserID: f.bob.ID, HoleID: f.holes[0].ID, Strokes: 0},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 2)
	assert.Contains(t, verr.Problems[0], "hole 1 for alice")
	assert.Contains(t, verr.Problems[0], "maximum score for this hole is 9")
	assert.Contains(t, verr.Problems[1], "hole 1 for bob")
	assert.Contains(t, verr.Problems[1], "at least 1 stroke")

	assert.Empty(t, f.store.ListScoresByScorecard(f.card.ID), "no score from a rejected batch may persist")
}

func TestSubmitScoresOverwritesOnResubmission(t *testing.T) {
	f := newFixture(t)

	first, err := f.service.SubmitScores([]ScoreSubmission{
		{ScorecardID: f.card.ID, UserID: f.alice.ID, HoleID: f.holes[0].ID, Strokes: 6},
	})
	require.NoError(t, err)

	second, err := f.service.SubmitScores([]ScoreSubmission{
		{ScorecardID: f.card.ID, UserID: f.alice.ID, HoleID: f.holes[0].ID, Strokes: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 4, second[0].Strokes)
	assert.Equal(t, 3, second[0].NetStrokes)
	assert.Len(t, f.store.ListScoresByScorecard(f.card.ID), 1)
}

func TestSubmitScoresUnknownReferences(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name  string
		entry ScoreSubmission
		kind  string
	}{
		{"player", ScoreSubmission{ScorecardID: f.card.ID, UserID: "nope", HoleID: f.holes[0].ID, Strokes: 4}, "player"},
		{"hole", ScoreSubmission{ScorecardID: f.card.ID, UserID: f.alice.ID, HoleID: "nope", Strokes: 4}, "hole"},
		{"scorecard", ScoreSubmission{ScorecardID: "nope", UserID: f.alice.ID, HoleID: f.holes[0].ID, Strokes: 4}, "scorecard"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.SubmitScores([]ScoreSubmission{tc.entry})
			var rerr *ReferenceError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, tc.kind, rerr.Kind)
		})
	}
	assert.Empty(t, f.store.ListScoresByScorecard(f.card.ID))
}

func TestSubmitScoresEmptyBatch(t *testing.T) {
	f := newFixture(t)

	saved, err := f.service.SubmitScores(nil)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestTournamentLeaderboardSharesTiedPositions(t *testing.T) {
	f := newFixture(t)

	// Alice and Bob net 3 on hole 1; Carol takes two strokes there and
	// nets 4.
	_, err := f.service.SubmitScores([]ScoreSubmission{
		{ScorecardID: f.card.ID, UserID: f.alice.ID, HoleID: f.holes[0].ID, Strokes: 4},
		{ScorecardID: f.card.ID, UserID: f.bob.ID, HoleID: f.holes[0].ID, Strokes: 4},
		{ScorecardID: f.card.ID, UserID: f.carol.ID, HoleID: f.holes[0].ID, Strokes: 6},
	})
	require.NoError(t, err)

	rows, err := f.service.TournamentLeaderboard(f.tournament.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, 1, rows[1].Position)
	assert.Equal(t, 3, rows[2].Position, "score after a two-way tie skips the shared slot")
	assert.Equal(t, "Carol Ng", rows[2].Name)
	assert.Equal(t, 6, rows[2].TotalStrokes)
	assert.Equal(t, 4, rows[2].TotalNetStrokes)
	for _, row := range rows {
		assert.Equal(t, 1, row.RoundsPlayed)
	}
}

func TestRoundLeaderboardScopesToRound(t *testing.T) {
	f := newFixture(t)

	round2, err := f.store.CreateRound(model.Round{TournamentID: f.tournament.ID, CourseID: f.holes[0].CourseID, RoundNumber: 2})
	require.NoError(t, err)
	card2, err := f.store.CreateScorecard(model.Scorecard{RoundID: round2.ID, Name: "Group A", PlayerIDs: []string{f.alice.ID}})
	require.NoError(t, err)

	_, err = f.service.SubmitScores([]ScoreSubmission{
		{ScorecardID: f.card.ID, UserID: f.alice.ID, HoleID: f.holes[0].ID, Strokes: 4},
		{ScorecardID: card2.ID, UserID: f.alice.ID, HoleID: f.holes[1].ID, Strokes: 3},
	})
	require.NoError(t, err)

	rows, err := f.service.RoundLeaderboard(f.round.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].TotalStrokes)
	assert.Equal(t, 1, rows[0].RoundsPlayed)

	overall, err := f.service.TournamentLeaderboard(f.tournament.ID)
	require.NoError(t, err)
	require.Len(t, overall, 1)
	assert.Equal(t, 7, overall[0].TotalStrokes)
	assert.Equal(t, 2, overall[0].RoundsPlayed)
}

func TestLeaderboardEmptyScope(t *testing.T) {
	f := newFixture(t)

	rows, err := f.service.RoundLeaderboard(f.round.ID)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestLeaderboardUnknownScope(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.TournamentLeaderboard("nope")
	var rerr *ReferenceError
	require.True(t, errors.As(err, &rerr))

	_, err = f.service.RoundLeaderboard("nope")
	require.True(t, errors.As(err, &rerr))
}
