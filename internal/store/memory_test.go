package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairway-app/internal/model"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	t.Setenv("APP", "prod")
	return NewMemoryStore()
}

func TestSeedDataLoadsOutsideProd(t *testing.T) {
	t.Setenv("APP", "dev")
	s := NewMemoryStore()

	assert.NotEmpty(t, s.ListUsers())
	_, ok := s.ActiveTournament()
	assert.True(t, ok)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateUser(model.User{Username: "dana"})
	require.NoError(t, err)
	_, err = s.CreateUser(model.User{Username: "Dana"})
	assert.Error(t, err)
}

func TestUpdateTournamentStatusTogglesActive(t *testing.T) {
	s := newTestStore(t)

	tourn, err := s.CreateTournament(model.Tournament{Name: "Spring Open", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, s.UpdateTournamentStatus(tourn.ID, model.TournamentCompleted))
	got, ok := s.GetTournament(tourn.ID)
	require.True(t, ok)
	assert.False(t, got.IsActive)

	_, ok = s.ActiveTournament()
	assert.False(t, ok)
}

func TestUpsertHoleScoreKeepsRowID(t *testing.T) {
	s := newTestStore(t)

	first, err := s.UpsertHoleScore(model.HoleScore{
		ScorecardID: "card", UserID: "u1", HoleID: "h1", Strokes: 6, NetStrokes: 5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := s.UpsertHoleScore(model.HoleScore{
		ScorecardID: "card", UserID: "u1", HoleID: "h1", Strokes: 4, NetStrokes: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 4, second.Strokes)
	assert.Equal(t, 3, second.NetStrokes)

	scores := s.ListScoresByScorecard("card")
	require.Len(t, scores, 1)
	assert.Equal(t, 4, scores[0].Strokes)
}

func TestSumNetStrokesByPlayerScoping(t *testing.T) {
	s := newTestStore(t)

	tourn, _ := s.CreateTournament(model.Tournament{Name: "Spring Open"})
	other, _ := s.CreateTournament(model.Tournament{Name: "Fall Open"})

	r1, _ := s.CreateRound(model.Round{TournamentID: tourn.ID, RoundNumber: 1, Date: time.Now()})
	r2, _ := s.CreateRound(model.Round{TournamentID: tourn.ID, RoundNumber: 2, Date: time.Now()})
	rOther, _ := s.CreateRound(model.Round{TournamentID: other.ID, RoundNumber: 1})

	c1, _ := s.CreateScorecard(model.Scorecard{RoundID: r1.ID, Name: "A"})
	c2, _ := s.CreateScorecard(model.Scorecard{RoundID: r2.ID, Name: "A"})
	cOther, _ := s.CreateScorecard(model.Scorecard{RoundID: rOther.ID, Name: "A"})

	mustUpsert := func(cardID, userID, holeID string, strokes, net int) {
		t.Helper()
		_, err := s.UpsertHoleScore(model.HoleScore{
			ScorecardID: cardID, UserID: userID, HoleID: holeID, Strokes: strokes, NetStrokes: net,
		})
		require.NoError(t, err)
	}

	mustUpsert(c1.ID, "u1", "h1", 5, 4)
	mustUpsert(c1.ID, "u1", "h2", 4, 4)
	mustUpsert(c2.ID, "u1", "h1", 3, 2)
	mustUpsert(c1.ID, "u2", "h1", 7, 6)
	mustUpsert(cOther.ID, "u1", "h1", 9, 9)

	totals, err := s.SumNetStrokesByPlayer(model.LeaderboardScope{TournamentID: tourn.ID})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, model.PlayerTotal{UserID: "u2", TotalStrokes: 7, TotalNetStrokes: 6, RoundsPlayed: 1}, totals[0])
	assert.Equal(t, model.PlayerTotal{UserID: "u1", TotalStrokes: 12, TotalNetStrokes: 10, RoundsPlayed: 2}, totals[1])

	roundTotals, err := s.SumNetStrokesByPlayer(model.LeaderboardScope{RoundID: r2.ID})
	require.NoError(t, err)
	require.Len(t, roundTotals, 1)
	assert.Equal(t, model.PlayerTotal{UserID: "u1", TotalStrokes: 3, TotalNetStrokes: 2, RoundsPlayed: 1}, roundTotals[0])

	empty, err := s.SumNetStrokesByPlayer(model.LeaderboardScope{RoundID: "missing"})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAssignPlayersToScorecardDeduplicates(t *testing.T) {
	s := newTestStore(t)

	card, err := s.CreateScorecard(model.Scorecard{RoundID: "r1", Name: "A", PlayerIDs: []string{"u1"}})
	require.NoError(t, err)

	require.NoError(t, s.AssignPlayersToScorecard(card.ID, []string{"u1", "u2"}))
	got, ok := s.GetScorecard(card.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"u1", "u2"}, got.PlayerIDs)
}
