package scoring

import (
	"fmt"
	"log/slog"
	"strings"

	"fairway-app/internal/golf"
	"fairway-app/internal/model"
	"fairway-app/internal/store"
)

// Service validates and persists hole scores and assembles leaderboards.
// All score writes go through SubmitScores so that net strokes are always
// computed with the player's handicap at the time of entry.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

func NewService(st store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger}
}

// ScoreSubmission is one requested hole score within a batch.
type ScoreSubmission struct {
	ScorecardID string `json:"scorecardId"`
	UserID      string `json:"userId"`
	HoleID      string `json:"holeId"`
	Strokes     int    `json:"strokes"`
}

// ValidationError reports every rule violation found in a batch. The batch
// is persisted only when this list would be empty.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "score validation failed: " + strings.Join(e.Problems, "; ")
}

// ReferenceError means a submission named an entity that does not exist.
// Unlike a rule violation, this aborts the batch immediately.
type ReferenceError struct {
	Kind string
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

// SubmitScores validates every entry in the batch and persists all of them
// or none. Resubmitting a (scorecard, player, hole) key overwrites the
// earlier score. Returns the persisted rows in submission order.
func (s *Service) SubmitScores(entries []ScoreSubmission) ([]model.HoleScore, error) {
	if len(entries) == 0 {
		return []model.HoleScore{}, nil
	}

	type checked struct {
		entry ScoreSubmission
		net   int
	}

	// Course handicap is a function of player and course only, so cache it
	// per pair for the duration of the batch.
	handicaps := map[[2]string]int{}
	prepared := make([]checked, 0, len(entries))
	var problems []string

	for _, entry := range entries {
		if _, ok := s.store.GetScorecard(entry.ScorecardID); !ok {
			return nil, &ReferenceError{Kind: "scorecard", ID: entry.ScorecardID}
		}
		user, ok := s.store.GetUser(entry.UserID)
		if !ok {
			return nil, &ReferenceError{Kind: "player", ID: entry.UserID}
		}
		hole, ok := s.store.GetHole(entry.HoleID)
		if !ok {
			return nil, &ReferenceError{Kind: "hole", ID: entry.HoleID}
		}

		key := [2]string{user.ID, hole.CourseID}
		ch, ok := handicaps[key]
		if !ok {
			course, found := s.store.GetCourse(hole.CourseID)
			if !found {
				return nil, &ReferenceError{Kind: "course", ID: hole.CourseID}
			}
			ch = golf.CourseHandicap(user.HandicapIndex, course.SlopeRating, course.CourseRating, course.Par)
			handicaps[key] = ch
		}

		check := golf.CheckHoleScore(entry.Strokes, hole.Par, hole.HandicapRanking, ch)
		if !check.Valid {
			problems = append(problems, fmt.Sprintf("hole %d for %s: %s", hole.HoleNumber, user.Username, check.Message))
			continue
		}
		prepared = append(prepared, checked{
			entry: entry,
			net:   golf.NetStrokes(entry.Strokes, check.StrokesReceived),
		})
	}

	if len(problems) > 0 {
		s.logger.Warn("score batch rejected", "entries", len(entries), "problems", len(problems))
		return nil, &ValidationError{Problems: problems}
	}

	saved := make([]model.HoleScore, 0, len(prepared))
	for _, c := range prepared {
		row, err := s.store.UpsertHoleScore(model.HoleScore{
			ScorecardID: c.entry.ScorecardID,
			UserID:      c.entry.UserID,
			HoleID:      c.entry.HoleID,
			Strokes:     c.entry.Strokes,
			NetStrokes:  c.net,
		})
		if err != nil {
			return nil, fmt.Errorf("save score: %w", err)
		}
		saved = append(saved, row)
	}
	s.logger.Info("score batch saved", "entries", len(saved))
	return saved, nil
}

// LeaderboardRow is one player's standing within a scope, lowest net total
// first. Tied players share a position and the next distinct total skips
// the tied slots.
type LeaderboardRow struct {
	UserID          string  `json:"userId"`
	Name            string  `json:"name"`
	HandicapIndex   float64 `json:"handicapIndex"`
	TotalStrokes    int     `json:"totalStrokes"`
	TotalNetStrokes int     `json:"totalNetStrokes"`
	Position        int     `json:"position"`
	RoundsPlayed    int     `json:"roundsPlayed"`
}

// TournamentLeaderboard ranks every player with at least one persisted
// score in any round of the tournament.
func (s *Service) TournamentLeaderboard(tournamentID string) ([]LeaderboardRow, error) {
	if _, ok := s.store.GetTournament(tournamentID); !ok {
		return nil, &ReferenceError{Kind: "tournament", ID: tournamentID}
	}
	return s.leaderboard(model.LeaderboardScope{TournamentID: tournamentID})
}

// RoundLeaderboard ranks every player with at least one persisted score in
// the round.
func (s *Service) RoundLeaderboard(roundID string) ([]LeaderboardRow, error) {
	if _, ok := s.store.GetRound(roundID); !ok {
		return nil, &ReferenceError{Kind: "round", ID: roundID}
	}
	return s.leaderboard(model.LeaderboardScope{RoundID: roundID})
}

func (s *Service) leaderboard(scope model.LeaderboardScope) ([]LeaderboardRow, error) {
	totals, err := s.store.SumNetStrokesByPlayer(scope)
	if err != nil {
		return nil, fmt.Errorf("aggregate scores: %w", err)
	}
	if len(totals) == 0 {
		return []LeaderboardRow{}, nil
	}

	byUser := make(map[string]model.PlayerTotal, len(totals))
	ranked := make([]golf.LeaderboardTotal, 0, len(totals))
	for _, t := range totals {
		byUser[t.UserID] = t
		ranked = append(ranked, golf.LeaderboardTotal{UserID: t.UserID, TotalNetStrokes: t.TotalNetStrokes})
	}

	rows := make([]LeaderboardRow, 0, len(totals))
	for _, pos := range golf.RankLeaderboard(ranked) {
		user, ok := s.store.GetUser(pos.UserID)
		if !ok {
			return nil, &ReferenceError{Kind: "player", ID: pos.UserID}
		}
		t := byUser[pos.UserID]
		rows = append(rows, LeaderboardRow{
			UserID:          user.ID,
			Name:            user.FullName(),
			HandicapIndex:   user.HandicapIndex,
			TotalStrokes:    t.TotalStrokes,
			TotalNetStrokes: t.TotalNetStrokes,
			Position:        pos.Position,
			RoundsPlayed:    t.RoundsPlayed,
		})
	}
	return rows, nil
}
