package store

import "fairway-app/internal/model"

// Store is the persistence boundary for the scoring service and the web
// layer. Getters report absence with a bool; writes return errors.
type Store interface {
	ListUsers() []model.User
	GetUser(id string) (model.User, bool)
	GetUserByUsername(username string) (model.User, bool)
	CreateUser(user model.User) (model.User, error)

	ListTournaments() []model.Tournament
	GetTournament(id string) (model.Tournament, bool)
	ActiveTournament() (model.Tournament, bool)
	CreateTournament(tournament model.Tournament) (model.Tournament, error)
	UpdateTournamentStatus(id string, status model.TournamentStatus) error

	ListCourses() []model.Course
	GetCourse(id string) (model.Course, bool)
	CreateCourse(course model.Course) (model.Course, error)

	ListHolesByCourse(courseID string) []model.Hole
	GetHole(id string) (model.Hole, bool)
	CreateHole(hole model.Hole) (model.Hole, error)
	DeleteHole(id string) error

	ListRoundsByTournament(tournamentID string) []model.Round
	GetRound(id string) (model.Round, bool)
	CreateRound(round model.Round) (model.Round, error)
	UpdateRoundStatus(id string, status model.RoundStatus) error

	ListScorecardsByRound(roundID string) []model.Scorecard
	GetScorecard(id string) (model.Scorecard, bool)
	CreateScorecard(card model.Scorecard) (model.Scorecard, error)
	AssignPlayersToScorecard(scorecardID string, userIDs []string) error

	ListScoresByScorecard(scorecardID string) []model.HoleScore
	// UpsertHoleScore inserts or replaces the score for the
	// (scorecard, user, hole) key. Resubmission overwrites gross and net
	// strokes; the row id is stable across overwrites.
	UpsertHoleScore(score model.HoleScore) (model.HoleScore, error)
	// SumNetStrokesByPlayer aggregates persisted scores within a scope.
	// Players with no scores in scope are absent from the result.
	SumNetStrokesByPlayer(scope model.LeaderboardScope) ([]model.PlayerTotal, error)

	ListPayoutsByTournament(tournamentID string) []model.Payout
	CreatePayout(payout model.Payout) (model.Payout, error)
}
