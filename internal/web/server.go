package web

import (
	"log/slog"
	"net/http"

	"fairway-app/internal/scoring"
	"fairway-app/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	store   store.Store
	scoring *scoring.Service
	logger  *slog.Logger
}

func NewServer(st store.Store, svc *scoring.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: st, scoring: svc, logger: logger}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Get("/users", s.handleUsersList)
	r.Get("/users/{userID}", s.handleUserShow)

	r.Get("/tournaments", s.handleTournamentsList)
	r.Post("/tournaments", s.handleTournamentCreate)
	r.Get("/tournaments/active", s.handleTournamentActive)
	r.Get("/tournaments/{tournamentID}", s.handleTournamentShow)
	r.Patch("/tournaments/{tournamentID}/status", s.handleTournamentStatus)
	r.Get("/tournaments/{tournamentID}/rounds", s.handleRoundsList)
	r.Post("/tournaments/{tournamentID}/rounds", s.handleRoundCreate)
	r.Get("/tournaments/{tournamentID}/leaderboard", s.handleTournamentLeaderboard)
	r.Get("/tournaments/{tournamentID}/payouts", s.handlePayoutsList)
	r.Post("/tournaments/{tournamentID}/payouts", s.handlePayoutCreate)

	r.Get("/courses", s.handleCoursesList)
	r.Post("/courses", s.handleCourseCreate)
	r.Get("/courses/{courseID}/holes", s.handleHolesList)
	r.Post("/courses/{courseID}/holes", s.handleHoleCreate)
	r.Delete("/holes/{holeID}", s.handleHoleDelete)

	r.Patch("/rounds/{roundID}/status", s.handleRoundStatus)
	r.Get("/rounds/{roundID}/scorecards", s.handleScorecardsList)
	r.Post("/rounds/{roundID}/scorecards", s.handleScorecardCreate)
	r.Get("/rounds/{roundID}/leaderboard", s.handleRoundLeaderboard)

	r.Post("/scorecards/{scorecardID}/players", s.handleScorecardAssign)
	r.Get("/scorecards/{scorecardID}/scores", s.handleScoresList)
	r.Post("/scores", s.handleScoresSubmit)

	return r
}
