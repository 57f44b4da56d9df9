package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fairway-app/internal/model"
	"fairway-app/internal/scoring"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username      string  `json:"username"`
		Email         string  `json:"email"`
		Password      string  `json:"password"`
		FirstName     string  `json:"firstName"`
		LastName      string  `json:"lastName"`
		HandicapIndex float64 `json:"handicapIndex"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not hash password")
		return
	}
	user, err := s.store.CreateUser(model.User{
		Username:      strings.TrimSpace(req.Username),
		Email:         strings.TrimSpace(req.Email),
		PasswordHash:  string(hash),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		HandicapIndex: req.HandicapIndex,
	})
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	s.logger.Info("user registered", "username", user.Username)
	writeJSON(w, http.StatusCreated, userView(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, ok := s.store.GetUserByUsername(req.Username)
	if !ok || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, userView(user))
}

func (s *Server) handleUsersList(w http.ResponseWriter, r *http.Request) {
	users := s.store.ListUsers()
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleUserShow(w http.ResponseWriter, r *http.Request) {
	user, ok := s.store.GetUser(chi.URLParam(r, "userID"))
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, userView(user))
}

func (s *Server) handleTournamentsList(w http.ResponseWriter, r *http.Request) {
	tournaments := s.store.ListTournaments()
	views := make([]TournamentView, 0, len(tournaments))
	for _, t := range tournaments {
		views = append(views, tournamentView(t))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleTournamentCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string    `json:"name"`
		StartDate    time.Time `json:"startDate"`
		EndDate      time.Time `json:"endDate"`
		DailyBuyIn   float64   `json:"dailyBuyIn"`
		OverallBuyIn float64   `json:"overallBuyIn"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	tourn, err := s.store.CreateTournament(model.Tournament{
		Name:         strings.TrimSpace(req.Name),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		DailyBuyIn:   req.DailyBuyIn,
		OverallBuyIn: req.OverallBuyIn,
		Status:       model.TournamentDraft,
		IsActive:     true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, tournamentView(tourn))
}

func (s *Server) handleTournamentActive(w http.ResponseWriter, r *http.Request) {
	tourn, ok := s.store.ActiveTournament()
	if !ok {
		writeError(w, http.StatusNotFound, "no active tournament")
		return
	}
	writeJSON(w, http.StatusOK, tournamentView(tourn))
}

func (s *Server) handleTournamentShow(w http.ResponseWriter, r *http.Request) {
	tourn, ok := s.store.GetTournament(chi.URLParam(r, "tournamentID"))
	if !ok {
		writeError(w, http.StatusNotFound, "tournament not found")
		return
	}
	writeJSON(w, http.StatusOK, tournamentView(tourn))
}

func (s *Server) handleTournamentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status := model.TournamentStatus(req.Status)
	switch status {
	case model.TournamentDraft, model.TournamentInProgress, model.TournamentCompleted:
	default:
		writeError(w, http.StatusBadRequest, "unknown tournament status")
		return
	}
	id := chi.URLParam(r, "tournamentID")
	if err := s.store.UpdateTournamentStatus(id, status); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	tourn, _ := s.store.GetTournament(id)
	writeJSON(w, http.StatusOK, tournamentView(tourn))
}

func (s *Server) handleCoursesList(w http.ResponseWriter, r *http.Request) {
	courses := s.store.ListCourses()
	views := make([]CourseView, 0, len(courses))
	for _, c := range courses {
		views = append(views, courseView(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCourseCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string  `json:"name"`
		Location     string  `json:"location"`
		Par          int     `json:"par"`
		Yardage      int     `json:"yardage"`
		SlopeRating  int     `json:"slopeRating"`
		CourseRating float64 `json:"courseRating"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Par <= 0 {
		writeError(w, http.StatusBadRequest, "name and par are required")
		return
	}
	if req.SlopeRating <= 0 || req.CourseRating <= 0 {
		writeError(w, http.StatusBadRequest, "slope rating and course rating are required")
		return
	}
	course, err := s.store.CreateCourse(model.Course{
		Name:         strings.TrimSpace(req.Name),
		Location:     strings.TrimSpace(req.Location),
		Par:          req.Par,
		Yardage:      req.Yardage,
		SlopeRating:  req.SlopeRating,
		CourseRating: req.CourseRating,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, courseView(course))
}

func (s *Server) handleHolesList(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	if _, ok := s.store.GetCourse(courseID); !ok {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}
	holes := s.store.ListHolesByCourse(courseID)
	views := make([]HoleView, 0, len(holes))
	for _, h := range holes {
		views = append(views, holeView(h))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleHoleCreate(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	if _, ok := s.store.GetCourse(courseID); !ok {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}
	var req struct {
		HoleNumber      int `json:"holeNumber"`
		Par             int `json:"par"`
		Yardage         int `json:"yardage"`
		HandicapRanking int `json:"handicapRanking"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.HoleNumber < 1 || req.Par < 3 {
		writeError(w, http.StatusBadRequest, "hole number and par are required")
		return
	}
	if req.HandicapRanking < 1 || req.HandicapRanking > 18 {
		writeError(w, http.StatusBadRequest, "handicap ranking must be between 1 and 18")
		return
	}
	hole, err := s.store.CreateHole(model.Hole{
		CourseID:        courseID,
		HoleNumber:      req.HoleNumber,
		Par:             req.Par,
		Yardage:         req.Yardage,
		HandicapRanking: req.HandicapRanking,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, holeView(hole))
}

func (s *Server) handleHoleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteHole(chi.URLParam(r, "holeID")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRoundsList(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if _, ok := s.store.GetTournament(tournamentID); !ok {
		writeError(w, http.StatusNotFound, "tournament not found")
		return
	}
	rounds := s.store.ListRoundsByTournament(tournamentID)
	views := make([]RoundView, 0, len(rounds))
	for _, round := range rounds {
		views = append(views, roundView(round))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleRoundCreate(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if _, ok := s.store.GetTournament(tournamentID); !ok {
		writeError(w, http.StatusNotFound, "tournament not found")
		return
	}
	var req struct {
		CourseID    string    `json:"courseId"`
		RoundNumber int       `json:"roundNumber"`
		Date        time.Time `json:"date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, ok := s.store.GetCourse(req.CourseID); !ok {
		writeError(w, http.StatusBadRequest, "course not found")
		return
	}
	if req.RoundNumber < 1 {
		writeError(w, http.StatusBadRequest, "round number is required")
		return
	}
	round, err := s.store.CreateRound(model.Round{
		TournamentID: tournamentID,
		CourseID:     req.CourseID,
		RoundNumber:  req.RoundNumber,
		Date:         req.Date,
		Status:       model.RoundPending,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, roundView(round))
}

func (s *Server) handleRoundStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status := model.RoundStatus(req.Status)
	switch status {
	case model.RoundPending, model.RoundInProgress, model.RoundCompleted:
	default:
		writeError(w, http.StatusBadRequest, "unknown round status")
		return
	}
	id := chi.URLParam(r, "roundID")
	if err := s.store.UpdateRoundStatus(id, status); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	round, _ := s.store.GetRound(id)
	writeJSON(w, http.StatusOK, roundView(round))
}

func (s *Server) handleScorecardsList(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")
	if _, ok := s.store.GetRound(roundID); !ok {
		writeError(w, http.StatusNotFound, "round not found")
		return
	}
	cards := s.store.ListScorecardsByRound(roundID)
	views := make([]ScorecardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, scorecardView(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleScorecardCreate(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")
	if _, ok := s.store.GetRound(roundID); !ok {
		writeError(w, http.StatusNotFound, "round not found")
		return
	}
	var req struct {
		Name      string   `json:"name"`
		PlayerIDs []string `json:"playerIds"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	for _, id := range req.PlayerIDs {
		if _, ok := s.store.GetUser(id); !ok {
			writeError(w, http.StatusBadRequest, "player not found: "+id)
			return
		}
	}
	card, err := s.store.CreateScorecard(model.Scorecard{
		RoundID:   roundID,
		Name:      strings.TrimSpace(req.Name),
		PlayerIDs: req.PlayerIDs,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, scorecardView(card))
}

func (s *Server) handleScorecardAssign(w http.ResponseWriter, r *http.Request) {
	scorecardID := chi.URLParam(r, "scorecardID")
	var req struct {
		PlayerIDs []string `json:"playerIds"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, id := range req.PlayerIDs {
		if _, ok := s.store.GetUser(id); !ok {
			writeError(w, http.StatusBadRequest, "player not found: "+id)
			return
		}
	}
	if err := s.store.AssignPlayersToScorecard(scorecardID, req.PlayerIDs); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	card, _ := s.store.GetScorecard(scorecardID)
	writeJSON(w, http.StatusOK, scorecardView(card))
}

func (s *Server) handleScoresList(w http.ResponseWriter, r *http.Request) {
	scorecardID := chi.URLParam(r, "scorecardID")
	if _, ok := s.store.GetScorecard(scorecardID); !ok {
		writeError(w, http.StatusNotFound, "scorecard not found")
		return
	}
	scores := s.store.ListScoresByScorecard(scorecardID)
	views := make([]ScoreView, 0, len(scores))
	for _, sc := range scores {
		views = append(views, scoreView(sc))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleScoresSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Scores []scoring.ScoreSubmission `json:"scores"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	saved, err := s.scoring.SubmitScores(req.Scores)
	if err != nil {
		var verr *scoring.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:    "score validation failed",
				Problems: verr.Problems,
			})
			return
		}
		var rerr *scoring.ReferenceError
		if errors.As(err, &rerr) {
			writeError(w, http.StatusNotFound, rerr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	views := make([]ScoreView, 0, len(saved))
	for _, sc := range saved {
		views = append(views, scoreView(sc))
	}
	writeJSON(w, http.StatusCreated, views)
}

func (s *Server) handleTournamentLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.scoring.TournamentLeaderboard(chi.URLParam(r, "tournamentID"))
	s.writeLeaderboard(w, rows, err)
}

func (s *Server) handleRoundLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.scoring.RoundLeaderboard(chi.URLParam(r, "roundID"))
	s.writeLeaderboard(w, rows, err)
}

func (s *Server) writeLeaderboard(w http.ResponseWriter, rows []scoring.LeaderboardRow, err error) {
	if err != nil {
		var rerr *scoring.ReferenceError
		if errors.As(err, &rerr) {
			writeError(w, http.StatusNotFound, rerr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handlePayoutsList(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if _, ok := s.store.GetTournament(tournamentID); !ok {
		writeError(w, http.StatusNotFound, "tournament not found")
		return
	}
	payouts := s.store.ListPayoutsByTournament(tournamentID)
	views := make([]PayoutView, 0, len(payouts))
	for _, p := range payouts {
		views = append(views, payoutView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handlePayoutCreate(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if _, ok := s.store.GetTournament(tournamentID); !ok {
		writeError(w, http.StatusNotFound, "tournament not found")
		return
	}
	var req struct {
		UserID   string  `json:"userId"`
		RoundID  string  `json:"roundId"`
		Amount   float64 `json:"amount"`
		Type     string  `json:"type"`
		Position int     `json:"position"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, ok := s.store.GetUser(req.UserID); !ok {
		writeError(w, http.StatusBadRequest, "player not found: "+req.UserID)
		return
	}
	payoutType := model.PayoutType(req.Type)
	switch payoutType {
	case model.PayoutDaily, model.PayoutOverall:
	default:
		writeError(w, http.StatusBadRequest, "unknown payout type")
		return
	}
	if payoutType == model.PayoutDaily {
		if _, ok := s.store.GetRound(req.RoundID); !ok {
			writeError(w, http.StatusBadRequest, "round not found: "+req.RoundID)
			return
		}
	}
	payout, err := s.store.CreatePayout(model.Payout{
		TournamentID: tournamentID,
		UserID:       req.UserID,
		RoundID:      req.RoundID,
		Amount:       req.Amount,
		Type:         payoutType,
		Position:     req.Position,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, payoutView(payout))
}
