package web

import (
	"time"

	"fairway-app/internal/model"
)

// The view structs are the JSON shapes the API serves. UserView in
// particular exists so a password hash can never leak into a response.

type UserView struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Name          string    `json:"name"`
	HandicapIndex float64   `json:"handicapIndex"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
}

func userView(u model.User) UserView {
	return UserView{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Name:          u.FullName(),
		HandicapIndex: u.HandicapIndex,
		IsAdmin:       u.IsAdmin,
		CreatedAt:     u.CreatedAt,
	}
}

type TournamentView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	DailyBuyIn   float64   `json:"dailyBuyIn"`
	OverallBuyIn float64   `json:"overallBuyIn"`
	Status       string    `json:"status"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

func tournamentView(t model.Tournament) TournamentView {
	return TournamentView{
		ID:           t.ID,
		Name:         t.Name,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		DailyBuyIn:   t.DailyBuyIn,
		OverallBuyIn: t.OverallBuyIn,
		Status:       string(t.Status),
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt,
	}
}

type CourseView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Par          int       `json:"par"`
	Yardage      int       `json:"yardage"`
	SlopeRating  int       `json:"slopeRating"`
	CourseRating float64   `json:"courseRating"`
	CreatedAt    time.Time `json:"createdAt"`
}

func courseView(c model.Course) CourseView {
	return CourseView{
		ID:           c.ID,
		Name:         c.Name,
		Location:     c.Location,
		Par:          c.Par,
		Yardage:      c.Yardage,
		SlopeRating:  c.SlopeRating,
		CourseRating: c.CourseRating,
		CreatedAt:    c.CreatedAt,
	}
}

type HoleView struct {
	ID              string `json:"id"`
	CourseID        string `json:"courseId"`
	HoleNumber      int    `json:"holeNumber"`
	Par             int    `json:"par"`
	Yardage         int    `json:"yardage"`
	HandicapRanking int    `json:"handicapRanking"`
}

func holeView(h model.Hole) HoleView {
	return HoleView{
		ID:              h.ID,
		CourseID:        h.CourseID,
		HoleNumber:      h.HoleNumber,
		Par:             h.Par,
		Yardage:         h.Yardage,
		HandicapRanking: h.HandicapRanking,
	}
}

type RoundView struct {
	ID           string    `json:"id"`
	TournamentID string    `json:"tournamentId"`
	CourseID     string    `json:"courseId"`
	RoundNumber  int       `json:"roundNumber"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
}

func roundView(r model.Round) RoundView {
	return RoundView{
		ID:           r.ID,
		TournamentID: r.TournamentID,
		CourseID:     r.CourseID,
		RoundNumber:  r.RoundNumber,
		Date:         r.Date,
		Status:       string(r.Status),
	}
}

type ScorecardView struct {
	ID        string   `json:"id"`
	RoundID   string   `json:"roundId"`
	Name      string   `json:"name"`
	PlayerIDs []string `json:"playerIds"`
}

func scorecardView(c model.Scorecard) ScorecardView {
	ids := c.PlayerIDs
	if ids == nil {
		ids = []string{}
	}
	return ScorecardView{ID: c.ID, RoundID: c.RoundID, Name: c.Name, PlayerIDs: ids}
}

type ScoreView struct {
	ID          string `json:"id"`
	ScorecardID string `json:"scorecardId"`
	UserID      string `json:"userId"`
	HoleID      string `json:"holeId"`
	Strokes     int    `json:"strokes"`
	NetStrokes  int    `json:"netStrokes"`
}

func scoreView(sc model.HoleScore) ScoreView {
	return ScoreView{
		ID:          sc.ID,
		ScorecardID: sc.ScorecardID,
		UserID:      sc.UserID,
		HoleID:      sc.HoleID,
		Strokes:     sc.Strokes,
		NetStrokes:  sc.NetStrokes,
	}
}

type PayoutView struct {
	ID           string  `json:"id"`
	TournamentID string  `json:"tournamentId"`
	UserID       string  `json:"userId"`
	RoundID      string  `json:"roundId,omitempty"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	Position     int     `json:"position"`
}

func payoutView(p model.Payout) PayoutView {
	return PayoutView{
		ID:           p.ID,
		TournamentID: p.TournamentID,
		UserID:       p.UserID,
		RoundID:      p.RoundID,
		Amount:       p.Amount,
		Type:         string(p.Type),
		Position:     p.Position,
	}
}
