package model

import (
	"strings"
	"time"
)

type TournamentStatus string
type RoundStatus string
type PayoutType string

const (
	TournamentDraft      TournamentStatus = "draft"
	TournamentInProgress TournamentStatus = "in_progress"
	TournamentCompleted  TournamentStatus = "completed"

	RoundPending    RoundStatus = "pending"
	RoundInProgress RoundStatus = "in_progress"
	RoundCompleted  RoundStatus = "completed"

	PayoutDaily   PayoutType = "daily"
	PayoutOverall PayoutType = "overall"
)

type User struct {
	ID            string
	Username      string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	HandicapIndex float64
	IsAdmin       bool
	CreatedAt     time.Time
}

func (u User) FullName() string {
	first := strings.TrimSpace(u.FirstName)
	last := strings.TrimSpace(u.LastName)
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}

type Tournament struct {
	ID           string
	Name         string
	StartDate    time.Time
	EndDate      time.Time
	DailyBuyIn   float64
	OverallBuyIn float64
	Status       TournamentStatus
	IsActive     bool
	CreatedAt    time.Time
}

// Course carries the two ratings the handicap formula needs. A course is
// never used for scoring without both.
type Course struct {
	ID           string
	Name         string
	Location     string
	Par          int
	Yardage      int
	SlopeRating  int
	CourseRating float64
	CreatedAt    time.Time
}

type Hole struct {
	ID              string
	CourseID        string
	HoleNumber      int
	Par             int
	Yardage         int
	HandicapRanking int // 1-18, 1 = hardest
}

type Round struct {
	ID           string
	TournamentID string
	CourseID     string
	RoundNumber  int
	Date         time.Time
	Status       RoundStatus
	CreatedAt    time.Time
}

// Scorecard is a named group of players whose scores are entered together.
type Scorecard struct {
	ID        string
	RoundID   string
	Name      string
	PlayerIDs []string
	CreatedAt time.Time
}

// HoleScore is one player's result on one hole. NetStrokes is derived at
// write time and is not recomputed if the player's handicap index changes
// later.
type HoleScore struct {
	ID          string
	ScorecardID string
	UserID      string
	HoleID      string
	Strokes     int
	NetStrokes  int
	CreatedAt   time.Time
}

type Payout struct {
	ID           string
	TournamentID string
	UserID       string
	RoundID      string // empty for overall tournament payouts
	Amount       float64
	Type         PayoutType
	Position     int
	CreatedAt    time.Time
}

// LeaderboardScope selects either a whole tournament or a single round.
// Exactly one field is set.
type LeaderboardScope struct {
	TournamentID string
	RoundID      string
}

// PlayerTotal is a per-player aggregate over the persisted hole scores in a
// scope. Players with no scores never appear.
type PlayerTotal struct {
	UserID          string
	TotalStrokes    int
	TotalNetStrokes int
	RoundsPlayed    int
}
