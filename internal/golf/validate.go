package golf

import "fmt"

// ScoreCheck is the advisory result of validating one proposed hole score.
// Callers decide what to do with an invalid entry; nothing is thrown here.
type ScoreCheck struct {
	Valid           bool
	MaxScore        int
	StrokesReceived int
	Message         string
}

// CheckHoleScore validates a gross score against the legal window for a hole:
// at least 1 stroke, at most double par plus the handicap strokes the player
// receives on that hole.
func CheckHoleScore(strokes, par, handicapRanking, courseHandicap int) ScoreCheck {
	received := StrokesForHole(courseHandicap, handicapRanking)
	check := ScoreCheck{
		MaxScore:        MaxHoleScore(par, received),
		StrokesReceived: received,
	}
	switch {
	case strokes < 1:
		check.Message = "score must be at least 1 stroke"
	case strokes > check.MaxScore:
		check.Message = fmt.Sprintf("maximum score for this hole is %d (double par + %d handicap strokes)", check.MaxScore, received)
	default:
		check.Valid = true
	}
	return check
}
