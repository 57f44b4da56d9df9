// Package golf holds the scoring math for the USGA handicap system. Every
// function here is pure; all I/O lives in the store and service layers.
package golf

import (
	"fmt"
	"math"
)

// SlopeNeutral is the slope rating of a course of standard difficulty.
const SlopeNeutral = 113

// CourseHandicap converts a player's handicap index into the handicap they
// play off on a specific course:
//
//	round(index * slope / 113 + (rating - par))
//
// Rounding is half-away-from-zero (math.Round), applied once to the final
// value. The result is clamped at zero; a plus-handicap player gets no
// strokes rather than giving them back.
func CourseHandicap(handicapIndex float64, slopeRating int, courseRating float64, par int) int {
	ch := math.Round(handicapIndex*float64(slopeRating)/SlopeNeutral + (courseRating - float64(par)))
	if ch < 0 {
		return 0
	}
	return int(ch)
}

// StrokesForHole returns how many handicap strokes a player receives on a
// hole. Strokes are dealt to holes in ranking order (1 = hardest), wrapping
// past 18 for handicaps above 18.
func StrokesForHole(courseHandicap, holeHandicapRanking int) int {
	if courseHandicap < holeHandicapRanking {
		return 0
	}
	return 1 + (courseHandicap-holeHandicapRanking)/18
}

// NetStrokes is the gross score less the strokes received, floored at zero.
func NetStrokes(grossStrokes, strokesReceived int) int {
	if grossStrokes < strokesReceived {
		return 0
	}
	return grossStrokes - strokesReceived
}

// MaxHoleScore is the most a player may record on a hole: double par plus
// the handicap strokes they receive there.
func MaxHoleScore(par, strokesReceived int) int {
	return par*2 + strokesReceived
}

// ScoreToPar is the plain difference between strokes taken and par.
func ScoreToPar(totalStrokes, par int) int {
	return totalStrokes - par
}

// FormatScoreToPar renders a score-to-par value the way a leaderboard shows
// it: "E" for even, otherwise signed ("+3", "-2").
func FormatScoreToPar(scoreToPar int) string {
	if scoreToPar == 0 {
		return "E"
	}
	return fmt.Sprintf("%+d", scoreToPar)
}
