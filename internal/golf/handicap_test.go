package golf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseHandicap(t *testing.T) {
	tests := []struct {
		name          string
		handicapIndex float64
		slopeRating   int
		courseRating  float64
		par           int
		want          int
	}{
		{"typical mid handicap", 12.5, 128, 71.2, 72, 13},
		{"neutral slope keeps the index", 10.0, 113, 72.0, 72, 10},
		{"scratch player", 0.0, 113, 72.0, 72, 0},
		{"negative result clamps to zero", 1.0, 55, 60.0, 72, 0},
		{"rating above par adds strokes", 8.0, 113, 74.5, 72, 11},
		{"high handicap steep slope", 30.0, 155, 76.8, 72, 46},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CourseHandicap(tt.handicapIndex, tt.slopeRating, tt.courseRating, tt.par)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCourseHandicapNeverNegative(t *testing.T) {
	for slope := 55; slope <= 155; slope += 10 {
		for _, index := range []float64{0, 0.4, 2.3, 11.7, 36.0, 54.0} {
			got := CourseHandicap(index, slope, 58.0, 74)
			assert.GreaterOrEqual(t, got, 0, "index=%.1f slope=%d", index, slope)
		}
	}
}

func TestStrokesForHole(t *testing.T) {
	tests := []struct {
		name           string
		courseHandicap int
		ranking        int
		want           int
	}{
		{"stroke on a hard hole", 13, 5, 1},
		{"no stroke on an easy hole", 13, 16, 0},
		{"exactly at the ranking", 13, 13, 1},
		{"zero handicap gets nothing", 0, 1, 0},
		{"second stroke past 18", 20, 2, 2},
		{"36 handicap doubles everywhere", 36, 18, 2},
		{"third time around", 40, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StrokesForHole(tt.courseHandicap, tt.ranking))
		})
	}
}

func TestStrokesForHoleNonIncreasingInRanking(t *testing.T) {
	for _, ch := range []int{0, 1, 9, 18, 19, 27, 45} {
		prev := StrokesForHole(ch, 1)
		for ranking := 2; ranking <= 18; ranking++ {
			cur := StrokesForHole(ch, ranking)
			assert.LessOrEqual(t, cur, prev, "handicap=%d ranking=%d", ch, ranking)
			assert.GreaterOrEqual(t, cur, 0)
			prev = cur
		}
	}
}

func TestNetStrokes(t *testing.T) {
	assert.Equal(t, 4, NetStrokes(5, 1))
	assert.Equal(t, 5, NetStrokes(5, 0))
	assert.Equal(t, 0, NetStrokes(1, 2), "never negative")
	assert.Equal(t, 0, NetStrokes(3, 3))
}

func TestMaxHoleScore(t *testing.T) {
	assert.Equal(t, 9, MaxHoleScore(4, 1))
	assert.Equal(t, 6, MaxHoleScore(3, 0))
	assert.Equal(t, 12, MaxHoleScore(5, 2))
}

func TestScoreToPar(t *testing.T) {
	assert.Equal(t, 3, ScoreToPar(75, 72))
	assert.Equal(t, -2, ScoreToPar(70, 72))
	assert.Equal(t, 0, ScoreToPar(72, 72))
}

func TestFormatScoreToPar(t *testing.T) {
	assert.Equal(t, "E", FormatScoreToPar(0))
	assert.Equal(t, "+3", FormatScoreToPar(3))
	assert.Equal(t, "-2", FormatScoreToPar(-2))
	assert.Equal(t, "+1", FormatScoreToPar(1))
}
