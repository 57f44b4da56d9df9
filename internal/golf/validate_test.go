package golf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckHoleScore(t *testing.T) {
	// par 4, ranking 5, course handicap 13 -> 1 stroke received, max 9
	tests := []struct {
		name        string
		strokes     int
		wantValid   bool
		wantMessage string
	}{
		{"at the cap", 9, true, ""},
		{"one over the cap", 10, false, "maximum score for this hole is 9 (double par + 1 handicap strokes)"},
		{"minimum legal", 1, true, ""},
		{"zero strokes", 0, false, "score must be at least 1 stroke"},
		{"negative strokes", -3, false, "score must be at least 1 stroke"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := CheckHoleScore(tt.strokes, 4, 5, 13)
			assert.Equal(t, tt.wantValid, check.Valid)
			assert.Equal(t, 9, check.MaxScore)
			assert.Equal(t, 1, check.StrokesReceived)
			assert.Equal(t, tt.wantMessage, check.Message)
		})
	}
}

func TestCheckHoleScoreNoStrokesReceived(t *testing.T) {
	check := CheckHoleScore(8, 4, 16, 13)
	assert.True(t, check.Valid)
	assert.Equal(t, 8, check.MaxScore)
	assert.Equal(t, 0, check.StrokesReceived)

	check = CheckHoleScore(9, 4, 16, 13)
	assert.False(t, check.Valid)
	assert.Equal(t, "maximum score for this hole is 8 (double par + 0 handicap strokes)", check.Message)
}
