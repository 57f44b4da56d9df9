package golf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankLeaderboardTiesSharePosition(t *testing.T) {
	ranked := RankLeaderboard([]LeaderboardTotal{
		{UserID: "c", TotalNetStrokes: 72},
		{UserID: "a", TotalNetStrokes: 70},
		{UserID: "b", TotalNetStrokes: 70},
	})

	assert.Equal(t, []LeaderboardPosition{
		{UserID: "a", TotalNetStrokes: 70, Position: 1},
		{UserID: "b", TotalNetStrokes: 70, Position: 1},
		{UserID: "c", TotalNetStrokes: 72, Position: 3},
	}, ranked)
}

func TestRankLeaderboardSkipsOverTiedSlots(t *testing.T) {
	ranked := RankLeaderboard([]LeaderboardTotal{
		{UserID: "a", TotalNetStrokes: 68},
		{UserID: "b", TotalNetStrokes: 70},
		{UserID: "c", TotalNetStrokes: 70},
		{UserID: "d", TotalNetStrokes: 70},
		{UserID: "e", TotalNetStrokes: 71},
	})

	positions := make(map[string]int, len(ranked))
	for _, r := range ranked {
		positions[r.UserID] = r.Position
	}
	assert.Equal(t, 1, positions["a"])
	assert.Equal(t, 2, positions["b"])
	assert.Equal(t, 2, positions["c"])
	assert.Equal(t, 2, positions["d"])
	assert.Equal(t, 5, positions["e"])
}

func TestRankLeaderboardStableForTiedEntries(t *testing.T) {
	// Tied players keep their input order; no artificial tie-breaker decides
	// a winner between them.
	ranked := RankLeaderboard([]LeaderboardTotal{
		{UserID: "first", TotalNetStrokes: 70},
		{UserID: "second", TotalNetStrokes: 70},
	})
	assert.Equal(t, "first", ranked[0].UserID)
	assert.Equal(t, "second", ranked[1].UserID)
	assert.Equal(t, ranked[0].Position, ranked[1].Position)
}

func TestRankLeaderboardEmpty(t *testing.T) {
	assert.Empty(t, RankLeaderboard(nil))
}

func TestRankLeaderboardDoesNotMutateInput(t *testing.T) {
	totals := []LeaderboardTotal{
		{UserID: "b", TotalNetStrokes: 72},
		{UserID: "a", TotalNetStrokes: 70},
	}
	RankLeaderboard(totals)
	assert.Equal(t, "b", totals[0].UserID)
}
