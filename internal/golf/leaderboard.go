package golf

import "sort"

type LeaderboardTotal struct {
	UserID          string
	TotalNetStrokes int
}

type LeaderboardPosition struct {
	UserID          string
	TotalNetStrokes int
	Position        int
}

// RankLeaderboard sorts totals ascending by net strokes and assigns
// positions with golf tie handling: equal totals share a position and the
// next distinct total takes the next available slot, so two players tied
// for 2nd are followed by 4th, not 3rd. The input is not modified.
func RankLeaderboard(totals []LeaderboardTotal) []LeaderboardPosition {
	sorted := make([]LeaderboardTotal, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalNetStrokes < sorted[j].TotalNetStrokes
	})

	ranked := make([]LeaderboardPosition, 0, len(sorted))
	for i, entry := range sorted {
		position := i + 1
		if i > 0 && entry.TotalNetStrokes == ranked[i-1].TotalNetStrokes {
			position = ranked[i-1].Position
		}
		ranked = append(ranked, LeaderboardPosition{
			UserID:          entry.UserID,
			TotalNetStrokes: entry.TotalNetStrokes,
			Position:        position,
		})
	}
	return ranked
}
