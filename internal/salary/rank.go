package salary

import "sort"

// AssignRanks returns, for each input position, the role's index in
// ascending-median order. Ties keep input order.
func AssignRanks(ranges []RawRange) []int {
	type entry struct {
		idx int
		med float64
	}
	entries := make([]entry, len(ranges))
	for i, r := range ranges {
		entries[i] = entry{idx: i, med: r.Median.Value()}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].med < entries[b].med
	})

	ranks := make([]int, len(ranges))
	for rank, e := range entries {
		ranks[e.idx] = rank
	}
	return ranks
}

// Position spreads a rank over [0, 1]. A lone role sits mid-bracket.
func Position(rank, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(rank) / float64(n-1)
}
