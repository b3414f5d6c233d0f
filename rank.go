package northwind

import (
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// sortedByScoreDesc returns a copy of items ordered by descending score.
// The sort is stable: equal scores keep their relative input order.
func sortedByScoreDesc[T any](items []T, score func(T) decimal.Decimal) []T {
	out := slices.Clone(items)
	sort.SliceStable(out, func(i, j int) bool {
		return score(out[i]).GreaterThan(score(out[j]))
	})
	return out
}

// TopN returns the n highest-scored items in descending score order.
// Ties keep their relative input order, and the result length is
// min(n, len(items)).
func TopN[T any](items []T, n int, score func(T) decimal.Decimal) []T {
	sorted := sortedByScoreDesc(items, score)
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// CompetitionRanks assigns standard competition ranks to items already
// ordered by descending score: tied values share a rank, and the next
// distinct value's rank skips ahead by the number of tied predecessors
// (1, 2, 2, 4). This is the SQL RANK() semantics.
//
// CompetitionRanks and RowNumberRanks are deliberately separate
// strategies; their tie behavior must never be conflated.
func CompetitionRanks[T any](sorted []T, score func(T) decimal.Decimal) []int {
	ranks := make([]int, len(sorted))
	for i := range sorted {
		if i > 0 && score(sorted[i]).Equal(score(sorted[i-1])) {
			ranks[i] = ranks[i-1]
			continue
		}
		ranks[i] = i + 1
	}
	return ranks
}

// RowNumberRanks assigns unique sequential ranks 1..len(sorted) to items
// already ordered by descending score. Ties resolve by position, which is
// stable input order when the ordering came from sortedByScoreDesc. This
// is the SQL ROW_NUMBER() semantics.
func RowNumberRanks[T any](sorted []T) []int {
	ranks := make([]int, len(sorted))
	for i := range sorted {
		ranks[i] = i + 1
	}
	return ranks
}

// intScore adapts an integer metric (order counts, item counts) to the
// decimal scoring functions.
func intScore(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
