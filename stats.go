package northwind

import (
	"github.com/shopspring/decimal"

	"github.com/suyashratnaparkhi/northwind-analytics/domain/model"
)

// OrderSizeStats summarizes per-order item counts. An order's item count
// is the summed quantity across its (joined) lines.
type OrderSizeStats struct {
	// OrderCount is the number of distinct orders with at least one line.
	OrderCount int
	// AvgItems is the exact mean item count; rounding to two decimals
	// happens at output.
	AvgItems decimal.Decimal
	MinItems int
	MaxItems int
	// LargeOrders counts orders whose item count exceeds the threshold.
	LargeOrders int
	// LargeOrderPct is LargeOrders over OrderCount as a percentage. It is
	// invalid when there are no orders.
	LargeOrderPct decimal.NullDecimal
}

// orderItemCounts sums quantities per order, in first-encounter order of
// the joined lines.
func orderItemCounts(lines []joinedLine) []int {
	index := make(map[int]int)
	var counts []int
	for _, jl := range lines {
		i, ok := index[jl.Order.ID]
		if !ok {
			i = len(counts)
			index[jl.Order.ID] = i
			counts = append(counts, 0)
		}
		counts[i] += jl.Line.Quantity
	}
	return counts
}

// summarizeOrderSizes computes mean, min, max, and the large-order share
// for the given per-order item counts. An empty input yields zero-valued
// stats with an invalid percentage, not an error.
func summarizeOrderSizes(itemCounts []int, threshold int) OrderSizeStats {
	stats := OrderSizeStats{OrderCount: len(itemCounts)}
	if len(itemCounts) == 0 {
		return stats
	}

	sum := 0
	stats.MinItems = itemCounts[0]
	stats.MaxItems = itemCounts[0]
	for _, n := range itemCounts {
		sum += n
		if n < stats.MinItems {
			stats.MinItems = n
		}
		if n > stats.MaxItems {
			stats.MaxItems = n
		}
		if n > threshold {
			stats.LargeOrders++
		}
	}

	stats.AvgItems = decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(itemCounts))))
	stats.LargeOrderPct = model.Percent(
		decimal.NewFromInt(int64(stats.LargeOrders)),
		decimal.NewFromInt(int64(stats.OrderCount)),
	)
	return stats
}
