package northwind

import (
	"github.com/shopspring/decimal"

	"github.com/suyashratnaparkhi/northwind-analytics/domain/model"
)

// joinedLine is one order line joined to its parent order and product.
// Only lines whose parents both exist become joined lines; lines with a
// missing order or product are silently excluded (inner-join semantics).
type joinedLine struct {
	Line    model.OrderLine
	Order   model.Order
	Product model.Product
}

// Revenue returns the exact line revenue.
func (j joinedLine) Revenue() decimal.Decimal {
	return j.Line.Revenue(j.Product)
}

// joinLines resolves every order line against its order and product,
// preserving the input order of the lines.
func joinLines(s *model.Snapshot) []joinedLine {
	joined := make([]joinedLine, 0, len(s.Lines))
	for _, line := range s.Lines {
		order, ok := s.OrderByID(line.OrderID)
		if !ok {
			continue
		}
		product, ok := s.ProductByID(line.ProductID)
		if !ok {
			continue
		}
		joined = append(joined, joinedLine{Line: line, Order: order, Product: product})
	}
	return joined
}

// revenueGroup is one group of a revenue aggregation.
type revenueGroup[K comparable] struct {
	Key K
	// Revenue is the exact decimal sum of line revenues in the group.
	Revenue decimal.Decimal
	// OrderCount is the number of distinct orders contributing to the group.
	OrderCount int
}

// groupRevenue sums line revenue by grouping key. Groups appear in
// first-encounter order of the input lines, which gives stable,
// deterministic tie-breaking to every downstream sort and rank.
func groupRevenue[K comparable](lines []joinedLine, key func(joinedLine) K) []revenueGroup[K] {
	index := make(map[K]int)
	orders := make(map[K]map[int]struct{})
	var groups []revenueGroup[K]

	for _, jl := range lines {
		k := key(jl)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			orders[k] = make(map[int]struct{})
			groups = append(groups, revenueGroup[K]{Key: k})
		}
		groups[i].Revenue = groups[i].Revenue.Add(jl.Revenue())
		orders[k][jl.Order.ID] = struct{}{}
	}

	for i := range groups {
		groups[i].OrderCount = len(orders[groups[i].Key])
	}
	return groups
}

// totalRevenue sums revenue over all joined lines without grouping.
func totalRevenue(lines []joinedLine) decimal.Decimal {
	total := decimal.Zero
	for _, jl := range lines {
		total = total.Add(jl.Revenue())
	}
	return total
}
