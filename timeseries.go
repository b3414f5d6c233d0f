package northwind

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// monthKey identifies one calendar month.
type monthKey struct {
	Year  int
	Month time.Month
}

// before reports whether k is chronologically before other.
func (k monthKey) before(other monthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// MonthlyRevenue is one bucket of the monthly trend report.
type MonthlyRevenue struct {
	Year         int
	Month        time.Month
	TotalRevenue decimal.Decimal
	// GrowthPct is the month-over-month growth percentage relative to the
	// previous bucket. It is invalid for the first bucket of the series
	// and whenever the previous bucket's revenue is exactly zero.
	GrowthPct decimal.NullDecimal
}

// monthlyRevenue buckets joined lines by order month, keeping only the
// two most recent calendar years relative to the latest order date.
// Buckets exist only for months that contain orders and are returned in
// chronological order.
func monthlyRevenue(lines []joinedLine) []MonthlyRevenue {
	if len(lines) == 0 {
		return nil
	}

	latestYear := 0
	for _, jl := range lines {
		if y := jl.Order.Date.Year(); y > latestYear {
			latestYear = y
		}
	}
	firstYear := latestYear - 1

	groups := groupRevenue(lines, func(jl joinedLine) monthKey {
		return monthKey{Year: jl.Order.Date.Year(), Month: jl.Order.Date.Month()}
	})

	buckets := make([]MonthlyRevenue, 0, len(groups))
	for _, g := range groups {
		if g.Key.Year < firstYear {
			continue
		}
		buckets = append(buckets, MonthlyRevenue{
			Year:         g.Key.Year,
			Month:        g.Key.Month,
			TotalRevenue: g.Revenue,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		a := monthKey{Year: buckets[i].Year, Month: buckets[i].Month}
		b := monthKey{Year: buckets[j].Year, Month: buckets[j].Month}
		return a.before(b)
	})

	return withGrowth(buckets)
}

// withGrowth fills in month-over-month growth for a chronologically
// ordered series: (current-previous)/previous*100. The first bucket has
// no prior period and stays invalid; a zero previous revenue also stays
// invalid rather than producing an infinite value.
func withGrowth(buckets []MonthlyRevenue) []MonthlyRevenue {
	hundred := decimal.NewFromInt(100)
	for i := range buckets {
		if i == 0 {
			continue
		}
		prev := buckets[i-1].TotalRevenue
		if prev.IsZero() {
			continue
		}
		growth := buckets[i].TotalRevenue.Sub(prev).Div(prev).Mul(hundred)
		buckets[i].GrowthPct = decimal.NullDecimal{Decimal: growth, Valid: true}
	}
	return buckets
}
