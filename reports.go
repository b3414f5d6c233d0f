package northwind

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/suyashratnaparkhi/northwind-analytics/domain/model"
)

// ProductRevenue is one row of the top products report.
type ProductRevenue struct {
	ProductName  string
	SupplierName string
	TotalRevenue decimal.Decimal
}

// TopProducts returns the N highest-revenue products (N from WithTopN,
// default 10) with their supplier, revenue descending, stable under ties.
func (p *Pipeline) TopProducts() []ProductRevenue {
	groups := groupRevenue(p.joined, func(jl joinedLine) int {
		return jl.Product.ID
	})

	rows := make([]ProductRevenue, 0, len(groups))
	for _, g := range groups {
		product, ok := p.snapshot.ProductByID(g.Key)
		if !ok {
			continue
		}
		supplier, ok := p.snapshot.SupplierByID(product.SupplierID)
		if !ok {
			continue
		}
		rows = append(rows, ProductRevenue{
			ProductName:  product.Name,
			SupplierName: supplier.Name,
			TotalRevenue: g.Revenue,
		})
	}

	return TopN(rows, p.opts.topN, func(r ProductRevenue) decimal.Decimal {
		return r.TotalRevenue
	})
}

// CustomerValue is one row of the customer lifetime value report.
type CustomerValue struct {
	CustomerName string
	Country      string
	OrderCount   int
	TotalRevenue decimal.Decimal
}

// CustomerValues returns every customer with at least one order, revenue
// descending, stable under ties.
func (p *Pipeline) CustomerValues() []CustomerValue {
	groups := groupRevenue(p.joined, func(jl joinedLine) int {
		return jl.Order.CustomerID
	})

	rows := make([]CustomerValue, 0, len(groups))
	for _, g := range groups {
		customer, ok := p.snapshot.CustomerByID(g.Key)
		if !ok {
			continue
		}
		rows = append(rows, CustomerValue{
			CustomerName: customer.Name,
			Country:      customer.Country,
			OrderCount:   g.OrderCount,
			TotalRevenue: g.Revenue,
		})
	}

	return sortedByScoreDesc(rows, func(r CustomerValue) decimal.Decimal {
		return r.TotalRevenue
	})
}

// CategoryCountryRevenue is one row of the category/country breakdown.
type CategoryCountryRevenue struct {
	CategoryName string
	Country      string
	OrderCount   int
	TotalRevenue decimal.Decimal
}

// categoryCountryKey groups lines by product category and customer country.
type categoryCountryKey struct {
	categoryID int
	country    string
}

// CategoryCountryBreakdown returns revenue grouped by product category and
// customer country, revenue descending. Lines whose customer is unknown
// drop out, matching the inner join through Customers.
func (p *Pipeline) CategoryCountryBreakdown() []CategoryCountryRevenue {
	var withCustomer []joinedLine
	countries := make(map[int]string)
	for _, jl := range p.joined {
		customer, ok := p.snapshot.CustomerByID(jl.Order.CustomerID)
		if !ok {
			continue
		}
		countries[jl.Order.CustomerID] = customer.Country
		withCustomer = append(withCustomer, jl)
	}

	groups := groupRevenue(withCustomer, func(jl joinedLine) categoryCountryKey {
		return categoryCountryKey{
			categoryID: jl.Product.CategoryID,
			country:    countries[jl.Order.CustomerID],
		}
	})

	rows := make([]CategoryCountryRevenue, 0, len(groups))
	for _, g := range groups {
		category, ok := p.snapshot.CategoryByID(g.Key.categoryID)
		if !ok {
			continue
		}
		rows = append(rows, CategoryCountryRevenue{
			CategoryName: category.Name,
			Country:      g.Key.country,
			OrderCount:   g.OrderCount,
			TotalRevenue: g.Revenue,
		})
	}

	return sortedByScoreDesc(rows, func(r CategoryCountryRevenue) decimal.Decimal {
		return r.TotalRevenue
	})
}

// EmployeeSales is one row of the employee leaderboard.
type EmployeeSales struct {
	EmployeeName string
	OrderCount   int
	TotalRevenue decimal.Decimal
}

// EmployeeLeaderboard returns per-employee order counts and revenue,
// revenue descending, stable under ties.
func (p *Pipeline) EmployeeLeaderboard() []EmployeeSales {
	groups := groupRevenue(p.joined, func(jl joinedLine) int {
		return jl.Order.EmployeeID
	})

	rows := make([]EmployeeSales, 0, len(groups))
	for _, g := range groups {
		employee, ok := p.snapshot.EmployeeByID(g.Key)
		if !ok {
			continue
		}
		rows = append(rows, EmployeeSales{
			EmployeeName: employee.FullName(),
			OrderCount:   g.OrderCount,
			TotalRevenue: g.Revenue,
		})
	}

	return sortedByScoreDesc(rows, func(r EmployeeSales) decimal.Decimal {
		return r.TotalRevenue
	})
}

// SupplierShare is one row of the supplier revenue share report.
type SupplierShare struct {
	SupplierName string
	TotalRevenue decimal.Decimal
	// DominantCategory is the single category contributing the most
	// revenue among the supplier's products.
	DominantCategory string
	// DominantShare is the dominant category's share of the supplier's
	// total revenue, as a percentage.
	DominantShare decimal.NullDecimal
}

// supplierCategoryKey partitions supplier revenue by category.
type supplierCategoryKey struct {
	supplierID int
	categoryID int
}

// SupplierShares returns one row per supplier with sales: total revenue
// and the dominant category with its revenue share, revenue descending.
// A dominant-category tie resolves to the category first encountered in
// the input lines (row-number semantics, one winner per supplier).
func (p *Pipeline) SupplierShares() []SupplierShare {
	totals := groupRevenue(p.joined, func(jl joinedLine) int {
		return jl.Product.SupplierID
	})
	perCategory := groupRevenue(p.joined, func(jl joinedLine) supplierCategoryKey {
		return supplierCategoryKey{
			supplierID: jl.Product.SupplierID,
			categoryID: jl.Product.CategoryID,
		}
	})

	// Category groups per supplier, in first-encounter order.
	categoriesOf := make(map[int][]revenueGroup[supplierCategoryKey])
	for _, g := range perCategory {
		categoriesOf[g.Key.supplierID] = append(categoriesOf[g.Key.supplierID], g)
	}

	rows := make([]SupplierShare, 0, len(totals))
	for _, total := range totals {
		supplier, ok := p.snapshot.SupplierByID(total.Key)
		if !ok {
			continue
		}

		// Each supplier is an independent ranking partition: the dominant
		// category is the row-number rank 1 entry by category revenue.
		partition := sortedByScoreDesc(categoriesOf[total.Key], func(g revenueGroup[supplierCategoryKey]) decimal.Decimal {
			return g.Revenue
		})
		ranks := RowNumberRanks(partition)

		row := SupplierShare{
			SupplierName: supplier.Name,
			TotalRevenue: total.Revenue,
		}
		for i, g := range partition {
			if ranks[i] != 1 {
				break
			}
			if category, ok := p.snapshot.CategoryByID(g.Key.categoryID); ok {
				row.DominantCategory = category.Name
				row.DominantShare = model.Percent(g.Revenue, total.Revenue)
			}
		}
		rows = append(rows, row)
	}

	return sortedByScoreDesc(rows, func(r SupplierShare) decimal.Decimal {
		return r.TotalRevenue
	})
}

// MonthlyTrend returns monthly revenue buckets with month-over-month
// growth over the two most recent calendar years relative to the latest
// order date. See MonthlyRevenue for the growth semantics.
func (p *Pipeline) MonthlyTrend() []MonthlyRevenue {
	return monthlyRevenue(p.joined)
}

// OrderSizeSummary computes the order item-count statistics and the share
// of orders above the configured large-order threshold (default 10).
func (p *Pipeline) OrderSizeSummary() OrderSizeStats {
	return summarizeOrderSizes(orderItemCounts(p.joined), p.opts.largeOrderThreshold)
}

// ShipperVolume is one row of the shipper volume report.
type ShipperVolume struct {
	ShipperName string
	OrderCount  int
	// VolumeRank is the standard competition rank by order count: tied
	// shippers share a rank and the next rank skips ahead.
	VolumeRank int
}

// ShipperVolumes ranks shippers by the number of orders they carried,
// using competition rank so business-meaningful ties show as tied.
func (p *Pipeline) ShipperVolumes() []ShipperVolume {
	index := make(map[int]int)
	var rows []ShipperVolume
	for _, order := range p.snapshot.Orders {
		shipper, ok := p.snapshot.ShipperByID(order.ShipperID)
		if !ok {
			continue
		}
		i, ok := index[order.ShipperID]
		if !ok {
			i = len(rows)
			index[order.ShipperID] = i
			rows = append(rows, ShipperVolume{ShipperName: shipper.Name})
		}
		rows[i].OrderCount++
	}

	sorted := sortedByScoreDesc(rows, func(r ShipperVolume) decimal.Decimal {
		return intScore(r.OrderCount)
	})
	ranks := CompetitionRanks(sorted, func(r ShipperVolume) decimal.Decimal {
		return intScore(r.OrderCount)
	})
	for i := range sorted {
		sorted[i].VolumeRank = ranks[i]
	}
	return sorted
}

// HighValueOrderLine is one expanded line of the high-value orders report.
type HighValueOrderLine struct {
	OrderID      int
	CustomerName string
	OrderTotal   decimal.Decimal
	// OrderRank is the order's competition rank by total value.
	OrderRank   int
	ProductName string
	Quantity    int
	LineTotal   decimal.Decimal
}

// HighValueOrderLines ranks all orders by total value (competition rank,
// descending), keeps every order ranked 10 or better (ties at the
// boundary are included, so more than ten orders may qualify), and
// expands each into its line items. Rows are sorted by order total
// descending, then order id, then line total descending.
func (p *Pipeline) HighValueOrderLines() []HighValueOrderLine {
	const rankCutoff = 10

	totals := groupRevenue(p.joined, func(jl joinedLine) int {
		return jl.Order.ID
	})
	sorted := sortedByScoreDesc(totals, func(g revenueGroup[int]) decimal.Decimal {
		return g.Revenue
	})
	// Equal totals order by id so the output ordering is fully specified,
	// not dependent on input order.
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Revenue.Equal(sorted[j].Revenue) {
			return sorted[i].Revenue.GreaterThan(sorted[j].Revenue)
		}
		return sorted[i].Key < sorted[j].Key
	})
	ranks := CompetitionRanks(sorted, func(g revenueGroup[int]) decimal.Decimal {
		return g.Revenue
	})

	linesOf := make(map[int][]joinedLine)
	for _, jl := range p.joined {
		linesOf[jl.Order.ID] = append(linesOf[jl.Order.ID], jl)
	}

	var rows []HighValueOrderLine
	for i, g := range sorted {
		if ranks[i] > rankCutoff {
			break
		}
		order, ok := p.snapshot.OrderByID(g.Key)
		if !ok {
			continue
		}
		customer, ok := p.snapshot.CustomerByID(order.CustomerID)
		if !ok {
			continue
		}

		lines := sortedByScoreDesc(linesOf[g.Key], func(jl joinedLine) decimal.Decimal {
			return jl.Revenue()
		})
		for _, jl := range lines {
			rows = append(rows, HighValueOrderLine{
				OrderID:      g.Key,
				CustomerName: customer.Name,
				OrderTotal:   g.Revenue,
				OrderRank:    ranks[i],
				ProductName:  jl.Product.Name,
				Quantity:     jl.Line.Quantity,
				LineTotal:    jl.Revenue(),
			})
		}
	}
	return rows
}
