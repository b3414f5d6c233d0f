package northwind

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/suyashratnaparkhi/northwind-analytics/domain/model"
)

// Report is one tabular report result: an ordered column list and string
// rows ready for export. Currency and percentage cells carry exactly two
// decimal places; undefined ratios render as empty cells.
type Report struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Report names, also used as export file and sheet names
const (
	ReportTopProducts     = "top_products"
	ReportCustomerValue   = "customer_value"
	ReportCategoryCountry = "category_country_revenue"
	ReportEmployees       = "employee_leaderboard"
	ReportSupplierShare   = "supplier_share"
	ReportMonthlyTrend    = "monthly_trend"
	ReportOrderSizeStats  = "order_size_stats"
	ReportShipperVolume   = "shipper_volume"
	ReportHighValueOrders = "high_value_orders"
)

// Reports computes all nine reports in their fixed output order.
func (p *Pipeline) Reports() []Report {
	return []Report{
		p.topProductsReport(),
		p.customerValueReport(),
		p.categoryCountryReport(),
		p.employeeReport(),
		p.supplierShareReport(),
		p.monthlyTrendReport(),
		p.orderSizeReport(),
		p.shipperVolumeReport(),
		p.highValueOrdersReport(),
	}
}

// formatPct renders a percentage with two decimals, or an empty cell when
// the value is undefined.
func formatPct(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}

func (p *Pipeline) topProductsReport() Report {
	r := Report{
		Name:    ReportTopProducts,
		Columns: []string{"ProductName", "SupplierName", "TotalRevenue"},
	}
	for _, row := range p.TopProducts() {
		r.Rows = append(r.Rows, []string{
			row.ProductName,
			row.SupplierName,
			model.FormatMoney(row.TotalRevenue),
		})
	}
	return r
}

func (p *Pipeline) customerValueReport() Report {
	r := Report{
		Name:    ReportCustomerValue,
		Columns: []string{"CustomerName", "Country", "OrderCount", "TotalRevenue"},
	}
	for _, row := range p.CustomerValues() {
		r.Rows = append(r.Rows, []string{
			row.CustomerName,
			row.Country,
			strconv.Itoa(row.OrderCount),
			model.FormatMoney(row.TotalRevenue),
		})
	}
	return r
}

func (p *Pipeline) categoryCountryReport() Report {
	r := Report{
		Name:    ReportCategoryCountry,
		Columns: []string{"CategoryName", "Country", "OrderCount", "TotalRevenue"},
	}
	for _, row := range p.CategoryCountryBreakdown() {
		r.Rows = append(r.Rows, []string{
			row.CategoryName,
			row.Country,
			strconv.Itoa(row.OrderCount),
			model.FormatMoney(row.TotalRevenue),
		})
	}
	return r
}

func (p *Pipeline) employeeReport() Report {
	r := Report{
		Name:    ReportEmployees,
		Columns: []string{"EmployeeName", "OrderCount", "TotalRevenue"},
	}
	for _, row := range p.EmployeeLeaderboard() {
		r.Rows = append(r.Rows, []string{
			row.EmployeeName,
			strconv.Itoa(row.OrderCount),
			model.FormatMoney(row.TotalRevenue),
		})
	}
	return r
}

func (p *Pipeline) supplierShareReport() Report {
	r := Report{
		Name:    ReportSupplierShare,
		Columns: []string{"SupplierName", "TotalRevenue", "DominantCategory", "DominantCategoryShare"},
	}
	for _, row := range p.SupplierShares() {
		r.Rows = append(r.Rows, []string{
			row.SupplierName,
			model.FormatMoney(row.TotalRevenue),
			row.DominantCategory,
			formatPct(row.DominantShare),
		})
	}
	return r
}

func (p *Pipeline) monthlyTrendReport() Report {
	r := Report{
		Name:    ReportMonthlyTrend,
		Columns: []string{"Year", "Month", "TotalRevenue", "GrowthPct"},
	}
	for _, row := range p.MonthlyTrend() {
		r.Rows = append(r.Rows, []string{
			strconv.Itoa(row.Year),
			fmt.Sprintf("%02d", int(row.Month)),
			model.FormatMoney(row.TotalRevenue),
			formatPct(row.GrowthPct),
		})
	}
	return r
}

func (p *Pipeline) orderSizeReport() Report {
	stats := p.OrderSizeSummary()
	return Report{
		Name: ReportOrderSizeStats,
		Columns: []string{
			"OrderCount", "AvgItemsPerOrder", "MinItems", "MaxItems",
			"LargeOrders", "LargeOrderPct",
		},
		Rows: [][]string{{
			strconv.Itoa(stats.OrderCount),
			stats.AvgItems.StringFixed(2),
			strconv.Itoa(stats.MinItems),
			strconv.Itoa(stats.MaxItems),
			strconv.Itoa(stats.LargeOrders),
			formatPct(stats.LargeOrderPct),
		}},
	}
}

func (p *Pipeline) shipperVolumeReport() Report {
	r := Report{
		Name:    ReportShipperVolume,
		Columns: []string{"ShipperName", "OrderCount", "VolumeRank"},
	}
	for _, row := range p.ShipperVolumes() {
		r.Rows = append(r.Rows, []string{
			row.ShipperName,
			strconv.Itoa(row.OrderCount),
			strconv.Itoa(row.VolumeRank),
		})
	}
	return r
}

func (p *Pipeline) highValueOrdersReport() Report {
	r := Report{
		Name: ReportHighValueOrders,
		Columns: []string{
			"OrderID", "CustomerName", "OrderTotal", "OrderRank",
			"ProductName", "Quantity", "LineTotal",
		},
	}
	for _, row := range p.HighValueOrderLines() {
		r.Rows = append(r.Rows, []string{
			strconv.Itoa(row.OrderID),
			row.CustomerName,
			model.FormatMoney(row.OrderTotal),
			strconv.Itoa(row.OrderRank),
			row.ProductName,
			strconv.Itoa(row.Quantity),
			model.FormatMoney(row.LineTotal),
		})
	}
	return r
}
