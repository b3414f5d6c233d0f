// Package model provides the domain model for northwind-analytics.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a buyer that places orders.
type Customer struct {
	ID      int
	Name    string
	Country string
}

// Employee is a salesperson credited with orders.
type Employee struct {
	ID        int
	FirstName string
	LastName  string
}

// FullName returns the employee's display name ("First Last").
func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}

// Supplier provides products.
type Supplier struct {
	ID   int
	Name string
}

// Category groups products.
type Category struct {
	ID   int
	Name string
}

// Shipper delivers orders.
type Shipper struct {
	ID   int
	Name string
}

// Product is a sellable item. Price is the current unit price; the data
// model keeps no historical price per order line.
type Product struct {
	ID         int
	Name       string
	Price      decimal.Decimal
	SupplierID int
	CategoryID int
}

// Order is one customer order. Date is the order date; many OrderLines
// reference it.
type Order struct {
	ID         int
	CustomerID int
	EmployeeID int
	ShipperID  int
	Date       time.Time
}

// OrderLine is one line item of an order. The unit price is read from the
// referenced product at computation time, never stored on the line.
type OrderLine struct {
	OrderID   int
	ProductID int
	Quantity  int
}

// Revenue returns the line revenue (product price times quantity) as an
// exact decimal. Rounding happens only at final output.
func (l OrderLine) Revenue(p Product) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
