package northwind

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/suyashratnaparkhi/northwind-analytics/domain/model"
)

// Entity table keys after table-name normalization
const (
	tableCustomers    = "customers"
	tableOrders       = "orders"
	tableOrderDetails = "orderdetails"
	tableProducts     = "products"
	tableCategories   = "categories"
	tableSuppliers    = "suppliers"
	tableEmployees    = "employees"
	tableShippers     = "shippers"
)

// decodeSnapshot converts raw tables into a typed snapshot. Tables are
// recognized by normalized name; unrecognized tables are ignored so a
// snapshot directory may carry unrelated files. Orders and order details
// are required; dimension tables may be absent, in which case rows that
// reference them drop out of reports per inner-join semantics.
func decodeSnapshot(tables []*table) (*model.Snapshot, error) {
	var (
		customers  []model.Customer
		employees  []model.Employee
		suppliers  []model.Supplier
		categories []model.Category
		shippers   []model.Shipper
		products   []model.Product
		orders     []model.Order
		lines      []model.OrderLine

		haveOrders bool
		haveLines  bool
	)

	for _, t := range tables {
		var err error
		switch normalizeTableName(t.name) {
		case tableCustomers:
			customers, err = decodeCustomers(t)
		case tableOrders:
			orders, err = decodeOrders(t)
			haveOrders = true
		case tableOrderDetails:
			lines, err = decodeOrderLines(t)
			haveLines = true
		case tableProducts:
			products, err = decodeProducts(t)
		case tableCategories:
			categories, err = decodeCategories(t)
		case tableSuppliers:
			suppliers, err = decodeSuppliers(t)
		case tableEmployees:
			employees, err = decodeEmployees(t)
		case tableShippers:
			shippers, err = decodeShippers(t)
		}
		if err != nil {
			return nil, err
		}
	}

	if !haveOrders {
		return nil, fmt.Errorf("%w: orders", ErrMissingTable)
	}
	if !haveLines {
		return nil, fmt.Errorf("%w: order_details", ErrMissingTable)
	}

	return model.NewSnapshot(customers, employees, suppliers, categories, shippers, products, orders, lines), nil
}

// requireColumns resolves one column index per candidate group. Each
// element of groups lists acceptable names for one logical column.
func requireColumns(t *table, groups ...[]string) ([]int, error) {
	indexes := make([]int, len(groups))
	for i, names := range groups {
		idx := t.columnIndex(names...)
		if idx < 0 {
			return nil, NewErrorContext("decode", t.name).Error(
				fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(names, "/")))
		}
		indexes[i] = idx
	}
	return indexes, nil
}

func intCell(t *table, rec record, idx int, column string) (int, error) {
	raw := strings.TrimSpace(rec.cell(idx))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewErrorContext("decode", t.name).Error(
			fmt.Errorf("%w: column %s: %q", ErrInvalidCellValue, column, raw))
	}
	return v, nil
}

func decimalCell(t *table, rec record, idx int, column string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(rec.cell(idx))
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, NewErrorContext("decode", t.name).Error(
			fmt.Errorf("%w: column %s: %q", ErrInvalidCellValue, column, raw))
	}
	return v, nil
}

func decodeCustomers(t *table) ([]model.Customer, error) {
	idx, err := requireColumns(t,
		[]string{"CustomerID"},
		[]string{"CustomerName", "CompanyName", "Name"},
		[]string{"Country"},
	)
	if err != nil {
		return nil, err
	}

	customers := make([]model.Customer, 0, len(t.records))
	for _, rec := range t.records {
		id, err := intCell(t, rec, idx[0], "CustomerID")
		if err != nil {
			return nil, err
		}
		customers = append(customers, model.Customer{
			ID:      id,
			Name:    rec.cell(idx[1]),
			Country: rec.cell(idx[2]),
		})
	}
	return customers, nil
}

func decodeEmployees(t *table) ([]model.Employee, error) {
	idx, err := requireColumns(t,
		[]string{"EmployeeID"},
		[]string{"FirstName"},
		[]string{"LastName"},
	)
	if err != nil {
		return nil, err
	}

	employees := make([]model.Employee, 0, len(t.records))
	for _, rec := range t.records {
		id, err := intCell(t, rec, idx[0], "EmployeeID")
		if err != nil {
			return nil, err
		}
		employees = append(employees, model.Employee{
			ID:        id,
			FirstName: rec.cell(idx[1]),
			LastName:  rec.cell(idx[2]),
		})
	}
	return employees, nil
}

func decodeSuppliers(t *table) ([]model.Supplier, error) {
	idx, err := requireColumns(t,
		[]string{"SupplierID"},
		[]string{"SupplierName", "CompanyName", "Name"},
	)
	if err != nil {
		return nil, err
	}

	suppliers := make([]model.Supplier, 0, len(t.records))
	for _, rec := range t.records {
		id, err := intCell(t, rec, idx[0], "SupplierID")
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, model.Supplier{ID: id, Name: rec.cell(idx[1])})
	}
	return suppliers, nil
}

func decodeCategories(t *table) ([]model.Category, error) {
	idx, err := requireColumns(t,
		[]string{"CategoryID"},
		[]string{"CategoryName", "Name"},
	)
	if err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0, len(t.records))
	for _, rec := range t.records {
		id, err := intCell(t, rec, idx[0], "CategoryID")
		if err != nil {
			return nil, err
		}
		categories = append(categories, model.Category{ID: id, Name: rec.cell(idx[1])})
	}
	return categories, nil
}

func decodeShippers(t *table) ([]model.Shipper, error) {
	idx, err := requireColumns(t,
		[]string{"ShipperID"},
		[]string{"ShipperName", "CompanyName", "Name"},
	)
	if err != nil {
		return nil, err
	}

	shippers := make([]model.Shipper, 0, len(t.records))
	for _, rec := range t.records {
		id, err := intCell(t, rec, idx[0], "ShipperID")
		if err != nil {
			return nil, err
		}
		shippers = append(shippers, model.Shipper{ID: id, Name: rec.cell(idx[1])})
	}
	return shippers, nil
}

func decodeProducts(t *table) ([]model.Product, error) {
	idx, err := requireColumns(t,
		[]string{"ProductID"},
		[]string{"ProductName", "Name"},
		[]string{"Price", "UnitPrice"},
		[]string{"SupplierID"},
		[]string{"CategoryID"},
	)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(t.records))
	for _, rec := range t.records {
		id, err := intCell(t, rec, idx[0], "ProductID")
		if err != nil {
			return nil, err
		}
		price, err := decimalCell(t, rec, idx[2], "Price")
		if err != nil {
			return nil, err
		}
		supplierID, err := intCell(t, rec, idx[3], "SupplierID")
		if err != nil {
			return nil, err
		}
		categoryID, err := intCell(t, rec, idx[4], "CategoryID")
		if err != nil {
			return nil, err
		}
		products = append(products, model.Product{
			ID:         id,
			Name:       rec.cell(idx[1]),
			Price:      price,
			SupplierID: supplierID,
			CategoryID: categoryID,
		})
	}
	return products, nil
}

func decodeOrders(t *table) ([]model.Order, error) {
	idx, err := requireColumns(t,
		[]string{"OrderID"},
		[]string{"CustomerID"},
		[]string{"EmployeeID"},
		[]string{"ShipperID", "ShipVia"},
		[]string{"OrderDate"},
	)
	if err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(t.records))
	for _, rec := range t.records {
		id, err := intCell(t, rec, idx[0], "OrderID")
		if err != nil {
			return nil, err
		}
		customerID, err := intCell(t, rec, idx[1], "CustomerID")
		if err != nil {
			return nil, err
		}
		employeeID, err := intCell(t, rec, idx[2], "EmployeeID")
		if err != nil {
			return nil, err
		}
		shipperID, err := intCell(t, rec, idx[3], "ShipperID")
		if err != nil {
			return nil, err
		}
		date, err := model.ParseOrderDate(rec.cell(idx[4]))
		if err != nil {
			return nil, NewErrorContext("decode", t.name).Error(err)
		}
		orders = append(orders, model.Order{
			ID:         id,
			CustomerID: customerID,
			EmployeeID: employeeID,
			ShipperID:  shipperID,
			Date:       date,
		})
	}
	return orders, nil
}

func decodeOrderLines(t *table) ([]model.OrderLine, error) {
	idx, err := requireColumns(t,
		[]string{"OrderID"},
		[]string{"ProductID"},
		[]string{"Quantity"},
	)
	if err != nil {
		return nil, err
	}

	lines := make([]model.OrderLine, 0, len(t.records))
	for _, rec := range t.records {
		orderID, err := intCell(t, rec, idx[0], "OrderID")
		if err != nil {
			return nil, err
		}
		productID, err := intCell(t, rec, idx[1], "ProductID")
		if err != nil {
			return nil, err
		}
		quantity, err := intCell(t, rec, idx[2], "Quantity")
		if err != nil {
			return nil, err
		}
		lines = append(lines, model.OrderLine{
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}
	return lines, nil
}
