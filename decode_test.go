package northwind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suyashratnaparkhi/northwind-analytics/domain/model"
)

func TestDecodeSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("decodes all entity tables", func(t *testing.T) {
		t.Parallel()

		tables := []*table{
			newTable("orders",
				header{"OrderID", "CustomerID", "EmployeeID", "ShipperID", "OrderDate"},
				[]record{{"1", "10", "20", "30", "2024-01-15"}}),
			newTable("order_details",
				header{"OrderDetailID", "OrderID", "ProductID", "Quantity"},
				[]record{{"1", "1", "5", "12"}}),
			newTable("customers",
				header{"CustomerID", "CustomerName", "Country"},
				[]record{{"10", "Alfreds", "Germany"}}),
			newTable("products",
				header{"ProductID", "ProductName", "Price", "SupplierID", "CategoryID"},
				[]record{{"5", "Chai", "18.50", "2", "3"}}),
		}

		s, err := decodeSnapshot(tables)
		require.NoError(t, err)

		require.Len(t, s.Orders, 1)
		assert.Equal(t, 1, s.Orders[0].ID)
		assert.Equal(t, 10, s.Orders[0].CustomerID)
		assert.Equal(t, 2024, s.Orders[0].Date.Year())

		require.Len(t, s.Lines, 1)
		assert.Equal(t, 12, s.Lines[0].Quantity)

		require.Len(t, s.Products, 1)
		assert.Equal(t, "18.5", s.Products[0].Price.String())
	})

	t.Run("orders table is required", func(t *testing.T) {
		t.Parallel()

		tables := []*table{
			newTable("order_details",
				header{"OrderID", "ProductID", "Quantity"},
				[]record{{"1", "1", "1"}}),
		}
		_, err := decodeSnapshot(tables)
		assert.ErrorIs(t, err, ErrMissingTable)
	})

	t.Run("order details table is required", func(t *testing.T) {
		t.Parallel()

		tables := []*table{
			newTable("orders",
				header{"OrderID", "CustomerID", "EmployeeID", "ShipperID", "OrderDate"},
				[]record{{"1", "1", "1", "1", "2024-01-15"}}),
		}
		_, err := decodeSnapshot(tables)
		assert.ErrorIs(t, err, ErrMissingTable)
	})

	t.Run("unrecognized tables are ignored", func(t *testing.T) {
		t.Parallel()

		tables := []*table{
			newTable("orders",
				header{"OrderID", "CustomerID", "EmployeeID", "ShipperID", "OrderDate"},
				[]record{{"1", "1", "1", "1", "2024-01-15"}}),
			newTable("order_details",
				header{"OrderID", "ProductID", "Quantity"},
				[]record{{"1", "1", "1"}}),
			newTable("audit_log", header{"Entry"}, []record{{"noise"}}),
		}
		_, err := decodeSnapshot(tables)
		assert.NoError(t, err)
	})

	t.Run("table names match any separator style", func(t *testing.T) {
		t.Parallel()

		tables := []*table{
			newTable("Orders",
				header{"OrderID", "CustomerID", "EmployeeID", "ShipperID", "OrderDate"},
				[]record{{"1", "1", "1", "1", "2024-01-15"}}),
			newTable("OrderDetails",
				header{"OrderID", "ProductID", "Quantity"},
				[]record{{"1", "1", "1"}}),
		}
		s, err := decodeSnapshot(tables)
		require.NoError(t, err)
		assert.Len(t, s.Orders, 1)
		assert.Len(t, s.Lines, 1)
	})
}

func TestDecodeColumnAliases(t *testing.T) {
	t.Parallel()

	t.Run("customers accept CompanyName", func(t *testing.T) {
		t.Parallel()

		customers, err := decodeCustomers(newTable("customers",
			header{"CustomerID", "CompanyName", "Country"},
			[]record{{"1", "Alfreds", "Germany"}}))
		require.NoError(t, err)
		assert.Equal(t, "Alfreds", customers[0].Name)
	})

	t.Run("products accept UnitPrice", func(t *testing.T) {
		t.Parallel()

		products, err := decodeProducts(newTable("products",
			header{"ProductID", "ProductName", "UnitPrice", "SupplierID", "CategoryID"},
			[]record{{"1", "Chai", "18.00", "1", "1"}}))
		require.NoError(t, err)
		assert.Equal(t, "18.00", products[0].Price.StringFixed(2))
	})

	t.Run("orders accept ShipVia", func(t *testing.T) {
		t.Parallel()

		orders, err := decodeOrders(newTable("orders",
			header{"OrderID", "CustomerID", "EmployeeID", "ShipVia", "OrderDate"},
			[]record{{"1", "1", "1", "3", "2024-01-15"}}))
		require.NoError(t, err)
		assert.Equal(t, 3, orders[0].ShipperID)
	})

	t.Run("column matching is case-insensitive", func(t *testing.T) {
		t.Parallel()

		shippers, err := decodeShippers(newTable("shippers",
			header{"shipperid", "shippername"},
			[]record{{"1", "Speedy Express"}}))
		require.NoError(t, err)
		assert.Equal(t, "Speedy Express", shippers[0].Name)
	})
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing column", func(t *testing.T) {
		t.Parallel()

		_, err := decodeOrders(newTable("orders",
			header{"OrderID", "CustomerID"},
			[]record{{"1", "1"}}))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "orders")
	})

	t.Run("invalid integer cell", func(t *testing.T) {
		t.Parallel()

		_, err := decodeOrderLines(newTable("order_details",
			header{"OrderID", "ProductID", "Quantity"},
			[]record{{"1", "1", "many"}}))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCellValue)
	})

	t.Run("invalid price cell", func(t *testing.T) {
		t.Parallel()

		_, err := decodeProducts(newTable("products",
			header{"ProductID", "ProductName", "Price", "SupplierID", "CategoryID"},
			[]record{{"1", "Chai", "free", "1", "1"}}))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCellValue)
	})

	t.Run("invalid order date", func(t *testing.T) {
		t.Parallel()

		_, err := decodeOrders(newTable("orders",
			header{"OrderID", "CustomerID", "EmployeeID", "ShipperID", "OrderDate"},
			[]record{{"1", "1", "1", "1", "someday"}}))
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidOrderDate)
	})

	t.Run("empty cells default to zero", func(t *testing.T) {
		t.Parallel()

		lines, err := decodeOrderLines(newTable("order_details",
			header{"OrderID", "ProductID", "Quantity"},
			[]record{{"1", "1", ""}}))
		require.NoError(t, err)
		assert.Zero(t, lines[0].Quantity)
	})
}

func TestTableColumnIndex(t *testing.T) {
	t.Parallel()

	tbl := newTable("x", header{"OrderID", "CustomerID"}, nil)
	assert.Equal(t, 0, tbl.columnIndex("orderid"))
	assert.Equal(t, 1, tbl.columnIndex("Missing", "CustomerID"))
	assert.Equal(t, -1, tbl.columnIndex("Missing"))
}

func TestValidateColumnNames(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateColumnNames([]string{"A", "B"}))
	assert.ErrorIs(t, validateColumnNames([]string{"A", "a"}), ErrDuplicateColumnName)
}
