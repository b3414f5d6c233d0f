package northwind

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createFixtureDatabase writes a SQLite database holding the same snapshot
// as testdata/northwind.
func createFixtureDatabase(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "northwind.db")
	db, err := sql.Open(sqliteDriverName, path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE customers (CustomerID INTEGER, CustomerName TEXT, Country TEXT)`,
		`INSERT INTO customers VALUES
			(1, 'Alfreds Futterkiste', 'Germany'),
			(2, 'Ana Trujillo Emparedados', 'Mexico'),
			(3, 'Antonio Moreno Taqueria', 'Mexico')`,
		`CREATE TABLE employees (EmployeeID INTEGER, FirstName TEXT, LastName TEXT)`,
		`INSERT INTO employees VALUES (1, 'Nancy', 'Davolio'), (2, 'Andrew', 'Fuller')`,
		`CREATE TABLE suppliers (SupplierID INTEGER, SupplierName TEXT)`,
		`INSERT INTO suppliers VALUES (1, 'Exotic Liquids'), (2, 'Tokyo Traders')`,
		`CREATE TABLE categories (CategoryID INTEGER, CategoryName TEXT)`,
		`INSERT INTO categories VALUES (1, 'Beverages'), (2, 'Condiments')`,
		`CREATE TABLE shippers (ShipperID INTEGER, ShipperName TEXT)`,
		`INSERT INTO shippers VALUES (1, 'Speedy Express'), (2, 'United Package')`,
		`CREATE TABLE products (ProductID INTEGER, ProductName TEXT, Price TEXT, SupplierID INTEGER, CategoryID INTEGER)`,
		`INSERT INTO products VALUES
			(1, 'Chai', '10.00', 1, 1),
			(2, 'Chang', '5.00', 1, 2),
			(3, 'Aniseed Syrup', '20.00', 2, 1),
			(4, 'Ikura', '8.00', 2, 2)`,
		`CREATE TABLE orders (OrderID INTEGER, CustomerID INTEGER, EmployeeID INTEGER, ShipperID INTEGER, OrderDate TEXT)`,
		`INSERT INTO orders VALUES
			(1, 1, 1, 1, '2023-11-15'),
			(2, 2, 2, 2, '2023-12-05'),
			(3, 1, 1, 1, '2024-01-10'),
			(4, 3, 2, 1, '2024-01-20'),
			(5, 2, 1, 2, '2024-02-14')`,
		`CREATE TABLE order_details (OrderDetailID INTEGER, OrderID INTEGER, ProductID INTEGER, Quantity INTEGER)`,
		`INSERT INTO order_details VALUES
			(1, 1, 1, 2), (2, 1, 2, 1), (3, 2, 3, 1), (4, 3, 1, 3),
			(5, 3, 4, 2), (6, 4, 3, 2), (7, 5, 2, 4), (8, 5, 4, 1)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestLoadDatabaseTables(t *testing.T) {
	t.Parallel()

	path := createFixtureDatabase(t)
	tables, err := loadDatabaseTables(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, tables, 8)

	byName := make(map[string]*table)
	for _, tbl := range tables {
		byName[tbl.name] = tbl
	}

	orders, ok := byName["orders"]
	require.True(t, ok)
	assert.Equal(t, header{"OrderID", "CustomerID", "EmployeeID", "ShipperID", "OrderDate"}, orders.header)
	require.Len(t, orders.records, 5)
	assert.Equal(t, record{"1", "1", "1", "1", "2023-11-15"}, orders.records[0])

	products, ok := byName["products"]
	require.True(t, ok)
	assert.Equal(t, "10.00", products.records[0].cell(products.columnIndex("Price")))
}

func TestLoadDatabaseTables_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := loadDatabaseTables(context.Background(), filepath.Join(t.TempDir(), "missing.db"))
		assert.Error(t, err)
	})

	t.Run("empty database", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.db")
		db, err := sql.Open(sqliteDriverName, path)
		require.NoError(t, err)
		// Force file creation with a no-op table.
		_, err = db.Exec(`CREATE TABLE t (x INTEGER)`)
		require.NoError(t, err)
		_, err = db.Exec(`DROP TABLE t`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		_, err = loadDatabaseTables(context.Background(), path)
		assert.ErrorIs(t, err, ErrEmptyData)
	})
}

func TestPipelineBuilder_AddDatabase(t *testing.T) {
	t.Parallel()

	path := createFixtureDatabase(t)

	builder, err := NewBuilder().AddDatabase(path).Build(context.Background())
	require.NoError(t, err)

	p, err := builder.Load(context.Background())
	require.NoError(t, err)

	// The database snapshot matches the CSV fixture report for report.
	want := NewPipeline(newTestSnapshot()).Reports()
	assert.Equal(t, want, p.Reports())
}

func TestPipelineBuilder_AddDatabase_Missing(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder().AddDatabase("no_such.db").Build(context.Background())
	assert.Error(t, err)
}
