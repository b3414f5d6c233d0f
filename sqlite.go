package northwind

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// sqliteDriverName is the driver name registered by modernc.org/sqlite.
const sqliteDriverName = "sqlite"

// loadDatabaseTables reads every user table of a SQLite database file into
// raw tables. The database is a snapshot source only; it is opened
// read-only and never modified.
func loadDatabaseTables(ctx context.Context, path string) ([]*table, error) {
	db, err := sql.Open(sqliteDriverName, "file:"+path+"?mode=ro")
	if err != nil {
		return nil, NewErrorContext("open database", path).Error(err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, NewErrorContext("open database", path).Error(err)
	}

	names, err := databaseTableNames(ctx, db)
	if err != nil {
		return nil, NewErrorContext("list tables", path).Error(err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, path)
	}

	tables := make([]*table, 0, len(names))
	for _, name := range names {
		t, err := readDatabaseTable(ctx, db, name)
		if err != nil {
			return nil, NewErrorContext("read table", path).WithTable(name).Error(err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// databaseTableNames lists user tables, skipping SQLite internals.
func databaseTableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// readDatabaseTable reads one table into its raw string form, matching the
// shape produced by the file parsers.
func readDatabaseTable(ctx context.Context, db *sql.DB, name string) (*table, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %q`, name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if err := validateColumnNames(columns); err != nil {
		return nil, err
	}

	var records []record
	for rows.Next() {
		values := make([]any, len(columns))
		for i := range values {
			values[i] = new(sql.NullString)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, err
		}

		rec := make(record, len(columns))
		for i, v := range values {
			ns := v.(*sql.NullString)
			if ns.Valid {
				rec[i] = ns.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return newTable(name, header(columns), records), nil
}
