package northwind

import (
	"fmt"
	"path/filepath"
	"strings"
)

// header is a table header.
type header []string

// record is one table row.
type record []string

// table represents one raw entity table parsed from a snapshot source.
type table struct {
	// name is the table name derived from the file path or database table.
	name string
	// header is the column names in source order.
	header header
	// records is the data rows.
	records []record
}

// newTable creates a new table.
func newTable(name string, h header, records []record) *table {
	return &table{
		name:    name,
		header:  h,
		records: records,
	}
}

// columnIndex returns the index of the first column matching any of the
// given names, comparing case-insensitively. Returns -1 when none match.
func (t *table) columnIndex(names ...string) int {
	for i, col := range t.header {
		for _, name := range names {
			if strings.EqualFold(col, name) {
				return i
			}
		}
	}
	return -1
}

// cell returns the value at the given column index, or "" when the row is
// shorter than the header.
func (r record) cell(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// validateColumnNames checks that column names are unique (case-insensitive).
func validateColumnNames(columns []string) error {
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		key := strings.ToLower(col)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnName, col)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// tableFromFilePath derives a table name from a file path by stripping the
// directory, the compression extension, and the format extension.
// "data/order_details.csv.gz" becomes "order_details".
func tableFromFilePath(path string) string {
	name := filepath.Base(path)

	for _, ext := range []string{extGZ, extBZ2, extXZ, extZSTD} {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	for _, ext := range []string{extCSV, extTSV, extXLSX, extParquet} {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}

	return name
}

// normalizeTableName maps a raw table name onto its entity key: lowercase
// with separators removed, so "Order_Details", "order-details", and
// "OrderDetails" all resolve to "orderdetails".
func normalizeTableName(name string) string {
	name = strings.ToLower(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '.':
			return -1
		}
		return r
	}, name)
}
