package northwind

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error values for consistency across loading paths
var (
	// ErrEmptyData indicates that a data source contains no records
	ErrEmptyData = errors.New("northwind: empty data source")

	// ErrUnsupportedFormat indicates an unsupported file format
	ErrUnsupportedFormat = errors.New("northwind: unsupported file format")

	// ErrMissingTable indicates a required entity table is absent from the snapshot sources
	ErrMissingTable = errors.New("northwind: required table not found")

	// ErrMissingColumn indicates a required column is absent from an entity table
	ErrMissingColumn = errors.New("northwind: required column not found")

	// ErrDuplicateColumnName is returned when a table contains duplicate column names
	ErrDuplicateColumnName = errors.New("northwind: duplicate column name")

	// ErrInvalidCellValue indicates a cell that cannot be converted to its entity field type
	ErrInvalidCellValue = errors.New("northwind: invalid cell value")
)

// ErrorContext provides context for where a loading error occurred
type ErrorContext struct {
	Operation string
	Source    string
	Table     string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, source string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		Source:    source,
	}
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(table string) *ErrorContext {
	ec.Table = table
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	var parts []string
	parts = append(parts, fmt.Sprintf("northwind: %s failed", ec.Operation))

	if ec.Source != "" {
		parts = append(parts, "source: "+ec.Source)
	}

	if ec.Table != "" {
		parts = append(parts, "table: "+ec.Table)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return errors.New(context)
}
