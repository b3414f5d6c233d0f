package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order date patterns accepted by ParseOrderDate. Northwind exports ship
// dates in ISO 8601 or US notation depending on the tool that produced them.
var orderDatePatterns = []struct {
	pattern *regexp.Regexp
	formats []string
}{
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`),
		[]string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04:05.000"},
	},
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02 15:04:05", "2006-01-02 15:04:05.000"},
	},
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		[]string{"2006-01-02"},
	},
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}( \d{1,2}:\d{2}:\d{2})?$`),
		[]string{"1/2/2006", "01/02/2006", "1/2/2006 15:04:05"},
	},
}

// ParseOrderDate parses an order date in any of the supported formats.
func ParseOrderDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidOrderDate)
	}

	for _, dp := range orderDatePatterns {
		if !dp.pattern.MatchString(value) {
			continue
		}
		for _, format := range dp.formats {
			if t, err := time.Parse(format, value); err == nil {
				return t, nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidOrderDate, value)
}

// FormatMoney renders a monetary amount with exactly two decimal places.
// This is the only place currency values are rounded.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Percent returns part/whole*100 as an exact decimal. The result is
// invalid when the denominator is zero, so a zero base never becomes an
// infinite or NaN value.
func Percent(part, whole decimal.Decimal) decimal.NullDecimal {
	if whole.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: part.Div(whole).Mul(decimal.NewFromInt(100)),
		Valid:   true,
	}
}
