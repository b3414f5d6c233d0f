package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "ISO date",
			input: "1996-07-04",
			want:  time.Date(1996, time.July, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "ISO datetime with T",
			input: "1996-07-04T10:30:00",
			want:  time.Date(1996, time.July, 4, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "ISO datetime with space",
			input: "1996-07-04 10:30:00",
			want:  time.Date(1996, time.July, 4, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "US date",
			input: "7/4/1996",
			want:  time.Date(1996, time.July, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339",
			input: "1996-07-04T10:30:00Z",
			want:  time.Date(1996, time.July, 4, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace",
			input: "  1996-07-04  ",
			want:  time.Date(1996, time.July, 4, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseOrderDate(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"", "not a date", "2024-13-40", "99/99/2024"} {
			_, err := ParseOrderDate(input)
			assert.ErrorIs(t, err, ErrInvalidOrderDate, "input %q", input)
		}
	})
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10.00", FormatMoney(decimal.NewFromInt(10)))
	assert.Equal(t, "10.57", FormatMoney(decimal.RequireFromString("10.565")))
	assert.Equal(t, "0.00", FormatMoney(decimal.Zero))
	assert.Equal(t, "-3.50", FormatMoney(decimal.RequireFromString("-3.5")))
}

func TestPercent(t *testing.T) {
	t.Parallel()

	t.Run("nonzero denominator", func(t *testing.T) {
		t.Parallel()

		got := Percent(decimal.NewFromInt(50), decimal.NewFromInt(75))
		require.True(t, got.Valid)
		assert.Equal(t, "66.67", got.Decimal.StringFixed(2))
	})

	t.Run("zero denominator yields undefined", func(t *testing.T) {
		t.Parallel()

		got := Percent(decimal.NewFromInt(1), decimal.Zero)
		assert.False(t, got.Valid)
	})

	t.Run("zero numerator", func(t *testing.T) {
		t.Parallel()

		got := Percent(decimal.Zero, decimal.NewFromInt(5))
		require.True(t, got.Valid)
		assert.Equal(t, "0.00", got.Decimal.StringFixed(2))
	})
}
