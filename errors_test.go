package northwind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorContext(t *testing.T) {
	t.Parallel()

	t.Run("format with source and table", func(t *testing.T) {
		t.Parallel()

		err := NewErrorContext("decode", "orders.csv").WithTable("orders").Error(ErrMissingColumn)
		assert.Equal(t,
			"northwind: decode failed, source: orders.csv, table: orders: northwind: required column not found",
			err.Error())
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("format without base error", func(t *testing.T) {
		t.Parallel()

		err := NewErrorContext("parse", "data.csv").Error(nil)
		assert.Equal(t, "northwind: parse failed, source: data.csv", err.Error())
	})

	t.Run("wrapped errors stay matchable", func(t *testing.T) {
		t.Parallel()

		base := errors.New("boom")
		err := NewErrorContext("export", "out").Error(base)
		assert.ErrorIs(t, err, base)
	})
}
