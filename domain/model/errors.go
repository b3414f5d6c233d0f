package model

import "errors"

// ErrInvalidOrderDate is returned when an order date cannot be parsed.
var ErrInvalidOrderDate = errors.New("invalid order date")
