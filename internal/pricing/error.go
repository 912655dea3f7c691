package pricing

import "errors"

var (
	ErrNegativeQuantity     = errors.New("quantity must not be negative")
	ErrNoItems              = errors.New("select at least one box")
	ErrWrappingExceedsBoxes = errors.New("wrapping quantity cannot exceed the number of boxes")
)
