package fvar

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderOutOfRange indicates a coefficient index above a level's order.
	ErrOrderOutOfRange = errors.New("fvar: index exceeds truncation order")

	// ErrTooManyIndices indicates more indices than the series has levels.
	ErrTooManyIndices = errors.New("fvar: more indices than nesting levels")

	// ErrShapeMismatch indicates coefficients or targets of incompatible shape.
	ErrShapeMismatch = errors.New("fvar: shape mismatch")

	// ErrNegativeOrder indicates a negative truncation order.
	ErrNegativeOrder = errors.New("fvar: negative truncation order")

	// ErrIntegerOverflow indicates a rounded value outside the integer range.
	ErrIntegerOverflow = errors.New("fvar: rounded value overflows integer type")
)

// IndexError reports which level rejected a coefficient index.
type IndexError struct {
	Level   int
	Index   int
	Order   int
	Wrapped error
}

func (e *IndexError) Error() string {
	if errors.Is(e.Wrapped, ErrTooManyIndices) {
		return fmt.Sprintf("%v: index %d at level %d", e.Wrapped, e.Index, e.Level)
	}
	return fmt.Sprintf("%v: index %d at level %d (order %d)", e.Wrapped, e.Index, e.Level, e.Order)
}

func (e *IndexError) Unwrap() error {
	return e.Wrapped
}
