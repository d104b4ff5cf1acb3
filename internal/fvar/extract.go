package fvar

import (
	"github.com/san-kum/autodiff/internal/combin"
)

// Entry is one mixed partial derivative.
type Entry[T Scalar[T]] struct {
	Index []int
	Value T
}

// CoefficientAt descends one level per index and returns the Taylor
// coefficient found there. With fewer indices than levels the result is
// still nested.
func (s Series[T]) CoefficientAt(idx ...int) (Series[T], error) {
	cur := s
	for level, i := range idx {
		if cur.c == nil {
			return Series[T]{}, &IndexError{Level: level, Index: i, Wrapped: ErrTooManyIndices}
		}
		if i < 0 || i >= len(cur.c) {
			return Series[T]{}, &IndexError{Level: level, Index: i, Order: len(cur.c) - 1, Wrapped: ErrOrderOutOfRange}
		}
		cur = cur.c[i]
	}
	return cur, nil
}

// Derivative returns the coefficient at idx multiplied by Π idx[k]!.
func (s Series[T]) Derivative(idx ...int) (Series[T], error) {
	c, err := s.CoefficientAt(idx...)
	if err != nil {
		return Series[T]{}, err
	}
	return c.MulScalar(c.Root().FromInt(combin.FactorialProduct(idx))), nil
}

// DerivativeAt returns the value of the derivative at idx.
func (s Series[T]) DerivativeAt(idx ...int) (T, error) {
	d, err := s.Derivative(idx...)
	if err != nil {
		var z T
		return z, err
	}
	return d.Root(), nil
}

// MustDerivative is DerivativeAt for indices known to be in range.
func (s Series[T]) MustDerivative(idx ...int) T {
	v, err := s.DerivativeAt(idx...)
	if err != nil {
		panic(err)
	}
	return v
}

// Derivatives lists every mixed partial derivative of full depth, last
// index fastest.
func (s Series[T]) Derivatives() []Entry[T] {
	all := combin.Indices(s.Orders())
	out := make([]Entry[T], 0, len(all))
	for _, idx := range all {
		c, _ := s.CoefficientAt(idx...)
		f := c.Root().FromInt(combin.FactorialProduct(idx))
		out = append(out, Entry[T]{Index: idx, Value: c.Root().Mul(f)})
	}
	return out
}
