package fvar

import (
	"fmt"
	"math/big"
	"slices"
)

// Series is a nested truncated Taylor series.
//
// A depth-0 series holds one scalar. A series of depth k holds Order()+1
// coefficients, each a series of depth k-1 and all of one shape;
// coefficient i stores the i-th derivative in the outermost variable
// divided by i!.
//
// The zero value is a depth-0 series holding the zero scalar.
type Series[T Scalar[T]] struct {
	c []Series[T]
	x T
}

// Lift returns the depth-0 series holding x. It acts as a constant of any
// shape when combined with other series.
func Lift[T Scalar[T]](x T) Series[T] {
	return Series[T]{x: x}
}

// Variable returns the independent variable with value x, truncated at the
// given orders from the outermost level in. The unit seed sits at the
// innermost level, so Variable(x, 0, 0, 3) is the third of three
// variables. If the innermost order is 0 the result is a constant.
//
// Variable panics if any order is negative.
func Variable[T Scalar[T]](x T, orders ...int) Series[T] {
	mustOrders(orders)
	return variable(x, orders)
}

// Constant returns x with every other coefficient zero.
func Constant[T Scalar[T]](x T, orders ...int) Series[T] {
	mustOrders(orders)
	return lift(x, orders)
}

// Zero returns the all-zero series of the given shape.
func Zero[T Scalar[T]](orders ...int) Series[T] {
	mustOrders(orders)
	var z T
	return zeros(z.FromInt(new(big.Int)), orders)
}

// FromCoefficients builds one level from coefficient series that must all
// share one shape.
func FromCoefficients[T Scalar[T]](cs ...Series[T]) (Series[T], error) {
	if len(cs) == 0 {
		return Series[T]{}, fmt.Errorf("%w: no coefficients", ErrShapeMismatch)
	}
	shape := cs[0].Orders()
	for i, c := range cs[1:] {
		if o := c.Orders(); !slices.Equal(o, shape) {
			return Series[T]{}, fmt.Errorf("%w: coefficient %d has orders %v, want %v", ErrShapeMismatch, i+1, o, shape)
		}
	}
	return Series[T]{c: slices.Clone(cs)}, nil
}

func mustOrders(orders []int) {
	for _, o := range orders {
		if o < 0 {
			panic(fmt.Errorf("%w: %v", ErrNegativeOrder, orders))
		}
	}
}

func zeroLike[T Scalar[T]](x T) T {
	return x.FromInt(new(big.Int))
}

func lift[T Scalar[T]](x T, shape []int) Series[T] {
	if len(shape) == 0 {
		return Series[T]{x: x}
	}
	c := make([]Series[T], shape[0]+1)
	c[0] = lift(x, shape[1:])
	if len(c) > 1 {
		z := zeros(zeroLike(x), shape[1:])
		for i := 1; i < len(c); i++ {
			c[i] = z
		}
	}
	return Series[T]{c: c}
}

func zeros[T Scalar[T]](z T, shape []int) Series[T] {
	if len(shape) == 0 {
		return Series[T]{x: z}
	}
	c := make([]Series[T], shape[0]+1)
	inner := zeros(z, shape[1:])
	for i := range c {
		c[i] = inner
	}
	return Series[T]{c: c}
}

func variable[T Scalar[T]](x T, shape []int) Series[T] {
	switch len(shape) {
	case 0:
		return Series[T]{x: x}
	case 1:
		s := lift(x, shape)
		if shape[0] > 0 {
			s.c[1] = Series[T]{x: fromInt(x, 1)}
		}
		return s
	}
	s := lift(x, shape)
	s.c[0] = variable(x, shape[1:])
	return s
}

// Depth returns the number of nesting levels.
func (s Series[T]) Depth() int {
	d := 0
	for s.c != nil {
		d++
		s = s.c[0]
	}
	return d
}

// Orders returns the truncation order of every level, outermost first.
func (s Series[T]) Orders() []int {
	var o []int
	for s.c != nil {
		o = append(o, len(s.c)-1)
		s = s.c[0]
	}
	return o
}

// Order returns the truncation order of the outermost level, 0 at depth 0.
func (s Series[T]) Order() int {
	if s.c == nil {
		return 0
	}
	return len(s.c) - 1
}

// OrderSum returns the total degree, the sum of the orders of all levels.
func (s Series[T]) OrderSum() int {
	n := 0
	for s.c != nil {
		n += len(s.c) - 1
		s = s.c[0]
	}
	return n
}

// Root returns the value of the function at the expansion point.
func (s Series[T]) Root() T {
	for s.c != nil {
		s = s.c[0]
	}
	return s.x
}

// SetRoot returns a copy of s with its value replaced by v.
func (s Series[T]) SetRoot(v T) Series[T] {
	if s.c == nil {
		return Series[T]{x: v}
	}
	c := slices.Clone(s.c)
	c[0] = c[0].SetRoot(v)
	return Series[T]{c: c}
}

// Reshape truncates or zero-pads s to the given orders. The depth may grow
// but not shrink.
func (s Series[T]) Reshape(orders ...int) (Series[T], error) {
	mustOrders(orders)
	if d := s.Depth(); d > len(orders) {
		return Series[T]{}, fmt.Errorf("%w: cannot reshape depth %d to %v", ErrShapeMismatch, d, orders)
	}
	return conform(s, orders, zeroLike(s.Root())), nil
}

// MaxShape returns the per-level maximum of two shapes, aligned at the
// outermost level. Levels missing from the shorter shape count as order 0.
func MaxShape(a, b []int) []int {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := slices.Clone(a)
	for i, o := range b {
		out[i] = max(out[i], o)
	}
	return out
}

// conform truncates or zero-pads s to shape. A series shallower than shape
// becomes a constant in the missing inner levels.
func conform[T Scalar[T]](s Series[T], shape []int, z T) Series[T] {
	if s.c == nil {
		return lift(s.x, shape)
	}
	if slices.Equal(s.Orders(), shape) {
		return s
	}
	if len(shape) == 0 {
		// Only reachable through a bad internal shape.
		panic(fmt.Sprintf("fvar: cannot conform depth %d to a scalar", s.Depth()))
	}
	c := make([]Series[T], shape[0]+1)
	inner := shape[1:]
	for i := range c {
		if i < len(s.c) {
			c[i] = conform(s.c[i], inner, z)
		} else {
			c[i] = zeros(z, inner)
		}
	}
	return Series[T]{c: c}
}

func promote[T Scalar[T]](a, b Series[T]) []int {
	return MaxShape(a.Orders(), b.Orders())
}
