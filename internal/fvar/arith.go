package fvar

import "slices"

func (s Series[T]) zero() T {
	return zeroLike(s.Root())
}

// Add returns s + o at the promoted shape.
func (s Series[T]) Add(o Series[T]) Series[T] {
	return add(s, o, promote(s, o), s.zero())
}

// Sub returns s - o at the promoted shape.
func (s Series[T]) Sub(o Series[T]) Series[T] {
	return add(s, neg(o), promote(s, o), s.zero())
}

// Mul returns the product of s and o truncated at the promoted shape.
func (s Series[T]) Mul(o Series[T]) Series[T] {
	return mul(s, o, promote(s, o), s.zero())
}

// Div returns s / o truncated at the promoted shape.
func (s Series[T]) Div(o Series[T]) Series[T] {
	return div(s, o, promote(s, o), s.zero())
}

func (s Series[T]) Neg() Series[T] {
	return neg(s)
}

func (s Series[T]) AddScalar(v T) Series[T] { return addRoot(s, v) }
func (s Series[T]) SubScalar(v T) Series[T] { return addRoot(s, v.Neg()) }
func (s Series[T]) MulScalar(v T) Series[T] { return scale(s, v, true) }
func (s Series[T]) DivScalar(v T) Series[T] { return quoAll(s, v) }

// ScalarSub returns v - s.
func (s Series[T]) ScalarSub(v T) Series[T] { return addRoot(neg(s), v) }

// ScalarDiv returns v / s.
func (s Series[T]) ScalarDiv(v T) Series[T] {
	return div(Lift(v), s, s.Orders(), s.zero())
}

// Inverse returns 1/s. When the value is exactly zero the coefficients are
// built from the derivatives of 1/x, giving signed infinities instead of NaN.
func (s Series[T]) Inverse() Series[T] {
	x0 := s.Root()
	if x0.IsZero() {
		return s.inverseApply()
	}
	return s.ScalarDiv(fromInt(x0, 1))
}

func (s Series[T]) inverseApply() Series[T] {
	x0 := s.Root()
	n := s.OrderSum()
	d := make([]T, n+1)
	d[0] = fromInt(x0, 1).Quo(x0)
	for i := 1; i <= n; i++ {
		d[i] = d[i-1].Neg().Mul(fromInt(x0, int64(i))).Quo(x0)
	}
	return s.Apply(func(i int) T { return d[i] })
}

// Equal compares values at the expansion point. Any comparison involving a
// NaN value is false.
func (s Series[T]) Equal(o Series[T]) bool {
	a, b := s.Root(), o.Root()
	return !a.IsNaN() && !b.IsNaN() && a.Cmp(b) == 0
}

func (s Series[T]) NotEqual(o Series[T]) bool { return !s.Equal(o) }

func (s Series[T]) Less(o Series[T]) bool         { return s.cmpRoot(o, func(c int) bool { return c < 0 }) }
func (s Series[T]) LessEqual(o Series[T]) bool    { return s.cmpRoot(o, func(c int) bool { return c <= 0 }) }
func (s Series[T]) Greater(o Series[T]) bool      { return s.cmpRoot(o, func(c int) bool { return c > 0 }) }
func (s Series[T]) GreaterEqual(o Series[T]) bool { return s.cmpRoot(o, func(c int) bool { return c >= 0 }) }

// Cmp compares values at the expansion point. It returns 0 when either
// value is NaN.
func (s Series[T]) Cmp(o Series[T]) int {
	a, b := s.Root(), o.Root()
	if a.IsNaN() || b.IsNaN() {
		return 0
	}
	return a.Cmp(b)
}

func (s Series[T]) cmpRoot(o Series[T], ok func(int) bool) bool {
	a, b := s.Root(), o.Root()
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	return ok(a.Cmp(b))
}

func neg[T Scalar[T]](s Series[T]) Series[T] {
	if s.c == nil {
		return Series[T]{x: s.x.Neg()}
	}
	c := make([]Series[T], len(s.c))
	for i := range c {
		c[i] = neg(s.c[i])
	}
	return Series[T]{c: c}
}

func addRoot[T Scalar[T]](s Series[T], v T) Series[T] {
	if s.c == nil {
		return Series[T]{x: s.x.Add(v)}
	}
	c := slices.Clone(s.c)
	c[0] = addRoot(c[0], v)
	return Series[T]{c: c}
}

// scale multiplies every leaf by v. Below the root, zero leaves are left
// alone so structural zeros survive an infinite v.
func scale[T Scalar[T]](s Series[T], v T, isRoot bool) Series[T] {
	if s.c == nil {
		if isRoot || !s.x.IsZero() {
			return Series[T]{x: s.x.Mul(v)}
		}
		return s
	}
	c := make([]Series[T], len(s.c))
	for i := range c {
		c[i] = scale(s.c[i], v, isRoot && i == 0)
	}
	return Series[T]{c: c}
}

func quoAll[T Scalar[T]](s Series[T], v T) Series[T] {
	if s.c == nil {
		return Series[T]{x: s.x.Quo(v)}
	}
	c := make([]Series[T], len(s.c))
	for i := range c {
		c[i] = quoAll(s.c[i], v)
	}
	return Series[T]{c: c}
}

func add[T Scalar[T]](a, b Series[T], shape []int, z T) Series[T] {
	switch {
	case a.c == nil && b.c == nil:
		return lift(a.x.Add(b.x), shape)
	case a.c == nil:
		return addRoot(conform(b, shape, z), a.x)
	case b.c == nil:
		return addRoot(conform(a, shape, z), b.x)
	}
	c := make([]Series[T], shape[0]+1)
	inner := shape[1:]
	for i := range c {
		switch {
		case i < len(a.c) && i < len(b.c):
			c[i] = add(a.c[i], b.c[i], inner, z)
		case i < len(a.c):
			c[i] = conform(a.c[i], inner, z)
		case i < len(b.c):
			c[i] = conform(b.c[i], inner, z)
		default:
			c[i] = zeros(z, inner)
		}
	}
	return Series[T]{c: c}
}

// mul is the truncated Cauchy product. Each operand keeps its own order;
// the loop bounds skip coefficients it does not have.
func mul[T Scalar[T]](a, b Series[T], shape []int, z T) Series[T] {
	switch {
	case a.c == nil && b.c == nil:
		return lift(a.x.Mul(b.x), shape)
	case a.c == nil:
		return scale(conform(b, shape, z), a.x, true)
	case b.c == nil:
		return scale(conform(a, shape, z), b.x, true)
	}
	oa, ob := len(a.c)-1, len(b.c)-1
	c := make([]Series[T], shape[0]+1)
	inner := shape[1:]
	for i := range c {
		lo, hi := max(0, i-ob), min(i, oa)
		if lo > hi {
			c[i] = zeros(z, inner)
			continue
		}
		acc := mul(a.c[lo], b.c[i-lo], inner, z)
		for k := lo + 1; k <= hi; k++ {
			acc = add(acc, mul(a.c[k], b.c[i-k], inner, z), inner, z)
		}
		c[i] = acc
	}
	return Series[T]{c: c}
}

// div solves q·b = a level by level: q0 = a0/b0 and
// qi = (ai - Σ_{m=1..i} bm·q(i-m)) / b0.
func div[T Scalar[T]](a, b Series[T], shape []int, z T) Series[T] {
	switch {
	case a.c == nil && b.c == nil:
		return lift(a.x.Quo(b.x), shape)
	case b.c == nil:
		return quoAll(conform(a, shape, z), b.x)
	}
	ob := len(b.c) - 1
	b0 := b.c[0]
	c := make([]Series[T], shape[0]+1)
	inner := shape[1:]
	for i := range c {
		var (
			sum    Series[T]
			hasSum bool
		)
		for m := 1; m <= min(i, ob); m++ {
			t := mul(b.c[m], c[i-m], inner, z)
			if hasSum {
				sum = add(sum, t, inner, z)
			} else {
				sum, hasSum = t, true
			}
		}

		var num Series[T]
		switch {
		case a.c == nil && i == 0:
			num = Series[T]{x: a.x}
		case a.c != nil && i < len(a.c) && hasSum:
			num = add(a.c[i], neg(sum), inner, z)
		case a.c != nil && i < len(a.c):
			num = a.c[i]
		case hasSum:
			num = neg(sum)
		default:
			c[i] = zeros(z, inner)
			continue
		}
		c[i] = div(num, b0, inner, z)
	}
	return Series[T]{c: c}
}
