package fvar

// Exp returns e^x.
func Exp[T Real[T]](x Series[T]) Series[T] {
	d0 := x.Root().Exp()
	return x.ApplyWithHorner(func(int) T { return d0 })
}

// Expm1 returns e^x - 1 with the value computed without cancellation.
func Expm1[T Real[T]](x Series[T]) Series[T] {
	return Exp(x).SetRoot(x.Root().Expm1())
}

// Log returns the natural logarithm of x.
func Log[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	return composeFirst(x, x0.Log(), func(v Series[T]) Series[T] {
		return v.Inverse()
	}, false)
}

// Log1p returns log(1+x) with the value computed without cancellation.
func Log1p[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	return Log(x.AddScalar(fromInt(x0, 1))).SetRoot(x0.Log1p())
}

// composeFirst composes x with a function whose value at x0 is f0 and
// whose derivative, as a series in v around x0, is d1(v). The i-th Taylor
// coefficient is then d1[i-1] / i.
func composeFirst[T Real[T]](x Series[T], f0 T, d1 func(v Series[T]) Series[T], horner bool) Series[T] {
	n := x.OrderSum()
	if n == 0 {
		return lift(f0, x.Orders())
	}
	x0 := x.Root()
	d := d1(Variable(x0, n-1))
	f := func(i int) T {
		if i == 0 {
			return f0
		}
		return coefficient(d, i-1).Quo(fromInt(x0, int64(i)))
	}
	if horner {
		return x.ApplyWithHornerFactorials(f)
	}
	return x.ApplyWithFactorials(f)
}

// coefficient returns the value of the i-th coefficient of a depth-1
// series, or zero past its order.
func coefficient[T Scalar[T]](s Series[T], i int) T {
	if s.c == nil {
		if i == 0 {
			return s.x
		}
		return zeroLike(s.x)
	}
	if i >= len(s.c) {
		return s.zero()
	}
	return s.c[i].Root()
}

// PowConst returns x^y for a scalar exponent y. The derivative chain stops
// once the falling factorial of y reaches zero, so integer powers have
// exactly zero high-order derivatives.
func PowConst[T Real[T]](x Series[T], y T) Series[T] {
	x0 := x.Root()
	n := x.OrderSum()
	d := make([]T, n+1)
	coef := fromInt(x0, 1)
	for i := range d {
		if coef.IsZero() {
			d[i] = zeroLike(x0)
			continue
		}
		e := y.Sub(fromInt(x0, int64(i)))
		d[i] = coef.Mul(x0.Pow(e))
		coef = coef.Mul(e)
	}
	return x.Apply(func(i int) T { return d[i] })
}

// ConstPow returns c^y for a scalar base c.
func ConstPow[T Real[T]](c T, y Series[T]) Series[T] {
	return Exp(y.MulScalar(c.Log()))
}

// Pow returns x^y. A depth-0 operand selects PowConst or ConstPow.
// Otherwise the bivariate Taylor table of (x0+ξ)^(y0+η) is composed with
// both operands.
func Pow[T Real[T]](x, y Series[T]) Series[T] {
	switch {
	case y.Depth() == 0:
		return PowConst(x, y.Root())
	case x.Depth() == 0:
		return ConstPow(x.Root(), y)
	}
	x0, y0 := x.Root(), y.Root()
	shape := promote(x, y)
	n := suffixSum(shape)
	if n == 0 {
		return lift(x0.Pow(y0), shape)
	}

	// (x0+ξ)^(y0+η) = Σ_j η^j/j! (x0+ξ)^y0 log(x0+ξ)^j
	v := Variable(x0, n)
	prod := PowConst(v, y0)
	l := Log(v)
	table := make([][]T, n+1)
	for i := range table {
		table[i] = make([]T, n+1)
	}
	jfact := fromInt(x0, 1)
	for j := 0; j <= n; j++ {
		if j > 0 {
			prod = prod.Mul(l)
			jfact = jfact.Mul(fromInt(x0, int64(j)))
		}
		for i := 0; i+j <= n; i++ {
			table[i][j] = coefficient(prod, i).Quo(jfact)
		}
	}
	return ApplyNWithFactorials([]Series[T]{x, y}, func(idx []int) T {
		return table[idx[0]][idx[1]]
	})
}

// Sqrt returns the square root of x.
func Sqrt[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	return PowConst(x, fromInt(x0, 1).Quo(fromInt(x0, 2)))
}

// Cbrt returns the real cube root of x, defined for negative values too.
func Cbrt[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	third := fromInt(x0, 1).Quo(fromInt(x0, 3))
	if x0.IsZero() {
		return PowConst(x, third)
	}
	n := x.OrderSum()
	d := make([]T, n+1)
	d[0] = x0.Cbrt()
	for i := 1; i <= n; i++ {
		d[i] = d[i-1].Mul(third.Sub(fromInt(x0, int64(i-1)))).Quo(x0)
	}
	return x.Apply(func(i int) T { return d[i] })
}

// Hypot returns sqrt(x² + y²).
func Hypot[T Real[T]](x, y Series[T]) Series[T] {
	return Sqrt(x.Mul(x).Add(y.Mul(y)))
}
