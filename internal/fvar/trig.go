package fvar

func Sin[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	s, c := x0.Sin(), x0.Cos()
	d := [4]T{s, c, s.Neg(), c.Neg()}
	return x.ApplyWithHorner(func(i int) T { return d[i%4] })
}

func Cos[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	s, c := x0.Sin(), x0.Cos()
	d := [4]T{c, s.Neg(), c.Neg(), s}
	return x.ApplyWithHorner(func(i int) T { return d[i%4] })
}

func Tan[T Real[T]](x Series[T]) Series[T] {
	return Sin(x).Div(Cos(x))
}

func Asin[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	return composeFirst(x, x0.Asin(), func(v Series[T]) Series[T] {
		one := fromInt(x0, 1)
		return Sqrt(v.Mul(v).ScalarSub(one)).Inverse()
	}, false)
}

func Acos[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	return composeFirst(x, x0.Acos(), func(v Series[T]) Series[T] {
		one := fromInt(x0, 1)
		return Sqrt(v.Mul(v).ScalarSub(one)).Inverse().Neg()
	}, false)
}

func Atan[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	return composeFirst(x, x0.Atan(), func(v Series[T]) Series[T] {
		return v.Mul(v).AddScalar(fromInt(x0, 1)).Inverse()
	}, true)
}

// Atan2 returns the angle of the point (x, y), differentiated in both
// arguments. The partials ∂y = x/(x²+y²) and ∂x = -y/(x²+y²) are expanded
// one order lower and integrated into a bivariate Taylor table.
func Atan2[T Real[T]](y, x Series[T]) Series[T] {
	y0, x0 := y.Root(), x.Root()
	value := y0.Atan2(x0)
	if y.Depth() == 0 && x.Depth() == 0 {
		return Lift(value)
	}
	shape := promote(y, x)
	n := suffixSum(shape)
	if n == 0 {
		return lift(value, shape)
	}

	// Coefficients of ξ^j, the pure x direction.
	xv := Variable(x0, n-1)
	dx := xv.Mul(xv).AddScalar(y0.Mul(y0)).ScalarDiv(y0.Neg())

	// Coefficients of η^(i-1) ξ^j of the y partial, y outermost.
	yv := Variable(y0, n-1)
	xv2 := Variable(x0, 0, n-1)
	dy := xv2.Div(xv2.Mul(xv2).Add(yv.Mul(yv)))

	return ApplyNWithFactorials([]Series[T]{y, x}, func(idx []int) T {
		i, j := idx[0], idx[1]
		switch {
		case i == 0 && j == 0:
			return value
		case i == 0:
			return coefficient(dx, j-1).Quo(fromInt(x0, int64(j)))
		}
		c, err := dy.CoefficientAt(i-1, j)
		if err != nil {
			return zeroLike(x0)
		}
		return c.Root().Quo(fromInt(x0, int64(i)))
	})
}
