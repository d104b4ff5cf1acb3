package fvar

func Sinh[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	d := [2]T{x0.Sinh(), x0.Cosh()}
	return x.ApplyWithHorner(func(i int) T { return d[i%2] })
}

func Cosh[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	d := [2]T{x0.Cosh(), x0.Sinh()}
	return x.ApplyWithHorner(func(i int) T { return d[i%2] })
}

// Tanh uses the exponential of -2|x| so large arguments do not overflow.
func Tanh[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	one := fromInt(x0, 1)
	two := fromInt(x0, 2)
	var t Series[T]
	if x0.Sign() > 0 {
		e := Exp(x.MulScalar(two.Neg()))
		t = e.ScalarSub(one).Div(e.AddScalar(one))
	} else {
		e := Exp(x.MulScalar(two))
		t = e.SubScalar(one).Div(e.AddScalar(one))
	}
	return t.SetRoot(x0.Tanh())
}

func Asinh[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	return composeFirst(x, x0.Asinh(), func(v Series[T]) Series[T] {
		return Sqrt(v.Mul(v).AddScalar(fromInt(x0, 1))).Inverse()
	}, false)
}

func Acosh[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	return composeFirst(x, x0.Acosh(), func(v Series[T]) Series[T] {
		return Sqrt(v.Mul(v).SubScalar(fromInt(x0, 1))).Inverse()
	}, false)
}

func Atanh[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	return composeFirst(x, x0.Atanh(), func(v Series[T]) Series[T] {
		return v.Mul(v).ScalarSub(fromInt(x0, 1)).Inverse()
	}, false)
}
