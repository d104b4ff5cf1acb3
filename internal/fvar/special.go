package fvar

import (
	"math/big"

	"github.com/san-kum/autodiff/internal/combin"
)

func Erf[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	return composeFirst(x, x0.Erf(), func(v Series[T]) Series[T] {
		return gaussian(v, false)
	}, true)
}

func Erfc[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	return composeFirst(x, x0.Erfc(), func(v Series[T]) Series[T] {
		return gaussian(v, true)
	}, true)
}

// gaussian returns ±2/√π·exp(-v²), the derivative of erf or erfc.
func gaussian[T Real[T]](v Series[T], negate bool) Series[T] {
	x0 := v.Root()
	k := fromInt(x0, 2).Quo(x0.Pi().Sqrt())
	if negate {
		k = k.Neg()
	}
	return Exp(v.Mul(v).Neg()).MulScalar(k)
}

// LambertW0 returns the principal branch of the Lambert W function. The
// n-th derivative is e^(-nW) p_n(W) / (1+W)^(2n-1) with p_1 = 1 and
// p_(n+1)(W) = (1+W) p_n'(W) - (nW + 3n - 1) p_n(W).
func LambertW0[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	n := x.OrderSum()
	w := x0.LambertW0()
	d := make([]T, n+1)
	d[0] = w
	if n > 0 {
		one := fromInt(x0, 1)
		ew := w.Neg().Exp()
		wp1 := w.Add(one)
		p := []*big.Int{big.NewInt(1)}
		enw := one
		for k := 1; k <= n; k++ {
			enw = enw.Mul(ew)
			den := wp1.Pow(fromInt(x0, int64(2*k-1)))
			d[k] = enw.Mul(evalPoly(p, w)).Quo(den)
			p = nextLambertPoly(p, k)
		}
	}
	return x.Apply(func(i int) T { return d[i] })
}

func evalPoly[T Scalar[T]](p []*big.Int, w T) T {
	acc := w.FromInt(p[len(p)-1])
	for i := len(p) - 2; i >= 0; i-- {
		acc = acc.Mul(w).Add(w.FromInt(p[i]))
	}
	return acc
}

// nextLambertPoly returns (1+W) p' - (kW + 3k - 1) p.
func nextLambertPoly(p []*big.Int, k int) []*big.Int {
	out := make([]*big.Int, len(p)+1)
	for i := range out {
		out[i] = new(big.Int)
	}
	t := new(big.Int)
	for i := 1; i < len(p); i++ {
		// p' has coefficient i·p[i] at degree i-1.
		t.Mul(big.NewInt(int64(i)), p[i])
		out[i-1].Add(out[i-1], t)
		out[i].Add(out[i], t)
	}
	c0 := big.NewInt(int64(3*k - 1))
	c1 := big.NewInt(int64(k))
	for i, a := range p {
		out[i].Sub(out[i], t.Mul(c0, a))
		out[i+1].Sub(out[i+1], t.Mul(c1, a))
	}
	return out
}

// Sinc returns sin(x)/x, continuous at zero.
func Sinc[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	if !x0.IsZero() {
		return Sin(x).Div(x)
	}
	one := fromInt(x0, 1)
	return x.ApplyWithFactorials(func(i int) T {
		if i%2 == 1 {
			return zeroLike(x0)
		}
		v := one.Quo(x0.FromInt(combin.Factorial(i + 1)))
		if (i/2)%2 == 1 {
			v = v.Neg()
		}
		return v
	})
}
