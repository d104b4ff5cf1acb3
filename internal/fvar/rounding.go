package fvar

import (
	"fmt"
	"math"
)

// Abs returns |x|. At zero the result is the zero series; a NaN value
// passes x through.
func Abs[T Real[T]](x Series[T]) Series[T] {
	x0 := x.Root()
	switch {
	case x0.IsNaN():
		return x
	case x0.Sign() < 0:
		return x.Neg()
	case x0.Sign() > 0:
		return x
	}
	return zeros(zeroLike(x0), x.Orders())
}

// Ceil, Floor, Round and Trunc are piecewise constant, so every derivative
// of the result is zero.
func Ceil[T Real[T]](x Series[T]) Series[T]  { return lift(x.Root().Ceil(), x.Orders()) }
func Floor[T Real[T]](x Series[T]) Series[T] { return lift(x.Root().Floor(), x.Orders()) }
func Round[T Real[T]](x Series[T]) Series[T] { return lift(x.Root().Round(), x.Orders()) }
func Trunc[T Real[T]](x Series[T]) Series[T] { return lift(x.Root().Trunc(), x.Orders()) }

// Iround rounds the value half away from zero.
func Iround[T Real[T]](x Series[T]) (int, error) {
	v, err := toInt64(x.Root().Round(), math.MinInt, math.MaxInt)
	return int(v), err
}

// Itrunc truncates the value toward zero.
func Itrunc[T Real[T]](x Series[T]) (int, error) {
	v, err := toInt64(x.Root().Trunc(), math.MinInt, math.MaxInt)
	return int(v), err
}

func Lround[T Real[T]](x Series[T]) (int64, error) {
	return toInt64(x.Root().Round(), math.MinInt64, math.MaxInt64)
}

func Llround[T Real[T]](x Series[T]) (int64, error) {
	return Lround(x)
}

func toInt64[T Scalar[T]](v T, lo, hi int64) (int64, error) {
	f := v.Float64()
	if math.IsNaN(f) || f < float64(lo) || f >= float64(hi) {
		return 0, fmt.Errorf("%w: %v", ErrIntegerOverflow, v)
	}
	return int64(f), nil
}

// Fmod returns x with its value replaced by fmod(x0, c). The derivatives
// of x are unchanged.
func Fmod[T Real[T]](x Series[T], c T) Series[T] {
	return x.SetRoot(x.Root().Mod(c))
}

// FmodSeries returns x - y·trunc(x0/y0).
func FmodSeries[T Real[T]](x, y Series[T]) Series[T] {
	x0, y0 := x.Root(), y.Root()
	return x.Sub(y.MulScalar(x0.Quo(y0).Trunc())).SetRoot(x0.Mod(y0))
}

// Frexp splits x into a series with value in [0.5, 1) and a power of two.
func Frexp[T Real[T]](x Series[T]) (Series[T], int) {
	x0 := x.Root()
	_, e := x0.Frexp()
	return x.MulScalar(fromInt(x0, 1).Ldexp(-e)), e
}

// Ldexp returns x·2^e.
func Ldexp[T Real[T]](x Series[T], e int) Series[T] {
	return x.MulScalar(fromInt(x.Root(), 1).Ldexp(e))
}

// Max returns the operand with the larger value, promoted to the common shape.
func Max[T Scalar[T]](a, b Series[T]) Series[T] {
	shape := promote(a, b)
	if a.Less(b) {
		return conform(b, shape, b.zero())
	}
	return conform(a, shape, a.zero())
}

// Min returns the operand with the smaller value, promoted to the common shape.
func Min[T Scalar[T]](a, b Series[T]) Series[T] {
	shape := promote(a, b)
	if b.Less(a) {
		return conform(b, shape, b.zero())
	}
	return conform(a, shape, a.zero())
}
