package fvar

import (
	"fmt"
	"math/big"
)

// Scalar is the coefficient arithmetic the series core needs.
//
// Cmp is meaningless when either side is NaN; series comparisons check
// IsNaN first. FromInt and FromFloat64 return constants of the receiver's
// kind and precision.
type Scalar[T any] interface {
	fmt.Stringer
	Add(T) T
	Sub(T) T
	Mul(T) T
	Quo(T) T
	Neg() T
	Cmp(T) int
	Sign() int
	IsZero() bool
	IsNaN() bool
	IsInf() bool
	Float64() float64
	FromInt(*big.Int) T
	FromFloat64(float64) T
}

// Real adds the elementary functions used by the function library.
type Real[T any] interface {
	Scalar[T]
	Exp() T
	Expm1() T
	Log() T
	Log1p() T
	Sqrt() T
	Cbrt() T
	Pow(T) T
	Sin() T
	Cos() T
	Tan() T
	Asin() T
	Acos() T
	Atan() T
	// Atan2 returns atan2(receiver, x).
	Atan2(x T) T
	Sinh() T
	Cosh() T
	Tanh() T
	Asinh() T
	Acosh() T
	Atanh() T
	Erf() T
	Erfc() T
	LambertW0() T
	Abs() T
	Floor() T
	Ceil() T
	Round() T
	Trunc() T
	Mod(T) T
	Frexp() (T, int)
	Ldexp(int) T
	Pi() T
}

func fromInt[T Scalar[T]](like T, n int64) T {
	return like.FromInt(big.NewInt(n))
}
