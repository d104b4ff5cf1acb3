package scalar

import (
	"math"
	"math/big"
	"strconv"
)

// Float is an IEEE-754 double. It is the default coefficient type.
type Float float64

func (a Float) Add(b Float) Float { return a + b }
func (a Float) Sub(b Float) Float { return a - b }
func (a Float) Mul(b Float) Float { return a * b }
func (a Float) Quo(b Float) Float { return a / b }
func (a Float) Neg() Float        { return -a }

// Cmp returns -1, 0 or +1. The result is 0 when either side is NaN.
func (a Float) Cmp(b Float) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (a Float) Sign() int {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	}
	return 0
}

func (a Float) IsZero() bool     { return a == 0 }
func (a Float) IsNaN() bool      { return math.IsNaN(float64(a)) }
func (a Float) IsInf() bool      { return math.IsInf(float64(a), 0) }
func (a Float) Float64() float64 { return float64(a) }

func (Float) FromInt(n *big.Int) Float {
	f, _ := new(big.Float).SetInt(n).Float64()
	return Float(f)
}

func (Float) FromFloat64(x float64) Float { return Float(x) }

func (a Float) String() string {
	return strconv.FormatFloat(float64(a), 'g', -1, 64)
}

func (a Float) Exp() Float   { return Float(math.Exp(float64(a))) }
func (a Float) Expm1() Float { return Float(math.Expm1(float64(a))) }
func (a Float) Log() Float   { return Float(math.Log(float64(a))) }
func (a Float) Log1p() Float { return Float(math.Log1p(float64(a))) }
func (a Float) Sqrt() Float  { return Float(math.Sqrt(float64(a))) }
func (a Float) Cbrt() Float  { return Float(math.Cbrt(float64(a))) }

func (a Float) Pow(y Float) Float { return Float(math.Pow(float64(a), float64(y))) }

func (a Float) Sin() Float  { return Float(math.Sin(float64(a))) }
func (a Float) Cos() Float  { return Float(math.Cos(float64(a))) }
func (a Float) Tan() Float  { return Float(math.Tan(float64(a))) }
func (a Float) Asin() Float { return Float(math.Asin(float64(a))) }
func (a Float) Acos() Float { return Float(math.Acos(float64(a))) }
func (a Float) Atan() Float { return Float(math.Atan(float64(a))) }

// Atan2 returns atan2(a, x).
func (a Float) Atan2(x Float) Float { return Float(math.Atan2(float64(a), float64(x))) }

func (a Float) Sinh() Float  { return Float(math.Sinh(float64(a))) }
func (a Float) Cosh() Float  { return Float(math.Cosh(float64(a))) }
func (a Float) Tanh() Float  { return Float(math.Tanh(float64(a))) }
func (a Float) Asinh() Float { return Float(math.Asinh(float64(a))) }
func (a Float) Acosh() Float { return Float(math.Acosh(float64(a))) }
func (a Float) Atanh() Float { return Float(math.Atanh(float64(a))) }
func (a Float) Erf() Float   { return Float(math.Erf(float64(a))) }
func (a Float) Erfc() Float  { return Float(math.Erfc(float64(a))) }

func (a Float) Abs() Float   { return Float(math.Abs(float64(a))) }
func (a Float) Floor() Float { return Float(math.Floor(float64(a))) }
func (a Float) Ceil() Float  { return Float(math.Ceil(float64(a))) }
func (a Float) Round() Float { return Float(math.Round(float64(a))) }
func (a Float) Trunc() Float { return Float(math.Trunc(float64(a))) }

// Mod returns the remainder of a/y with the sign of a, like C fmod.
func (a Float) Mod(y Float) Float { return Float(math.Mod(float64(a), float64(y))) }

func (a Float) Frexp() (Float, int) {
	m, e := math.Frexp(float64(a))
	return Float(m), e
}

func (a Float) Ldexp(e int) Float { return Float(math.Ldexp(float64(a), e)) }

func (Float) Pi() Float { return math.Pi }

// LambertW0 returns the principal branch of the Lambert W function.
func (a Float) LambertW0() Float { return Float(lambertW0(float64(a))) }

// lambertW0 solves w*exp(w) = x for w >= -1 with Halley iterations.
func lambertW0(x float64) float64 {
	const branch = -1 / math.E
	switch {
	case math.IsNaN(x) || x < branch:
		return math.NaN()
	case x == branch:
		return -1
	case x == 0:
		return x
	case math.IsInf(x, 1):
		return x
	}

	var w float64
	if x < 1 {
		p := math.Sqrt(2 * (math.E*x + 1))
		w = -1 + p - p*p/3 + 11*p*p*p/72
	} else {
		l := math.Log(x)
		w = l - math.Log(l+1)
	}

	const maxIt = 80
	const tol = 1e-15
	for i := 0; i < maxIt; i++ {
		e := math.Exp(w)
		f := w*e - x
		den := e*(w+1) - (w+2)*f/(2*(w+1))
		if den == 0 || math.IsNaN(den) {
			break
		}
		dw := f / den
		w2 := w - dw
		if math.Abs(dw) < tol*(1+math.Abs(w2)) {
			return w2
		}
		w = w2
	}
	return w
}
