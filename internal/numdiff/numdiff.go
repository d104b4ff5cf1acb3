// Package numdiff estimates derivatives by central finite differences. It is
// the independent check for derivatives computed from Taylor series.
package numdiff

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

var eps = math.Nextafter(1, 2) - 1

// ErrOrder indicates a negative derivative order.
var ErrOrder = errors.New("numdiff: negative derivative order")

// Func is a scalar function of one variable.
type Func func(x float64) float64

// Step returns a step size for an n-th central difference at x. The
// truncation error of the stencil is O(h²) and the rounding error
// O(eps/hⁿ), which balance at h ~ eps^(1/(n+2)).
func Step(x float64, n int) float64 {
	return math.Pow(eps, 1/float64(n+2)) * math.Max(1, math.Abs(x))
}

// Central returns the n-th central difference of f at x with step h:
//
//	Σ_k (-1)^k C(n,k) f(x + (n/2 - k)h) / hⁿ
//
// A non-positive h selects Step(x, n).
func Central(f Func, x float64, n int, h float64) (float64, error) {
	if n < 0 {
		return 0, ErrOrder
	}
	if n == 0 {
		return f(x), nil
	}
	if h <= 0 {
		h = Step(x, n)
	}
	var sum float64
	for k := 0; k <= n; k++ {
		c := float64(combin.Binomial(n, k))
		if k%2 == 1 {
			c = -c
		}
		sum += c * f(x+(float64(n)/2-float64(k))*h)
	}
	return sum / math.Pow(h, float64(n)), nil
}

// Partial returns the n-th pure partial derivative of f in coordinate k,
// holding the other coordinates of x fixed.
func Partial(f func(x []float64) float64, x []float64, k, n int, h float64) (float64, error) {
	if k < 0 || k >= len(x) {
		return 0, errors.New("numdiff: coordinate out of range")
	}
	pt := make([]float64, len(x))
	copy(pt, x)
	return Central(func(v float64) float64 {
		pt[k] = v
		return f(pt)
	}, x[k], n, h)
}

// Tolerance is the relative accuracy expected of Central with the default
// step for an n-th derivative.
func Tolerance(n int) float64 {
	return 200 * math.Pow(eps, 2/float64(n+2))
}
