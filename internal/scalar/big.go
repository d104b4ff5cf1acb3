package scalar

import (
	"math"
	"math/big"
	"strings"
)

// DefaultPrec is the mantissa size, in bits, of a zero Big.
const DefaultPrec uint = 256

// guardBits is the extra working precision used inside transcendental functions.
const guardBits = 64

// Big is an arbitrary-precision real backed by big.Float.
//
// big.Float has no NaN, so Big carries one explicitly. Operations that IEEE
// arithmetic defines as NaN (0*Inf, Inf-Inf, 0/0, log of a negative number)
// produce a NaN Big instead of panicking. The zero value is +0 at DefaultPrec.
type Big struct {
	f   *big.Float
	nan bool
}

// NewBig returns x rounded to prec bits. A prec of 0 selects DefaultPrec.
func NewBig(x float64, prec uint) Big {
	if prec == 0 {
		prec = DefaultPrec
	}
	if math.IsNaN(x) {
		return nanBig(prec)
	}
	return Big{f: new(big.Float).SetPrec(prec).SetFloat64(x)}
}

// NewBigInt returns n rounded to prec bits.
func NewBigInt(n int64, prec uint) Big {
	if prec == 0 {
		prec = DefaultPrec
	}
	return Big{f: new(big.Float).SetPrec(prec).SetInt64(n)}
}

// ParseBig parses a decimal literal, "Inf" or "NaN" at prec bits.
func ParseBig(s string, prec uint) (Big, error) {
	if prec == 0 {
		prec = DefaultPrec
	}
	t := strings.TrimSpace(s)
	if strings.EqualFold(t, "nan") {
		return nanBig(prec), nil
	}
	f, _, err := big.ParseFloat(t, 10, prec, big.ToNearestEven)
	if err != nil {
		return Big{}, &ParseError{Input: s, Kind: KindBig, Err: err}
	}
	return Big{f: f}, nil
}

func nanBig(prec uint) Big {
	return Big{f: new(big.Float).SetPrec(prec), nan: true}
}

// compute runs fn on a fresh result at prec bits, turning big.ErrNaN panics into NaN.
func compute(prec uint, fn func(z *big.Float)) (r Big) {
	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(big.ErrNaN); ok {
				r = nanBig(prec)
				return
			}
			panic(e)
		}
	}()
	z := new(big.Float).SetPrec(prec)
	fn(z)
	return Big{f: z}
}

// Prec returns the mantissa precision in bits.
func (b Big) Prec() uint {
	if b.f == nil {
		return DefaultPrec
	}
	return b.f.Prec()
}

// Float returns a copy of the underlying value, or nil for NaN.
func (b Big) Float() *big.Float {
	if b.nan {
		return nil
	}
	return new(big.Float).Copy(b.val())
}

func (b Big) val() *big.Float {
	if b.f == nil {
		return new(big.Float).SetPrec(DefaultPrec)
	}
	return b.f
}

func maxPrec(a, b Big) uint {
	return max(a.Prec(), b.Prec())
}

func (b Big) Add(o Big) Big {
	p := maxPrec(b, o)
	if b.nan || o.nan {
		return nanBig(p)
	}
	return compute(p, func(z *big.Float) { z.Add(b.val(), o.val()) })
}

func (b Big) Sub(o Big) Big {
	p := maxPrec(b, o)
	if b.nan || o.nan {
		return nanBig(p)
	}
	return compute(p, func(z *big.Float) { z.Sub(b.val(), o.val()) })
}

func (b Big) Mul(o Big) Big {
	p := maxPrec(b, o)
	if b.nan || o.nan {
		return nanBig(p)
	}
	return compute(p, func(z *big.Float) { z.Mul(b.val(), o.val()) })
}

func (b Big) Quo(o Big) Big {
	p := maxPrec(b, o)
	if b.nan || o.nan {
		return nanBig(p)
	}
	return compute(p, func(z *big.Float) { z.Quo(b.val(), o.val()) })
}

func (b Big) Neg() Big {
	if b.nan {
		return b
	}
	return Big{f: new(big.Float).SetPrec(b.Prec()).Neg(b.val())}
}

// Cmp compares the values. The result is 0 when either side is NaN.
func (b Big) Cmp(o Big) int {
	if b.nan || o.nan {
		return 0
	}
	return b.val().Cmp(o.val())
}

func (b Big) Sign() int {
	if b.nan {
		return 0
	}
	return b.val().Sign()
}

func (b Big) IsZero() bool { return !b.nan && b.val().Sign() == 0 }
func (b Big) IsNaN() bool  { return b.nan }
func (b Big) IsInf() bool  { return !b.nan && b.val().IsInf() }

func (b Big) Float64() float64 {
	if b.nan {
		return math.NaN()
	}
	f, _ := b.val().Float64()
	return f
}

// FromInt returns n at the precision of b.
func (b Big) FromInt(n *big.Int) Big {
	return Big{f: new(big.Float).SetPrec(b.Prec()).SetInt(n)}
}

// FromFloat64 returns x at the precision of b.
func (b Big) FromFloat64(x float64) Big {
	return NewBig(x, b.Prec())
}

// String formats b with the shortest decimal that rounds back to it.
func (b Big) String() string {
	return b.Text('g', -1)
}

// Text formats b like big.Float.Text.
func (b Big) Text(format byte, digits int) string {
	if b.nan {
		return "NaN"
	}
	return b.val().Text(format, digits)
}
