package scalar

import (
	"math"
	"math/big"
	"math/bits"
)

// maxExpArg is just below ln2 * 2^31, past which big.Float overflows.
const maxExpArg = 1.48e9

func (b Big) unary(fn func(x *big.Float, prec uint) *big.Float) Big {
	if b.nan {
		return b
	}
	p := b.Prec()
	return compute(p, func(z *big.Float) { z.Set(fn(b.val(), p)) })
}

func (b Big) binary(o Big, fn func(x, y *big.Float, prec uint) *big.Float) Big {
	p := maxPrec(b, o)
	if b.nan || o.nan {
		return nanBig(p)
	}
	return compute(p, func(z *big.Float) { z.Set(fn(b.val(), o.val(), p)) })
}

func (b Big) Exp() Big   { return b.unary(bigExp) }
func (b Big) Expm1() Big { return b.unary(bigExpm1) }
func (b Big) Log() Big   { return b.unary(bigLog) }
func (b Big) Log1p() Big { return b.unary(bigLog1p) }
func (b Big) Sqrt() Big  { return b.unary(bigSqrt) }
func (b Big) Cbrt() Big  { return b.unary(bigCbrt) }

// Pow follows the special cases of math.Pow, including Pow(x, ±0) = 1 and
// Pow(1, y) = 1 for NaN arguments.
func (b Big) Pow(y Big) Big {
	p := maxPrec(b, y)
	if y.IsZero() || (!b.nan && b.val().Cmp(big.NewFloat(1)) == 0) {
		return NewBigInt(1, p)
	}
	return b.binary(y, bigPow)
}

func (b Big) Sin() Big  { return b.unary(bigSin) }
func (b Big) Cos() Big  { return b.unary(bigCos) }
func (b Big) Tan() Big  { return b.unary(bigTan) }
func (b Big) Asin() Big { return b.unary(bigAsin) }
func (b Big) Acos() Big { return b.unary(bigAcos) }
func (b Big) Atan() Big { return b.unary(bigAtan) }

// Atan2 returns atan2(b, x).
func (b Big) Atan2(x Big) Big { return b.binary(x, bigAtan2) }

func (b Big) Sinh() Big  { return b.unary(bigSinh) }
func (b Big) Cosh() Big  { return b.unary(bigCosh) }
func (b Big) Tanh() Big  { return b.unary(bigTanh) }
func (b Big) Asinh() Big { return b.unary(bigAsinh) }
func (b Big) Acosh() Big { return b.unary(bigAcosh) }
func (b Big) Atanh() Big { return b.unary(bigAtanh) }
func (b Big) Erf() Big   { return b.unary(bigErf) }
func (b Big) Erfc() Big  { return b.unary(bigErfc) }

// LambertW0 returns the principal branch of the Lambert W function.
func (b Big) LambertW0() Big { return b.unary(bigLambertW0) }

func (b Big) Abs() Big {
	return b.unary(func(x *big.Float, prec uint) *big.Float { return newF(prec).Abs(x) })
}

func (b Big) Floor() Big { return b.unary(bigFloor) }
func (b Big) Ceil() Big  { return b.unary(bigCeil) }
func (b Big) Round() Big { return b.unary(bigRound) }
func (b Big) Trunc() Big { return b.unary(bigTrunc) }

// Mod returns the remainder of b/y with the sign of b, like C fmod.
func (b Big) Mod(y Big) Big { return b.binary(y, bigMod) }

func (b Big) Frexp() (Big, int) {
	if b.nan {
		return b, 0
	}
	m := newF(b.Prec())
	e := b.val().MantExp(m)
	return Big{f: m}, e
}

func (b Big) Ldexp(e int) Big {
	if b.nan {
		return b
	}
	return Big{f: newF(b.Prec()).SetMantExp(b.val(), e)}
}

// Pi returns pi at the precision of b.
func (b Big) Pi() Big { return Big{f: pi(b.Prec())} }

func exponent(x *big.Float) int {
	if x.Sign() == 0 || x.IsInf() {
		return 0
	}
	return x.MantExp(nil)
}

func extraBits(e int) uint {
	if e < 0 {
		return uint(-e)
	}
	return uint(e)
}

func bigExp(x *big.Float, prec uint) *big.Float {
	switch {
	case x.IsInf():
		if x.Sign() > 0 {
			return newF(prec).SetInf(false)
		}
		return newF(prec)
	case x.Sign() == 0:
		return intF(1, prec)
	}
	xf, _ := x.Float64()
	if xf > maxExpArg {
		return newF(prec).SetInf(false)
	}
	if xf < -maxExpArg {
		return newF(prec)
	}

	k := int64(math.Round(xf / math.Ln2))
	ak := k
	if ak < 0 {
		ak = -ak
	}
	wp := prec + guardBits + uint(bits.Len64(uint64(ak)))
	r := newF(wp).Set(x)
	if k != 0 {
		kl := intF(k, wp)
		r.Sub(r, kl.Mul(kl, ln2(wp)))
	}

	const squarings = 16
	r.SetMantExp(r, -squarings)
	z := expTaylor(r, wp)
	for i := 0; i < squarings; i++ {
		z.Mul(z, z)
	}
	z.SetMantExp(z, int(k))
	return newF(prec).Set(z)
}

func expTaylor(r *big.Float, prec uint) *big.Float {
	sum := intF(1, prec)
	term := intF(1, prec)
	d := newF(prec)
	for l, n := newLoop("exp", prec, 1), int64(1); ; n++ {
		term.Mul(term, r)
		term.Quo(term, d.SetInt64(n))
		sum.Add(sum, term)
		if l.done(sum, term) {
			break
		}
	}
	return sum
}

func bigExpm1(x *big.Float, prec uint) *big.Float {
	switch {
	case x.IsInf():
		if x.Sign() > 0 {
			return newF(prec).SetInf(false)
		}
		return intF(-1, prec)
	case x.Sign() == 0:
		return newF(prec).Set(x)
	}
	wp := prec + guardBits
	if xf, _ := x.Float64(); math.Abs(xf) >= 0.5 {
		z := bigExp(x, wp)
		return newF(prec).Sub(z, intF(1, wp))
	}
	sum := newF(wp).Set(x)
	term := newF(wp).Set(x)
	d := newF(wp)
	for l, n := newLoop("expm1", wp, 1), int64(2); ; n++ {
		term.Mul(term, x)
		term.Quo(term, d.SetInt64(n))
		sum.Add(sum, term)
		if l.done(sum, term) {
			break
		}
	}
	return newF(prec).Set(sum)
}

func bigLog(x *big.Float, prec uint) *big.Float {
	switch {
	case x.Sign() < 0:
		panic(big.ErrNaN{})
	case x.Sign() == 0:
		return newF(prec).SetInf(true)
	case x.IsInf():
		return newF(prec).SetInf(false)
	}
	mant := new(big.Float)
	e := x.MantExp(mant)
	wp := prec + guardBits + uint(bits.Len(extraBits(e)))
	m := newF(wp).SetMantExp(mant, 1)
	e--
	if m.Cmp(big.NewFloat(math.Sqrt2)) > 0 {
		m.SetMantExp(m, -1)
		e++
	}

	// log m = 2 atanh((m-1)/(m+1)) with m in [√2/2, √2].
	num := newF(wp).Sub(m, intF(1, wp))
	den := newF(wp).Add(m, intF(1, wp))
	z := atanhSeries(num.Quo(num, den), wp)
	z.SetMantExp(z, 1)
	if e != 0 {
		t := intF(int64(e), wp)
		z.Add(z, t.Mul(t, ln2(wp)))
	}
	return newF(prec).Set(z)
}

func bigLog1p(x *big.Float, prec uint) *big.Float {
	switch c := x.Cmp(big.NewFloat(-1)); {
	case c < 0:
		panic(big.ErrNaN{})
	case c == 0:
		return newF(prec).SetInf(true)
	case x.IsInf():
		return newF(prec).SetInf(false)
	case x.Sign() == 0:
		return newF(prec).Set(x)
	}
	wp := prec + guardBits
	if xf, _ := x.Float64(); math.Abs(xf) >= 0.5 {
		return bigLog(newF(wp).Add(x, intF(1, wp)), prec)
	}
	// log(1+x) = 2 atanh(x/(2+x))
	den := newF(wp).Add(x, intF(2, wp))
	z := atanhSeries(den.Quo(x, den), wp)
	return newF(prec).SetMantExp(z, 1)
}

func bigSqrt(x *big.Float, prec uint) *big.Float {
	switch {
	case x.Sign() < 0:
		panic(big.ErrNaN{})
	case x.Sign() == 0, x.IsInf():
		return newF(prec).Set(x)
	}
	return newF(prec).Sqrt(x)
}

func bigCbrt(x *big.Float, prec uint) *big.Float {
	if x.Sign() == 0 || x.IsInf() {
		return newF(prec).Set(x)
	}
	wp := prec + guardBits
	a := newF(wp).Abs(x)
	l := bigLog(a, wp)
	z := bigExp(l.Quo(l, intF(3, wp)), wp)
	if x.Sign() < 0 {
		z.Neg(z)
	}
	return newF(prec).Set(z)
}

func isOddInt(y *big.Float) bool {
	if !y.IsInt() {
		return false
	}
	i, _ := y.Int(nil)
	return i.Bit(0) == 1
}

func bigPow(x, y *big.Float, prec uint) *big.Float {
	one := big.NewFloat(1)
	switch {
	case y.Sign() == 0 || x.Cmp(one) == 0:
		return intF(1, prec)
	case y.Cmp(one) == 0:
		return newF(prec).Set(x)
	}
	yOdd := isOddInt(y)
	switch {
	case x.Sign() == 0:
		if y.Sign() < 0 {
			if yOdd {
				return newF(prec).SetInf(x.Signbit())
			}
			return newF(prec).SetInf(false)
		}
		if yOdd {
			return newF(prec).Set(x)
		}
		return newF(prec)
	case y.IsInf():
		ax := newF(prec).Abs(x)
		switch c := ax.Cmp(one); {
		case c == 0:
			return intF(1, prec)
		case (c < 0) == (y.Sign() > 0):
			return newF(prec)
		}
		return newF(prec).SetInf(false)
	case x.IsInf():
		if x.Sign() < 0 {
			negZero := newF(prec).Neg(newF(prec))
			return bigPow(negZero, newF(prec).Neg(y), prec)
		}
		if y.Sign() < 0 {
			return newF(prec)
		}
		return newF(prec).SetInf(false)
	}

	switch {
	case y.Cmp(big.NewFloat(0.5)) == 0:
		return bigSqrt(x, prec)
	case y.Cmp(big.NewFloat(-0.5)) == 0:
		s := bigSqrt(x, prec+guardBits)
		return newF(prec).Quo(one, s)
	}
	if y.IsInt() {
		if n, acc := y.Int64(); acc == big.Exact && n > -(1<<40) && n < 1<<40 {
			return intPow(x, n, prec)
		}
	}
	if x.Sign() < 0 {
		panic(big.ErrNaN{})
	}

	// exp needs the product to an absolute accuracy of 2^-prec, so the
	// working precision grows with its magnitude.
	lf, _ := bigLog(x, 53).Float64()
	yf, _ := y.Float64()
	_, e := math.Frexp(lf * yf)
	wp := prec + guardBits + uint(max(e, 0))
	t := bigLog(x, wp)
	t.Mul(t, y)
	return bigExp(t, prec)
}

func intPow(x *big.Float, n int64, prec uint) *big.Float {
	neg := n < 0
	if neg {
		n = -n
	}
	wp := prec + guardBits + uint(bits.Len64(uint64(n)))
	z := intF(1, wp)
	b := newF(wp).Set(x)
	for n > 0 {
		if n&1 == 1 {
			z.Mul(z, b)
		}
		n >>= 1
		if n > 0 {
			b.Mul(b, b)
		}
	}
	if neg {
		z.Quo(intF(1, wp), z)
	}
	return newF(prec).Set(z)
}

// roundToInt returns x rounded half away from zero.
func roundToInt(x *big.Float) *big.Int {
	i, _ := x.Int(nil)
	frac := newF(x.Prec()).Sub(x, newF(x.Prec()).SetInt(i))
	switch {
	case frac.Cmp(big.NewFloat(0.5)) >= 0:
		i.Add(i, big.NewInt(1))
	case frac.Cmp(big.NewFloat(-0.5)) <= 0:
		i.Sub(i, big.NewInt(1))
	}
	return i
}

// reduceHalfPi returns r and k mod 4 with x = k*pi/2 + r and |r| <= pi/4.
func reduceHalfPi(x *big.Float, prec uint) (*big.Float, int) {
	wp := prec + guardBits + uint(max(exponent(x), 0))
	hp := pi(wp)
	hp.SetMantExp(hp, -1)
	q := newF(wp).Quo(x, hp)
	k := roundToInt(q)
	r := newF(wp).SetInt(k)
	r.Mul(r, hp)
	r.Sub(newF(wp).Set(x), r)
	m := new(big.Int).And(k, big.NewInt(3))
	return r, int(m.Int64())
}

// taylorSinCos sums the series of sin (start 1) or cos (start 0), or of
// sinh and cosh when alternate is false.
func taylorSinCos(name string, r *big.Float, prec uint, start int64, alternate bool) *big.Float {
	term := intF(1, prec)
	if start == 1 {
		term.Set(r)
	}
	sum := newF(prec).Set(term)
	r2 := newF(prec).Mul(r, r)
	d := newF(prec)
	for l, n := newLoop(name, prec, 1), start+1; ; n += 2 {
		term.Mul(term, r2)
		term.Quo(term, d.SetInt64(n*(n+1)))
		if alternate {
			term.Neg(term)
		}
		sum.Add(sum, term)
		if l.done(sum, term) {
			break
		}
	}
	return sum
}

func bigSin(x *big.Float, prec uint) *big.Float {
	switch {
	case x.IsInf():
		panic(big.ErrNaN{})
	case x.Sign() == 0:
		return newF(prec).Set(x)
	}
	r, k := reduceHalfPi(x, prec)
	wp := r.Prec()
	var z *big.Float
	switch k {
	case 0:
		z = taylorSinCos("sin", r, wp, 1, true)
	case 1:
		z = taylorSinCos("cos", r, wp, 0, true)
	case 2:
		z = taylorSinCos("sin", r, wp, 1, true)
		z.Neg(z)
	default:
		z = taylorSinCos("cos", r, wp, 0, true)
		z.Neg(z)
	}
	return newF(prec).Set(z)
}

func bigCos(x *big.Float, prec uint) *big.Float {
	switch {
	case x.IsInf():
		panic(big.ErrNaN{})
	case x.Sign() == 0:
		return intF(1, prec)
	}
	r, k := reduceHalfPi(x, prec)
	wp := r.Prec()
	var z *big.Float
	switch k {
	case 0:
		z = taylorSinCos("cos", r, wp, 0, true)
	case 1:
		z = taylorSinCos("sin", r, wp, 1, true)
		z.Neg(z)
	case 2:
		z = taylorSinCos("cos", r, wp, 0, true)
		z.Neg(z)
	default:
		z = taylorSinCos("sin", r, wp, 1, true)
	}
	return newF(prec).Set(z)
}

func bigTan(x *big.Float, prec uint) *big.Float {
	switch {
	case x.IsInf():
		panic(big.ErrNaN{})
	case x.Sign() == 0:
		return newF(prec).Set(x)
	}
	r, k := reduceHalfPi(x, prec)
	wp := r.Prec()
	s := taylorSinCos("sin", r, wp, 1, true)
	c := taylorSinCos("cos", r, wp, 0, true)
	if k%2 == 0 {
		return newF(prec).Quo(s, c)
	}
	c.Neg(c)
	return newF(prec).Quo(c, s)
}

func halfPi(prec uint) *big.Float {
	hp := pi(prec)
	return hp.SetMantExp(hp, -1)
}

func bigAtan(x *big.Float, prec uint) *big.Float {
	switch {
	case x.Sign() == 0:
		return newF(prec).Set(x)
	case x.IsInf():
		hp := halfPi(prec)
		if x.Sign() < 0 {
			hp.Neg(hp)
		}
		return hp
	}
	wp := prec + guardBits
	one := intF(1, wp)
	z := newF(wp).Abs(x)
	invert := z.Cmp(one) > 0
	if invert {
		z.Quo(one, z)
	}

	// atan(z) = 2 atan(z / (1 + sqrt(1+z²)))
	const halvings = 4
	t := newF(wp)
	for i := 0; i < halvings; i++ {
		t.Mul(z, z)
		t.Add(t, one)
		t.Sqrt(t)
		t.Add(t, one)
		z.Quo(z, t)
	}
	s := atanSeries(z, wp)
	s.SetMantExp(s, halvings)
	if invert {
		s.Sub(halfPi(wp), s)
	}
	if x.Sign() < 0 {
		s.Neg(s)
	}
	return newF(prec).Set(s)
}

func bigAsin(x *big.Float, prec uint) *big.Float {
	if x.Sign() == 0 {
		return newF(prec).Set(x)
	}
	wp := prec + guardBits
	one := intF(1, wp)
	switch c := newF(wp).Abs(x).Cmp(one); {
	case c > 0:
		panic(big.ErrNaN{})
	case c == 0:
		hp := halfPi(prec)
		if x.Sign() < 0 {
			hp.Neg(hp)
		}
		return hp
	}
	a := newF(wp).Sub(one, x)
	b := newF(wp).Add(one, x)
	a.Mul(a, b)
	a.Sqrt(a)
	return bigAtan(a.Quo(x, a), prec)
}

func bigAcos(x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	one := intF(1, wp)
	if newF(wp).Abs(x).Cmp(one) > 0 {
		panic(big.ErrNaN{})
	}
	// acos x = 2 atan(sqrt((1-x)/(1+x)))
	a := newF(wp).Sub(one, x)
	b := newF(wp).Add(one, x)
	if b.Sign() == 0 {
		return pi(prec)
	}
	a.Quo(a, b)
	a.Sqrt(a)
	z := bigAtan(a, wp)
	return newF(prec).SetMantExp(z, 1)
}

// bigAtan2 follows the special cases of math.Atan2.
func bigAtan2(y, x *big.Float, prec uint) *big.Float {
	withSign := func(z *big.Float, neg bool) *big.Float {
		if neg != z.Signbit() {
			z.Neg(z)
		}
		return z
	}
	yNeg := y.Signbit()
	switch {
	case y.Sign() == 0:
		if x.Sign() > 0 || (x.Sign() == 0 && !x.Signbit()) {
			return withSign(newF(prec), yNeg)
		}
		return withSign(pi(prec), yNeg)
	case x.Sign() == 0:
		return withSign(halfPi(prec), yNeg)
	case x.IsInf():
		if x.Sign() > 0 {
			if y.IsInf() {
				q := pi(prec)
				return withSign(q.SetMantExp(q, -2), yNeg)
			}
			return withSign(newF(prec), yNeg)
		}
		if y.IsInf() {
			q := pi(prec)
			q.Mul(q, intF(3, prec))
			return withSign(q.SetMantExp(q, -2), yNeg)
		}
		return withSign(pi(prec), yNeg)
	case y.IsInf():
		return withSign(halfPi(prec), yNeg)
	}

	wp := prec + guardBits
	q := newF(wp).Quo(y, x)
	z := bigAtan(q, wp)
	if x.Sign() < 0 {
		if yNeg {
			z.Sub(z, pi(wp))
		} else {
			z.Add(z, pi(wp))
		}
	}
	return newF(prec).Set(z)
}

func bigSinh(x *big.Float, prec uint) *big.Float {
	if x.Sign() == 0 || x.IsInf() {
		return newF(prec).Set(x)
	}
	wp := prec + guardBits
	if xf, _ := x.Float64(); math.Abs(xf) < 1 {
		return newF(prec).Set(taylorSinCos("sinh", newF(wp).Set(x), wp, 1, false))
	}
	e := bigExp(x, wp)
	inv := newF(wp).Quo(intF(1, wp), e)
	e.Sub(e, inv)
	return newF(prec).SetMantExp(e, -1)
}

func bigCosh(x *big.Float, prec uint) *big.Float {
	if x.IsInf() {
		return newF(prec).SetInf(false)
	}
	wp := prec + guardBits
	e := bigExp(newF(wp).Abs(x), wp)
	inv := newF(wp).Quo(intF(1, wp), e)
	e.Add(e, inv)
	return newF(prec).SetMantExp(e, -1)
}

func bigTanh(x *big.Float, prec uint) *big.Float {
	switch {
	case x.Sign() == 0:
		return newF(prec).Set(x)
	case x.IsInf():
		return intF(int64(x.Sign()), prec)
	}
	wp := prec + guardBits
	one := intF(1, wp)
	if xf, _ := x.Float64(); math.Abs(xf) < 1 {
		s := taylorSinCos("sinh", newF(wp).Set(x), wp, 1, false)
		c := newF(wp).Mul(s, s)
		c.Add(c, one)
		c.Sqrt(c)
		return newF(prec).Quo(s, c)
	}
	// tanh|x| = (1 - e^(-2|x|)) / (1 + e^(-2|x|))
	a := newF(wp).Abs(x)
	a.SetMantExp(a, 1)
	t := bigExp(a.Neg(a), wp)
	num := newF(wp).Sub(one, t)
	den := newF(wp).Add(one, t)
	z := newF(prec).Quo(num, den)
	if x.Sign() < 0 {
		z.Neg(z)
	}
	return z
}

func bigAsinh(x *big.Float, prec uint) *big.Float {
	if x.Sign() == 0 || x.IsInf() {
		return newF(prec).Set(x)
	}
	wp := prec + guardBits + extraBits(min(exponent(x), 0))
	a := newF(wp).Abs(x)
	// asinh a = log(a + sqrt(a²+1))
	t := newF(wp).Mul(a, a)
	t.Add(t, intF(1, wp))
	t.Sqrt(t)
	t.Add(t, a)
	z := bigLog(t, wp)
	if x.Sign() < 0 {
		z.Neg(z)
	}
	return newF(prec).Set(z)
}

func bigAcosh(x *big.Float, prec uint) *big.Float {
	switch c := x.Cmp(big.NewFloat(1)); {
	case c < 0:
		panic(big.ErrNaN{})
	case c == 0:
		return newF(prec)
	case x.IsInf():
		return newF(prec).SetInf(false)
	}
	wp := prec + guardBits
	d := newF(wp).Sub(x, intF(1, wp))
	wp += extraBits(min(exponent(d), 0))
	one := intF(1, wp)
	// acosh x = log(x + sqrt((x-1)(x+1)))
	t := newF(wp).Sub(x, one)
	u := newF(wp).Add(x, one)
	t.Mul(t, u)
	t.Sqrt(t)
	t.Add(t, x)
	return newF(prec).Set(bigLog(t, wp))
}

func bigAtanh(x *big.Float, prec uint) *big.Float {
	if x.Sign() == 0 {
		return newF(prec).Set(x)
	}
	wp := prec + guardBits
	one := intF(1, wp)
	a := newF(wp).Abs(x)
	switch c := a.Cmp(one); {
	case c > 0:
		panic(big.ErrNaN{})
	case c == 0:
		return newF(prec).SetInf(x.Sign() < 0)
	}
	if a.Cmp(big.NewFloat(0.5)) < 0 {
		return newF(prec).Set(atanhSeries(newF(wp).Set(x), wp))
	}
	// atanh x = log((1+x)/(1-x)) / 2
	num := newF(wp).Add(one, x)
	den := newF(wp).Sub(one, x)
	z := bigLog(num.Quo(num, den), wp)
	return newF(prec).SetMantExp(z, -1)
}

// erfSaturated reports whether erfc(|x|) is below 2^-prec, so erf(x) rounds to ±1.
func erfSaturated(x *big.Float, prec uint) bool {
	xf, _ := x.Float64()
	return xf*xf > (float64(prec)+10)*math.Ln2+10
}

func bigErf(x *big.Float, prec uint) *big.Float {
	switch {
	case x.Sign() == 0:
		return newF(prec).Set(x)
	case x.IsInf() || erfSaturated(x, prec):
		return intF(int64(x.Sign()), prec)
	}
	xf, _ := x.Float64()
	wp := prec + guardBits + uint(1.45*xf*xf)
	return newF(prec).Set(erfSeries(newF(wp).Set(x), wp))
}

// erfSeries sums 2/sqrt(pi) * Σ (-1)^n x^(2n+1) / (n! (2n+1)).
func erfSeries(x *big.Float, prec uint) *big.Float {
	x2 := newF(prec).Mul(x, x)
	xn := newF(prec).Set(x)
	sum := newF(prec).Set(x)
	term := newF(prec)
	d := newF(prec)
	for l, n := newLoop("erf", prec, 4), int64(1); ; n++ {
		xn.Mul(xn, x2)
		xn.Quo(xn, d.SetInt64(n))
		xn.Neg(xn)
		term.Quo(xn, d.SetInt64(2*n+1))
		sum.Add(sum, term)
		if l.done(sum, term) {
			break
		}
	}
	s := pi(prec)
	s.Sqrt(s)
	sum.Quo(sum, s)
	return sum.SetMantExp(sum, 1)
}

func bigErfc(x *big.Float, prec uint) *big.Float {
	switch {
	case x.IsInf():
		if x.Sign() > 0 {
			return newF(prec)
		}
		return intF(2, prec)
	case x.Sign() <= 0:
		wp := prec + guardBits
		return newF(prec).Sub(intF(1, wp), bigErf(x, wp))
	}
	xf, _ := x.Float64()
	if xf > 30 {
		return erfcFraction(x, prec)
	}
	wp := prec + guardBits + uint(2.9*xf*xf)
	return newF(prec).Sub(intF(1, wp), bigErf(x, wp))
}

// erfcFraction evaluates erfc by its continued fraction with the modified
// Lentz method, for large positive x.
func erfcFraction(x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	xs := newF(wp).Set(x)
	tiny := newF(wp).SetMantExp(intF(1, wp), -2*int(wp))
	one := intF(1, wp)

	f := newF(wp).Set(xs)
	c := newF(wp).Set(xs)
	d := newF(wp)
	a := newF(wp)
	t := newF(wp)
	delta := newF(wp)
	for l, n := newLoop("erfc", wp, 1), int64(1); ; n++ {
		a.SetInt64(n)
		a.SetMantExp(a, -1)

		d.Mul(a, d)
		d.Add(d, xs)
		if d.Sign() == 0 {
			d.Set(tiny)
		}
		d.Quo(one, d)

		t.Quo(a, c)
		c.Add(xs, t)
		if c.Sign() == 0 {
			c.Set(tiny)
		}

		delta.Mul(c, d)
		f.Mul(f, delta)
		if l.done(one, t.Sub(delta, one)) {
			break
		}
	}

	x2 := newF(wp).Mul(xs, xs)
	e := bigExp(x2.Neg(x2), wp)
	s := pi(wp)
	s.Sqrt(s)
	s.Mul(s, f)
	return newF(prec).Quo(e, s)
}

func bigLambertW0(x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	branch := bigExp(intF(-1, wp), wp)
	branch.Neg(branch)
	switch c := x.Cmp(branch); {
	case c < 0:
		panic(big.ErrNaN{})
	case c == 0:
		return intF(-1, prec)
	case x.Sign() == 0, x.IsInf():
		return newF(prec).Set(x)
	}

	var w *big.Float
	xf, _ := x.Float64()
	if seed := lambertW0(xf); math.IsInf(xf, 1) || math.IsNaN(seed) || math.IsInf(seed, 0) {
		l := bigLog(x, wp)
		w = newF(wp).Sub(l, bigLog(l, wp))
	} else {
		w = newF(wp).SetFloat64(max(seed, -1+1e-9))
	}

	one := intF(1, wp)
	two := intF(2, wp)
	f := newF(wp)
	w1 := newF(wp)
	den := newF(wp)
	t := newF(wp)
	for i := 0; i < 100; i++ {
		e := bigExp(w, wp)
		f.Mul(w, e)
		f.Sub(f, x)
		w1.Add(w, one)
		// Halley: dw = f / (e(w+1) - (w+2)f / (2(w+1)))
		den.Mul(e, w1)
		t.Add(w, two)
		t.Mul(t, f)
		t.Quo(t, newF(wp).Mul(w1, two))
		den.Sub(den, t)
		if den.Sign() == 0 {
			break
		}
		f.Quo(f, den)
		w.Sub(w, f)
		if f.Sign() == 0 || w.Sign() == 0 || exponent(f) < exponent(w)-int(wp)+8 {
			break
		}
	}
	return newF(prec).Set(w)
}

func bigTrunc(x *big.Float, prec uint) *big.Float {
	if x.IsInf() || x.IsInt() {
		return newF(prec).Set(x)
	}
	i, _ := x.Int(nil)
	z := newF(prec).SetInt(i)
	if z.Sign() == 0 && x.Signbit() {
		z.Neg(z)
	}
	return z
}

func bigFloor(x *big.Float, prec uint) *big.Float {
	z := bigTrunc(x, prec)
	if x.Sign() < 0 && !x.IsInt() && !x.IsInf() {
		z.Sub(z, big.NewFloat(1))
	}
	return z
}

func bigCeil(x *big.Float, prec uint) *big.Float {
	z := bigTrunc(x, prec)
	if x.Sign() > 0 && !x.IsInt() && !x.IsInf() {
		z.Add(z, big.NewFloat(1))
	}
	return z
}

// bigRound rounds half away from zero.
func bigRound(x *big.Float, prec uint) *big.Float {
	if x.IsInf() || x.IsInt() {
		return newF(prec).Set(x)
	}
	h := newF(x.Prec() + 1).Abs(x)
	h.Add(h, big.NewFloat(0.5))
	z := bigTrunc(h, prec)
	if x.Signbit() {
		z.Neg(z)
	}
	return z
}

func bigMod(x, y *big.Float, prec uint) *big.Float {
	switch {
	case y.Sign() == 0, x.IsInf():
		panic(big.ErrNaN{})
	case y.IsInf(), x.Sign() == 0:
		return newF(prec).Set(x)
	}
	wp := x.Prec() + y.Prec() + extraBits(max(exponent(x)-exponent(y), 0)) + guardBits
	q := newF(wp).Quo(x, y)
	t, _ := q.Int(nil)

	// x - t*y is exact at wp.
	r := newF(wp).SetInt(t)
	r.Mul(r, y)
	r.Sub(newF(wp).Set(x), r)

	ay := newF(wp).Abs(y)
	if x.Sign() < 0 {
		ay.Neg(ay)
	}
	if r.Sign() != 0 && r.Sign() != x.Sign() {
		r.Add(r, ay)
	}
	if newF(wp).Abs(r).Cmp(newF(wp).Abs(y)) >= 0 {
		r.Sub(r, ay)
	}
	z := newF(prec).Set(r)
	if z.Sign() == 0 && x.Signbit() {
		z.Neg(z)
	}
	return z
}
