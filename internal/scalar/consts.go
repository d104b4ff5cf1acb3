package scalar

import (
	"math/big"
	"sync"
)

// constCache holds a constant at the highest precision requested so far.
type constCache struct {
	mu      sync.Mutex
	v       *big.Float
	compute func(prec uint) *big.Float
}

func (c *constCache) get(prec uint) *big.Float {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.v == nil || c.v.Prec() < prec+guardBits {
		c.v = c.compute(prec + guardBits)
	}
	return newF(prec).Set(c.v)
}

var (
	piCache  = &constCache{compute: computePi}
	ln2Cache = &constCache{compute: computeLn2}
)

func pi(prec uint) *big.Float  { return piCache.get(prec) }
func ln2(prec uint) *big.Float { return ln2Cache.get(prec) }

// computePi uses Machin's formula, pi = 16 atan(1/5) - 4 atan(1/239).
func computePi(prec uint) *big.Float {
	a := atanSeries(newF(prec).Quo(intF(1, prec), intF(5, prec)), prec)
	b := atanSeries(newF(prec).Quo(intF(1, prec), intF(239, prec)), prec)
	a.Mul(a, intF(16, prec))
	b.Mul(b, intF(4, prec))
	return a.Sub(a, b)
}

// computeLn2 uses ln 2 = 2 atanh(1/3).
func computeLn2(prec uint) *big.Float {
	z := atanhSeries(newF(prec).Quo(intF(1, prec), intF(3, prec)), prec)
	return z.SetMantExp(z, 1)
}

func newF(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

func intF(n int64, prec uint) *big.Float {
	return newF(prec).SetInt64(n)
}

// atanhSeries sums z + z³/3 + z⁵/5 + ... for |z| well below 1.
func atanhSeries(z *big.Float, prec uint) *big.Float {
	return oddPowerSeries("atanh", z, prec, false)
}

// atanSeries sums z - z³/3 + z⁵/5 - ... for |z| well below 1.
func atanSeries(z *big.Float, prec uint) *big.Float {
	return oddPowerSeries("atan", z, prec, true)
}

func oddPowerSeries(name string, z *big.Float, prec uint, alternate bool) *big.Float {
	sum := newF(prec).Set(z)
	if z.Sign() == 0 {
		return sum
	}
	z2 := newF(prec).Mul(z, z)
	zn := newF(prec).Set(z)
	term := newF(prec)
	d := newF(prec)
	negative := false
	for l, n := newLoop(name, prec, 1), int64(3); ; n += 2 {
		zn.Mul(zn, z2)
		term.Quo(zn, d.SetInt64(n))
		if alternate {
			negative = !negative
		}
		if negative {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		if l.done(sum, term) {
			break
		}
	}
	return sum
}
