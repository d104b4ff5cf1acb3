package scalar

import (
	"fmt"
	"math/big"
)

// loop bounds a series evaluation. It is done once a term no longer
// changes the running sum at the working precision.
type loop struct {
	name          string
	i             uint64
	maxIterations uint64
	prec          uint
}

// newLoop returns a loop checker for a series at prec bits. itersPerBit
// scales the iteration cap so callers need not know the precision.
func newLoop(name string, prec uint, itersPerBit uint) *loop {
	return &loop{
		name:          name,
		maxIterations: 10 + uint64(itersPerBit)*uint64(prec),
		prec:          prec,
	}
}

// done reports whether term is negligible against sum.
func (l *loop) done(sum, term *big.Float) bool {
	if term.Sign() == 0 {
		return true
	}
	if sum.Sign() != 0 && term.MantExp(nil) < sum.MantExp(nil)-int(l.prec)-1 {
		return true
	}
	l.i++
	if l.i == l.maxIterations {
		// Only reachable through a bug in a series bound.
		panic(fmt.Sprintf("scalar: %s did not converge after %d iterations", l.name, l.maxIterations))
	}
	return false
}
