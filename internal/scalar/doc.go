// Package scalar provides the two coefficient types used by series:
// Float, a float64 wrapper backed by package math, and Big, a
// big.Float wrapper with its own elementary functions.
//
// Both types have value semantics. Methods never modify the receiver.
package scalar
