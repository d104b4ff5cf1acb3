// Package fvar implements forward-mode automatic differentiation with
// nested truncated Taylor series.
//
// A [Series] of depth k represents a function of k variables expanded
// around a point. Coefficient i at each level holds the i-th derivative
// in that variable divided by i!, so one evaluation of an expression on
// series values yields every mixed partial derivative up to the chosen
// orders.
//
//   - [Variable], [Constant], [Zero], [Lift]: construction
//   - [Series.Add], [Series.Mul], [Series.Div]: truncated arithmetic
//   - [Exp], [Log], [Pow], [Sin], [Atan2], ...: elementary functions
//   - [Series.Derivative], [Series.Derivatives]: extraction
//
// # Example
//
//	x := fvar.Variable(scalar.Float(2), 3)       // d/dx up to order 3
//	y := fvar.Variable(scalar.Float(1), 0, 2)    // d/dy up to order 2
//	z := fvar.Exp(x.Mul(y))
//	v, _ := z.DerivativeAt(2, 1)                 // d³z / dx² dy
//
// # Shapes
//
// Operands of different shapes are promoted to their per-level maximum
// ([MaxShape]). A shallower series acts as a constant in the levels it
// lacks, and a depth-0 series acts as a plain scalar.
//
// # Thread Safety
//
// Series values are immutable once constructed and may be shared between
// goroutines without synchronization.
package fvar
