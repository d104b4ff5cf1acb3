// Package expr compiles infix expressions onto truncated Taylor series.
//
// An expression such as
//
//	exp(w*sin(x*log(y)/z) + sqrt(w*z/(x*y))) + w*w/tan(z)
//
// is scanned, parsed into a Node tree and compiled against a Registry
// into a Program. Evaluating the program with every variable bound to a
// seeded fvar.Series yields all partial derivatives in one pass.
//
// Operators are + - * / and ^ (also written **), with the usual
// precedence; ^ is right associative and binds tighter than unary minus.
// The identifiers pi and e are constants.
package expr
