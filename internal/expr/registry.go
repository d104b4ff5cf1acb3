package expr

import (
	"slices"
	"strings"

	"github.com/san-kum/autodiff/internal/fvar"
)

// Function is a named operation on series. Arity is the exact number of
// arguments.
type Function[T fvar.Real[T]] struct {
	Name  string
	Arity int
	Doc   string
	Fn    func(args []fvar.Series[T]) fvar.Series[T]
}

// Registry resolves function names and numeric literals for one scalar type.
type Registry[T fvar.Real[T]] struct {
	funcs   map[string]Function[T]
	literal func(text string) (T, error)
}

// NewRegistry returns a registry holding the built-in functions. literal
// converts number tokens to scalars, so a multi-precision scalar can read
// "0.1" at full precision.
func NewRegistry[T fvar.Real[T]](literal func(text string) (T, error)) *Registry[T] {
	r := &Registry[T]{
		funcs:   make(map[string]Function[T]),
		literal: literal,
	}

	unary := func(name, doc string, fn func(fvar.Series[T]) fvar.Series[T]) {
		r.Register(Function[T]{Name: name, Arity: 1, Doc: doc, Fn: func(a []fvar.Series[T]) fvar.Series[T] {
			return fn(a[0])
		}})
	}
	binary := func(name, doc string, fn func(a, b fvar.Series[T]) fvar.Series[T]) {
		r.Register(Function[T]{Name: name, Arity: 2, Doc: doc, Fn: func(a []fvar.Series[T]) fvar.Series[T] {
			return fn(a[0], a[1])
		}})
	}

	unary("exp", "e^x", fvar.Exp[T])
	unary("expm1", "e^x - 1", fvar.Expm1[T])
	unary("log", "natural logarithm", fvar.Log[T])
	unary("log1p", "log(1 + x)", fvar.Log1p[T])
	unary("sqrt", "square root", fvar.Sqrt[T])
	unary("cbrt", "real cube root", fvar.Cbrt[T])
	unary("sin", "sine", fvar.Sin[T])
	unary("cos", "cosine", fvar.Cos[T])
	unary("tan", "tangent", fvar.Tan[T])
	unary("asin", "inverse sine", fvar.Asin[T])
	unary("acos", "inverse cosine", fvar.Acos[T])
	unary("atan", "inverse tangent", fvar.Atan[T])
	unary("sinh", "hyperbolic sine", fvar.Sinh[T])
	unary("cosh", "hyperbolic cosine", fvar.Cosh[T])
	unary("tanh", "hyperbolic tangent", fvar.Tanh[T])
	unary("asinh", "inverse hyperbolic sine", fvar.Asinh[T])
	unary("acosh", "inverse hyperbolic cosine", fvar.Acosh[T])
	unary("atanh", "inverse hyperbolic tangent", fvar.Atanh[T])
	unary("erf", "error function", fvar.Erf[T])
	unary("erfc", "complementary error function", fvar.Erfc[T])
	unary("lambert_w0", "principal branch of Lambert W", fvar.LambertW0[T])
	unary("sinc", "sin(x)/x, 1 at 0", fvar.Sinc[T])
	unary("abs", "absolute value", fvar.Abs[T])
	unary("floor", "round down, zero derivatives", fvar.Floor[T])
	unary("ceil", "round up, zero derivatives", fvar.Ceil[T])
	unary("round", "round half away from zero, zero derivatives", fvar.Round[T])
	unary("trunc", "round toward zero, zero derivatives", fvar.Trunc[T])
	unary("inv", "1/x", func(x fvar.Series[T]) fvar.Series[T] { return x.Inverse() })
	unary("phi", "standard normal density", normalPDF[T])
	unary("Phi", "standard normal distribution function", normalCDF[T])

	binary("pow", "x^y", fvar.Pow[T])
	binary("atan2", "angle of the point (x, y), called as atan2(y, x)", fvar.Atan2[T])
	binary("hypot", "sqrt(x² + y²)", fvar.Hypot[T])
	binary("fmod", "remainder of x/y with the sign of x", fmod[T])
	binary("min", "operand with the smaller value", fvar.Min[T])
	binary("max", "operand with the larger value", fvar.Max[T])

	return r
}

// Register adds or replaces a function.
func (r *Registry[T]) Register(f Function[T]) {
	r.funcs[f.Name] = f
}

func (r *Registry[T]) Lookup(name string) (Function[T], bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Functions returns every registered function sorted by name.
func (r *Registry[T]) Functions() []Function[T] {
	out := make([]Function[T], 0, len(r.funcs))
	for _, f := range r.funcs {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b Function[T]) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Literal converts a number token to a scalar.
func (r *Registry[T]) Literal(text string) (T, error) {
	return r.literal(text)
}

func fmod[T fvar.Real[T]](x, y fvar.Series[T]) fvar.Series[T] {
	if y.Depth() == 0 {
		return fvar.Fmod(x, y.Root())
	}
	return fvar.FmodSeries(x, y)
}

// normalPDF is exp(-x²/2)/√(2π).
func normalPDF[T fvar.Real[T]](x fvar.Series[T]) fvar.Series[T] {
	x0 := x.Root()
	two := x0.FromFloat64(2)
	k := two.Mul(x0.Pi()).Sqrt()
	return fvar.Exp(x.Mul(x).DivScalar(two).Neg()).DivScalar(k)
}

// normalCDF is erfc(-x/√2)/2.
func normalCDF[T fvar.Real[T]](x fvar.Series[T]) fvar.Series[T] {
	x0 := x.Root()
	two := x0.FromFloat64(2)
	return fvar.Erfc(x.Neg().DivScalar(two.Sqrt())).DivScalar(two)
}
