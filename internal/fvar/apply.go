package fvar

import "github.com/san-kum/autodiff/internal/combin"

// Apply composes s with a function whose i-th derivative at s.Root() is
// f(i). The series is summed term by term, which keeps infinite
// derivatives away from structurally zero coefficients.
func (s Series[T]) Apply(f func(i int) T) Series[T] {
	return s.applyDirect(s.divideFactorial(f))
}

// ApplyWithFactorials is Apply with f(i) already divided by i!.
func (s Series[T]) ApplyWithFactorials(f func(i int) T) Series[T] {
	return s.applyDirect(f)
}

// ApplyWithHorner is Apply evaluated by Horner's rule. It needs finite
// derivatives.
func (s Series[T]) ApplyWithHorner(f func(i int) T) Series[T] {
	return s.applyHorner(s.divideFactorial(f))
}

// ApplyWithHornerFactorials is ApplyWithHorner with f(i) already divided by i!.
func (s Series[T]) ApplyWithHornerFactorials(f func(i int) T) Series[T] {
	return s.applyHorner(f)
}

func (s Series[T]) divideFactorial(f func(int) T) func(int) T {
	x0 := s.Root()
	return func(i int) T {
		v := f(i)
		if i < 2 {
			return v
		}
		return v.Quo(x0.FromInt(combin.Factorial(i)))
	}
}

func (s Series[T]) applyDirect(g func(int) T) Series[T] {
	shape := s.Orders()
	if len(shape) == 0 {
		return Lift(g(0))
	}
	z := s.zero()
	eps := s.SetRoot(z)
	epsI := lift(fromInt(z, 1), shape)
	acc := lift(g(0), shape)
	for i := 1; i <= suffixSum(shape); i++ {
		epsI = epsMul(epsI, i-1, 0, eps, 1, 0, shape, z)
		acc = add(acc, epsScale(epsI, i, 0, g(i), shape), shape, z)
	}
	return acc
}

func (s Series[T]) applyHorner(g func(int) T) Series[T] {
	shape := s.Orders()
	if len(shape) == 0 {
		return Lift(g(0))
	}
	z := s.zero()
	eps := s.SetRoot(z)
	n := suffixSum(shape)
	acc := lift(g(n), shape)
	for i := n - 1; i >= 0; i-- {
		acc = addRoot(mul(acc, eps, shape, z), g(i))
	}
	return acc
}

// ApplyN composes the series xs with a function of len(xs) arguments whose
// mixed partial derivative of order idx at the values of xs is f(idx).
// The operands are promoted to a common shape first. f must not retain idx.
func ApplyN[T Scalar[T]](xs []Series[T], f func(idx []int) T) Series[T] {
	return applyN(xs, f, true)
}

// ApplyNWithFactorials is ApplyN with f(idx) already divided by Π idx[k]!.
func ApplyNWithFactorials[T Scalar[T]](xs []Series[T], f func(idx []int) T) Series[T] {
	return applyN(xs, f, false)
}

func applyN[T Scalar[T]](xs []Series[T], f func([]int) T, divide bool) Series[T] {
	idx := make([]int, len(xs))
	if len(xs) == 0 {
		return Lift(f(idx))
	}
	var shape []int
	for _, x := range xs {
		shape = MaxShape(shape, x.Orders())
	}
	x0 := xs[0].Root()
	z := zeroLike(x0)
	coef := func() T {
		v := f(idx)
		if divide {
			v = v.Quo(x0.FromInt(combin.FactorialProduct(idx)))
		}
		return v
	}
	if len(shape) == 0 {
		return Lift(coef())
	}

	n := suffixSum(shape)
	one := lift(fromInt(z, 1), shape)
	powers := make([][]Series[T], len(xs))
	for k, x := range xs {
		eps := conform(x, shape, z).SetRoot(z)
		p := make([]Series[T], n+1)
		p[0] = one
		for e := 1; e <= n; e++ {
			p[e] = epsMul(p[e-1], e-1, 0, eps, 1, 0, shape, z)
		}
		powers[k] = p
	}

	acc := lift(coef(), shape)
	var walk func(k, used int, term Series[T])
	walk = func(k, used int, term Series[T]) {
		if k == len(xs) {
			if used == 0 {
				return
			}
			if c := coef(); !c.IsZero() {
				acc = add(acc, epsScale(term, used, 0, c, shape), shape, z)
			}
			return
		}
		for e := 0; used+e <= n; e++ {
			idx[k] = e
			t := term
			if e > 0 {
				t = epsMul(term, used, 0, powers[k][e], e, 0, shape, z)
			}
			walk(k+1, used+e, t)
		}
		idx[k] = 0
	}
	walk(0, 0, one)
	return acc
}
