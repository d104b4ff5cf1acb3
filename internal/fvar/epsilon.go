package fvar

// The helpers below multiply powers of ε, a series whose value is zero.
// A power ε^z has no terms of total degree below z, so the products skip
// coefficients that are known to vanish. isum is the degree already
// consumed by the enclosing levels.

func suffixSum(shape []int) int {
	n := 0
	for _, o := range shape {
		n += o
	}
	return n
}

// leadingZeros returns how many leading coefficients at this level vanish
// for a factor of degree at least z.
func leadingZeros(order, orderSum, z, isum int) int {
	if orderSum+isum < order+z {
		return order + z - (orderSum + isum)
	}
	return 0
}

// epsMul multiplies a (degree at least z0) by b (degree at least z1). Both
// must have the given shape.
func epsMul[T Scalar[T]](a Series[T], z0, isum0 int, b Series[T], z1, isum1 int, shape []int, z T) Series[T] {
	if len(shape) == 0 {
		return Series[T]{x: a.x.Mul(b.x)}
	}
	order, sum := shape[0], suffixSum(shape)
	m0 := leadingZeros(order, sum, z0, isum0)
	m1 := leadingZeros(order, sum, z1, isum1)
	iMax := 0
	if m0+m1 < order {
		iMax = order - (m0 + m1)
	}

	inner := shape[1:]
	c := make([]Series[T], order+1)
	for i := 0; i <= iMax; i++ {
		j := order - i
		if len(inner) == 0 {
			acc := z
			for k := m0; k <= j-m1; k++ {
				acc = acc.Add(a.c[k].x.Mul(b.c[j-k].x))
			}
			c[j] = Series[T]{x: acc}
			continue
		}
		acc := zeros(z, inner)
		i0max := 0
		if m1 < j {
			i0max = j - m1
		}
		for i0 := m0; i0 <= i0max; i0++ {
			i1 := j - i0
			acc = add(acc, epsMul(a.c[i0], z0, isum0+i0, b.c[i1], z1, isum1+i1, inner, z), inner, z)
		}
		c[j] = acc
	}
	for j := 0; j < order-iMax; j++ {
		c[j] = zeros(z, inner)
	}
	return Series[T]{c: c}
}

// epsScale multiplies a (degree at least z0) by the scalar v, leaving
// vanishing and zero coefficients untouched.
func epsScale[T Scalar[T]](a Series[T], z0, isum0 int, v T, shape []int) Series[T] {
	if len(shape) == 0 {
		return a
	}
	order := shape[0]
	m0 := leadingZeros(order, suffixSum(shape), z0, isum0)
	c := make([]Series[T], len(a.c))
	copy(c, a.c)
	for i := m0; i <= order; i++ {
		if len(shape) > 1 {
			c[i] = epsScale(a.c[i], z0, isum0+i, v, shape[1:])
		} else if !a.c[i].x.IsZero() {
			c[i] = Series[T]{x: a.c[i].x.Mul(v)}
		}
	}
	return Series[T]{c: c}
}
