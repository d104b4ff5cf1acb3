package fvar

import (
	"math"

	g "github.com/onsi/ginkgo/v2"
	o "github.com/onsi/gomega"
)

// rootsOf returns the derivative values of s as plain floats.
func rootsOf(s Series[F]) []float64 {
	var out []float64
	for _, e := range s.Derivatives() {
		out = append(out, float64(e.Value))
	}
	return out
}

var _ = g.Describe("Series algebra", func() {
	var x, y Series[F]

	g.BeforeEach(func() {
		x = fv(1.5, 3)
		y = fv(-0.75, 0, 3)
	})

	g.Describe("addition and multiplication", func() {
		g.It("is commutative", func() {
			o.Expect(rootsOf(x.Add(y))).To(o.Equal(rootsOf(y.Add(x))))
			o.Expect(rootsOf(x.Mul(y))).To(o.Equal(rootsOf(y.Mul(x))))
		})

		g.It("distributes multiplication over addition", func() {
			z := fv(2.25, 3, 3)
			lhs := rootsOf(x.Mul(y.Add(z)))
			rhs := rootsOf(x.Mul(y).Add(x.Mul(z)))
			o.Expect(lhs).To(o.HaveLen(len(rhs)))
			for i := range lhs {
				o.Expect(lhs[i]).To(o.BeNumerically("~", rhs[i], 1e-12))
			}
		})

		g.It("has the zero series as additive identity", func() {
			o.Expect(rootsOf(x.Add(Zero[F](3)))).To(o.Equal(rootsOf(x)))
		})

		g.It("cancels with its negation", func() {
			for _, v := range rootsOf(x.Mul(y).Sub(x.Mul(y))) {
				o.Expect(v).To(o.BeZero())
			}
		})
	})

	g.Describe("division", func() {
		g.It("undoes multiplication", func() {
			q := x.Mul(y).Div(y)
			want := rootsOf(x.Add(Zero[F](3, 3)))
			got := rootsOf(q)
			for i := range want {
				o.Expect(got[i]).To(o.BeNumerically("~", want[i], 1e-12))
			}
		})

		g.It("gives a NaN-free infinite expansion at a zero divisor", func() {
			inv := fv(0, 3).Inverse()
			for _, v := range rootsOf(inv) {
				o.Expect(math.IsInf(v, 0)).To(o.BeTrue())
			}
		})
	})

	g.Describe("shape", func() {
		g.It("promotes to the per-level maximum", func() {
			o.Expect(x.Mul(y).Orders()).To(o.Equal([]int{3, 3}))
			o.Expect(x.Add(fv(1, 1, 1, 2)).Orders()).To(o.Equal([]int{3, 1, 2}))
		})

		g.It("keeps operands unchanged", func() {
			before := x.String()
			_ = x.Mul(y).Add(x).Div(y)
			o.Expect(x.String()).To(o.Equal(before))
		})

		g.It("reports its total order", func() {
			o.Expect(x.Mul(y).OrderSum()).To(o.Equal(6))
			o.Expect(Lift(F(1)).OrderSum()).To(o.BeZero())
		})
	})

	g.Describe("elementary identities", func() {
		g.DescribeTable("hold to rounding",
			func(lhs, rhs func(Series[F]) Series[F]) {
				v := fv(0.4, 6)
				a, b := rootsOf(lhs(v)), rootsOf(rhs(v))
				for i := range a {
					o.Expect(a[i]).To(o.BeNumerically("~", b[i], 1e-9))
				}
			},
			g.Entry("exp(log x) = x", func(v Series[F]) Series[F] { return Exp(Log(v)) }, func(v Series[F]) Series[F] { return v }),
			g.Entry("sin² + cos² = 1",
				func(v Series[F]) Series[F] { s, c := Sin(v), Cos(v); return s.Mul(s).Add(c.Mul(c)) },
				func(v Series[F]) Series[F] { return Constant(F(1), 6) }),
			g.Entry("cosh² - sinh² = 1",
				func(v Series[F]) Series[F] { s, c := Sinh(v), Cosh(v); return c.Mul(c).Sub(s.Mul(s)) },
				func(v Series[F]) Series[F] { return Constant(F(1), 6) }),
			g.Entry("tanh = sinh/cosh", Tanh[F], func(v Series[F]) Series[F] { return Sinh(v).Div(Cosh(v)) }),
			g.Entry("atanh(tanh x) = x", func(v Series[F]) Series[F] { return Atanh(Tanh(v)) }, func(v Series[F]) Series[F] { return v }),
			g.Entry("asin + acos = π/2",
				func(v Series[F]) Series[F] { return Asin(v).Add(Acos(v)) },
				func(v Series[F]) Series[F] { return Constant(F(math.Pi/2), 6) }),
			g.Entry("sqrt(x)² = x", func(v Series[F]) Series[F] { r := Sqrt(v); return r.Mul(r) }, func(v Series[F]) Series[F] { return v }),
			g.Entry("cbrt(x)³ = x", func(v Series[F]) Series[F] { return PowConst(Cbrt(v), 3) }, func(v Series[F]) Series[F] { return v }),
			g.Entry("erf + erfc = 1",
				func(v Series[F]) Series[F] { return Erf(v).Add(Erfc(v)) },
				func(v Series[F]) Series[F] { return Constant(F(1), 6) }),
			g.Entry("W(x)·exp(W(x)) = x",
				func(v Series[F]) Series[F] { w := LambertW0(v); return w.Mul(Exp(w)) },
				func(v Series[F]) Series[F] { return v }),
			g.Entry("expm1 = exp - 1", Expm1[F], func(v Series[F]) Series[F] { return Exp(v).SubScalar(1) }),
		)
	})
})
