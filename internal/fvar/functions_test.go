package fvar

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/autodiff/internal/scalar"
)

func TestUnaryFunctionDerivatives(t *testing.T) {
	s3 := math.Sqrt(3)
	s2 := math.Sqrt(2)
	sin1, cos1 := math.Sin(1), math.Cos(1)
	sh1, ch1 := math.Sinh(1), math.Cosh(1)
	ln2 := math.Ln2
	erfK := 1 / (math.E * math.Sqrt(math.Pi))

	acosAt := func(c float64) []float64 {
		q := 1 - c*c
		return []float64{
			math.Acos(c),
			-1 / math.Sqrt(q),
			-c / math.Pow(q, 1.5),
			-(2*c*c + 1) / math.Pow(q, 2.5),
			-3 * c * (2*c*c + 3) / math.Pow(q, 3.5),
			-(24*(c*c+3)*c*c + 9) / math.Pow(q, 4.5),
		}
	}
	asinAt := func(c float64) []float64 {
		d := acosAt(c)
		d[0] = math.Asin(c)
		for i := 1; i < len(d); i++ {
			d[i] = -d[i]
		}
		return d
	}
	sqrtAt := func(c float64, n int) []float64 {
		out := make([]float64, n+1)
		coef := 1.0
		for i := range out {
			out[i] = coef * math.Pow(c, 0.5-float64(i))
			coef *= 0.5 - float64(i)
		}
		return out
	}

	tests := []struct {
		name string
		fn   func(Series[F]) Series[F]
		x    float64
		want []float64
		tol  float64
	}{
		{"exp", Exp[F], 1, []float64{math.E, math.E, math.E, math.E, math.E}, 1e-15},
		{"expm1", Expm1[F], 1e-10, []float64{math.Expm1(1e-10), math.Exp(1e-10), math.Exp(1e-10)}, 1e-15},
		{"log", Log[F], 2, []float64{ln2, 0.5, -0.25, 2.0 / 8, -6.0 / 16, 24.0 / 32}, 1e-14},
		{"log1p", Log1p[F], 1, []float64{ln2, 0.5, -0.25, 2.0 / 8}, 1e-14},
		{"sqrt", Sqrt[F], 4, sqrtAt(4, 5), 1e-14},
		{"sin", Sin[F], 1, []float64{sin1, cos1, -sin1, -cos1, sin1, cos1}, 1e-15},
		{"cos", Cos[F], 1, []float64{cos1, -sin1, -cos1, sin1, cos1, -sin1}, 1e-15},
		{"tan", Tan[F], math.Pi / 3, []float64{s3, 4, 8 * s3, 80, 352 * s3, 5824}, 1e-12},
		{"asin", Asin[F], 0.5, asinAt(0.5), 1e-13},
		{"acos", Acos[F], 0.5, acosAt(0.5), 1e-13},
		{"atan", Atan[F], 1, []float64{math.Pi / 4, 0.5, -0.5, 0.5, 0, -3}, 1e-13},
		{"sinh", Sinh[F], 1, []float64{sh1, ch1, sh1, ch1, sh1, ch1}, 1e-15},
		{"cosh", Cosh[F], 1, []float64{ch1, sh1, ch1, sh1, ch1, sh1}, 1e-15},
		{"asinh", Asinh[F], 1, []float64{math.Asinh(1), 1 / s2, -1 / (2 * s2), 1 / (4 * s2), 3 / (8 * s2), -39 / (16 * s2)}, 1e-13},
		{"acosh", Acosh[F], 2, []float64{math.Acosh(2), 1 / s3, -2 / (3 * s3), 1 / s3, -22 / (9 * s3), 227 / (27 * s3)}, 1e-13},
		{"atanh", Atanh[F], 0.5, []float64{math.Atanh(0.5), 4.0 / 3, 16.0 / 9, 224.0 / 27, 1280.0 / 27, 31232.0 / 81}, 1e-13},
		{"erf", Erf[F], 1, []float64{math.Erf(1), 2 * erfK, -4 * erfK, 4 * erfK, 8 * erfK, -40 * erfK}, 1e-13},
		{"erfc", Erfc[F], 1, []float64{math.Erfc(1), -2 * erfK, 4 * erfK, -4 * erfK, -8 * erfK, 40 * erfK}, 1e-13},
		{"sinc", Sinc[F], 1, []float64{
			sin1, cos1 - sin1, sin1 - 2*cos1, 5*cos1 - 3*sin1, 13*sin1 - 20*cos1, 101*cos1 - 65*sin1,
		}, 1e-13},
		{"sinc at zero", Sinc[F], 0, []float64{1, 0, -1.0 / 3, 0, 1.0 / 5, 0, -1.0 / 7, 0, 1.0 / 9, 0, -1.0 / 11}, 1e-15},
		{"cbrt of negative", Cbrt[F], -8, []float64{-2, 1.0 / 12, 1.0 / 144}, 1e-15},
		{"abs of negative", Abs[F], -2, []float64{2, -1, 0}, 0},
		{"abs of positive", Abs[F], 2, []float64{2, 1, 0}, 0},
		{"abs at zero", Abs[F], 0, []float64{0, 0, 0}, 0},
		{"ldexp", func(x Series[F]) Series[F] { return Ldexp(x, 3) }, 3.5, []float64{28, 8, 0, 0}, 0},
		{"fmod", func(x Series[F]) Series[F] { return Fmod(x, 0.5) }, 3.25, []float64{0.25, 1, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := tt.fn(fv(tt.x, len(tt.want)-1))
			for i, want := range tt.want {
				checkClose(t, fmt.Sprintf("%s derivative %d", tt.name, i), y.MustDerivative(i), want, tt.tol)
			}
		})
	}
}

func TestTanhLargeArguments(t *testing.T) {
	for _, x0 := range []float64{-800, -0.5, 0, 0.5, 800} {
		y := Tanh(fv(x0, 3))
		th := math.Tanh(x0)
		sech2 := 1 - th*th
		want := []float64{th, sech2, -2 * th * sech2, 2 * sech2 * (3*th*th - 1)}
		for i, w := range want {
			checkClose(t, fmt.Sprintf("tanh(%v) derivative %d", x0, i), y.MustDerivative(i), w, 1e-13)
		}
	}
}

func TestFrexp(t *testing.T) {
	y, e := Frexp(fv(3.5, 3))
	if e != 2 {
		t.Errorf("exponent = %d, want 2", e)
	}
	if diff := cmp.Diff([]float64{0.875, 0.25, 0, 0}, derivs(t, y)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLambertW0(t *testing.T) {
	answers := []string{
		"1.049908894964039959988697070552897904589466943706341",
		"0.1707244807388472968312949774415522047470762509741737",
		"-0.04336545501146252734105411312976167858858970875797718",
		"0.02321456264324789334313200360870492961288748451791104",
		"-0.01909049778427783072663170526188353869136655225133878",
		"0.02122935002563637629500975949987796094687564718834156",
		"-0.02979093848448877259041971538394953658978044986784643",
		"0.05051290266216717699803334605370337985567016837482099",
		"-0.1004503154972645060971099914384090562800544486549660",
		"0.2292464437392250211967939182075930820454464472006425",
		"-0.5905839053125614593682763387470654123192290838719517",
	}
	m := len(answers) - 1

	t.Run("float", func(t *testing.T) {
		y := LambertW0(fv(3, m))
		for i, a := range answers {
			want, err := scalar.ParseFloat(a)
			if err != nil {
				t.Fatal(err)
			}
			checkClose(t, fmt.Sprintf("W0 derivative %d", i), y.MustDerivative(i), float64(want), 1e-12)
		}
	})

	t.Run("big", func(t *testing.T) {
		y := LambertW0(Variable(scalar.NewBigInt(3, 256), m))
		for i, a := range answers {
			want, err := scalar.ParseBig(a, 256)
			if err != nil {
				t.Fatal(err)
			}
			if rel := relErr(y.MustDerivative(i), want); rel > 1e-45 {
				t.Errorf("W0 derivative %d = %s, relative error %g", i, y.MustDerivative(i).Text('g', 50), rel)
			}
		}
	})
}

// relErr returns |got-want|/|want| as a float64.
func relErr(got, want scalar.Big) float64 {
	d := got.Sub(want).Quo(want)
	if d.IsNaN() {
		return math.Inf(1)
	}
	f, _ := new(big.Float).Abs(d.Float()).Float64()
	return f
}

func TestLogTimesVariable(t *testing.T) {
	const cx, cy = 2.0, 3.0
	const m, n = 5, 4
	x := fv(cx, m)
	y := fv(cy, m, n)
	z := y.Mul(Log(x))

	checkClose(t, "z(0,0)", z.MustDerivative(0, 0), cy*math.Log(cx), 1e-15)
	checkClose(t, "z(0,1)", z.MustDerivative(0, 1), math.Log(cx), 1e-15)
	for i := 1; i <= m; i++ {
		sign := math.Pow(-1, float64(i-1))
		checkClose(t, fmt.Sprintf("z(%d,0)", i), z.MustDerivative(i, 0), sign*factorial(i-1)*cy/math.Pow(cx, float64(i)), 1e-13)
		checkClose(t, fmt.Sprintf("z(%d,1)", i), z.MustDerivative(i, 1), sign*factorial(i-1)/math.Pow(cx, float64(i)), 1e-13)
		for j := 2; j <= n; j++ {
			if got := z.MustDerivative(i, j); got != 0 {
				t.Errorf("z(%d,%d) = %v, want 0", i, j, got)
			}
		}
	}

	l := math.Log(cx)
	want := math.Pow(cx, cy-2) * l * l * (4*(2*cy-1)*l + 12 + (cy-1)*cy*l*l)
	checkClose(t, "exp(z)(2,4)", Exp(z).MustDerivative(2, 4), want, 1e-12)
}

func TestPow(t *testing.T) {
	const cx, cy = 2.0, 3.0
	const m, n = 5, 4
	x := fv(cx, m)
	y := fv(cy, m, n)
	l := math.Log(cx)

	t.Run("constant exponent", func(t *testing.T) {
		got := derivs(t, Pow(x, Lift(F(cy))))
		if diff := cmp.Diff([]float64{8, 12, 12, 6, 0, 0}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("constant base", func(t *testing.T) {
		z := Pow(Lift(F(cx)), y)
		for j := 0; j <= n; j++ {
			checkClose(t, fmt.Sprintf("2^y (0,%d)", j), z.MustDerivative(0, j), 8*math.Pow(l, float64(j)), 1e-13)
			for i := 1; i <= m; i++ {
				if got := z.MustDerivative(i, j); got != 0 {
					t.Errorf("2^y (%d,%d) = %v, want 0", i, j, got)
				}
			}
		}
	})

	t.Run("variable base and exponent", func(t *testing.T) {
		z := Pow(x, y)
		for j := 0; j <= n; j++ {
			fj := float64(j)
			checkClose(t, fmt.Sprintf("x^y (0,%d)", j), z.MustDerivative(0, j), 8*math.Pow(l, fj), 1e-12)
			checkClose(t, fmt.Sprintf("x^y (1,%d)", j), z.MustDerivative(1, j), 4*math.Pow(l, fj-1)*(3*l+fj), 1e-12)
			var want float64
			switch j {
			case 0:
				want = 2 * 6
			case 1:
				want = 2 * (6*l + 5)
			default:
				want = 2 * math.Pow(l, fj-2) * (5*fj*l + (fj-1)*fj + 6*l*l)
			}
			checkClose(t, fmt.Sprintf("x^y (2,%d)", j), z.MustDerivative(2, j), want, 1e-12)
		}
	})
}

func TestAtan2(t *testing.T) {
	s3 := math.Sqrt(3)
	expected := []float64{
		math.Pi / 3, -0.5 * s3, 0.5 * s3, 0, -3 * s3, 12 * s3,
		0.5, 0.5, -2, 3, 12, -120,
		-0.5 * s3, 0, 3 * s3, -12 * s3, 0, 360 * s3,
		2, -3, -12, 120, -360, -2520,
		-3 * s3, 12 * s3, 0, -360 * s3, 2520 * s3, 0,
		12, -120, 360, 2520, -40320, 181440,
	}
	y := fv(s3/2, 5)
	x := fv(0.5, 0, 5)
	z := Atan2(y, x)
	for i := 0; i <= 5; i++ {
		scale := 1.0
		for _, v := range expected[i*6 : i*6+6] {
			scale = math.Max(scale, math.Abs(v))
		}
		for j := 0; j <= 5; j++ {
			want := expected[i*6+j]
			tol := 1e-12 * scale
			checkClose(t, fmt.Sprintf("atan2 (%d,%d)", i, j), z.MustDerivative(i, j), want, tol)
		}
	}

	checkClose(t, "scalar atan2", Atan2(Lift(F(1)), Lift(F(-1))).Root(), 3*math.Pi/4, 1e-15)
}

func TestHypotMaxMin(t *testing.T) {
	x := fv(3, 2)
	y := fv(4, 0, 2)

	h := Hypot(x, y)
	checkClose(t, "hypot", h.MustDerivative(0, 0), 5, 1e-15)
	checkClose(t, "hypot_x", h.MustDerivative(1, 0), 0.6, 1e-15)
	checkClose(t, "hypot_y", h.MustDerivative(0, 1), 0.8, 1e-15)
	checkClose(t, "hypot_xy", h.MustDerivative(1, 1), -12.0/125, 1e-14)

	hi := Max(x, y)
	if got := hi.Orders(); !cmp.Equal(got, []int{2, 2}) {
		t.Fatalf("Max orders = %v", got)
	}
	if hi.MustDerivative(0, 1) != 1 || hi.MustDerivative(1, 0) != 0 {
		t.Errorf("Max picked the wrong operand: %v", hi)
	}
	lo := Min(x, y)
	if lo.MustDerivative(1, 0) != 1 || lo.MustDerivative(0, 1) != 0 {
		t.Errorf("Min picked the wrong operand: %v", lo)
	}
}

func TestFmodSeries(t *testing.T) {
	x := fv(7.5, 2)
	y := fv(2, 0, 2)
	z := FmodSeries(x, y)
	checkClose(t, "value", z.MustDerivative(0, 0), 1.5, 0)
	checkClose(t, "d/dx", z.MustDerivative(1, 0), 1, 0)
	checkClose(t, "d/dy", z.MustDerivative(0, 1), -3, 0)
}

func TestApplyAgreesWithHorner(t *testing.T) {
	x := fv(0.3, 3).Mul(fv(1.7, 0, 2))
	d := func(i int) F { return F(1 / float64(i+1)) }
	direct := x.Apply(d)
	horner := x.ApplyWithHorner(d)
	for _, e := range direct.Derivatives() {
		checkClose(t, fmt.Sprint(e.Index), horner.MustDerivative(e.Index...), float64(e.Value), 1e-13)
	}
}

func TestApplyN(t *testing.T) {
	// f(a, b) = a·b has f_a = b, f_b = a, f_ab = 1.
	a := fv(2, 2)
	b := fv(5, 0, 2)
	z := ApplyN([]Series[F]{a, b}, func(idx []int) F {
		switch {
		case idx[0] == 0 && idx[1] == 0:
			return 10
		case idx[0] == 1 && idx[1] == 0:
			return 5
		case idx[0] == 0 && idx[1] == 1:
			return 2
		case idx[0] == 1 && idx[1] == 1:
			return 1
		}
		return 0
	})
	want := a.Mul(b)
	for _, e := range want.Derivatives() {
		checkClose(t, fmt.Sprint(e.Index), z.MustDerivative(e.Index...), float64(e.Value), 1e-15)
	}
}
