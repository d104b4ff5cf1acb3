package scalar

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func asParseError(err error, target **ParseError) bool {
	return errors.As(err, target)
}

func mustBig(t *testing.T, s string) Big {
	t.Helper()
	b, err := ParseBig(s, 0)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return b
}

// near reports whether got agrees with the decimal want to about digits places.
func near(t *testing.T, got Big, want string, digits int) bool {
	t.Helper()
	w := mustBig(t, want)
	diff := got.Sub(w).Abs()
	scale := w.Abs()
	if scale.Cmp(NewBig(1, 0)) < 0 {
		scale = NewBig(1, 0)
	}
	tol := scale.Mul(NewBig(10, 0).Pow(NewBigInt(int64(-digits), 0)))
	return diff.Cmp(tol) <= 0
}

func TestBigConstants(t *testing.T) {
	tests := []struct {
		name string
		got  Big
		want string
	}{
		{"pi", Big{}.Pi(), "3.14159265358979323846264338327950288419716939937510582097494459"},
		{"e", NewBigInt(1, 0).Exp(), "2.71828182845904523536028747135266249775724709369995957496696763"},
		{"ln2", NewBigInt(2, 0).Log(), "0.693147180559945309417232121458176568075500134360255254120680009"},
		{"sqrt2", NewBigInt(2, 0).Sqrt(), "1.41421356237309504880168872420969807856967187537694807317667974"},
		{"cbrt2", NewBigInt(2, 0).Cbrt(), "1.25992104989487316476721060727822835057025146470150798008197511"},
	}
	for _, tt := range tests {
		if !near(t, tt.got, tt.want, 60) {
			t.Errorf("%s = %s, want %s", tt.name, tt.got.Text('g', 64), tt.want)
		}
	}
}

func TestBigMatchesFloat(t *testing.T) {
	xs := []float64{-2.75, -0.6, -1e-3, 0.3, 0.5, 0.9, 1.7, 12.5}
	fns := []struct {
		name string
		big  func(Big) Big
		f    func(float64) float64
	}{
		{"exp", Big.Exp, math.Exp},
		{"expm1", Big.Expm1, math.Expm1},
		{"sin", Big.Sin, math.Sin},
		{"cos", Big.Cos, math.Cos},
		{"tan", Big.Tan, math.Tan},
		{"atan", Big.Atan, math.Atan},
		{"sinh", Big.Sinh, math.Sinh},
		{"cosh", Big.Cosh, math.Cosh},
		{"tanh", Big.Tanh, math.Tanh},
		{"asinh", Big.Asinh, math.Asinh},
		{"erf", Big.Erf, math.Erf},
		{"erfc", Big.Erfc, math.Erfc},
		{"cbrt", Big.Cbrt, math.Cbrt},
		{"floor", Big.Floor, math.Floor},
		{"ceil", Big.Ceil, math.Ceil},
		{"round", Big.Round, math.Round},
		{"trunc", Big.Trunc, math.Trunc},
	}
	for _, fn := range fns {
		for _, x := range xs {
			want := fn.f(x)
			got := fn.big(NewBig(x, 0)).Float64()
			if math.Abs(got-want) > 1e-14*math.Max(1, math.Abs(want)) {
				t.Errorf("%s(%v) = %v, want %v", fn.name, x, got, want)
			}
		}
	}
}

func TestBigDomain(t *testing.T) {
	g := NewWithT(t)

	g.Expect(NewBig(-1, 0).Log().IsNaN()).To(BeTrue())
	g.Expect(NewBig(-1, 0).Sqrt().IsNaN()).To(BeTrue())
	g.Expect(NewBig(2, 0).Asin().IsNaN()).To(BeTrue())
	g.Expect(NewBig(0.5, 0).Acosh().IsNaN()).To(BeTrue())
	g.Expect(NewBig(-2, 0).Pow(NewBig(0.5, 0)).IsNaN()).To(BeTrue())
	g.Expect(NewBig(1, 0).Mod(NewBig(0, 0)).IsNaN()).To(BeTrue())

	g.Expect(NewBig(0, 0).Log().IsInf()).To(BeTrue())
	g.Expect(NewBig(0, 0).Log().Sign()).To(Equal(-1))
	g.Expect(NewBig(1, 0).Atanh().Sign()).To(Equal(1))
	g.Expect(NewBig(1, 0).Atanh().IsInf()).To(BeTrue())
	g.Expect(NewBig(0, 0).Pow(NewBig(-1, 0)).IsInf()).To(BeTrue())
}

func TestBigNaNPropagates(t *testing.T) {
	g := NewWithT(t)
	nan := mustBig(t, "NaN")

	g.Expect(nan.IsNaN()).To(BeTrue())
	g.Expect(nan.Add(NewBig(1, 0)).IsNaN()).To(BeTrue())
	g.Expect(nan.Exp().IsNaN()).To(BeTrue())
	g.Expect(nan.Cmp(NewBig(1, 0))).To(Equal(0))
	g.Expect(nan.String()).To(Equal("NaN"))
	g.Expect(math.IsNaN(nan.Float64())).To(BeTrue())

	inf := NewBig(math.Inf(1), 0)
	g.Expect(inf.Sub(inf).IsNaN()).To(BeTrue())
	g.Expect(NewBig(0, 0).Mul(inf).IsNaN()).To(BeTrue())
	g.Expect(NewBig(0, 0).Quo(NewBig(0, 0)).IsNaN()).To(BeTrue())

	// Pow(x, 0) = 1 even for NaN x.
	g.Expect(nan.Pow(NewBig(0, 0)).Float64()).To(Equal(1.0))
}

func TestBigInverseFunctions(t *testing.T) {
	g := NewWithT(t)
	half := mustBig(t, "0.5")

	g.Expect(near(t, half.Asin(), "0.523598775598298873077107230546583814032861566562517636829157432", 60)).To(BeTrue())
	g.Expect(near(t, half.Acos(), "1.04719755119659774615421446109316762806572313312503527365831486", 60)).To(BeTrue())
	g.Expect(near(t, half.Atanh(), "0.549306144334054845697622618461262852323745278911374725867347166", 60)).To(BeTrue())
	g.Expect(near(t, mustBig(t, "3").LambertW0(), "1.049908894964039959988697070552897904589466943706341", 50)).To(BeTrue())
	g.Expect(near(t, mustBig(t, "2").Acosh(), "1.31695789692481670862504634730796844402698197146751647976847226", 60)).To(BeTrue())
}

func TestBigAtan2Quadrants(t *testing.T) {
	tests := []struct {
		y, x float64
	}{
		{1, 1}, {1, -1}, {-1, -1}, {-1, 1},
		{0, -1}, {math.Copysign(0, -1), -1}, {2, 0}, {-2, 0},
		{math.Inf(1), math.Inf(-1)}, {3, math.Inf(1)},
	}
	for _, tt := range tests {
		want := math.Atan2(tt.y, tt.x)
		got := NewBig(tt.y, 0).Atan2(NewBig(tt.x, 0)).Float64()
		if math.Abs(got-want) > 1e-15 || math.Signbit(got) != math.Signbit(want) {
			t.Errorf("atan2(%v, %v) = %v, want %v", tt.y, tt.x, got, want)
		}
	}
}

func TestBigModFrexp(t *testing.T) {
	g := NewWithT(t)

	g.Expect(NewBig(3.25, 0).Mod(NewBig(0.5, 0)).Float64()).To(Equal(0.25))
	g.Expect(NewBig(-3.25, 0).Mod(NewBig(0.5, 0)).Float64()).To(Equal(-0.25))
	g.Expect(NewBig(7, 0).Mod(NewBig(-3, 0)).Float64()).To(Equal(1.0))

	m, e := NewBig(12, 0).Frexp()
	g.Expect(m.Float64()).To(Equal(0.75))
	g.Expect(e).To(Equal(4))
	g.Expect(m.Ldexp(e).Float64()).To(Equal(12.0))
}

func TestBigPowIntegerAndReal(t *testing.T) {
	g := NewWithT(t)

	g.Expect(NewBig(2, 0).Pow(NewBig(10, 0)).Float64()).To(Equal(1024.0))
	g.Expect(NewBig(2, 0).Pow(NewBig(-2, 0)).Float64()).To(Equal(0.25))
	g.Expect(NewBig(-2, 0).Pow(NewBig(3, 0)).Float64()).To(Equal(-8.0))
	g.Expect(near(t, NewBig(2, 0).Pow(mustBig(t, "0.5")), "1.41421356237309504880168872420969807856967187537694807317667974", 60)).To(BeTrue())
	g.Expect(near(t, NewBig(10, 0).Pow(mustBig(t, "1.5")), "31.6227766016837933199889354443271853371955513932521682685750485", 60)).To(BeTrue())
}

func TestParseBigError(t *testing.T) {
	_, err := ParseBig("1.2.3", 0)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Kind != KindBig {
		t.Errorf("kind = %v", pe.Kind)
	}
}

func TestBigPrecision(t *testing.T) {
	a := NewBig(1, 128)
	b := NewBig(3, 512)
	if got := a.Quo(b).Prec(); got != 512 {
		t.Errorf("prec = %d, want 512", got)
	}
	if got := (Big{}).Prec(); got != DefaultPrec {
		t.Errorf("zero value prec = %d", got)
	}
}
