package fvar

import (
	"fmt"
	"os"
	"strconv"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/autodiff/internal/scalar"
)

type mixedPartialsFixture struct {
	Point   []float64 `yaml:"point"`
	Orders  []int     `yaml:"orders"`
	Highest string    `yaml:"highest_order_100_digits"`
	Values  []string  `yaml:"values"`
}

func loadMixedPartials(t *testing.T) mixedPartialsFixture {
	t.Helper()
	data, err := os.ReadFile("testdata/mixed_partials.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var fx mixedPartialsFixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return fx
}

// seeds returns one variable per point, the k-th seeded at level k.
func seeds[T Real[T]](point []T, orders []int) []Series[T] {
	out := make([]Series[T], len(point))
	for k, p := range point {
		o := make([]int, k+1)
		o[k] = orders[k]
		out[k] = Variable(p, o...)
	}
	return out
}

// mixedFunction is exp(w·sin(x·log(y)/z) + sqrt(w·z/(x·y))) + w²/tan(z).
func mixedFunction[T Real[T]](w, x, y, z Series[T]) Series[T] {
	inner := w.Mul(Sin(x.Mul(Log(y)).Div(z)))
	root := Sqrt(w.Mul(z).Div(x.Mul(y)))
	return Exp(inner.Add(root)).Add(w.Mul(w).Div(Tan(z)))
}

func TestMixedPartialsFloat(t *testing.T) {
	fx := loadMixedPartials(t)

	point := make([]F, len(fx.Point))
	for i, p := range fx.Point {
		point[i] = F(p)
	}
	v := seeds(point, fx.Orders)
	f := mixedFunction(v[0], v[1], v[2], v[3])

	got := f.Derivatives()
	if len(got) != len(fx.Values) {
		t.Fatalf("got %d derivatives, fixture has %d", len(got), len(fx.Values))
	}
	for i, e := range got {
		want, err := strconv.ParseFloat(fx.Values[i], 64)
		if err != nil {
			t.Fatalf("value %d: %v", i, err)
		}
		checkClose(t, fmt.Sprintf("f%v", e.Index), e.Value, want, 1e-9)
	}
}

func TestMixedPartialsBig(t *testing.T) {
	if testing.Short() {
		t.Skip("arbitrary precision run is slow")
	}
	fx := loadMixedPartials(t)

	point := make([]scalar.Big, len(fx.Point))
	for i, p := range fx.Point {
		point[i] = scalar.NewBig(p, 256)
	}
	v := seeds(point, fx.Orders)
	f := mixedFunction(v[0], v[1], v[2], v[3])

	want, err := scalar.ParseBig(fx.Highest, 256)
	if err != nil {
		t.Fatal(err)
	}
	got := f.MustDerivative(fx.Orders...)
	if rel := relErr(got, want); rel > 1e-40 {
		t.Errorf("highest-order partial = %s, relative error %g", got.Text('g', 60), rel)
	}
}
