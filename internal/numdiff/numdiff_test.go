package numdiff

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestCentral(t *testing.T) {
	g := NewWithT(t)

	tests := []struct {
		name string
		f    Func
		x    float64
		n    int
		want float64
	}{
		{"exp first", math.Exp, 1, 1, math.E},
		{"exp second", math.Exp, 1, 2, math.E},
		{"sin first", math.Sin, 0.5, 1, math.Cos(0.5)},
		{"sin second", math.Sin, 0.5, 2, -math.Sin(0.5)},
		{"cube third", func(x float64) float64 { return x * x * x }, 2, 3, 6},
		{"log first", math.Log, 2, 1, 0.5},
		{"value", math.Cos, 0.3, 0, math.Cos(0.3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Central(tt.f, tt.x, tt.n, 0)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(got).To(BeNumerically("~", tt.want, Tolerance(tt.n)*math.Max(1, math.Abs(tt.want))))
		})
	}
}

func TestCentralNegativeOrder(t *testing.T) {
	_, err := Central(math.Exp, 0, -1, 0)
	if !errors.Is(err, ErrOrder) {
		t.Errorf("expected ErrOrder, got %v", err)
	}
}

func TestPartial(t *testing.T) {
	g := NewWithT(t)
	f := func(x []float64) float64 { return x[0] * x[0] * x[1] }
	x := []float64{3, 2}

	dx, err := Partial(f, x, 0, 1, 0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(dx).To(BeNumerically("~", 12, 1e-6))

	dyy, err := Partial(f, x, 1, 2, 0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(dyy).To(BeNumerically("~", 0, 1e-4))

	g.Expect(x).To(Equal([]float64{3, 2}))

	_, err = Partial(f, x, 2, 1, 0)
	g.Expect(err).To(HaveOccurred())
}

func TestStepGrowsWithMagnitude(t *testing.T) {
	if Step(1e6, 1) <= Step(1, 1) {
		t.Error("step should scale with |x|")
	}
	if Step(0, 1) != Step(1, 1) {
		t.Error("step should not shrink below the unit scale")
	}
}
