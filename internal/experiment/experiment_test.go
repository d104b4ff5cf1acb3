package experiment

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/autodiff/internal/config"
)

func mustNew(t *testing.T, cfg *config.Config) *Experiment {
	t.Helper()
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestRunFourthPower(t *testing.T) {
	g := NewWithT(t)
	res, err := mustNew(t, config.GetPreset("fourth_power")).Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(res.Vars).To(Equal([]string{"x"}))
	g.Expect(res.Orders).To(Equal([]int{5}))
	g.Expect(res.Value).To(Equal("16"))
	want := []float64{16, 32, 48, 48, 24, 0}
	g.Expect(res.Entries).To(HaveLen(len(want)))
	for i, e := range res.Entries {
		g.Expect(e.Float).To(BeNumerically("~", want[i], 1e-12))
	}
	g.Expect(res.Entries[2].Index).To(Equal([]int{2}))
}

func TestRunMixedPartialsShape(t *testing.T) {
	g := NewWithT(t)
	res, err := mustNew(t, config.GetPreset("mixed_partials")).Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Entries).To(HaveLen(4 * 3 * 5 * 4))
	g.Expect(res.Entries[0].Float).To(BeNumerically("~", 19878.40628980434922, 1e-6))
	last := res.Entries[len(res.Entries)-1]
	g.Expect(last.Index).To(Equal([]int{3, 2, 4, 3}))
	g.Expect(last.Float).To(BeNumerically("~", 1976.3196007477977, 1e-5))
}

func TestRunBigLambert(t *testing.T) {
	g := NewWithT(t)
	cfg := config.GetPreset("lambert")
	cfg.Output.Digits = 40
	res, err := mustNew(t, cfg).Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Scalar).To(Equal("big"))
	g.Expect(res.Precision).To(Equal(uint(256)))
	g.Expect(res.Entries).To(HaveLen(11))
	g.Expect(res.Entries[0].Value).To(HavePrefix("1.04990889496403995998869707055289790458"))
	g.Expect(res.Entries[10].Value).To(HavePrefix("-0.5905839053125614593682763387470654123"))
}

func TestRunUnusedVariable(t *testing.T) {
	g := NewWithT(t)
	cfg := config.DefaultConfig()
	cfg.Expression = "x^2"
	cfg.Vars = []config.Var{{Name: "x", Value: 3, Order: 2}, {Name: "y", Value: 1, Order: 1}}
	res, err := mustNew(t, cfg).Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	for _, e := range res.Entries {
		g.Expect(e.Index).To(HaveLen(2))
	}
}

func TestRunConstantExpression(t *testing.T) {
	g := NewWithT(t)
	cfg := config.DefaultConfig()
	cfg.Expression = "2*pi"
	res, err := mustNew(t, cfg).Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Entries).To(HaveLen(1))
	g.Expect(res.Entries[0].Float).To(BeNumerically("~", 2*math.Pi, 1e-15))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := mustNew(t, config.GetPreset("fourth_power")).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Expression = "unknown_fn(x)"
	cfg.Vars = []config.Var{{Name: "x", Value: 1, Order: 1}}
	if _, err := New(cfg, nil); err == nil || !strings.Contains(err.Error(), "unknown function") {
		t.Errorf("expected unknown function error, got %v", err)
	}

	cfg.Expression = "x +"
	if _, err := New(cfg, nil); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected config.ErrInvalid, got %v", err)
	}
}

func TestSweep(t *testing.T) {
	g := NewWithT(t)
	cfg := config.GetPreset("fourth_power")
	cfg.Sweep.Steps = 9
	res, err := mustNew(t, cfg).Sweep(context.Background())
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(res.Xs).To(HaveLen(9))
	g.Expect(res.Curves).To(HaveLen(6))
	for i, x := range res.Xs {
		g.Expect(res.Curves[0].Ys[i]).To(BeNumerically("~", math.Pow(x, 4), 1e-12))
		g.Expect(res.Curves[1].Ys[i]).To(BeNumerically("~", 4*math.Pow(x, 3), 1e-12))
		g.Expect(res.Curves[4].Ys[i]).To(BeNumerically("~", 24, 1e-12))
		g.Expect(res.Curves[5].Ys[i]).To(BeZero())
	}
}

func TestSweepSecondVariable(t *testing.T) {
	g := NewWithT(t)
	cfg := config.GetPreset("ylogx")
	cfg.Sweep = &config.Sweep{Var: "y", From: 1, To: 2, Steps: 3}
	res, err := mustNew(t, cfg).Sweep(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	for i, y := range res.Xs {
		g.Expect(res.Curves[0].Ys[i]).To(BeNumerically("~", y*math.Ln2, 1e-14))
		g.Expect(res.Curves[1].Ys[i]).To(BeNumerically("~", math.Ln2, 1e-14))
		g.Expect(res.Curves[2].Ys[i]).To(BeZero())
	}
}

func TestSweepWithoutSection(t *testing.T) {
	_, err := mustNew(t, config.GetPreset("log_origin")).Sweep(context.Background())
	if !errors.Is(err, ErrNoSweep) {
		t.Errorf("expected ErrNoSweep, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	g := NewWithT(t)
	rows, err := mustNew(t, config.GetPreset("ylogx")).Check(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	// x and y each contribute first and second order rows.
	g.Expect(rows).To(HaveLen(4))
	for _, r := range rows {
		g.Expect(r.OK).To(BeTrue(), "%s order %d: series %g numeric %g", r.Var, r.Order, r.Series, r.Numeric)
	}
	g.Expect(rows[0].Series).To(BeNumerically("~", 1.5, 1e-14))
}

func TestCheckUnusedLeadingVariable(t *testing.T) {
	g := NewWithT(t)
	cfg := config.DefaultConfig()
	cfg.Expression = "y*y"
	cfg.Vars = []config.Var{{Name: "x", Value: 1, Order: 2}, {Name: "y", Value: 3, Order: 2}}
	rows, err := mustNew(t, cfg).Check(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rows).To(HaveLen(4))
	for _, r := range rows {
		g.Expect(r.OK).To(BeTrue(), "%s order %d: series %g numeric %g", r.Var, r.Order, r.Series, r.Numeric)
		if r.Var == "x" {
			g.Expect(r.Series).To(BeZero())
		}
	}
	g.Expect(rows[2].Series).To(BeNumerically("~", 6, 1e-12))
	g.Expect(rows[3].Series).To(BeNumerically("~", 2, 1e-12))
}

func TestFunctionsAndScalars(t *testing.T) {
	g := NewWithT(t)
	g.Expect(NewRegistry().ListScalars()).To(Equal([]string{"big", "float"}))
	var names []string
	for _, f := range Functions() {
		names = append(names, f.Name)
	}
	g.Expect(names).To(ContainElements("exp", "atan2", "lambert_w0", "Phi"))
}
