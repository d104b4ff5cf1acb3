package experiment

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Curve is the k-th pure derivative in the swept variable, sampled at Xs.
type Curve struct {
	Order int       `json:"order"`
	Ys    []float64 `json:"ys"`
}

type SweepResult struct {
	Var    string    `json:"var"`
	Xs     []float64 `json:"xs"`
	Curves []Curve   `json:"curves"`
}

// Sweep evaluates the expression at the configured sweep points, one
// goroutine per point up to GOMAXPROCS. The other variables stay at their
// configured values.
func (e *Experiment) Sweep(ctx context.Context) (*SweepResult, error) {
	s := e.cfg.Sweep
	if s == nil {
		return nil, ErrNoSweep
	}
	k := slices.Index(e.cfg.Names(), s.Var)
	if k < 0 {
		return nil, fmt.Errorf("experiment: unknown sweep variable %q", s.Var)
	}
	order := e.cfg.Vars[k].Order

	xs := make([]float64, s.Steps)
	for i := range xs {
		xs[i] = s.From + (s.To-s.From)*float64(i)/float64(s.Steps-1)
	}
	res := &SweepResult{Var: s.Var, Xs: xs, Curves: make([]Curve, order+1)}
	for n := range res.Curves {
		res.Curves[n] = Curve{Order: n, Ys: make([]float64, len(xs))}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	base := e.cfg.Values()
	for i, x := range xs {
		i, x := i, x
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			point := slices.Clone(base)
			point[k] = x
			for n := range res.Curves {
				var (
					v   float64
					err error
				)
				if n == 0 {
					v, err = e.prob.value(point)
				} else {
					v, err = e.prob.pure(point, k, n)
				}
				if err != nil {
					return fmt.Errorf("sweep %s=%g: %w", s.Var, x, err)
				}
				res.Curves[n].Ys[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.log.Debug("swept", "var", s.Var, "points", len(xs), "orders", order)
	return res, nil
}
