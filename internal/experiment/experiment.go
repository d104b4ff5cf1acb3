package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/autodiff/internal/config"
	"github.com/san-kum/autodiff/internal/scalar"
)

// ErrNoSweep indicates a sweep request on a config without a sweep section.
var ErrNoSweep = errors.New("experiment: config has no sweep")

// Entry is one mixed partial derivative. Value keeps the scalar's full
// text, Float its nearest float64.
type Entry struct {
	Index []int   `json:"index"`
	Value string  `json:"value"`
	Float float64 `json:"float"`
}

// Result is the outcome of one evaluation.
type Result struct {
	Name       string        `json:"name"`
	Expression string        `json:"expression"`
	Scalar     string        `json:"scalar"`
	Precision  uint          `json:"precision,omitempty"`
	Vars       []string      `json:"vars"`
	Point      []float64     `json:"point"`
	Orders     []int         `json:"orders"`
	Value      string        `json:"value"`
	Entries    []Entry       `json:"entries"`
	Elapsed    time.Duration `json:"elapsed"`
}

// problem is a compiled expression over some scalar type.
type problem interface {
	evaluate(point []float64) (string, []Entry, error)
	pure(point []float64, k, n int) (float64, error)
	value(point []float64) (float64, error)
}

type Experiment struct {
	cfg  *config.Config
	prob problem
	log  *slog.Logger
}

// New validates cfg and compiles its expression.
func New(cfg *config.Config, reg *Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = NewRegistry()
	}
	prob, err := reg.build(cfg)
	if err != nil {
		return nil, fmt.Errorf("experiment %s: %w", cfg.Name, err)
	}
	return &Experiment{
		cfg:  cfg.Clone(),
		prob: prob,
		log:  slog.Default().With("experiment", cfg.Name),
	}, nil
}

// Config returns the experiment's configuration.
func (e *Experiment) Config() *config.Config {
	return e.cfg
}

// Run evaluates the expression once at the configured point.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	value, entries, err := e.prob.evaluate(e.cfg.Values())
	if err != nil {
		return nil, err
	}
	res := &Result{
		Name:       e.cfg.Name,
		Expression: e.cfg.Expression,
		Scalar:     e.cfg.Kind().String(),
		Vars:       e.cfg.Names(),
		Point:      e.cfg.Values(),
		Orders:     e.cfg.Orders(),
		Value:      value,
		Entries:    entries,
		Elapsed:    time.Since(start),
	}
	if e.cfg.Kind() == scalar.KindBig {
		res.Precision = e.cfg.Precision
	}
	e.log.Debug("evaluated", "entries", len(entries), "elapsed", res.Elapsed)
	return res, nil
}
