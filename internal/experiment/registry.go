package experiment

import (
	"fmt"
	"slices"

	"github.com/san-kum/autodiff/internal/config"
	"github.com/san-kum/autodiff/internal/expr"
	"github.com/san-kum/autodiff/internal/fvar"
	"github.com/san-kum/autodiff/internal/scalar"
)

// Registry maps scalar kinds to problem builders.
type Registry struct {
	scalars map[scalar.Kind]func(cfg *config.Config) (problem, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		scalars: make(map[scalar.Kind]func(*config.Config) (problem, error)),
	}

	r.scalars[scalar.KindFloat] = func(cfg *config.Config) (problem, error) {
		reg := expr.NewRegistry(scalar.ParseFloat)
		return newTyped(cfg, reg,
			func(v float64) scalar.Float { return scalar.Float(v) },
			func(v scalar.Float) string { return v.String() })
	}
	r.scalars[scalar.KindBig] = func(cfg *config.Config) (problem, error) {
		prec := cfg.Precision
		digits := cfg.Output.Digits
		reg := expr.NewRegistry(func(s string) (scalar.Big, error) { return scalar.ParseBig(s, prec) })
		return newTyped(cfg, reg,
			func(v float64) scalar.Big { return scalar.NewBig(v, prec) },
			func(v scalar.Big) string { return v.Text('g', digits) })
	}

	return r
}

func (r *Registry) build(cfg *config.Config) (problem, error) {
	kind := cfg.Kind()
	fn, ok := r.scalars[kind]
	if !ok {
		return nil, fmt.Errorf("unknown scalar: %s", kind)
	}
	return fn(cfg)
}

// ListScalars returns the registered scalar kinds by name.
func (r *Registry) ListScalars() []string {
	names := make([]string, 0, len(r.scalars))
	for k := range r.scalars {
		names = append(names, k.String())
	}
	slices.Sort(names)
	return names
}

// FunctionInfo describes one function usable in expressions.
type FunctionInfo struct {
	Name  string
	Arity int
	Doc   string
}

// Functions lists the expression functions.
func Functions() []FunctionInfo {
	fns := expr.NewRegistry(scalar.ParseFloat).Functions()
	out := make([]FunctionInfo, len(fns))
	for i, f := range fns {
		out[i] = FunctionInfo{Name: f.Name, Arity: f.Arity, Doc: f.Doc}
	}
	return out
}

// typed is a compiled problem for one scalar type.
type typed[T fvar.Real[T]] struct {
	prog   *expr.Program[T]
	names  []string
	orders []int
	from   func(float64) T
	format func(T) string
}

func newTyped[T fvar.Real[T]](cfg *config.Config, reg *expr.Registry[T], from func(float64) T, format func(T) string) (*typed[T], error) {
	prog, err := expr.CompileString(cfg.Expression, reg)
	if err != nil {
		return nil, err
	}
	return &typed[T]{
		prog:   prog,
		names:  cfg.Names(),
		orders: cfg.Orders(),
		from:   from,
		format: format,
	}, nil
}

// seed binds variable i to a series seeded at nesting level i.
func (p *typed[T]) seed(point []float64, orders []int) map[string]fvar.Series[T] {
	env := make(map[string]fvar.Series[T], len(p.names))
	for i, name := range p.names {
		o := make([]int, i+1)
		o[i] = orders[i]
		env[name] = fvar.Variable(p.from(point[i]), o...)
	}
	return env
}

func (p *typed[T]) series(point []float64, orders []int) (fvar.Series[T], error) {
	return p.prog.Eval(p.seed(point, orders))
}

func (p *typed[T]) evaluate(point []float64) (string, []Entry, error) {
	s, err := p.series(point, p.orders)
	if err != nil {
		return "", nil, err
	}
	all := s.Derivatives()
	if len(all) == 0 {
		// No variables: the result is a constant.
		v := s.Root()
		return p.format(v), []Entry{{Index: []int{}, Value: p.format(v), Float: v.Float64()}}, nil
	}
	entries := make([]Entry, len(all))
	for i, e := range all {
		entries[i] = Entry{Index: padIndex(e.Index, len(p.names)), Value: p.format(e.Value), Float: e.Value.Float64()}
	}
	return p.format(s.Root()), entries, nil
}

func (p *typed[T]) pure(point []float64, k, n int) (float64, error) {
	orders := make([]int, len(p.orders))
	orders[k] = n
	s, err := p.series(point, orders)
	if err != nil {
		return 0, err
	}
	if s.Depth() <= k || s.Orders()[k] < n {
		// The expression does not read variable k.
		return 0, nil
	}
	idx := make([]int, k+1)
	idx[k] = n
	v, err := s.DerivativeAt(idx...)
	if err != nil {
		return 0, err
	}
	return v.Float64(), nil
}

func (p *typed[T]) value(point []float64) (float64, error) {
	env := make(map[string]float64, len(p.names))
	for i, name := range p.names {
		env[name] = point[i]
	}
	return p.prog.EvalFloat(env)
}

// padIndex extends idx with zeros for variables the expression never
// touched, so every entry has one index per variable.
func padIndex(idx []int, n int) []int {
	if len(idx) >= n {
		return idx
	}
	out := make([]int, n)
	copy(out, idx)
	return out
}
