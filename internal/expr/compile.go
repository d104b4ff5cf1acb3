package expr

import (
	"fmt"

	"github.com/san-kum/autodiff/internal/fvar"
)

type evalFn[T fvar.Real[T]] func(env []fvar.Series[T]) fvar.Series[T]

// Program is a compiled expression. It is immutable and safe for
// concurrent use.
type Program[T fvar.Real[T]] struct {
	src  Node
	vars []string
	slot map[string]int
	run  evalFn[T]
	like T
}

// Compile resolves every function and literal in n against reg.
func Compile[T fvar.Real[T]](n Node, reg *Registry[T]) (*Program[T], error) {
	one, err := reg.Literal("1")
	if err != nil {
		return nil, fmt.Errorf("expr: registry literal: %w", err)
	}
	p := &Program[T]{src: n, vars: Vars(n), slot: map[string]int{}, like: one}
	for i, v := range p.vars {
		p.slot[v] = i
	}
	c := compiler[T]{reg: reg, prog: p, one: one}
	p.run, err = c.compile(n)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CompileString parses and compiles src.
func CompileString[T fvar.Real[T]](src string, reg *Registry[T]) (*Program[T], error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Compile(n, reg)
}

// Vars returns the variable names the program reads, sorted.
func (p *Program[T]) Vars() []string {
	return append([]string(nil), p.vars...)
}

func (p *Program[T]) String() string {
	return p.src.String()
}

// Eval evaluates the program with series bound to its variables. Extra
// bindings are ignored.
func (p *Program[T]) Eval(env map[string]fvar.Series[T]) (fvar.Series[T], error) {
	args := make([]fvar.Series[T], len(p.vars))
	for i, v := range p.vars {
		s, ok := env[v]
		if !ok {
			return fvar.Series[T]{}, &Error{Name: v, Err: ErrUnboundVariable}
		}
		args[i] = s
	}
	return p.run(args), nil
}

// EvalFloat evaluates the value alone at a point given as float64s.
func (p *Program[T]) EvalFloat(env map[string]float64) (float64, error) {
	args := make(map[string]fvar.Series[T], len(env))
	for k, v := range env {
		args[k] = fvar.Lift(p.like.FromFloat64(v))
	}
	s, err := p.Eval(args)
	if err != nil {
		return 0, err
	}
	return s.Root().Float64(), nil
}

type compiler[T fvar.Real[T]] struct {
	reg  *Registry[T]
	prog *Program[T]
	one  T
}

func (c *compiler[T]) compile(n Node) (evalFn[T], error) {
	switch n := n.(type) {
	case *Number:
		v, err := c.reg.Literal(n.Text)
		if err != nil {
			return nil, &Error{Name: n.Text, Pos: n.Pos, Err: ErrBadLiteral, Msg: err.Error()}
		}
		s := fvar.Lift(v)
		return func([]fvar.Series[T]) fvar.Series[T] { return s }, nil

	case *Ident:
		switch n.Name {
		case "pi":
			s := fvar.Lift(c.one.Pi())
			return func([]fvar.Series[T]) fvar.Series[T] { return s }, nil
		case "e":
			s := fvar.Lift(c.one.Exp())
			return func([]fvar.Series[T]) fvar.Series[T] { return s }, nil
		}
		i := c.prog.slot[n.Name]
		return func(env []fvar.Series[T]) fvar.Series[T] { return env[i] }, nil

	case *Unary:
		x, err := c.compile(n.X)
		if err != nil {
			return nil, err
		}
		if n.Op == "+" {
			return x, nil
		}
		return func(env []fvar.Series[T]) fvar.Series[T] { return x(env).Neg() }, nil

	case *Binary:
		l, err := c.compile(n.L)
		if err != nil {
			return nil, err
		}
		r, err := c.compile(n.R)
		if err != nil {
			return nil, err
		}
		var op func(a, b fvar.Series[T]) fvar.Series[T]
		switch n.Op {
		case "+":
			op = fvar.Series[T].Add
		case "-":
			op = fvar.Series[T].Sub
		case "*":
			op = fvar.Series[T].Mul
		case "/":
			op = fvar.Series[T].Div
		case "^":
			op = fvar.Pow[T]
		default:
			return nil, &SyntaxError{Input: c.prog.src.String(), Pos: n.Pos, Msg: "unknown operator " + n.Op}
		}
		return func(env []fvar.Series[T]) fvar.Series[T] { return op(l(env), r(env)) }, nil

	case *Call:
		f, ok := c.reg.Lookup(n.Func)
		if !ok {
			return nil, &Error{Name: n.Func, Pos: n.Pos, Err: ErrUnknownFunction}
		}
		if len(n.Args) != f.Arity {
			return nil, &Error{Name: n.Func, Pos: n.Pos, Err: ErrArity,
				Msg: fmt.Sprintf("want %d, got %d", f.Arity, len(n.Args))}
		}
		args := make([]evalFn[T], len(n.Args))
		for i, a := range n.Args {
			fn, err := c.compile(a)
			if err != nil {
				return nil, err
			}
			args[i] = fn
		}
		return func(env []fvar.Series[T]) fvar.Series[T] {
			vals := make([]fvar.Series[T], len(args))
			for i, a := range args {
				vals[i] = a(env)
			}
			return f.Fn(vals)
		}, nil
	}
	return nil, fmt.Errorf("expr: unexpected node %T", n)
}
