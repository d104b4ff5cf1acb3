package expr

import (
	"slices"
	"strings"
)

// Node is a parsed expression.
type Node interface {
	// String returns canonical text that parses back to an equal tree.
	String() string
	Position() int
}

type Number struct {
	Pos  int
	Text string
}

type Ident struct {
	Pos  int
	Name string
}

type Unary struct {
	Pos int
	Op  string
	X   Node
}

type Binary struct {
	Pos  int
	Op   string
	L, R Node
}

type Call struct {
	Pos  int
	Func string
	Args []Node
}

func (n *Number) String() string { return n.Text }
func (n *Ident) String() string  { return n.Name }
func (n *Unary) String() string  { return "(" + n.Op + n.X.String() + ")" }

func (n *Binary) String() string {
	return "(" + n.L.String() + " " + n.Op + " " + n.R.String() + ")"
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Func + "(" + strings.Join(args, ", ") + ")"
}

func (n *Number) Position() int { return n.Pos }
func (n *Ident) Position() int  { return n.Pos }
func (n *Unary) Position() int  { return n.Pos }
func (n *Binary) Position() int { return n.Pos }
func (n *Call) Position() int   { return n.Pos }

// constants are identifiers that never name a variable.
var constants = map[string]bool{"pi": true, "e": true}

// IsConstant reports whether name is a built-in constant.
func IsConstant(name string) bool {
	return constants[name]
}

// Vars returns the sorted variable names used in n.
func Vars(n Node) []string {
	seen := map[string]bool{}
	walk(n, func(n Node) {
		if id, ok := n.(*Ident); ok && !IsConstant(id.Name) {
			seen[id.Name] = true
		}
	})
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func walk(n Node, fn func(Node)) {
	fn(n)
	switch n := n.(type) {
	case *Unary:
		walk(n.X, fn)
	case *Binary:
		walk(n.L, fn)
		walk(n.R, fn)
	case *Call:
		for _, a := range n.Args {
			walk(a, fn)
		}
	}
}
