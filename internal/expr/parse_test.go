package expr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x", "x"},
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b / c", "((a / b) / c)"},
		{"2 ^ 3 ^ 2", "(2 ^ (3 ^ 2))"},
		{"-x^2", "(-(x ^ 2))"},
		{"(-x)^2", "((-x) ^ 2)"},
		{"-x*y", "((-x) * y)"},
		{"2^-x", "(2 ^ (-x))"},
		{"+x", "(+x)"},
		{"sin(x)*cos(y)", "(sin(x) * cos(y))"},
		{"atan2(y, x + 1)", "atan2(y, (x + 1))"},
		{"f()", "f()"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got := n.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			again, err := Parse(n.String())
			if err != nil {
				t.Fatalf("reparse %q: %v", n.String(), err)
			}
			if again.String() != n.String() {
				t.Errorf("round trip changed %q to %q", n.String(), again.String())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   int
	}{
		{"", 0},
		{"1 +", 3},
		{"(x", 2},
		{"x)", 1},
		{"f(x y)", 4},
		{"* 2", 0},
		{"x y", 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
			if se.Pos != tt.pos {
				t.Errorf("position = %d, want %d (%s)", se.Pos, tt.pos, se.Caret())
			}
		})
	}
}

func TestVars(t *testing.T) {
	n := MustParse("exp(w*sin(x*log(y)/z)) + pi*e*w")
	if diff := cmp.Diff([]string{"w", "x", "y", "z"}, Vars(n)); diff != "" {
		t.Errorf("Vars mismatch (-want +got):\n%s", diff)
	}
	if !IsConstant("pi") || IsConstant("x") {
		t.Error("IsConstant wrong")
	}
}
