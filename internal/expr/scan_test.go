package expr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScan(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{"", []Token{{Type: EOF}}},
		{"x+1", []Token{
			{Identifier, 0, "x"},
			{Operator, 1, "+"},
			{NumberToken, 2, "1"},
			{EOF, 3, ""},
		}},
		{"  atan2(y, 1.5e-3) ", []Token{
			{Identifier, 2, "atan2"},
			{LeftParen, 7, "("},
			{Identifier, 8, "y"},
			{Comma, 9, ","},
			{NumberToken, 11, "1.5e-3"},
			{RightParen, 17, ")"},
			{EOF, 19, ""},
		}},
		{"a**2", []Token{
			{Identifier, 0, "a"},
			{Operator, 1, "^"},
			{NumberToken, 3, "2"},
			{EOF, 4, ""},
		}},
		{".5*x_1", []Token{
			{NumberToken, 0, ".5"},
			{Operator, 2, "*"},
			{Identifier, 3, "x_1"},
			{EOF, 6, ""},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Scan(tt.input)
			if err != nil {
				t.Fatalf("Scan(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   int
	}{
		{"x $ y", 2},
		{"1e+", 0},
		{"2x", 0},
		{"3 + .", 4},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Scan(tt.input)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
			if se.Pos != tt.pos {
				t.Errorf("position = %d, want %d", se.Pos, tt.pos)
			}
		})
	}
}
