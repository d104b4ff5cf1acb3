package expr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFunction = errors.New("expr: unknown function")
	ErrArity           = errors.New("expr: wrong number of arguments")
	ErrUnboundVariable = errors.New("expr: unbound variable")
	ErrBadLiteral      = errors.New("expr: bad numeric literal")
)

// SyntaxError reports a scan or parse failure at a byte offset.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: syntax error at %d: %s", e.Pos, e.Msg)
}

// Caret returns the input with a marker under the failing position.
func (e *SyntaxError) Caret() string {
	return e.Input + "\n" + strings.Repeat(" ", e.Pos) + "^"
}

// Error reports a name that failed to resolve during compilation or
// evaluation.
type Error struct {
	Name string
	Pos  int
	Err  error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%v: %s (%s)", e.Err, e.Name, e.Msg)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Name)
}

func (e *Error) Unwrap() error {
	return e.Err
}
