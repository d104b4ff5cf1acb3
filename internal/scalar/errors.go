package scalar

import (
	"errors"
	"fmt"
)

// ErrUnknownKind indicates a scalar kind name that is not float or big.
var ErrUnknownKind = errors.New("scalar: unknown kind")

// ParseError wraps a failure to parse a numeric literal.
type ParseError struct {
	Input string
	Kind  Kind
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("scalar: cannot parse %q as %s: %v", e.Input, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
