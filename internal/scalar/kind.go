package scalar

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects a coefficient implementation.
type Kind int

const (
	KindFloat Kind = iota
	KindBig
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindBig:
		return "big"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps "float" or "big" (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "float", "float64", "double":
		return KindFloat, nil
	case "big", "bigfloat", "mp":
		return KindBig, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ParseFloat parses a decimal literal as a Float.
func ParseFloat(s string) (Float, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ParseError{Input: s, Kind: KindFloat, Err: err}
	}
	return Float(f), nil
}
