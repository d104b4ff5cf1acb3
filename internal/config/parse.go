package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseVar parses a variable binding of the form name=value[:order].
// The order defaults to 1.
func ParseVar(s string) (Var, error) {
	name, rest, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Var{}, fmt.Errorf("config: variable %q: want name=value[:order]", s)
	}
	valueText, orderText, hasOrder := strings.Cut(rest, ":")
	value, err := strconv.ParseFloat(strings.TrimSpace(valueText), 64)
	if err != nil {
		return Var{}, fmt.Errorf("config: variable %q: %w", s, err)
	}
	v := Var{Name: name, Value: value, Order: 1}
	if hasOrder {
		order, err := strconv.Atoi(strings.TrimSpace(orderText))
		if err != nil {
			return Var{}, fmt.Errorf("config: variable %q: %w", s, err)
		}
		if order < 0 {
			return Var{}, fmt.Errorf("config: variable %q: negative order", s)
		}
		v.Order = order
	}
	return v, nil
}

// ParseSweep parses a sweep range of the form name=from:to.
func ParseSweep(s string, steps int) (*Sweep, error) {
	name, rest, ok := strings.Cut(s, "=")
	fromText, toText, ok2 := strings.Cut(rest, ":")
	name = strings.TrimSpace(name)
	if !ok || !ok2 || name == "" {
		return nil, fmt.Errorf("config: sweep %q: want name=from:to", s)
	}
	from, err := strconv.ParseFloat(strings.TrimSpace(fromText), 64)
	if err != nil {
		return nil, fmt.Errorf("config: sweep %q: %w", s, err)
	}
	to, err := strconv.ParseFloat(strings.TrimSpace(toText), 64)
	if err != nil {
		return nil, fmt.Errorf("config: sweep %q: %w", s, err)
	}
	if steps == 0 {
		steps = DefaultSteps
	}
	return &Sweep{Var: name, From: from, To: to, Steps: steps}, nil
}

// SetVar replaces the variable with v's name, or appends v.
func (c *Config) SetVar(v Var) {
	for i := range c.Vars {
		if c.Vars[i].Name == v.Name {
			c.Vars[i] = v
			return
		}
	}
	c.Vars = append(c.Vars, v)
}
