package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/autodiff/internal/expr"
	"github.com/san-kum/autodiff/internal/scalar"
)

const (
	DefaultPrecision = 256
	DefaultDigits    = 17
	DefaultSteps     = 50
	DefaultFormat    = "table"
	MinBigPrecision  = 53
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalid, e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Config describes one differentiation problem: an expression, the point
// to expand around and the truncation order per variable.
type Config struct {
	Name       string `yaml:"name"`
	Expression string `yaml:"expression"`
	Scalar     string `yaml:"scalar"`
	Precision  uint   `yaml:"precision"`
	Vars       []Var  `yaml:"vars"`
	Sweep      *Sweep `yaml:"sweep,omitempty"`
	Check      *Check `yaml:"check,omitempty"`
	Output     Output `yaml:"output"`
}

// Var is one independent variable. Variable i is seeded at nesting level i.
type Var struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
	Order int     `yaml:"order"`
}

// Sweep evaluates the expression at Steps evenly spaced values of Var.
type Sweep struct {
	Var   string  `yaml:"var"`
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
	Steps int     `yaml:"steps"`
}

// Check compares pure partials against finite differences. A zero Step
// selects one per order.
type Check struct {
	Step      float64 `yaml:"step"`
	Tolerance float64 `yaml:"tolerance"`
}

type Output struct {
	Digits int    `yaml:"digits"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:      "untitled",
		Scalar:    scalar.KindFloat.String(),
		Precision: DefaultPrecision,
		Output: Output{
			Digits: DefaultDigits,
			Format: DefaultFormat,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the config and returns the first problem found.
func (c *Config) Validate() error {
	if c.Expression == "" {
		return &ValidationError{Field: "expression", Msg: "empty"}
	}
	node, err := expr.Parse(c.Expression)
	if err != nil {
		return &ValidationError{Field: "expression", Msg: err.Error()}
	}

	kind, err := scalar.ParseKind(c.Scalar)
	if err != nil {
		return &ValidationError{Field: "scalar", Msg: err.Error()}
	}
	if kind == scalar.KindBig && c.Precision < MinBigPrecision {
		return &ValidationError{Field: "precision", Msg: fmt.Sprintf("%d bits is below %d", c.Precision, MinBigPrecision)}
	}

	seen := make(map[string]bool, len(c.Vars))
	for i, v := range c.Vars {
		field := fmt.Sprintf("vars[%d]", i)
		switch {
		case v.Name == "":
			return &ValidationError{Field: field, Msg: "missing name"}
		case expr.IsConstant(v.Name):
			return &ValidationError{Field: field, Msg: fmt.Sprintf("%q is a constant", v.Name)}
		case seen[v.Name]:
			return &ValidationError{Field: field, Msg: fmt.Sprintf("duplicate name %q", v.Name)}
		case v.Order < 0:
			return &ValidationError{Field: field, Msg: fmt.Sprintf("negative order %d", v.Order)}
		}
		seen[v.Name] = true
	}
	for _, name := range expr.Vars(node) {
		if !seen[name] {
			return &ValidationError{Field: "vars", Msg: fmt.Sprintf("expression uses unbound variable %q", name)}
		}
	}

	if s := c.Sweep; s != nil {
		if !seen[s.Var] {
			return &ValidationError{Field: "sweep.var", Msg: fmt.Sprintf("unknown variable %q", s.Var)}
		}
		if s.Steps < 2 {
			return &ValidationError{Field: "sweep.steps", Msg: "need at least 2"}
		}
		if s.From == s.To {
			return &ValidationError{Field: "sweep", Msg: "empty range"}
		}
	}
	if c.Check != nil && (c.Check.Step < 0 || c.Check.Tolerance < 0) {
		return &ValidationError{Field: "check", Msg: "step and tolerance must be non-negative"}
	}
	switch c.Output.Format {
	case "", "table", "json", "csv":
	default:
		return &ValidationError{Field: "output.format", Msg: fmt.Sprintf("unknown format %q", c.Output.Format)}
	}
	return nil
}

// Kind returns the scalar kind. Validate must have passed.
func (c *Config) Kind() scalar.Kind {
	k, _ := scalar.ParseKind(c.Scalar)
	return k
}

// Orders returns the truncation order of every variable, outermost first.
func (c *Config) Orders() []int {
	out := make([]int, len(c.Vars))
	for i, v := range c.Vars {
		out[i] = v.Order
	}
	return out
}

// Values returns the expansion point.
func (c *Config) Values() []float64 {
	out := make([]float64, len(c.Vars))
	for i, v := range c.Vars {
		out[i] = v.Value
	}
	return out
}

// Names returns the variable names in nesting order.
func (c *Config) Names() []string {
	out := make([]string, len(c.Vars))
	for i, v := range c.Vars {
		out[i] = v.Name
	}
	return out
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Vars = append([]Var(nil), c.Vars...)
	if c.Sweep != nil {
		s := *c.Sweep
		out.Sweep = &s
	}
	if c.Check != nil {
		k := *c.Check
		out.Check = &k
	}
	return &out
}
