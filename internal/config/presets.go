package config

import (
	"slices"
)

const (
	mixedPartialsExpr = "exp(w*sin(x*log(y)/z) + sqrt(w*z/(x*y))) + w*w/tan(z)"

	bsD1 = "(log(S/100) + (r + sigma^2/2)*tau)/(sigma*sqrt(tau))"
	bsD2 = "(log(S/100) + (r - sigma^2/2)*tau)/(sigma*sqrt(tau))"
)

func bsVars() []Var {
	return []Var{
		{Name: "S", Value: 105, Order: 3},
		{Name: "sigma", Value: 5, Order: 3},
		{Name: "tau", Value: 30.0 / 365, Order: 1},
		{Name: "r", Value: 1.25 / 100, Order: 1},
	}
}

var Presets = map[string]*Config{
	"mixed_partials": {
		Name:       "mixed_partials",
		Expression: mixedPartialsExpr,
		Scalar:     "float",
		Vars: []Var{
			{Name: "w", Value: 11, Order: 3},
			{Name: "x", Value: 12, Order: 2},
			{Name: "y", Value: 13, Order: 4},
			{Name: "z", Value: 14, Order: 3},
		},
	},
	"black_scholes_call": {
		Name:       "black_scholes_call",
		Expression: "S*Phi(" + bsD1 + ") - exp(-r*tau)*100*Phi(" + bsD2 + ")",
		Scalar:     "float",
		Vars:       bsVars(),
	},
	"black_scholes_put": {
		Name:       "black_scholes_put",
		Expression: "exp(-r*tau)*100*Phi(-" + bsD2 + ") - S*Phi(-" + bsD1 + ")",
		Scalar:     "float",
		Vars:       bsVars(),
	},
	"fourth_power": {
		Name:       "fourth_power",
		Expression: "x^4",
		Scalar:     "float",
		Vars:       []Var{{Name: "x", Value: 2, Order: 5}},
		Sweep:      &Sweep{Var: "x", From: -2, To: 2, Steps: DefaultSteps},
	},
	"atan2": {
		Name:       "atan2",
		Expression: "atan2(y, x)",
		Scalar:     "float",
		Vars: []Var{
			{Name: "y", Value: 0.8660254037844386, Order: 5},
			{Name: "x", Value: 0.5, Order: 5},
		},
	},
	"lambert": {
		Name:       "lambert",
		Expression: "lambert_w0(x)",
		Scalar:     "big",
		Precision:  DefaultPrecision,
		Vars:       []Var{{Name: "x", Value: 3, Order: 10}},
		Sweep:      &Sweep{Var: "x", From: 0.1, To: 5, Steps: DefaultSteps},
	},
	"ylogx": {
		Name:       "ylogx",
		Expression: "y*log(x)",
		Scalar:     "float",
		Vars: []Var{
			{Name: "x", Value: 2, Order: 5},
			{Name: "y", Value: 3, Order: 4},
		},
		Check: &Check{},
	},
	"sinc_origin": {
		Name:       "sinc_origin",
		Expression: "sinc(x)",
		Scalar:     "float",
		Vars:       []Var{{Name: "x", Value: 0, Order: 10}},
		Sweep:      &Sweep{Var: "x", From: -10, To: 10, Steps: 101},
	},
	"log_origin": {
		Name:       "log_origin",
		Expression: "log(x)",
		Scalar:     "float",
		Vars:       []Var{{Name: "x", Value: 0, Order: 5}},
	},
}

// GetPreset returns a copy of the named preset with defaults filled in, or
// nil if there is none.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := p.Clone()
	if cfg.Precision == 0 {
		cfg.Precision = DefaultPrecision
	}
	if cfg.Output == (Output{}) {
		cfg.Output = DefaultConfig().Output
	}
	return cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
