package experiment

import (
	"context"
	"math"

	floatcmp "gonum.org/v1/gonum/floats/scalar"

	"github.com/san-kum/autodiff/internal/numdiff"
)

// maxCheckOrder bounds the finite-difference comparison; higher central
// differences lose too many digits to be a useful check.
const maxCheckOrder = 2

// CheckRow compares one pure partial with its finite-difference estimate.
type CheckRow struct {
	Var       string  `json:"var"`
	Order     int     `json:"order"`
	Series    float64 `json:"series"`
	Numeric   float64 `json:"numeric"`
	RelErr    float64 `json:"rel_err"`
	Tolerance float64 `json:"tolerance"`
	OK        bool    `json:"ok"`
}

// Check compares the first and second pure partials of every variable
// against central differences of the expression value.
func (e *Experiment) Check(ctx context.Context) ([]CheckRow, error) {
	var step, tol float64
	if c := e.cfg.Check; c != nil {
		step, tol = c.Step, c.Tolerance
	}
	point := e.cfg.Values()
	var rows []CheckRow
	for k, v := range e.cfg.Vars {
		for n := 1; n <= min(v.Order, maxCheckOrder); n++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			series, err := e.prob.pure(point, k, n)
			if err != nil {
				return nil, err
			}
			numeric, err := numdiff.Partial(func(x []float64) float64 {
				f, err := e.prob.value(x)
				if err != nil {
					return math.NaN()
				}
				return f
			}, point, k, n, step)
			if err != nil {
				return nil, err
			}
			t := tol
			if t == 0 {
				t = numdiff.Tolerance(n)
			}
			row := CheckRow{
				Var:       v.Name,
				Order:     n,
				Series:    series,
				Numeric:   numeric,
				RelErr:    relErr(series, numeric),
				Tolerance: t,
			}
			row.OK = floatcmp.EqualWithinAbsOrRel(series, numeric, t, t)
			if !row.OK {
				e.log.Warn("finite difference mismatch", "var", v.Name, "order", n, "series", series, "numeric", numeric)
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func relErr(a, b float64) float64 {
	d := math.Abs(a - b)
	if s := math.Max(math.Abs(a), math.Abs(b)); s > 0 {
		return d / s
	}
	return d
}
