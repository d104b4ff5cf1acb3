package viz

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/autodiff/internal/experiment"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Magenta,
	asciigraph.Yellow,
	asciigraph.Green,
	asciigraph.Red,
	asciigraph.Blue,
}

type PlotOptions struct {
	Width  int
	Height int
	// Normalize scales each curve to a maximum magnitude of 1 so that
	// derivatives of very different size share one axis.
	Normalize bool
}

// selectCurves returns the curves of sw whose order is listed, or every
// curve when orders is empty.
func selectCurves(sw *experiment.SweepResult, orders []int) []experiment.Curve {
	if len(orders) == 0 {
		return sw.Curves
	}
	var out []experiment.Curve
	for _, c := range sw.Curves {
		if slices.Contains(orders, c.Order) {
			out = append(out, c)
		}
	}
	return out
}

// plotData copies ys, normalizing if asked and turning infinities into
// NaN gaps.
func plotData(ys []float64, normalize bool) []float64 {
	out := make([]float64, len(ys))
	scale := 1.0
	if normalize {
		m := 0.0
		for _, y := range ys {
			if !math.IsNaN(y) && !math.IsInf(y, 0) {
				m = max(m, math.Abs(y))
			}
		}
		if m > 0 {
			scale = 1 / m
		}
	}
	for i, y := range ys {
		if math.IsInf(y, 0) {
			y = math.NaN()
		}
		out[i] = y * scale
	}
	return out
}

func curveLabel(v string, order int) string {
	switch order {
	case 0:
		return "f"
	case 1:
		return "∂f/∂" + v
	}
	return fmt.Sprintf("∂%df/∂%s%d", order, v, order)
}

// Plot draws the selected derivative curves of a sweep on one ASCII graph
// with a legend per curve.
func Plot(sw *experiment.SweepResult, orders []int, opts PlotOptions) (string, error) {
	curves := selectCurves(sw, orders)
	if len(curves) == 0 {
		return "", fmt.Errorf("viz: no curves for orders %v", orders)
	}
	if opts.Width == 0 {
		opts.Width = 80
	}
	if opts.Height == 0 {
		opts.Height = 15
	}

	data := make([][]float64, len(curves))
	legends := make([]string, len(curves))
	colors := make([]asciigraph.AnsiColor, len(curves))
	for i, c := range curves {
		data[i] = plotData(c.Ys, opts.Normalize)
		legends[i] = curveLabel(sw.Var, c.Order)
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	caption := fmt.Sprintf("%s from %g to %g", sw.Var, sw.Xs[0], sw.Xs[len(sw.Xs)-1])
	if opts.Normalize {
		caption += " (normalized)"
	}
	graphOpts := []asciigraph.Option{
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption),
	}
	if NoColor {
		// asciigraph legends carry ANSI codes, so write a plain one.
		return asciigraph.PlotMany(data, graphOpts...) + "\n\n" + plainLegend(legends), nil
	}
	graphOpts = append(graphOpts,
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
	return asciigraph.PlotMany(data, graphOpts...), nil
}

func plainLegend(legends []string) string {
	var b strings.Builder
	for i, l := range legends {
		if i > 0 {
			b.WriteString("   ")
		}
		fmt.Fprintf(&b, "%d %s", i+1, l)
	}
	return b.String()
}
