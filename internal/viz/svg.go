package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/autodiff/internal/experiment"
)

var svgPalette = []string{"#00ffff", "#ff00ff", "#ffff00", "#00ff00", "#ff4444", "#4488ff"}

type bounds struct {
	minX, maxX, minY, maxY float64
}

// fit returns the padded bounds of the finite points of every curve.
func fit(xs []float64, curves ...[]float64) bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, ys := range curves {
		for i, y := range ys {
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			b.minX, b.maxX = min(b.minX, xs[i]), max(b.maxX, xs[i])
			b.minY, b.maxY = min(b.minY, y), max(b.maxY, y)
		}
	}
	if math.IsInf(b.minX, 1) {
		return bounds{0, 1, 0, 1}
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}

// writePath appends one path element, starting a new subpath after each
// non-finite sample.
func writePath(sb *strings.Builder, xs, ys []float64, b bounds, width, height int, stroke string) {
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY

	var d strings.Builder
	pen := false
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			pen = false
			continue
		}
		px := (xs[i] - b.minX) / rangeX * float64(width)
		py := float64(height) - (y-b.minY)/rangeY*float64(height)
		if pen {
			fmt.Fprintf(&d, " L%.1f,%.1f", px, py)
		} else {
			if d.Len() > 0 {
				d.WriteByte(' ')
			}
			fmt.Fprintf(&d, "M%.1f,%.1f", px, py)
			pen = true
		}
	}
	if d.Len() == 0 {
		return
	}
	fmt.Fprintf(sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"%s\"/>\n", stroke, d.String())
}

func svgHeader(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

// CurveSVG renders one curve y(x) as an SVG polyline. It returns "" when
// there are fewer than two samples.
func CurveSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(ys) != len(xs) {
		return ""
	}
	var sb strings.Builder
	svgHeader(&sb, width, height)
	writePath(&sb, xs, ys, fit(xs, ys), width, height, strokeColor)
	sb.WriteString("</svg>\n")
	return sb.String()
}

// SweepSVG renders the selected curves of a sweep on shared axes, with a
// text legend in the top left corner.
func SweepSVG(sw *experiment.SweepResult, orders []int, width, height int, normalize bool) string {
	curves := selectCurves(sw, orders)
	if len(curves) == 0 || len(sw.Xs) < 2 {
		return ""
	}

	data := make([][]float64, len(curves))
	for i, c := range curves {
		data[i] = plotData(c.Ys, normalize)
	}
	b := fit(sw.Xs, data...)

	var sb strings.Builder
	svgHeader(&sb, width, height)
	for i, c := range curves {
		color := svgPalette[i%len(svgPalette)]
		writePath(&sb, sw.Xs, data[i], b, width, height, color)
		fmt.Fprintf(&sb, "<text x=\"8\" y=\"%d\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\">%s</text>\n",
			16*(i+1), color, curveLabel(sw.Var, c.Order))
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}
