package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NoColor disables styling in every renderer.
var NoColor bool

// Styles is the set of lipgloss styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Subtle  lipgloss.Style
	KeyHint lipgloss.Style
	Good    lipgloss.Style
	Bad     lipgloss.Style
	Border  lipgloss.Style
	Panel   lipgloss.Style

	SparkHigh lipgloss.Style
	SparkMid  lipgloss.Style
	SparkLow  lipgloss.Style
}

// NewStyles builds styles for t. With NoColor set every style is plain
// apart from the panel border.
func NewStyles(t Theme) Styles {
	if NoColor {
		plain := lipgloss.NewStyle()
		return Styles{
			Title: plain, Header: plain, Label: plain, Value: plain,
			Subtle: plain, KeyHint: plain, Good: plain, Bad: plain, Border: plain,
			Panel:     plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
			SparkHigh: plain, SparkMid: plain, SparkLow: plain,
		}
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted),
		Value: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),
		Subtle: lipgloss.NewStyle().
			Foreground(t.Muted),
		KeyHint: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		Good: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Success),
		Bad: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Error),
		Border: lipgloss.NewStyle().
			Foreground(t.Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		SparkHigh: lipgloss.NewStyle().Foreground(t.Success),
		SparkMid:  lipgloss.NewStyle().Foreground(t.Warning),
		SparkLow:  lipgloss.NewStyle().Foreground(t.Error),
	}
}

// SparklineChart renders values as one row of block characters, sampled to
// at most width cells. Non-finite values render as a blank cell.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	st := NewStyles(CurrentTheme)

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 || math.IsInf(rng, 0) {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			result.WriteRune(' ')
			continue
		}
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(st.SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(st.SparkMid.Render(c))
		default:
			result.WriteString(st.SparkLow.Render(c))
		}
	}
	return result.String()
}

// Separator draws a muted rule with a diamond in the middle.
func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return NewStyles(CurrentTheme).Subtle.Render(left + " ◆ " + right)
}
