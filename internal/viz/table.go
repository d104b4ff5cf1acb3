package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/autodiff/internal/experiment"
)

// RenderTable renders the derivative entries of res, one row per mixed
// partial, with a column of orders per variable. A positive limit caps the
// number of rows shown.
func RenderTable(res *experiment.Result, limit int) string {
	st := NewStyles(CurrentTheme)

	headers := make([]string, 0, len(res.Vars)+1)
	for _, v := range res.Vars {
		headers = append(headers, "∂"+v)
	}
	headers = append(headers, "value")

	entries := res.Entries
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		row := make([]string, 0, len(e.Index)+1)
		for _, k := range e.Index {
			row = append(row, strconv.Itoa(k))
		}
		rows[i] = append(row, e.Value)
	}

	valueCol := len(headers) - 1
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.Header
			case col == valueCol:
				return st.Value.Padding(0, 1)
			default:
				return st.Label.Padding(0, 1).Align(lipgloss.Right)
			}
		})

	out := t.String()
	if n := len(res.Entries) - len(entries); n > 0 {
		out += "\n" + st.Subtle.Render(fmt.Sprintf("… %d more", n))
	}
	return out
}

// RenderSummary renders the expression, evaluation point and timing of res.
func RenderSummary(res *experiment.Result) string {
	st := NewStyles(CurrentTheme)

	var b strings.Builder
	b.WriteString(st.Title.Render(res.Name) + "  " + st.Subtle.Render(res.Expression) + "\n")

	point := make([]string, len(res.Vars))
	for i, v := range res.Vars {
		point[i] = fmt.Sprintf("%s=%s (order %d)", v, strconv.FormatFloat(res.Point[i], 'g', -1, 64), res.Orders[i])
	}
	line := func(label, value string) {
		b.WriteString(st.Label.Render(fmt.Sprintf("%-10s", label)) + value + "\n")
	}
	if len(point) > 0 {
		line("point", strings.Join(point, ", "))
	}
	scalar := res.Scalar
	if res.Precision > 0 {
		scalar = fmt.Sprintf("%s/%d", res.Scalar, res.Precision)
	}
	line("scalar", scalar)
	line("value", st.Value.Render(res.Value))
	line("entries", strconv.Itoa(len(res.Entries)))
	line("elapsed", res.Elapsed.String())
	return st.Panel.Render(strings.TrimSuffix(b.String(), "\n"))
}

// RenderCheck renders a finite-difference comparison, marking each row
// that falls outside its tolerance.
func RenderCheck(rows []experiment.CheckRow) string {
	st := NewStyles(CurrentTheme)

	data := make([][]string, len(rows))
	for i, r := range rows {
		status := st.Good.Render("ok")
		if !r.OK {
			status = st.Bad.Render("FAIL")
		}
		data[i] = []string{
			r.Var,
			strconv.Itoa(r.Order),
			strconv.FormatFloat(r.Series, 'g', 12, 64),
			strconv.FormatFloat(r.Numeric, 'g', 12, 64),
			strconv.FormatFloat(r.RelErr, 'e', 2, 64),
			status,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Headers("var", "order", "series", "finite diff", "rel err", "").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}
