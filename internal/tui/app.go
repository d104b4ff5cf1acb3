package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/autodiff/internal/config"
	"github.com/san-kum/autodiff/internal/experiment"
	"github.com/san-kum/autodiff/internal/storage"
	"github.com/san-kum/autodiff/internal/viz"
)

type state int

const (
	stateMenu state = iota
	stateEdit
	stateResult
)

const tableRows = 12

// field is one editable cell of the variable editor.
type field int

const (
	fieldValue field = iota
	fieldOrder
)

type model struct {
	state   state
	cursor  int
	presets []string

	cfg       *config.Config
	varCursor int
	field     field
	editing   bool
	editBuf   string

	result  *experiment.Result
	err     error
	running bool
	saved   string

	theme viz.Theme
	store *storage.Store

	width  int
	height int
}

type resultMsg struct {
	res *experiment.Result
	err error
}

type savedMsg struct {
	id  string
	err error
}

// NewApp returns the interactive explorer. Runs are saved to store when it
// is non-nil.
func NewApp(store *storage.Store) *model {
	return &model{
		state:   stateMenu,
		presets: config.ListPresets(),
		theme:   viz.CurrentTheme,
		store:   store,
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func evaluate(cfg *config.Config) tea.Cmd {
	cfg = cfg.Clone()
	return func() tea.Msg {
		e, err := experiment.New(cfg, nil)
		if err != nil {
			return resultMsg{err: err}
		}
		res, err := e.Run(context.Background())
		return resultMsg{res: res, err: err}
	}
}

func save(store *storage.Store, res *experiment.Result) tea.Cmd {
	return func() tea.Msg {
		if err := store.Init(); err != nil {
			return savedMsg{err: err}
		}
		id, err := store.Save(res)
		return savedMsg{id: id, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case resultMsg:
		m.running = false
		m.result, m.err = msg.res, msg.err
		m.saved = ""
		m.state = stateResult
	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.saved = msg.id
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if msg.String() == "t" && !m.editing {
		m.theme = viz.NextTheme(m.theme)
		viz.CurrentTheme = m.theme
		return m, nil
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateEdit:
		return m.editKey(msg)
	case stateResult:
		return m.resultKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.varCursor, m.field = 0, fieldValue
		m.err = nil
		m.state = stateEdit
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.commitEdit()
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-+eE") {
				m.editBuf += s
			}
		}
		return m, nil
	}

	vars := m.cfg.Vars
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.varCursor > 0 {
			m.varCursor--
		}
	case "down", "j":
		if m.varCursor < len(vars)-1 {
			m.varCursor++
		}
	case "tab":
		m.field = 1 - m.field
	case "enter", " ":
		if len(vars) == 0 {
			break
		}
		m.editing = true
		if m.field == fieldValue {
			m.editBuf = strconv.FormatFloat(vars[m.varCursor].Value, 'g', -1, 64)
		} else {
			m.editBuf = strconv.Itoa(vars[m.varCursor].Order)
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "r":
		if m.running {
			break
		}
		m.running = true
		return m, evaluate(m.cfg)
	}
	return m, nil
}

// adjust nudges the selected value by 0.1 or the selected order by 1.
func (m *model) adjust(dir int) {
	if len(m.cfg.Vars) == 0 {
		return
	}
	v := &m.cfg.Vars[m.varCursor]
	if m.field == fieldValue {
		v.Value += 0.1 * float64(dir)
		return
	}
	v.Order = max(v.Order+dir, 0)
}

func (m *model) commitEdit() {
	v := &m.cfg.Vars[m.varCursor]
	if m.field == fieldValue {
		if x, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
			v.Value = x
		}
	} else if n, err := strconv.Atoi(m.editBuf); err == nil && n >= 0 {
		v.Order = n
	}
	m.editing = false
	m.editBuf = ""
}

func (m model) resultKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "e":
		m.state = stateEdit
	case "m":
		m.state = stateMenu
	case "w":
		if m.store != nil && m.result != nil {
			return m, save(m.store, m.result)
		}
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateEdit:
		return m.viewEdit()
	case stateResult:
		return m.viewResult()
	}
	return ""
}

func (m model) viewMenu() string {
	st := viz.NewStyles(m.theme)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(st.Subtle.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + st.Title.Render("a u t o d i f f") + "\n")
	b.WriteString(st.Subtle.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := config.Presets[name].Expression
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		if i == m.cursor {
			b.WriteString("      " + st.Title.Render("▸ ") + st.Value.Render(fmt.Sprintf("%-20s", name)) + st.Label.Render(desc) + "\n")
		} else {
			b.WriteString("        " + st.Label.Render(fmt.Sprintf("%-20s", name)) + st.Subtle.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(st.KeyHint.Render("      ↑↓ select   enter open   t theme   q quit") + "\n")
	return b.String()
}

func (m model) viewEdit() string {
	st := viz.NewStyles(m.theme)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + st.Title.Render(m.cfg.Name) + "  " + st.Subtle.Render(m.cfg.Expression) + "\n")
	b.WriteString(st.Subtle.Render("      "+strings.Repeat("─", 36)) + "\n\n")
	b.WriteString("        " + st.Label.Render(fmt.Sprintf("%-10s%12s%8s", "var", "value", "order")) + "\n")

	for i, v := range m.cfg.Vars {
		val := fmt.Sprintf("%12.6g", v.Value)
		ord := fmt.Sprintf("%8d", v.Order)
		selected := i == m.varCursor
		if selected && m.editing {
			cell := fmt.Sprintf("%s▋", m.editBuf)
			if m.field == fieldValue {
				val = fmt.Sprintf("%12s", cell)
			} else {
				ord = fmt.Sprintf("%8s", cell)
			}
		}
		if !selected {
			b.WriteString("        " + st.Label.Render(fmt.Sprintf("%-10s%s%s", v.Name, val, ord)) + "\n")
			continue
		}
		if m.field == fieldValue {
			val = st.Value.Render(val)
		} else {
			ord = st.Value.Render(ord)
		}
		b.WriteString("      " + st.Title.Render("▸ ") + fmt.Sprintf("%-10s", v.Name) + val + ord + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.running:
		b.WriteString("      " + st.Subtle.Render("evaluating...") + "\n")
	case m.err != nil:
		b.WriteString("      " + st.Bad.Render(m.err.Error()) + "\n")
	}
	b.WriteString(st.KeyHint.Render("      ↑↓ var  tab value/order  ←→ adjust  enter edit  r run  esc back") + "\n")
	return b.String()
}

// firstVarDerivatives returns the pure derivatives of the first variable,
// in order, with every other variable at order zero.
func firstVarDerivatives(res *experiment.Result) []float64 {
	var out []float64
	for _, e := range res.Entries {
		if len(e.Index) == 0 {
			continue
		}
		pure := true
		for _, k := range e.Index[1:] {
			if k != 0 {
				pure = false
				break
			}
		}
		if pure {
			out = append(out, e.Float)
		}
	}
	return out
}

func (m model) viewResult() string {
	st := viz.NewStyles(m.theme)
	var b strings.Builder
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("   " + st.Bad.Render(m.err.Error()) + "\n\n")
		b.WriteString(st.KeyHint.Render("   e edit  m menu  q quit") + "\n")
		return b.String()
	}

	res := m.result
	b.WriteString(indent(viz.RenderSummary(res), "   ") + "\n")

	rows := max(m.height-20, tableRows)
	b.WriteString(indent(viz.RenderTable(res, rows), "   ") + "\n")

	if d := firstVarDerivatives(res); len(d) > 1 && len(res.Vars) > 0 {
		b.WriteString(fmt.Sprintf("\n   %s %s\n", st.Label.Render("∂ⁿ/∂"+res.Vars[0]+"ⁿ"), viz.SparklineChart(d, min(len(d), m.width-20))))
	}
	if m.saved != "" {
		b.WriteString("   " + st.Good.Render("saved "+m.saved) + "\n")
	}

	hint := "   e edit  m menu  t theme  q quit"
	if m.store != nil {
		hint = "   e edit  m menu  w save  t theme  q quit"
	}
	b.WriteString("\n" + st.KeyHint.Render(hint) + "\n")
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func RunInteractive(store *storage.Store) error {
	p := tea.NewProgram(NewApp(store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
