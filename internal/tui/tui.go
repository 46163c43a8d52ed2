// Package tui is the interactive front end: key presses drive a
// calc.Accumulator and its display sink is drawn as a bordered panel.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/calc/internal/calc"
	"github.com/Makepad-fr/calc/internal/ui"
)

// screen is the display sink; the accumulator writes, View reads.
type screen struct {
	expression string
	result     string
}

func (s *screen) Render(expression, result string) {
	s.expression, s.result = expression, result
}

type model struct {
	acc    *calc.Accumulator
	screen *screen
	keys   keyMap
	help   help.Model
	width  int
	log    *zap.SugaredLogger
}

// New wires acc to a fresh screen and returns the Bubble Tea model.
func New(acc *calc.Accumulator, log *zap.SugaredLogger) tea.Model {
	return newModel(acc, log)
}

func newModel(acc *calc.Accumulator, log *zap.SugaredLogger) model {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &screen{expression: acc.Expression(), result: acc.Result()}
	acc.SetDisplay(s)

	h := help.New()
	t := ui.Current()
	h.Styles.ShortKey = t.Accent
	h.Styles.ShortDesc = t.Help
	h.Styles.FullKey = t.Accent
	h.Styles.FullDesc = t.Help

	return model{
		acc:    acc,
		screen: s,
		keys:   defaultKeys(),
		help:   h,
		width:  40,
		log:    log,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(acc *calc.Accumulator, log *zap.SugaredLogger) error {
	p := tea.NewProgram(New(acc, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Digits), key.Matches(msg, m.keys.Paren):
			m.acc.AppendCharacter(msg.String())
		case key.Matches(msg, m.keys.Operator):
			op := msg.String()
			if op == "x" {
				op = "*"
			}
			m.acc.AppendOperator(op)
		case key.Matches(msg, m.keys.Evaluate):
			m.acc.Evaluate()
			if m.acc.IsError() {
				m.log.Infow("evaluation error shown", "expression", m.acc.Expression())
			}
		case key.Matches(msg, m.keys.Clear):
			m.acc.Clear()
		}
	}
	return m, nil
}

func (m model) View() string {
	t := ui.Current()
	inner := m.width - 4 // border + padding
	if inner < 10 {
		inner = 10
	}

	result := t.Title.Render(m.screen.result)
	if m.acc.IsError() {
		result = t.Error.Render(m.screen.result)
	}
	lines := []string{
		t.Accent.Render("calc"),
		ui.AlignRight(t.Muted.Render(m.screen.expression), inner),
		ui.AlignRight(result, inner),
	}
	return ui.Panel(lines, inner+4) + "\n" + m.help.View(m.keys)
}
