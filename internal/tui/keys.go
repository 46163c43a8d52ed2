package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Digits   key.Binding
	Operator key.Binding
	Paren    key.Binding
	Evaluate key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Digits: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."),
			key.WithHelp("0-9 .", "number"),
		),
		Operator: key.NewBinding(
			key.WithKeys("+", "-", "*", "/", "x"),
			key.WithHelp("+ - * /", "operator"),
		),
		Paren: key.NewBinding(
			key.WithKeys("(", ")"),
			key.WithHelp("( )", "group"),
		),
		Evaluate: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("enter/=", "evaluate"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c", "delete"),
			key.WithHelp("c", "clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Operator, k.Paren},
		{k.Evaluate, k.Clear},
		{k.Help, k.Quit},
	}
}
