package calc

// Display receives the expression and result text on every refresh.
type Display interface {
	Render(expression, result string)
}

// DisplayFunc adapts a plain function to Display.
type DisplayFunc func(expression, result string)

func (f DisplayFunc) Render(expression, result string) { f(expression, result) }
