// Package calc holds the calculator's session state: the expression being
// typed and the last computed result.
package calc

import (
	"go.uber.org/zap"

	"github.com/Makepad-fr/calc/internal/arith"
	"github.com/Makepad-fr/calc/internal/expr"
)

const (
	initialResult = "0"
	errorResult   = "Error"
)

// Accumulator collects keystrokes into an expression and evaluates it.
// It is not safe for concurrent use; callers serialise events.
type Accumulator struct {
	expression string
	result     string
	precision  int
	display    Display // nil until a sink is attached
	log        *zap.SugaredLogger
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithDisplay attaches the sink pushed to on every refresh.
func WithDisplay(d Display) Option {
	return func(a *Accumulator) { a.display = d }
}

// WithPrecision sets the significant digits kept in results.
func WithPrecision(digits int) Option {
	return func(a *Accumulator) {
		if digits > 0 {
			a.precision = digits
		}
	}
}

// WithLogger routes evaluation diagnostics to l.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(a *Accumulator) {
		if l != nil {
			a.log = l
		}
	}
}

// New returns an Accumulator with an empty expression and result "0".
func New(opts ...Option) *Accumulator {
	a := &Accumulator{
		result:    initialResult,
		precision: DefaultPrecision,
		log:       zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// SetDisplay attaches (or with nil, detaches) the sink.
func (a *Accumulator) SetDisplay(d Display) { a.display = d }

func (a *Accumulator) Expression() string { return a.expression }
func (a *Accumulator) Result() string     { return a.result }

// AppendCharacter appends value as-is. Malformed input surfaces on Evaluate.
func (a *Accumulator) AppendCharacter(value string) {
	a.expression += value
	a.refresh()
}

// AppendOperator appends op, replacing a trailing operator so the most
// recently typed one wins. Only the last character is inspected.
func (a *Accumulator) AppendOperator(op string) {
	if n := len(a.expression); n > 0 && arith.IsOperator(a.expression[n-1]) {
		a.expression = a.expression[:n-1]
	}
	a.expression += op
	a.refresh()
}

// Clear resets the expression and the result.
func (a *Accumulator) Clear() {
	a.expression = ""
	a.result = initialResult
	a.refresh()
}

// Evaluate computes the expression into the result, leaving the expression
// in place. An empty expression is a no-op.
func (a *Accumulator) Evaluate() {
	if a.expression == "" {
		return
	}
	v, err := expr.Eval(a.expression)
	switch {
	case err != nil:
		a.log.Debugw("evaluation failed", "expression", a.expression, "err", err)
		a.result = errorResult
	case !arith.IsValidNumber(v):
		a.log.Debugw("non-finite result", "expression", a.expression, "value", v)
		a.result = errorResult
	default:
		a.result = Format(v, a.precision)
		a.log.Debugw("evaluated", "expression", a.expression, "result", a.result)
	}
	a.refresh()
}

// IsError reports whether the last evaluation failed.
func (a *Accumulator) IsError() bool { return a.result == errorResult }

func (a *Accumulator) refresh() {
	if a.display == nil {
		return
	}
	a.display.Render(a.expression, a.result)
}
