package arith

import (
	"errors"
	"math"
)

// ErrDivisionByZero is returned by Divide when the divisor is exactly 0.
var ErrDivisionByZero = errors.New("Error: Division by zero")

// ErrUnknownOperator is returned by Apply for anything but + - * /.
var ErrUnknownOperator = errors.New("unknown operator")

// Add returns a + b.
func Add(a, b float64) float64 { return a + b }

// Subtract returns a - b.
func Subtract(a, b float64) float64 { return a - b }

// Multiply returns a * b.
func Multiply(a, b float64) float64 { return a * b }

// Divide returns a / b, or ErrDivisionByZero when b == 0.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// Percentage returns percent% of value.
func Percentage(value, percent float64) float64 {
	return value * percent / 100
}

// IsValidNumber reports whether v holds a numeric type and, for floats,
// is neither NaN nor an infinity.
func IsValidNumber(v any) bool {
	switch n := v.(type) {
	case float64:
		return !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		f := float64(n)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr:
		return true
	}
	return false
}

// IsOperator reports whether c is one of the four binary operators.
func IsOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/':
		return true
	}
	return false
}

// Apply dispatches op to the matching operation.
func Apply(op byte, a, b float64) (float64, error) {
	switch op {
	case '+':
		return Add(a, b), nil
	case '-':
		return Subtract(a, b), nil
	case '*':
		return Multiply(a, b), nil
	case '/':
		return Divide(a, b)
	}
	return 0, ErrUnknownOperator
}
