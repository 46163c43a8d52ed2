// Package expr evaluates infix arithmetic over decimal literals with
// + - * / and parentheses. Nothing else is accepted.
package expr

import (
	"fmt"
	"strconv"

	"github.com/Makepad-fr/calc/internal/arith"
)

// SyntaxError reports malformed input at a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	pos  int
	text string
	num  float64
}

func tokenize(s string) ([]token, error) {
	var out []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || c == '.':
			start := i
			for i < len(s) && isDigit(s[i]) {
				i++
			}
			if i-start > 1 && s[start] == '0' {
				return nil, &SyntaxError{Pos: start, Msg: "leading zero in " + strconv.Quote(s[start:i])}
			}
			if i < len(s) && s[i] == '.' {
				i++
				for i < len(s) && isDigit(s[i]) {
					i++
				}
			}
			lit := s[start:i]
			if lit == "." {
				return nil, &SyntaxError{Pos: start, Msg: "lone decimal point"}
			}
			n, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return nil, &SyntaxError{Pos: start, Msg: "bad number " + strconv.Quote(lit)}
			}
			out = append(out, token{kind: tokNumber, pos: start, text: lit, num: n})
		case arith.IsOperator(c):
			out = append(out, token{kind: tokOp, pos: i, text: string(c)})
			i++
		case c == '(':
			out = append(out, token{kind: tokLParen, pos: i, text: "("})
			i++
		case c == ')':
			out = append(out, token{kind: tokRParen, pos: i, text: ")"})
			i++
		default:
			return nil, &SyntaxError{Pos: i, Msg: "unexpected character " + strconv.QuoteRune(rune(c))}
		}
	}
	out = append(out, token{kind: tokEOF, pos: len(s)})
	return out, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func precedence(op string) int {
	switch op {
	case "*", "/":
		return 2
	case "+", "-":
		return 1
	}
	return 0
}

// parseBinary climbs precedence levels; every level is left associative.
func (p *parser) parseBinary(minPrec int) (float64, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || precedence(t.text) < minPrec {
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseBinary(precedence(t.text) + 1)
		if err != nil {
			return 0, err
		}
		lhs, err = arith.Apply(t.text[0], lhs, rhs)
		if err != nil {
			return 0, err
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	t := p.peek()
	if t.kind == tokOp && (t.text == "+" || t.text == "-") {
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if t.text == "-" {
			return -v, nil
		}
		return v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.num, nil
	case tokLParen:
		v, err := p.parseBinary(1)
		if err != nil {
			return 0, err
		}
		if c := p.next(); c.kind != tokRParen {
			return 0, &SyntaxError{Pos: c.pos, Msg: "missing )"}
		}
		return v, nil
	case tokEOF:
		return 0, &SyntaxError{Pos: t.pos, Msg: "unexpected end of expression"}
	}
	return 0, &SyntaxError{Pos: t.pos, Msg: "unexpected " + strconv.Quote(t.text)}
}

// Eval parses and evaluates input. Division by zero is reported as
// arith.ErrDivisionByZero; malformed input as *SyntaxError.
func Eval(input string) (float64, error) {
	toks, err := tokenize(input)
	if err != nil {
		return 0, err
	}
	p := &parser{toks: toks}
	v, err := p.parseBinary(1)
	if err != nil {
		return 0, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return 0, &SyntaxError{Pos: t.pos, Msg: "unexpected " + strconv.Quote(t.text)}
	}
	return v, nil
}
