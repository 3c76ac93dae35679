package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned when there is nothing to evaluate.
	ErrEmpty = errors.New("empty expression")
	// ErrMalformed is returned for expressions that do not parse.
	ErrMalformed = errors.New("malformed expression")
	// ErrDivideByZero is returned for x / 0 and x % 0.
	ErrDivideByZero = errors.New("division by zero")
	// ErrNotFinite is returned when a result is NaN or infinite.
	ErrNotFinite = errors.New("result is not finite")
)

// EvalMode selects how a flat infix expression is reduced.
type EvalMode uint8

const (
	// EvalStandard applies * / % before + -.
	EvalStandard EvalMode = iota
	// EvalChain reduces strictly left to right, like a pocket calculator.
	EvalChain
)

func (m EvalMode) String() string {
	switch m {
	case EvalStandard:
		return "standard"
	case EvalChain:
		return "chain"
	default:
		return fmt.Sprintf("EvalMode(%d)", uint8(m))
	}
}

// ParseEvalMode parses "standard" or "chain".
func ParseEvalMode(s string) (EvalMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return EvalStandard, nil
	case "chain":
		return EvalChain, nil
	default:
		return 0, fmt.Errorf("calc: unknown evaluation mode %q", s)
	}
}

type tokenKind uint8

const (
	tokNumber tokenKind = iota + 1
	tokOp
)

type token struct {
	kind tokenKind
	num  float64
	op   Operator
	pos  int
}

// normalizeGlyphs maps display operator glyphs to their ASCII equivalents.
func normalizeGlyphs(s string) string {
	return glyphReplacer.Replace(s)
}

var glyphReplacer = strings.NewReplacer("×", "*", "÷", "/", "−", "-")

func tokenize(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case isOperatorByte(c):
			toks = append(toks, token{kind: tokOp, op: Operator(c), pos: i})
			i++
		case c == '.' || (c >= '0' && c <= '9'):
			n := scanNumber(s[i:])
			v, err := strconv.ParseFloat(s[i:i+n], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrMalformed, s[i:i+n])
			}
			toks = append(toks, token{kind: tokNumber, num: v, pos: i})
			i += n
		case strings.HasPrefix(s[i:], "NaN"):
			toks = append(toks, token{kind: tokNumber, num: math.NaN(), pos: i})
			i += len("NaN")
		case strings.HasPrefix(s[i:], "Infinity"):
			toks = append(toks, token{kind: tokNumber, num: math.Inf(1), pos: i})
			i += len("Infinity")
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrMalformed, c, i)
		}
	}
	return toks, nil
}

// scanNumber returns the length of the numeric literal at the start of s:
// digits, an optional fraction and an optional exponent.
func scanNumber(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

// Eval evaluates a flat infix expression of numbers and + - * / %.
// Display glyphs are accepted. Nothing but arithmetic is ever executed.
func Eval(expr string, mode EvalMode) (float64, error) {
	toks, err := tokenize(normalizeGlyphs(expr))
	if err != nil {
		return 0, err
	}
	if len(toks) == 0 {
		return 0, ErrEmpty
	}

	p := &parser{toks: toks}
	var v float64
	if mode == EvalChain {
		v, err = p.chain()
	} else {
		v, err = p.binary(0)
	}
	if err != nil {
		return 0, err
	}
	if p.pos < len(p.toks) {
		return 0, fmt.Errorf("%w: trailing input at %d", ErrMalformed, p.toks[p.pos].pos)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peekOp() (Operator, bool) {
	if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokOp {
		return 0, false
	}
	return p.toks[p.pos].op, true
}

// unary parses an optionally signed number.
func (p *parser) unary() (float64, error) {
	if p.pos >= len(p.toks) {
		return 0, fmt.Errorf("%w: missing operand", ErrMalformed)
	}
	tok := p.toks[p.pos]
	p.pos++
	switch {
	case tok.kind == tokNumber:
		return tok.num, nil
	case tok.op == OpSub:
		v, err := p.unary()
		return -v, err
	case tok.op == OpAdd:
		return p.unary()
	default:
		return 0, fmt.Errorf("%w: unexpected %q at %d", ErrMalformed, rune(tok.op), tok.pos)
	}
}

// binary is a precedence climber over left-associative operators.
func (p *parser) binary(minPrec int) (float64, error) {
	lhs, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp()
		if !ok || op.precedence() < minPrec {
			return lhs, nil
		}
		p.pos++
		rhs, err := p.binary(op.precedence() + 1)
		if err != nil {
			return 0, err
		}
		if lhs, err = apply(op, lhs, rhs); err != nil {
			return 0, err
		}
	}
}

func (p *parser) chain() (float64, error) {
	acc, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp()
		if !ok {
			return acc, nil
		}
		p.pos++
		rhs, err := p.unary()
		if err != nil {
			return 0, err
		}
		if acc, err = apply(op, acc, rhs); err != nil {
			return 0, err
		}
	}
}

func apply(op Operator, a, b float64) (float64, error) {
	var v float64
	switch op {
	case OpAdd:
		v = a + b
	case OpSub:
		v = a - b
	case OpMul:
		v = a * b
	case OpDiv:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		v = a / b
	case OpMod:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		v = math.Mod(a, b)
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", ErrMalformed, rune(op))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}
