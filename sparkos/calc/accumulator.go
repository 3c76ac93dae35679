package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// State is the coarse phase of the accumulator.
type State uint8

const (
	StateIdle State = iota
	StateOperand
	StateAfterOperator
	StateAfterResult
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOperand:
		return "operand"
	case StateAfterOperator:
		return "after-operator"
	case StateAfterResult:
		return "after-result"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// UnaryFunc is a function applied in place to the pending operand.
type UnaryFunc uint8

const (
	FuncSqrt UnaryFunc = iota + 1
	FuncSquare
)

// segment is one completed "<operand> <op> " piece of the expression.
type segment struct {
	operand string
	op      Operator
}

// Result is a successful evaluation.
type Result struct {
	Expression string
	Value      float64
	Text       string
}

// Accumulator builds a flat infix expression from key presses.
//
// The zero value is ready to use: standard precedence, 8 decimal places.
type Accumulator struct {
	Mode      EvalMode
	Precision int32

	input  string
	segs   []segment
	fresh  bool
	memory float64
}

// Input returns the operand being typed.
func (a *Accumulator) Input() string { return a.input }

// Expression returns the completed segments, e.g. "2 + 3 * ".
func (a *Accumulator) Expression() string {
	var b strings.Builder
	for _, s := range a.segs {
		b.WriteString(s.operand)
		b.WriteByte(' ')
		b.WriteByte(byte(s.op))
		b.WriteByte(' ')
	}
	return b.String()
}

// DisplayText is the pending operand, or "0" when there is none.
func (a *Accumulator) DisplayText() string {
	if a.input == "" {
		return "0"
	}
	return a.input
}

// Fresh reports whether the next digit starts a new calculation.
func (a *Accumulator) Fresh() bool { return a.fresh }

// Memory returns the memory slot.
func (a *Accumulator) Memory() float64 { return a.memory }

// MemoryActive reports whether the memory slot holds a non-zero value.
func (a *Accumulator) MemoryActive() bool { return a.memory != 0 }

func (a *Accumulator) State() State {
	switch {
	case a.fresh:
		return StateAfterResult
	case a.input != "":
		return StateOperand
	case len(a.segs) > 0:
		return StateAfterOperator
	default:
		return StateIdle
	}
}

func (a *Accumulator) empty() bool { return a.input == "" && len(a.segs) == 0 }

// AppendDigit appends a digit or decimal point to the pending operand.
// It reports false when r is rejected.
func (a *Accumulator) AppendDigit(r rune) bool {
	if r != '.' && (r < '0' || r > '9') {
		return false
	}
	if a.fresh {
		a.input = ""
		a.segs = nil
		a.fresh = false
	}
	if r == '.' && strings.ContainsRune(a.input, '.') {
		return false
	}
	a.input += string(r)
	return true
}

// AppendOperator commits the pending operand with op, or replaces the
// trailing operator when there is no pending operand. A leading minus starts
// a negative operand.
func (a *Accumulator) AppendOperator(op Operator) {
	switch {
	case a.empty():
		if op == OpSub {
			a.input = "-"
		}
	case a.input == "-":
		// Sign without digits; nothing to commit.
	case a.input != "":
		a.segs = append(a.segs, segment{operand: a.input, op: op})
		a.input = ""
	default:
		a.segs[len(a.segs)-1].op = op
	}
	a.fresh = false
}

// Evaluate reduces expression+input to a number. On success the rounded
// result becomes the pending operand and the next digit starts over. On
// failure the accumulator is left unchanged.
func (a *Accumulator) Evaluate() (Result, error) {
	if a.empty() {
		return Result{}, ErrEmpty
	}
	full := a.Expression() + a.input
	v, err := Eval(full, a.Mode)
	if err != nil {
		return Result{}, fmt.Errorf("calc: evaluate %q: %w", full, err)
	}
	v = Round(v, a.precision())

	res := Result{Expression: full, Value: v, Text: FormatNumber(v)}
	a.input = res.Text
	a.segs = nil
	a.fresh = true
	return res, nil
}

func (a *Accumulator) precision() int32 {
	if a.Precision <= 0 {
		return DefaultPrecision
	}
	return a.Precision
}

// DeleteLast removes the last character of the pending operand, or, when
// there is none, the trailing segment together with its operand.
func (a *Accumulator) DeleteLast() {
	switch {
	case a.input != "":
		r := []rune(a.input)
		a.input = string(r[:len(r)-1])
	case len(a.segs) > 0:
		a.segs = a.segs[:len(a.segs)-1]
	}
}

// ClearAll resets everything except memory.
func (a *Accumulator) ClearAll() {
	a.input = ""
	a.segs = nil
	a.fresh = false
}

func (a *Accumulator) ToggleSign() {
	if a.input == "" {
		return
	}
	if strings.HasPrefix(a.input, "-") {
		a.input = a.input[1:]
	} else {
		a.input = "-" + a.input
	}
}

// Apply replaces the pending operand with fn applied to it. A negative
// square root yields "NaN".
func (a *Accumulator) Apply(fn UnaryFunc) {
	if a.input == "" {
		return
	}
	v := parseOperand(a.input)
	switch fn {
	case FuncSqrt:
		v = math.Sqrt(v)
	case FuncSquare:
		v *= v
	default:
		return
	}
	a.input = FormatNumber(v)
}

// MemoryAdd adds the pending operand to memory when it is a finite number.
func (a *Accumulator) MemoryAdd() {
	if a.input == "" {
		return
	}
	v := parseOperand(a.input)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	a.memory += v
}

// MemoryRecall replaces the pending operand with the memory value.
func (a *Accumulator) MemoryRecall() {
	a.input = FormatNumber(a.memory)
}

func (a *Accumulator) MemoryClear() { a.memory = 0 }

// parseOperand reads the longest numeric prefix of s. Unparsable text is NaN.
func parseOperand(s string) float64 {
	switch s {
	case "Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	n := scanNumber(body)
	v, err := strconv.ParseFloat(body[:n], 64)
	if err != nil {
		return math.NaN()
	}
	if neg {
		v = -v
	}
	return v
}
