package calc

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func typeKeys(a *Accumulator, keys string) {
	for _, r := range keys {
		if op, ok := ParseOperator(r); ok {
			a.AppendOperator(op)
			continue
		}
		a.AppendDigit(r)
	}
}

func TestAppendDigitRejectsSecondPoint(t *testing.T) {
	var a Accumulator
	typeKeys(&a, "1.2")
	if a.AppendDigit('.') {
		t.Fatal("expected second decimal point to be rejected")
	}
	if got := a.Input(); got != "1.2" {
		t.Fatalf("input=%q, want 1.2", got)
	}
	if a.AppendDigit('a') {
		t.Fatal("expected non-digit to be rejected")
	}
}

func TestDigitSequencesConcatenate(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seq := rapid.StringMatching(`[0-9]{0,12}(\.[0-9]{0,8})?`).Draw(rt, "seq")

		var a Accumulator
		for _, r := range seq {
			if !a.AppendDigit(r) {
				rt.Fatalf("AppendDigit(%q) rejected in %q", r, seq)
			}
		}
		if a.Input() != seq {
			rt.Fatalf("input=%q, want %q", a.Input(), seq)
		}
		if strings.Contains(seq, ".") {
			if a.AppendDigit('.') {
				rt.Fatalf("second point accepted after %q", seq)
			}
			if a.Input() != seq {
				rt.Fatalf("input changed to %q", a.Input())
			}
		}
	})
}

func TestExpressionAlwaysEndsWithOperator(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		keys := rapid.StringMatching(`[0-9.+\-*/%]{0,24}`).Draw(rt, "keys")

		var a Accumulator
		typeKeys(&a, keys)
		expr := a.Expression()
		if expr == "" {
			return
		}
		n := len(expr)
		if n < 3 || expr[n-1] != ' ' || expr[n-3] != ' ' || !isOperatorByte(expr[n-2]) {
			rt.Fatalf("expression %q from keys %q does not end in \"<op> \"", expr, keys)
		}
		if strings.Count(a.Input(), ".") > 1 {
			rt.Fatalf("input %q has more than one point", a.Input())
		}
	})
}

func TestOperatorSubstitution(t *testing.T) {
	var a Accumulator
	typeKeys(&a, "2+")
	if got := a.Expression(); got != "2 + " {
		t.Fatalf("expression=%q, want %q", got, "2 + ")
	}
	a.AppendOperator(OpMul)
	if got := a.Expression(); got != "2 * " {
		t.Fatalf("expression=%q, want %q", got, "2 * ")
	}
}

func TestLeadingOperator(t *testing.T) {
	var a Accumulator
	a.AppendOperator(OpAdd)
	if a.Input() != "" || a.Expression() != "" {
		t.Fatalf("leading + changed state: input=%q expr=%q", a.Input(), a.Expression())
	}

	a.AppendOperator(OpSub)
	if a.Input() != "-" {
		t.Fatalf("leading - input=%q, want -", a.Input())
	}
	a.AppendOperator(OpMul)
	if a.Input() != "-" || a.Expression() != "" {
		t.Fatalf("operator after bare sign: input=%q expr=%q", a.Input(), a.Expression())
	}

	typeKeys(&a, "4*2")
	res, err := a.Evaluate()
	if err != nil || res.Text != "-8" {
		t.Fatalf("Evaluate=%+v, %v; want -8", res, err)
	}
}

func TestEvaluate(t *testing.T) {
	var a Accumulator
	typeKeys(&a, "2+3")
	res, err := a.Evaluate()
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Text != "5" || res.Expression != "2 + 3" {
		t.Fatalf("result=%+v", res)
	}
	if a.Input() != "5" || a.Expression() != "" || !a.Fresh() {
		t.Fatalf("after evaluate: input=%q expr=%q fresh=%v", a.Input(), a.Expression(), a.Fresh())
	}
	if a.State() != StateAfterResult {
		t.Fatalf("state=%s", a.State())
	}

	a.AppendDigit('7')
	if a.Input() != "7" || a.Fresh() {
		t.Fatalf("digit after result: input=%q fresh=%v", a.Input(), a.Fresh())
	}
}

func TestEvaluateChainsFromResult(t *testing.T) {
	var a Accumulator
	typeKeys(&a, "6*7")
	if _, err := a.Evaluate(); err != nil {
		t.Fatal(err)
	}
	typeKeys(&a, "-2")
	res, err := a.Evaluate()
	if err != nil || res.Text != "40" {
		t.Fatalf("Evaluate=%+v, %v; want 40", res, err)
	}
}

func TestEvaluateRounding(t *testing.T) {
	var a Accumulator
	typeKeys(&a, ".1+.2")
	res, err := a.Evaluate()
	if err != nil || res.Text != "0.3" {
		t.Fatalf("Evaluate=%+v, %v; want 0.3", res, err)
	}

	a = Accumulator{Precision: 2}
	typeKeys(&a, "2/3")
	if res, _ := a.Evaluate(); res.Text != "0.67" {
		t.Fatalf("precision 2: got %q", res.Text)
	}
}

func TestEvaluateErrorsLeaveState(t *testing.T) {
	tests := []struct {
		keys string
		want error
	}{
		{"10/0", ErrDivideByZero},
		{"", ErrEmpty},
	}
	for _, tt := range tests {
		var a Accumulator
		typeKeys(&a, tt.keys)
		before := a.Expression() + a.Input()
		if _, err := a.Evaluate(); !errors.Is(err, tt.want) {
			t.Fatalf("keys %q: err=%v, want %v", tt.keys, err, tt.want)
		}
		if after := a.Expression() + a.Input(); after != before {
			t.Fatalf("keys %q: state changed %q -> %q", tt.keys, before, after)
		}
	}

	var a Accumulator
	typeKeys(&a, "2+")
	a.DeleteLast()
	typeKeys(&a, "5+")
	if _, err := a.Evaluate(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("trailing operator: err=%v, want ErrMalformed", err)
	}
}

func TestEvalModeChain(t *testing.T) {
	a := Accumulator{Mode: EvalChain}
	typeKeys(&a, "2+3*4")
	if res, err := a.Evaluate(); err != nil || res.Text != "20" {
		t.Fatalf("chain: %+v, %v", res, err)
	}
}

func TestDeleteLast(t *testing.T) {
	var a Accumulator
	typeKeys(&a, "12")
	a.DeleteLast()
	if a.Input() != "1" {
		t.Fatalf("input=%q, want 1", a.Input())
	}

	a.ClearAll()
	typeKeys(&a, "7+")
	a.DeleteLast()
	if a.Expression() != "" || a.Input() != "" {
		t.Fatalf("after deleting segment: expr=%q input=%q", a.Expression(), a.Input())
	}

	typeKeys(&a, "1+2*")
	a.DeleteLast()
	if a.Expression() != "1 + " {
		t.Fatalf("expr=%q, want %q", a.Expression(), "1 + ")
	}

	a.DeleteLast()
	a.DeleteLast()
	if a.State() != StateIdle {
		t.Fatalf("state=%s, want idle", a.State())
	}
}

func TestToggleSignAndFunctions(t *testing.T) {
	var a Accumulator
	a.ToggleSign()
	a.Apply(FuncSqrt)
	if a.Input() != "" {
		t.Fatalf("functions on empty input changed it to %q", a.Input())
	}

	typeKeys(&a, "9")
	a.Apply(FuncSqrt)
	if a.Input() != "3" {
		t.Fatalf("sqrt(9)=%q", a.Input())
	}
	a.Apply(FuncSquare)
	if a.Input() != "9" {
		t.Fatalf("square(3)=%q", a.Input())
	}
	a.ToggleSign()
	if a.Input() != "-9" {
		t.Fatalf("toggle=%q", a.Input())
	}
	a.Apply(FuncSqrt)
	if a.Input() != "NaN" {
		t.Fatalf("sqrt(-9)=%q, want NaN", a.Input())
	}
	a.ToggleSign()
	a.ToggleSign()
	if a.Input() != "NaN" {
		t.Fatalf("double toggle=%q", a.Input())
	}
}

func TestMemory(t *testing.T) {
	var a Accumulator
	a.MemoryAdd()
	if a.MemoryActive() {
		t.Fatal("memory active after adding empty input")
	}

	typeKeys(&a, "2.5")
	a.MemoryAdd()
	a.MemoryAdd()
	if a.Memory() != 5 || !a.MemoryActive() {
		t.Fatalf("memory=%v active=%v", a.Memory(), a.MemoryActive())
	}

	a.ClearAll()
	if a.Memory() != 5 {
		t.Fatal("ClearAll must keep memory")
	}
	a.MemoryRecall()
	if a.Input() != "5" {
		t.Fatalf("recall=%q", a.Input())
	}

	a.ClearAll()
	a.AppendOperator(OpSub)
	a.MemoryAdd()
	if a.Memory() != 5 {
		t.Fatalf("bare sign changed memory to %v", a.Memory())
	}

	a.MemoryClear()
	if a.MemoryActive() {
		t.Fatal("memory active after clear")
	}
}

func TestDisplayText(t *testing.T) {
	var a Accumulator
	if a.DisplayText() != "0" {
		t.Fatalf("empty display=%q", a.DisplayText())
	}
	typeKeys(&a, "42")
	if a.DisplayText() != "42" {
		t.Fatalf("display=%q", a.DisplayText())
	}
}
