package calc

// Operator is a binary arithmetic operator, stored as its ASCII byte.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
	OpMod Operator = '%'
)

// ParseOperator accepts ASCII operators and the display glyphs × ÷ −.
func ParseOperator(r rune) (Operator, bool) {
	switch r {
	case '+':
		return OpAdd, true
	case '-', '−':
		return OpSub, true
	case '*', '×':
		return OpMul, true
	case '/', '÷':
		return OpDiv, true
	case '%':
		return OpMod, true
	default:
		return 0, false
	}
}

func (o Operator) String() string { return string(rune(o)) }

func (o Operator) precedence() int {
	switch o {
	case OpMul, OpDiv, OpMod:
		return 2
	default:
		return 1
	}
}

func isOperatorByte(c byte) bool {
	switch Operator(c) {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		return true
	}
	return false
}
