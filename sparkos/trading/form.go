package trading

import "strings"

// Tool selects one of the trading calculators.
type Tool uint8

const (
	ToolPosition Tool = iota
	ToolPnL
	ToolRiskReward
	toolCount
)

func (t Tool) String() string {
	switch t {
	case ToolPosition:
		return "position"
	case ToolPnL:
		return "pnl"
	case ToolRiskReward:
		return "rr"
	default:
		return "unknown"
	}
}

// Title is the tab caption.
func (t Tool) Title() string {
	switch t {
	case ToolPosition:
		return "Position"
	case ToolPnL:
		return "P&L"
	case ToolRiskReward:
		return "Risk:Reward"
	default:
		return "?"
	}
}

// Labels names the three input fields of the tool.
func (t Tool) Labels() [3]string {
	switch t {
	case ToolPosition:
		return [3]string{"Account Size", "Risk %", "Stop Loss"}
	case ToolPnL:
		return [3]string{"Entry Price", "Exit Price", "Position Size"}
	default:
		return [3]string{"Entry Price", "Stop Loss", "Take Profit"}
	}
}

// Next cycles to the following tool.
func (t Tool) Next() Tool { return (t + 1) % toolCount }

// Compute runs the tool on three already-parsed inputs. The result is nil
// when err is not.
func (t Tool) Compute(a, b, c float64, opts Options) (Result, error) {
	var (
		res Result
		err error
	)
	switch t {
	case ToolPosition:
		res, err = PositionSize(a, b, c, opts)
	case ToolPnL:
		res, err = ProfitLoss(a, b, c, opts)
	default:
		res, err = RiskReward(a, b, c, opts)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Form holds the text of every tool's fields and the input focus. Each tool
// keeps its own values when switching tabs.
type Form struct {
	Tool  Tool
	Focus int

	fields [toolCount][3]string
}

func (f *Form) Field(i int) string { return f.fields[f.Tool][i] }

// Values returns the three fields of the current tool.
func (f *Form) Values() [3]string { return f.fields[f.Tool] }

// SetField replaces a field of the current tool.
func (f *Form) SetField(i int, s string) { f.fields[f.Tool][i] = s }

// Edit appends r to the focused field. Digits, one '.' and a leading '-'
// are accepted.
func (f *Form) Edit(r rune) bool {
	cur := &f.fields[f.Tool][f.Focus]
	switch {
	case r >= '0' && r <= '9':
	case r == '.' && !strings.ContainsRune(*cur, '.'):
	case r == '-' && *cur == "":
	default:
		return false
	}
	if len(*cur) >= maxFieldLen {
		return false
	}
	*cur += string(r)
	return true
}

const maxFieldLen = 16

func (f *Form) Backspace() {
	cur := &f.fields[f.Tool][f.Focus]
	if *cur != "" {
		*cur = (*cur)[:len(*cur)-1]
	}
}

// Clear empties the current tool's fields and focuses the first one.
func (f *Form) Clear() {
	f.fields[f.Tool] = [3]string{}
	f.Focus = 0
}

func (f *Form) NextField() { f.Focus = (f.Focus + 1) % 3 }
func (f *Form) PrevField() { f.Focus = (f.Focus + 2) % 3 }

func (f *Form) NextTool() {
	f.Tool = f.Tool.Next()
	f.Focus = 0
}

// Compute parses the current tool's fields and runs it.
func (f *Form) Compute(opts Options) (Result, error) {
	v := f.fields[f.Tool]
	return f.Tool.Compute(ParseField(v[0]), ParseField(v[1]), ParseField(v[2]), opts)
}
