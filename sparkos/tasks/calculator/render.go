package calculator

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"tradecalc/hal"
	"tradecalc/sparkos/calc"
	"tradecalc/sparkos/gfx"
	"tradecalc/sparkos/trading"
)

var font tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	lineH   = 12
	ascent  = 9
	margin  = 6
	headerH = 20
)

var (
	colBG      = gfx.RGB(0x0B, 0x0E, 0x14)
	colPanel   = gfx.RGB(0x16, 0x1B, 0x24)
	colBorder  = gfx.RGB(0x2B, 0x33, 0x44)
	colText    = gfx.RGB(0xEE, 0xEE, 0xEE)
	colDim     = gfx.RGB(0x88, 0x88, 0x88)
	colAccent  = gfx.RGB(0x9A, 0xC6, 0xFF)
	colGreen   = gfx.RGB(0x3F, 0xD1, 0x7A)
	colRed     = gfx.RGB(0xFF, 0x5C, 0x5C)
	colFlash   = gfx.RGB(0x24, 0x3B, 0x5A)
	colTabIdle = gfx.RGB(0x1E, 0x24, 0x30)
)

func (t *Task) render() {
	if !t.active || t.d == nil || t.fb == nil || t.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	w, h := t.fb.Width(), t.fb.Height()
	_ = t.d.FillRectangle(0, 0, int16(w), int16(h), colBG)

	t.renderHeader(w)
	switch t.mode {
	case modeTrading:
		t.renderTrading(w, h)
	default:
		t.renderBasic(w, h)
	}
	_ = t.d.Display()
}

// text draws s with its top edge at y.
func (t *Task) text(x, y int, s string, c color.RGBA) {
	t.d.Text(font, int16(x), int16(y+ascent), s, c)
}

func (t *Task) textRight(x, y int, s string, c color.RGBA) {
	t.d.TextRight(font, int16(x), int16(y+ascent), s, c)
}

func (t *Task) fill(x, y, w, h int, c color.RGBA) {
	_ = t.d.FillRectangle(int16(x), int16(y), int16(w), int16(h), c)
}

func (t *Task) frame(x, y, w, h int, c color.RGBA) {
	t.d.Frame(int16(x), int16(y), int16(w), int16(h), c)
}

func (t *Task) renderHeader(w int) {
	t.fill(0, 0, w, headerH, colPanel)
	t.text(margin, 5, "TRADECALC", colText)

	tabs := [...]struct {
		label string
		m     mode
	}{
		{"F1 Basic", modeBasic},
		{"F2 Trading", modeTrading},
	}
	x := w - margin
	for i := len(tabs) - 1; i >= 0; i-- {
		tw := gfx.TextWidth(font, tabs[i].label) + 8
		x -= tw
		bg, fg := colTabIdle, colDim
		if tabs[i].m == t.mode {
			bg, fg = colAccent, colBG
		}
		t.fill(x, 3, tw, headerH-6, bg)
		t.text(x+4, 5, tabs[i].label, fg)
		x -= 4
	}
}

func (t *Task) renderBasic(w, h int) {
	v := t.ctrl.View()
	inner := w - 2*margin
	y := headerH + 4

	modeLabel := "F3 " + t.ctrl.Mode().String()
	t.textRight(w-margin, y, modeLabel, colDim)
	if v.MemoryActive {
		t.text(margin, y, "M: "+calc.FormatNumber(v.Memory), colAccent)
	}
	y += lineH + 2

	// Expression line: the pending segments, or the last evaluated
	// expression once a result is showing.
	expr := v.Expression
	exprCol := colAccent
	if expr == "" && v.State == calc.StateAfterResult {
		expr = v.LastExpression
		exprCol = colDim
	}
	t.textRight(w-margin, y, gfx.TruncateLeft(font, expr, inner), exprCol)
	y += lineH + 2

	boxH := 2*lineH + 8
	boxBG := colPanel
	if v.Calculating {
		boxBG = colFlash
	}
	t.fill(margin, y, inner, boxH, boxBG)
	t.frame(margin, y, inner, boxH, colBorder)
	resCol := colText
	if v.Error {
		resCol = colRed
	}
	t.textRight(w-margin-6, y+boxH/2-ascent/2, gfx.TruncateLeft(font, v.Display, inner-12), resCol)
	y += boxH + 8

	legendH := 3 * lineH
	tapeH := h - y - legendH - margin
	t.renderTape(margin, y, inner, tapeH)

	ly := h - legendH
	t.text(margin, ly, "0-9 . + - * / %   Enter/= eval   Esc clear", colDim)
	t.text(margin, ly+lineH, "Bksp del   n +/-   r sqrt   q x^2", colDim)
	t.text(margin, ly+2*lineH, "m M+   l MR   k MC   F3 precedence", colDim)
}

func (t *Task) renderTape(x, y, w, h int) {
	if h < 2*lineH {
		return
	}
	t.fill(x, y, w, h, colPanel)
	t.frame(x, y, w, h, colBorder)
	t.text(x+4, y+3, "Tape", colDim)

	tape := t.ctrl.Tape()
	rows := (h - lineH - 6) / lineH
	if rows <= 0 {
		return
	}
	if len(tape) > rows {
		tape = tape[len(tape)-rows:]
	}
	ty := y + lineH + 4
	for _, line := range tape {
		t.textRight(x+w-4, ty, gfx.TruncateLeft(font, line, w-8), colText)
		ty += lineH
	}
}

func (t *Task) renderTrading(w, h int) {
	inner := w - 2*margin
	y := headerH + 4

	x := margin
	for _, tool := range tools {
		title := tool.Title()
		tw := gfx.TextWidth(font, title) + 8
		bg, fg := colTabIdle, colDim
		if tool == t.form.Tool {
			bg, fg = colAccent, colBG
		}
		t.fill(x, y, tw, lineH+2, bg)
		t.text(x+4, y+1, title, fg)
		x += tw + 4
	}
	y += lineH + 10

	labels := t.form.Tool.Labels()
	fieldH := lineH + 6
	for i, label := range labels {
		t.text(margin, y, label, colDim)
		y += lineH
		border := colBorder
		if i == t.form.Focus {
			border = colAccent
		}
		t.fill(margin, y, inner, fieldH, colPanel)
		t.frame(margin, y, inner, fieldH, border)
		val := t.form.Field(i)
		if i == t.form.Focus {
			val += "_"
		}
		t.text(margin+4, y+3, gfx.TruncateLeft(font, val, inner-8), colText)
		y += fieldH + 4
	}
	y += 4

	boxH := h - y - 2*lineH - margin
	if boxH > 0 {
		t.fill(margin, y, inner, boxH, colPanel)
		t.frame(margin, y, inner, boxH, colBorder)
		t.renderTradeResult(margin+6, y+4, inner-12)
	}

	ly := h - 2*lineH
	t.text(margin, ly, "Tab tool   Up/Down field   Enter/= compute", colDim)
	t.text(margin, ly+lineH, "Esc clear   Bksp del", colDim)
}

func (t *Task) renderTradeResult(x, y, w int) {
	switch {
	case t.tradeErr != nil:
		t.text(x, y, gfx.Truncate(font, capitalize(t.tradeErr.Error()), w), colRed)
		return
	case t.tradeRes == nil:
		t.text(x, y, "Enter values and press Enter", colDim)
		return
	}

	t.text(x, y, t.form.Tool.Title()+" Results", colDim)
	y += lineH + 2
	head := colGreen
	if !t.tradeRes.Good() {
		head = colRed
	}
	t.text(x, y, gfx.Truncate(font, t.tradeRes.Headline(), w), head)
	y += lineH + 4
	for _, line := range t.tradeRes.Lines() {
		t.text(x, y, gfx.Truncate(font, line, w), colText)
		y += lineH
	}
}

var tools = [...]trading.Tool{trading.ToolPosition, trading.ToolPnL, trading.ToolRiskReward}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
