package app

import (
	"fmt"
	"strings"

	"tinygo.org/x/tinyfont/proggy"

	"tradecalc/hal"
	"tradecalc/sparkos/gfx"
	"tradecalc/sparkos/kernel"
)

const panicLineH = 11

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			select {}
		}
		fb := disp.Framebuffer()
		if fb == nil {
			select {}
		}
		drawPanic(fb, lines)
		select {}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		fmt.Sprintf("TradeCalc panic: task=%d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	return lines
}

// drawPanic paints lines black on white, wrapping long lines, until the
// screen is full.
func drawPanic(fb hal.Framebuffer, lines []string) {
	fb.ClearRGB(255, 255, 255)

	d := gfx.New(fb)
	font := &proggy.TinySZ8pt7b
	fg := gfx.RGB(0, 0, 0)
	maxW := fb.Width() - 4

	y := 0
	for _, line := range lines {
		for line != "" {
			if y+panicLineH > fb.Height() {
				_ = fb.Present()
				return
			}
			chunk, rest := fitPrefix(line, func(s string) bool { return gfx.TextWidth(font, s) <= maxW })
			d.Text(font, 2, int16(y+panicLineH-2), chunk, fg)
			y += panicLineH
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

// fitPrefix splits s at the longest rune prefix accepted by fits. At least
// one rune is always taken.
func fitPrefix(s string, fits func(string) bool) (prefix, rest string) {
	r := []rune(s)
	n := len(r)
	for n > 1 && !fits(string(r[:n])) {
		n--
	}
	return string(r[:n]), string(r[n:])
}
