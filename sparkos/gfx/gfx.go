// Package gfx draws onto an RGB565 HAL framebuffer through the
// drivers.Displayer contract, so tinyfont can render text on it.
package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"tradecalc/hal"
)

var _ drivers.Displayer = (*Display)(nil)

// Display adapts a hal.Framebuffer to drivers.Displayer. Writes outside the
// framebuffer, or to a framebuffer in another pixel format, are dropped.
type Display struct {
	fb hal.Framebuffer
}

func New(fb hal.Framebuffer) *Display {
	return &Display{fb: fb}
}

func (d *Display) usable() bool {
	return d != nil && d.fb != nil && d.fb.Format() == hal.PixelFormatRGB565 && d.fb.Buffer() != nil
}

func (d *Display) Size() (x, y int16) {
	if d == nil || d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if !d.usable() {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	buf := d.fb.Buffer()
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	p := RGB565(c)
	buf[off], buf[off+1] = byte(p), byte(p>>8)
}

// Display presents the framebuffer.
func (d *Display) Display() error {
	if d == nil || d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// FillRectangle fills the clipped rectangle with c.
func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if !d.usable() {
		return nil
	}
	x0 := clamp(int(x), 0, d.fb.Width())
	y0 := clamp(int(y), 0, d.fb.Height())
	x1 := clamp(int(x)+int(width), 0, d.fb.Width())
	y1 := clamp(int(y)+int(height), 0, d.fb.Height())

	p := RGB565(c)
	lo, hi := byte(p), byte(p>>8)
	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		for off := py*stride + x0*2; off < py*stride+x1*2 && off+1 < len(buf); off += 2 {
			buf[off], buf[off+1] = lo, hi
		}
	}
	return nil
}

// SetRotation is a no-op; the framebuffer has a fixed orientation.
func (d *Display) SetRotation(drivers.Rotation) error { return nil }

// Frame draws a 1px rectangle outline.
func (d *Display) Frame(x, y, width, height int16, c color.RGBA) {
	_ = d.FillRectangle(x, y, width, 1, c)
	_ = d.FillRectangle(x, y+height-1, width, 1, c)
	_ = d.FillRectangle(x, y, 1, height, c)
	_ = d.FillRectangle(x+width-1, y, 1, height, c)
}

// Text draws s with its baseline at y.
func (d *Display) Text(f tinyfont.Fonter, x, y int16, s string, c color.RGBA) {
	tinyfont.WriteLine(d, f, x, y, s, c)
}

// TextRight draws s right-aligned so that it ends at x.
func (d *Display) TextRight(f tinyfont.Fonter, x, y int16, s string, c color.RGBA) {
	d.Text(f, x-int16(TextWidth(f, s)), y, s, c)
}

// RGB565 packs c into a 16-bit pixel.
func RGB565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// RGB builds an opaque colour.
func RGB(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xFF} }

// TextWidth is the advance width of s in f.
func TextWidth(f tinyfont.Fonter, s string) int {
	_, w := tinyfont.LineWidth(f, s)
	return int(w)
}

// Truncate shortens s with a trailing ".." until it fits maxW pixels.
func Truncate(f tinyfont.Fonter, s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if TextWidth(f, s) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if cand := string(r) + ".."; TextWidth(f, cand) <= maxW {
			return cand
		}
	}
	return ""
}

// TruncateLeft drops leading runes until s fits, keeping the most recent
// input visible.
func TruncateLeft(f tinyfont.Fonter, s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	r := []rune(s)
	for len(r) > 0 && TextWidth(f, string(r)) > maxW {
		r = r[1:]
	}
	return string(r)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
