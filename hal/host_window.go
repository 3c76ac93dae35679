//go:build cgo

package hal

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"tradecalc/internal/buildinfo"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Scale int
	Keys  string // optional key script, replayed one key per frame
}

// RunWindow opens a desktop window that shows the framebuffer and forwards
// keyboard input. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	h := newHost(os.Stdout)
	h.kbd.queueScript(cfg.Keys)
	step := newApp(h)

	ebiten.SetWindowTitle("TradeCalc (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(&hostGame{h: h, step: step})
}

type hostGame struct {
	h     *hostHAL
	step  func() error
	pix   []byte
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.kbd.feed()
	g.h.t.step()
	if g.step != nil {
		return g.step()
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.pix = make([]byte, fb.width*fb.height*4)
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}
	fb.snapshotRGBA(g.pix)
	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
