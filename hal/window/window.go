//go:build !tinygo && cgo

// Package window shows a host framebuffer in a desktop window and turns the
// window's keyboard into hal key events.
package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"smkshell/hal"
)

// Config controls the window.
type Config struct {
	Title string
	// Scale multiplies the framebuffer size for the initial window size.
	Scale int
	// TPS is the number of step calls per second.
	TPS int
}

// Run opens a window showing fb, polls kbd once per tick and calls step after
// each poll. It blocks until the window closes or step fails.
func Run(fb hal.Framebuffer, kbd *Keyboard, step func() error, cfg Config) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	g := &game{fb: fb, kbd: kbd, step: step}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(fb.Width()*cfg.Scale, fb.Height()*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type game struct {
	fb    hal.Framebuffer
	kbd   *Keyboard
	step  func() error
	pix   []byte
	fbImg *ebiten.Image
}

func (g *game) Update() error {
	if g.kbd != nil {
		g.kbd.poll()
	}
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.fb.Width(), g.fb.Height()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		g.pix = make([]byte, w*h*4)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	hal.SnapshotRGBA(g.fb, g.pix)
	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width(), g.fb.Height()
}
