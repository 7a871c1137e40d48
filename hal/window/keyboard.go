//go:build !tinygo && cgo

package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"smkshell/hal"
)

// Keyboard delivers the window's key presses as hal key events.
type Keyboard struct {
	ch chan hal.KeyEvent
}

var _ hal.Keyboard = (*Keyboard)(nil)

func NewKeyboard() *Keyboard {
	return &Keyboard{ch: make(chan hal.KeyEvent, 64)}
}

func (k *Keyboard) Events() <-chan hal.KeyEvent { return k.ch }

var namedKeys = []struct {
	key  ebiten.Key
	code hal.KeyCode
}{
	{ebiten.KeyArrowUp, hal.KeyUp},
	{ebiten.KeyArrowDown, hal.KeyDown},
	{ebiten.KeyArrowLeft, hal.KeyLeft},
	{ebiten.KeyArrowRight, hal.KeyRight},
	{ebiten.KeyEnter, hal.KeyEnter},
	{ebiten.KeyNumpadEnter, hal.KeyEnter},
	{ebiten.KeyEscape, hal.KeyEscape},
	{ebiten.KeyBackspace, hal.KeyBackspace},
	{ebiten.KeyTab, hal.KeyTab},
	{ebiten.KeyDelete, hal.KeyDelete},
	{ebiten.KeyHome, hal.KeyHome},
	{ebiten.KeyEnd, hal.KeyEnd},
}

var ctrlKeys = []struct {
	key ebiten.Key
	r   rune
}{
	{ebiten.KeyA, 0x01},
	{ebiten.KeyC, 0x03},
	{ebiten.KeyE, 0x05},
	{ebiten.KeyU, 0x15},
	{ebiten.KeyW, 0x17},
}

func (k *Keyboard) emit(ev hal.KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

func (k *Keyboard) poll() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl {
		for _, c := range ctrlKeys {
			if inpututil.IsKeyJustPressed(c.key) {
				k.emit(hal.KeyEvent{Press: true, Rune: c.r})
			}
		}
	} else {
		for _, r := range ebiten.AppendInputChars(nil) {
			k.emit(hal.KeyEvent{Press: true, Rune: r})
		}
	}

	for _, n := range namedKeys {
		if repeating(inpututil.KeyPressDuration(n.key)) {
			k.emit(hal.KeyEvent{Code: n.code, Press: true})
		}
	}
}

// repeating reports whether a key held for d ticks should fire: once on the
// first tick, then every 4 ticks after half a second.
func repeating(d int) bool {
	const (
		delay    = 30
		interval = 4
	)
	return d == 1 || (d >= delay && (d-delay)%interval == 0)
}
