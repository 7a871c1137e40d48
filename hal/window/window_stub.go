//go:build !tinygo && !cgo

package window

import (
	"errors"

	"smkshell/hal"
)

type Config struct {
	Title string
	Scale int
	TPS   int
}

// Keyboard never produces events without the window backend.
type Keyboard struct {
	ch chan hal.KeyEvent
}

func NewKeyboard() *Keyboard {
	return &Keyboard{ch: make(chan hal.KeyEvent)}
}

func (k *Keyboard) Events() <-chan hal.KeyEvent { return k.ch }

func Run(_ hal.Framebuffer, _ *Keyboard, _ func() error, _ Config) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
