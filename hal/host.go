//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig selects the devices of a host HAL.
type HostConfig struct {
	// Width and Height size the framebuffer. Zero means no display.
	Width  int
	Height int
	// Keyboard is an optional key event source, such as a desktop window.
	Keyboard Keyboard
	// In and Out carry the console. nil selects stdin/stdout.
	In  *os.File
	Out *os.File
	// Log receives log lines. nil selects stderr.
	Log io.Writer
}

// Host is the HAL used when running on a development machine.
type Host struct {
	logger *hostLogger
	led    *hostLED
	fb     *hostFramebuffer
	kbd    Keyboard
	serial *hostSerial
}

var _ HAL = (*Host)(nil)

// NewHost returns a host HAL. When In is a terminal it is switched to raw
// mode; Close restores it.
func NewHost(cfg HostConfig) (*Host, error) {
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, fmt.Errorf("hal: invalid framebuffer size %dx%d", cfg.Width, cfg.Height)
	}

	serial, err := newHostSerial(cfg.In, cfg.Out)
	if err != nil {
		return nil, err
	}
	logger := &hostLogger{w: cfg.Log, eol: "\n"}
	if serial.Raw() {
		logger.eol = "\r\n"
	}
	h := &Host{
		logger: logger,
		led:    &hostLED{logger: logger},
		kbd:    cfg.Keyboard,
		serial: serial,
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		h.fb = newHostFramebuffer(cfg.Width, cfg.Height)
	}
	return h, nil
}

func (h *Host) Logger() Logger { return h.logger }
func (h *Host) LED() LED       { return h.led }
func (h *Host) Serial() Serial { return h.serial }

func (h *Host) Display() Display {
	if h.fb == nil {
		return nil
	}
	return hostDisplay{fb: h.fb}
}

func (h *Host) Input() Input {
	if h.kbd == nil {
		return nil
	}
	return hostInput{kbd: h.kbd}
}

// Close restores the terminal state changed by NewHost.
func (h *Host) Close() error {
	return h.serial.Close()
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd Keyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu  sync.Mutex
	w   io.Writer
	eol string
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, s)
	io.WriteString(l.w, l.eol)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	io.WriteString(l.w, l.eol)
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("led: LOW")
}
