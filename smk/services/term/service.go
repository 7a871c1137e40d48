// Package term renders console output on a framebuffer with a VT100
// terminal emulator.
package term

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"

	"smkshell/hal"
)

var ErrNoFramebuffer = errors.New("term: no RGB565 framebuffer")

var clearScreen = []byte("\x1b[2J")

// Service is a shell printer drawing onto a framebuffer. Output is drawn
// immediately and presented by Flush.
type Service struct {
	mu    sync.Mutex
	fb    hal.Framebuffer
	d     *fbDisplay
	t     *tinyterm.Terminal
	buf   bytes.Buffer
	dirty bool
}

// New creates a terminal on the display's framebuffer.
func New(disp hal.Display) (*Service, error) {
	if disp == nil {
		return nil, ErrNoFramebuffer
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || fb.Buffer() == nil {
		return nil, ErrNoFramebuffer
	}
	s := &Service{fb: fb, d: newFBDisplay(fb)}
	s.reset()
	return s, nil
}

func (s *Service) Printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()
	fmt.Fprintf(&s.buf, format, args...)
	s.write(s.buf.Bytes())
}

func (s *Service) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.write(p)
	return len(p), nil
}

// Flush presents the framebuffer if anything was drawn since the last call.
func (s *Service) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	s.dirty = false
	return s.d.Display()
}

// Reset clears the screen and homes the cursor.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Service) write(p []byte) {
	for {
		i := bytes.Index(p, clearScreen)
		if i < 0 {
			break
		}
		s.draw(p[:i])
		s.reset()
		p = p[i+len(clearScreen):]
	}
	s.draw(p)
}

// draw passes p to the emulator, skipping C0 controls it would render as
// glyphs. Backspace moves left like ESC [ D.
func (s *Service) draw(p []byte) {
	start := 0
	for i, b := range p {
		if b >= 0x20 || b == '\r' || b == '\n' || b == 0x1b {
			continue
		}
		_, _ = s.t.Write(p[start:i])
		if b == 0x08 {
			_, _ = s.t.Write([]byte("\x1b[D"))
		}
		start = i + 1
	}
	if start < len(p) {
		_, _ = s.t.Write(p[start:])
	}
	s.dirty = true
}

func (s *Service) reset() {
	s.t = tinyterm.NewTerminal(s.d)
	s.t.Configure(&tinyterm.Config{
		Font:              &proggy.TinySZ8pt7b,
		FontHeight:        10,
		FontOffset:        6,
		UseSoftwareScroll: true,
	})
	s.fb.ClearRGB(0, 0, 0)
	s.dirty = true
}
