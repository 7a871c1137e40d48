//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

type hostSerial struct {
	mu    sync.Mutex
	r     *os.File
	w     *os.File
	fd    int
	state *term.State
}

func newHostSerial(r, w *os.File) (*hostSerial, error) {
	s := &hostSerial{r: r, w: w, fd: -1}
	if r == nil || !term.IsTerminal(int(r.Fd())) {
		return s, nil
	}

	// Raw mode: no OS echo or line discipline. The shell echoes and edits.
	fd := int(r.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("hal: set raw mode: %w", err)
	}
	s.fd = fd
	s.state = state
	return s, nil
}

// Raw reports whether the input terminal was switched to raw mode.
func (s *hostSerial) Raw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != nil
}

func (s *hostSerial) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotImplemented
	}
	return s.r.Read(p)
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *hostSerial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil
	}
	err := term.Restore(s.fd, s.state)
	s.state = nil
	if err != nil {
		return fmt.Errorf("hal: restore terminal: %w", err)
	}
	return nil
}
