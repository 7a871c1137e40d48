// Package app wires the console: HAL devices, the serial transport, the
// optional display terminal, and the shell session.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"smkshell/hal"
	"smkshell/smk/services/serial"
	"smkshell/smk/services/shell"
	"smkshell/smk/services/term"
	"smkshell/smk/symtab"
)

// ErrExit is returned by Step after the exit command ran or the console input
// ended.
var ErrExit = errors.New("app: exit")

type Config struct {
	// Shell configures the session. Out and Log are set by New.
	Shell shell.Config
	// Terminal mirrors the console onto the HAL display.
	Terminal bool
}

// System is one running console.
type System struct {
	h       hal.HAL
	sess    *shell.Session
	serial  *serial.Service
	term    *term.Service
	keys    <-chan hal.KeyEvent
	keyBuf  []byte
	started time.Time

	mu     sync.Mutex
	ledOn  bool
	exited bool
}

// New builds the console on h. Nothing runs until Start.
func New(h hal.HAL, cfg Config) (*System, error) {
	s := &System{
		h:       h,
		serial:  serial.New(h.Serial(), h.Logger()),
		started: time.Now(),
	}

	out := shell.MultiPrinter{shell.NewWriterPrinter(s.serial, true)}
	if cfg.Terminal {
		t, err := term.New(h.Display())
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		s.term = t
		out = append(out, t)
	}
	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			s.keys = kbd.Events()
		}
	}

	sc := cfg.Shell
	sc.Out = out
	sc.Log = h.Logger()
	sc.Context = s
	sess, err := shell.New(sc)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	s.sess = sess
	return s, nil
}

// Session returns the shell session of the console.
func (s *System) Session() *shell.Session { return s.sess }

// Start launches the serial reader and prints the banner and first prompt.
func (s *System) Start(ctx context.Context) {
	s.serial.Start(ctx)
	s.sess.Start()
	if s.term != nil {
		_ = s.term.Flush()
	}
}

// Step feeds pending keyboard and serial input to the session and presents
// the display. It never blocks.
func (s *System) Step() error {
	defer s.reportPanic()

	for drained := false; !drained; {
		select {
		case ev := <-s.keys:
			s.keyBuf = hal.AppendVT100(s.keyBuf[:0], ev)
			s.sess.Feed(s.keyBuf)
		default:
			drained = true
		}
	}
	s.serial.Poll(s.sess)

	if s.term != nil {
		if err := s.term.Flush(); err != nil {
			return fmt.Errorf("app: present: %w", err)
		}
	}
	if s.exitRequested() || (s.serial.HungUp() && s.keys == nil) {
		return ErrExit
	}
	return nil
}

// Run builds the console and steps it until ctx is done or the console exits.
// ErrExit is reported as a nil error.
func Run(ctx context.Context, h hal.HAL, cfg Config) error {
	s, err := New(h, cfg)
	if err != nil {
		return err
	}
	s.Start(ctx)

	t := time.NewTicker(5 * time.Millisecond)
	defer t.Stop()
	for {
		if err := s.Step(); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

func (s *System) requestExit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exited = true
}

func (s *System) exitRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exited
}

func systemOf(env symtab.Env) (*System, bool) {
	sys, ok := env.Context().(*System)
	return sys, ok
}
