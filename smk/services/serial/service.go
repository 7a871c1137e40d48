// Package serial runs the console over a hal.Serial port. A reader goroutine
// moves received bytes into a kernel mailbox; the shell loop drains the
// mailbox so all input is fed from one goroutine.
package serial

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"smkshell/hal"
	"smkshell/kernel"
)

// Feeder consumes console input bytes.
type Feeder interface {
	Feed(p []byte)
}

// Service routes bytes between the serial port and a Feeder.
type Service struct {
	port hal.Serial
	log  hal.Logger
	mb   kernel.Mailbox

	started atomic.Bool
	hungUp  atomic.Bool
}

// New creates a serial service. log may be nil.
func New(port hal.Serial, log hal.Logger) *Service {
	return &Service{port: port, log: log}
}

// Write sends console output to the port.
func (s *Service) Write(p []byte) (int, error) {
	if s.port == nil {
		return 0, hal.ErrNotImplemented
	}
	return s.port.Write(p)
}

// Start launches the port reader. Later calls do nothing.
func (s *Service) Start(ctx context.Context) {
	if s.port == nil || !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.readLoop(ctx)
}

// HungUp reports whether the port reached end of input and the hangup has
// been drained by Poll.
func (s *Service) HungUp() bool { return s.hungUp.Load() }

// Poll feeds every queued chunk to f without blocking and returns the number
// of bytes fed.
func (s *Service) Poll(f Feeder) int {
	total := 0
	for {
		msg, ok := s.mb.TryRecv()
		if !ok {
			return total
		}
		switch msg.Kind {
		case kernel.MsgInput:
			p := msg.Payload()
			f.Feed(p)
			total += len(p)
		case kernel.MsgHangup:
			s.hungUp.Store(true)
		}
	}
}

func (s *Service) readLoop(ctx context.Context) {
	var buf [kernel.MaxMessageBytes]byte
	for ctx.Err() == nil {
		n, err := s.port.Read(buf[:])
		if n > 0 {
			s.mb.SendBytes(kernel.EPSerial, kernel.MsgInput, buf[:n])
		}
		switch {
		case errors.Is(err, io.EOF):
			s.logf("serial: end of input")
			s.mb.SendBytes(kernel.EPSerial, kernel.MsgHangup, nil)
			return
		case err != nil:
			s.logf("serial: read: %v", err)
			time.Sleep(10 * time.Millisecond)
		case n == 0:
			time.Sleep(time.Millisecond)
		}
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}
