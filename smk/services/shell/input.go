package shell

import (
	"errors"

	"smkshell/smk/linebuf"
)

const (
	ctrlA = 0x01
	ctrlC = 0x03
	ctrlE = 0x05
	bs    = 0x08
	tab   = 0x09
	ctrlU = 0x15
	ctrlW = 0x17
	esc   = 0x1b
	del   = 0x7f
)

// Feed processes p one byte at a time.
func (s *Session) Feed(p []byte) {
	for _, b := range p {
		s.FeedByte(b)
	}
}

// FeedByte advances the input state machine by one received byte.
func (s *Session) FeedByte(b byte) {
	afterCR := s.afterCR
	s.afterCR = false

	if s.mode != modeNormal && s.escape(b) {
		return
	}

	switch {
	case b == esc:
		s.mode = modeEscLead
	case b == '\r':
		s.afterCR = true
		s.submit()
	case b == '\n':
		if afterCR {
			return
		}
		s.submit()
	case b == bs || b == del:
		s.backspace()
	case b == ctrlC:
		s.cancelLine()
	case b >= 0x20 && b < 0x7f:
		s.insert(b)
	case s.loggingIn():
		// Editing shortcuts are disabled at the password prompt.
	case b == ctrlA:
		s.home()
	case b == ctrlE:
		s.end()
	case b == ctrlU:
		if s.line.KillLeft() {
			s.redrawLine()
		}
	case b == ctrlW:
		if s.line.DeleteWordBack() {
			s.redrawLine()
		}
	case b == tab:
		s.complete()
	}
}

// escape advances an escape sequence by b. It returns false when b aborted
// the sequence and must be handled as ordinary input.
func (s *Session) escape(b byte) bool {
	mode := s.mode
	s.mode = modeNormal
	switch mode {
	case modeEscLead:
		if b == '[' {
			s.mode = modeEscBody
			return true
		}
		s.logf("dropped escape sequence ESC %q", b)
		return true

	case modeEscBody:
		switch {
		case isTildeLead(b):
			s.mode = modeEscTilde
			s.escParam = b
			return true
		case csiKey(b) != keyNone:
			s.applyKey(csiKey(b))
			return true
		case isCSIParam(b):
			s.mode = modeEscSkip
			return true
		}

	case modeEscTilde:
		switch {
		case b == '~':
			s.applyKey(tildeKey(s.escParam))
			return true
		case isCSIParam(b):
			s.mode = modeEscSkip
			return true
		}

	case modeEscSkip:
		if isCSIParam(b) {
			s.mode = modeEscSkip
			return true
		}
	}

	if isCSIFinal(b) {
		s.logf("dropped escape sequence ending %q", b)
		return true
	}
	s.logf("escape sequence aborted by %q", b)
	return false
}

func (s *Session) applyKey(k key) {
	if s.loggingIn() && (k == keyUp || k == keyDown) {
		return
	}
	switch k {
	case keyUp:
		if line, ok := s.hist.Older(); ok {
			s.line.Set(line)
			s.redrawLine()
		}
	case keyDown:
		if line, ok := s.hist.Newer(); ok {
			s.line.Set(line)
			s.redrawLine()
		}
	case keyLeft:
		if s.line.Move(-1) != 0 {
			s.Printf("\x1b[D")
		}
	case keyRight:
		if s.line.Move(1) != 0 {
			s.Printf("\x1b[C")
		}
	case keyHome:
		s.home()
	case keyEnd:
		s.end()
	case keyDelete:
		if s.line.Delete() {
			s.redrawFromCursor()
		}
	}
}

func (s *Session) insert(b byte) {
	if err := s.line.Insert(b); errors.Is(err, linebuf.ErrOverflow) {
		if s.cfg.Bell {
			s.Printf("\a")
		}
		return
	}
	s.Printf("%s", s.visible([]byte{b}))
	if s.line.Cursor() < s.line.Len() {
		s.redrawFromCursor()
	}
}

func (s *Session) backspace() {
	if !s.line.Backspace() {
		return
	}
	s.Printf("\x1b[D")
	s.redrawFromCursor()
}

func (s *Session) home() {
	for n := s.line.Home(); n > 0; n-- {
		s.Printf("\x1b[D")
	}
}

func (s *Session) end() {
	for n := s.line.End(); n > 0; n-- {
		s.Printf("\x1b[C")
	}
}

func (s *Session) cancelLine() {
	s.Printf("^C\n")
	s.line.Clear()
	s.hist.Reset()
	s.prompt()
}

// submit hands the finished line to the dispatcher, then records it in
// history and clears the buffer. Password attempts are never recorded.
func (s *Session) submit() {
	s.Printf("\n")
	line := s.line.String()
	if s.loggingIn() {
		s.line.Clear()
		_ = s.Dispatch(line)
		s.prompt()
		return
	}
	_ = s.Dispatch(line)
	s.hist.Commit(line)
	s.line.Clear()
	s.prompt()
}

func (s *Session) loggingIn() bool { return s.auth != nil && !s.authed }
