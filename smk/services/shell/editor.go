package shell

import "strings"

func (s *Session) prompt() {
	if s.loggingIn() {
		s.Printf("Password: ")
		return
	}
	s.Printf("%s", s.cfg.Prompt)
}

// visible returns what the terminal shows for p: the bytes themselves, or one
// '*' per byte at the password prompt.
func (s *Session) visible(p []byte) string {
	if s.loggingIn() {
		return strings.Repeat("*", len(p))
	}
	return string(p)
}

// redrawFromCursor repaints the tail of the line after an edit in the middle
// and puts the terminal cursor back where the buffer cursor is.
func (s *Session) redrawFromCursor() {
	tail := s.line.Tail()
	s.Printf("%s\x1b[K", s.visible(tail))
	for range tail {
		s.Printf("\x1b[D")
	}
}

// redrawLine repaints prompt and line from column 1.
func (s *Session) redrawLine() {
	s.Printf("\x1b[G")
	s.prompt()
	s.Printf("%s\x1b[K", s.visible(s.line.Bytes()))
	for n := s.line.Len() - s.line.Cursor(); n > 0; n-- {
		s.Printf("\x1b[D")
	}
}
