package shell

import "strings"

// complete extends a partial command name at the end of the line. A unique
// match is completed with a trailing space; several matches are extended to
// their common prefix and listed under the line.
func (s *Session) complete() {
	if s.line.Cursor() != s.line.Len() || s.line.Len() == 0 {
		return
	}
	prefix := s.line.String()
	if strings.IndexByte(prefix, ' ') >= 0 {
		return
	}
	matches := s.syms.CommandsWithPrefix(prefix)
	if len(matches) == 0 {
		if s.cfg.Bell {
			s.Printf("\a")
		}
		return
	}

	common := matches[0]
	for _, m := range matches[1:] {
		common = commonPrefix(common, m)
	}
	s.insertString(common[len(prefix):])
	if len(matches) == 1 {
		s.insertString(" ")
		return
	}

	s.Printf("\n%s\n", strings.Join(matches, "  "))
	s.redrawLine()
}

func (s *Session) insertString(str string) {
	for i := 0; i < len(str); i++ {
		s.insert(str[i])
	}
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
