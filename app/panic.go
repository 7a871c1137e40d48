package app

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// reportPanic writes a panic and its stack to the log and the display before
// letting it continue up the stack.
func (s *System) reportPanic() {
	v := recover()
	if v == nil {
		return
	}

	lines := []string{fmt.Sprintf("smk panic: %v", v)}
	for _, line := range strings.Split(string(debug.Stack()), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if l := s.h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}
	if s.term != nil {
		s.term.Printf("\n%s\n", lines[0])
		_ = s.term.Flush()
	}
	panic(v)
}
