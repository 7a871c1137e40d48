package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// ErrSyntax is returned by Dispatch when a quoted line cannot be tokenized.
var ErrSyntax = errors.New("shell: syntax error")

// UnknownCommandError reports a first token with no registered command.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "shell: unknown command " + e.Name
}

// CommandError reports a command that returned a non-zero status.
type CommandError struct {
	Name   string
	Status int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("shell: %s: exit status %d", e.Name, e.Status)
}

// Dispatch runs one complete line. While logged out the line is a password
// attempt. Failures are reported on the session output and also returned.
// A panicking handler is not recovered.
func (s *Session) Dispatch(line string) error {
	if s.loggingIn() {
		return s.login(line)
	}

	args, err := s.tokenize(line)
	if err != nil {
		s.Printf("syntax error: %v\n", err)
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if len(args) == 0 {
		return nil
	}

	name := args[0]
	cmd, ok := s.syms.FindCommand(name)
	if !ok {
		s.Printf("%s: command not found\n", name)
		s.logf("unknown command %q", name)
		return &UnknownCommandError{Name: name}
	}

	status := cmd.Handler(s, args[1:])
	s.lastStatus = status
	if status != 0 {
		s.Printf("%s: exit status %d\n", name, status)
		s.logf("%s exited with %d", name, status)
		return &CommandError{Name: name, Status: status}
	}
	return nil
}

func (s *Session) tokenize(line string) ([]string, error) {
	if !s.cfg.QuotedArgs {
		return strings.Fields(line), nil
	}
	return shlex.Split(line)
}
