package shell

import (
	"errors"
	"fmt"

	"smkshell/hal"
	"smkshell/smk/symtab"
)

const (
	DefaultLineCapacity = 128
	DefaultHistoryLines = 16
	DefaultPrompt       = "smk> "

	// MaxPasswordLen bounds the stored plain password and the typed attempt.
	MaxPasswordLen = 32
)

// Printer is the output side of a session: prompts, echo, redraws and command
// output all go through it. Newlines are written as "\n"; translating them for
// the wire is the printer's job.
type Printer interface {
	Printf(format string, args ...any)
}

// Config configures a Session. Zero values select the defaults above.
type Config struct {
	// LineCapacity is the maximum number of bytes in one command line.
	LineCapacity int
	// HistoryLines is the number of submitted lines kept for recall.
	HistoryLines int

	Prompt string
	// Banner is printed once by Start, before the first prompt.
	Banner string

	// Password enables the login gate with a plain-text password.
	Password string
	// PasswordHash enables the login gate with a bcrypt hash. Attempts are
	// limited to min(LineCapacity, MaxPasswordLen) bytes, so the hashed
	// password must fit in that.
	PasswordHash string

	// QuotedArgs tokenizes with shell quoting rules instead of plain whitespace.
	QuotedArgs bool
	// Bell rings the terminal bell when input is rejected.
	Bell bool

	// Symbols is the command/variable table. nil selects symtab.Default().
	Symbols *symtab.Table
	// Context is handed to command handlers through symtab.Env.
	Context any
	Out     Printer
	Log     hal.Logger
}

func (c Config) withDefaults() Config {
	if c.LineCapacity == 0 {
		c.LineCapacity = DefaultLineCapacity
	}
	if c.HistoryLines == 0 {
		c.HistoryLines = DefaultHistoryLines
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.Symbols == nil {
		c.Symbols = symtab.Default()
	}
	if c.Out == nil {
		c.Out = discardPrinter{}
	}
	if c.Log == nil {
		c.Log = discardLogger{}
	}
	return c
}

func (c Config) validate() error {
	if c.LineCapacity < 1 {
		return fmt.Errorf("shell config: line capacity %d < 1", c.LineCapacity)
	}
	if c.HistoryLines < 1 {
		return fmt.Errorf("shell config: history lines %d < 1", c.HistoryLines)
	}
	if len(c.Password) > MaxPasswordLen {
		return fmt.Errorf("shell config: password longer than %d bytes", MaxPasswordLen)
	}
	if len(c.Password) > c.LineCapacity {
		return fmt.Errorf("shell config: password longer than line capacity %d", c.LineCapacity)
	}
	if c.PasswordHash != "" && c.Password != "" {
		return errors.New("shell config: set either password or password hash, not both")
	}
	return nil
}

type discardPrinter struct{}

func (discardPrinter) Printf(string, ...any) {}

type discardLogger struct{}

func (discardLogger) WriteLineString(string) {}
func (discardLogger) WriteLineBytes([]byte)  {}
