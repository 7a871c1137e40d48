// Package shell is the interactive command shell of a console: it turns a raw
// byte stream into edited command lines and dispatches them to the commands
// and variables of a symtab.Table.
//
// A Session is not safe for concurrent use. Feed it from one goroutine.
package shell

import (
	"fmt"

	"github.com/google/uuid"

	"smkshell/hal"
	"smkshell/smk/history"
	"smkshell/smk/linebuf"
	"smkshell/smk/symtab"
)

type inputMode uint8

const (
	modeNormal   inputMode = iota
	modeEscLead            // saw ESC
	modeEscBody            // saw ESC [
	modeEscTilde           // saw ESC [ n, waiting for '~'
	modeEscSkip            // unsupported CSI, skipping to its final byte
)

// Session is the editing and dispatch state of one console.
type Session struct {
	id   string
	cfg  Config
	out  Printer
	log  hal.Logger
	syms *symtab.Table

	line *linebuf.Buffer
	hist *history.Ring

	mode     inputMode
	escParam byte
	afterCR  bool

	auth      verifier
	authed    bool
	authFails int

	lastStatus int
}

// New creates a session in its initial state: empty line, empty history,
// Normal input mode, and logged out when a password is configured.
func New(cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	auth, err := newVerifier(cfg)
	if err != nil {
		return nil, err
	}
	return &Session{
		id:   uuid.NewString(),
		cfg:  cfg,
		out:  cfg.Out,
		log:  cfg.Log,
		syms: cfg.Symbols,
		line: linebuf.New(cfg.LineCapacity),
		hist: history.New(cfg.HistoryLines, cfg.LineCapacity),
		auth: auth,
	}, nil
}

// Start prints the banner and the first prompt.
func (s *Session) Start() {
	if s.cfg.Banner != "" {
		s.Printf("%s\n", s.cfg.Banner)
	}
	s.prompt()
}

// ID identifies the session in log lines.
func (s *Session) ID() string { return s.id }

// Printf writes to the session output.
func (s *Session) Printf(format string, args ...any) {
	s.out.Printf(format, args...)
}

// Symbols returns the table commands are resolved against.
func (s *Session) Symbols() *symtab.Table { return s.syms }

// Context returns Config.Context.
func (s *Session) Context() any { return s.cfg.Context }

// Line returns the line being edited.
func (s *Session) Line() string { return s.line.String() }

// Cursor returns the cursor column in the line being edited.
func (s *Session) Cursor() int { return s.line.Cursor() }

// HistoryCursor returns the recall position, -1 when not browsing.
func (s *Session) HistoryCursor() int { return s.hist.Cursor() }

// History returns the stored lines, oldest first.
func (s *Session) History() []string { return s.hist.Entries() }

// Authenticated reports whether commands are accepted. It is always true when
// no password is configured.
func (s *Session) Authenticated() bool { return s.auth == nil || s.authed }

// LastStatus returns the status of the most recently run command.
func (s *Session) LastStatus() int { return s.lastStatus }

// Logout drops authentication. It is a no-op without a password.
func (s *Session) Logout() {
	if s.auth == nil {
		return
	}
	s.authed = false
	s.hist.Reset()
}

func (s *Session) logf(format string, args ...any) {
	s.log.WriteLineString(fmt.Sprintf("shell[%s]: ", s.id[:8]) + fmt.Sprintf(format, args...))
}
