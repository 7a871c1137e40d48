package shell

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"smkshell/smk/symtab"
)

type recorder struct {
	strings.Builder
}

func (r *recorder) Printf(format string, args ...any) {
	fmt.Fprintf(&r.Builder, format, args...)
}

type logRecorder struct {
	lines []string
}

func (l *logRecorder) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *logRecorder) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type call struct {
	name string
	args []string
}

type fixture struct {
	s     *Session
	out   *recorder
	log   *logRecorder
	calls []call
}

func newFixture(t *testing.T, cfg Config, cmds ...string) *fixture {
	t.Helper()
	f := &fixture{out: &recorder{}, log: &logRecorder{}}
	b := symtab.NewBuilder()
	for _, name := range cmds {
		name := name
		err := b.AddCommand(symtab.Command{Name: name, Handler: func(_ symtab.Env, args []string) int {
			f.calls = append(f.calls, call{name: name, args: args})
			return 0
		}})
		if err != nil {
			t.Fatalf("AddCommand(%q): %v", name, err)
		}
	}
	if cfg.Symbols == nil {
		cfg.Symbols = b.Build()
	}
	cfg.Out = f.out
	cfg.Log = f.log
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.s = s
	return f
}

func (f *fixture) feed(s string) { f.s.Feed([]byte(s)) }

func TestFeed_PrintableBytes(t *testing.T) {
	f := newFixture(t, Config{LineCapacity: 32})
	in := "led on 42"
	f.feed(in)
	if got := f.s.Line(); got != in {
		t.Fatalf("Line() = %q; want %q", got, in)
	}
	if f.s.Cursor() != len(in) {
		t.Fatalf("Cursor() = %d; want %d", f.s.Cursor(), len(in))
	}
	if !strings.Contains(f.out.String(), in) {
		t.Fatalf("output %q does not echo %q", f.out.String(), in)
	}
}

func TestFeed_OverflowIgnored(t *testing.T) {
	f := newFixture(t, Config{LineCapacity: 4, Bell: true})
	f.feed("abcdef")
	if got := f.s.Line(); got != "abcd" {
		t.Fatalf("Line() = %q; want %q", got, "abcd")
	}
	if n := strings.Count(f.out.String(), "\a"); n != 2 {
		t.Fatalf("bell count = %d; want 2", n)
	}
}

func TestFeed_BackspaceOnEmpty(t *testing.T) {
	f := newFixture(t, Config{})
	f.feed("\x7f\x08\x7f")
	if f.s.Line() != "" || f.s.Cursor() != 0 {
		t.Fatalf("after backspaces line=%q cursor=%d; want empty", f.s.Line(), f.s.Cursor())
	}
	if f.out.Len() != 0 {
		t.Fatalf("backspace on empty line wrote %q", f.out.String())
	}
}

func TestFeed_LineReadyDispatches(t *testing.T) {
	f := newFixture(t, Config{}, "led")
	f.feed("led on\r")

	want := []call{{name: "led", args: []string{"on"}}}
	if !reflect.DeepEqual(f.calls, want) {
		t.Fatalf("calls = %+v; want %+v", f.calls, want)
	}
	if f.s.Line() != "" || f.s.Cursor() != 0 {
		t.Fatalf("line not cleared: %q", f.s.Line())
	}
	if got := f.s.History(); !reflect.DeepEqual(got, []string{"led on"}) {
		t.Fatalf("History() = %q; want [led on]", got)
	}
}

func TestFeed_CRLFSubmitsOnce(t *testing.T) {
	f := newFixture(t, Config{}, "led")
	f.feed("led\r\nled\n")
	if len(f.calls) != 2 {
		t.Fatalf("calls = %d; want 2", len(f.calls))
	}
	if got := strings.Count(f.out.String(), DefaultPrompt); got != 2 {
		t.Fatalf("prompts = %d; want 2 (output %q)", got, f.out.String())
	}
}

func TestFeed_UpArrowRecallsHistory(t *testing.T) {
	f := newFixture(t, Config{}, "status")
	f.feed("status\r")
	f.feed("\x1b[A")

	if got := f.s.Line(); got != "status" {
		t.Fatalf("Line() = %q; want %q", got, "status")
	}
	if f.s.Cursor() != len("status") {
		t.Fatalf("Cursor() = %d; want %d", f.s.Cursor(), len("status"))
	}
	if f.s.HistoryCursor() != 0 {
		t.Fatalf("HistoryCursor() = %d; want 0", f.s.HistoryCursor())
	}

	f.feed("\x1b[B")
	if got := f.s.Line(); got != "" || f.s.HistoryCursor() != -1 {
		t.Fatalf("after Down line=%q cursor=%d; want empty, -1", got, f.s.HistoryCursor())
	}
}

func TestFeed_HistoryWalk(t *testing.T) {
	f := newFixture(t, Config{HistoryLines: 2}, "a", "b", "c")
	f.feed("a\rb\rc\r")
	for i, want := range []string{"c", "b", "b"} {
		f.feed("\x1b[A")
		if got := f.s.Line(); got != want {
			t.Fatalf("Up #%d Line() = %q; want %q", i, got, want)
		}
	}
}

func TestFeed_CursorEditing(t *testing.T) {
	tcs := []struct {
		name   string
		in     string
		line   string
		cursor int
	}{
		{name: "insert mid-line", in: "ac\x1b[Db", line: "abc", cursor: 2},
		{name: "right clamps", in: "ab\x1b[C\x1b[Cc", line: "abc", cursor: 3},
		{name: "home", in: "bc\x1b[Ha", line: "abc", cursor: 1},
		{name: "home tilde", in: "bc\x1b[1~a", line: "abc", cursor: 1},
		{name: "end", in: "ab\x1b[H\x1b[Fc", line: "abc", cursor: 3},
		{name: "end tilde", in: "ab\x1b[H\x1b[4~c", line: "abc", cursor: 3},
		{name: "delete", in: "abXc\x1b[D\x1b[D\x1b[3~", line: "abc", cursor: 2},
		{name: "delete at end", in: "abc\x1b[3~", line: "abc", cursor: 3},
		{name: "backspace mid-line", in: "abXc\x1b[D\x7f", line: "abc", cursor: 2},
		{name: "ctrl-a ctrl-e", in: "b\x01a\x05c", line: "abc", cursor: 3},
		{name: "ctrl-u", in: "junk abc\x1b[D\x1b[D\x1b[D\x15", line: "abc", cursor: 0},
		{name: "ctrl-w", in: "set level\x17", line: "set ", cursor: 4},
		{name: "ctrl-c", in: "abc\x03", line: "", cursor: 0},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, Config{})
			f.feed(tc.in)
			if got := f.s.Line(); got != tc.line || f.s.Cursor() != tc.cursor {
				t.Fatalf("feed(%q) line=%q cursor=%d; want %q %d", tc.in, got, f.s.Cursor(), tc.line, tc.cursor)
			}
		})
	}
}

func TestFeed_MalformedEscapeResets(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		want string
	}{
		{name: "bad lead", in: "\x1bxa", want: "a"},
		{name: "bad body", in: "\x1b[Zb", want: "b"},
		{name: "bad tilde", in: "\x1b[3xc", want: "c"},
		{name: "unsupported ss3", in: "\x1bOAd", want: "Ad"},
		{name: "ctrl right", in: "ab\x1b[1;5C", want: "ab"},
		{name: "f5", in: "led\x1b[15~", want: "led"},
		{name: "insert", in: "x\x1b[2~y", want: "xy"},
		{name: "long params", in: "\x1b[38;5;200md", want: "d"},
		{name: "aborted by backspace", in: "ab\x1b[5\x7fc", want: "ac"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, Config{})
			f.feed(tc.in)
			if got := f.s.Line(); got != tc.want {
				t.Fatalf("feed(%q) line=%q; want %q", tc.in, got, tc.want)
			}
			if f.s.mode != modeNormal {
				t.Fatalf("mode = %d; want Normal", f.s.mode)
			}
			if len(f.log.lines) == 0 {
				t.Fatalf("dropped sequence was not logged")
			}
		})
	}
}

func TestFeed_IgnoresOtherControlBytes(t *testing.T) {
	f := newFixture(t, Config{})
	f.feed("a\x00\x02\x07\x0bb")
	if got := f.s.Line(); got != "ab" {
		t.Fatalf("Line() = %q; want %q", got, "ab")
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	f := newFixture(t, Config{})
	err := f.s.Dispatch("help")
	var unknown *UnknownCommandError
	if !errors.As(err, &unknown) || unknown.Name != "help" {
		t.Fatalf("Dispatch(help) err=%v; want UnknownCommandError{help}", err)
	}
	if !strings.Contains(f.out.String(), "help: command not found") {
		t.Fatalf("output %q lacks not-found report", f.out.String())
	}
}

func TestDispatch_NoExtraArgs(t *testing.T) {
	f := newFixture(t, Config{}, "help")
	if err := f.s.Dispatch("help"); err != nil {
		t.Fatalf("Dispatch(help): %v", err)
	}
	if len(f.calls) != 1 || len(f.calls[0].args) != 0 {
		t.Fatalf("calls = %+v; want one call with no args", f.calls)
	}
}

func TestDispatch_EmptyLine(t *testing.T) {
	f := newFixture(t, Config{}, "led")
	for _, line := range []string{"", "   ", "\t"} {
		if err := f.s.Dispatch(line); err != nil {
			t.Fatalf("Dispatch(%q): %v", line, err)
		}
	}
	if len(f.calls) != 0 || f.out.Len() != 0 {
		t.Fatalf("empty lines produced calls=%v output=%q", f.calls, f.out.String())
	}
}

func TestDispatch_NonZeroStatus(t *testing.T) {
	b := symtab.NewBuilder()
	_ = b.AddCommand(symtab.Command{Name: "fail", Handler: func(symtab.Env, []string) int { return 3 }})
	f := newFixture(t, Config{Symbols: b.Build()})

	err := f.s.Dispatch("fail now")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Status != 3 {
		t.Fatalf("Dispatch err=%v; want CommandError status 3", err)
	}
	if !strings.Contains(f.out.String(), "fail: exit status 3") {
		t.Fatalf("output %q lacks status report", f.out.String())
	}
	if f.s.LastStatus() != 3 {
		t.Fatalf("LastStatus() = %d; want 3", f.s.LastStatus())
	}
}

func TestDispatch_QuotedArgs(t *testing.T) {
	f := newFixture(t, Config{QuotedArgs: true}, "echo")
	if err := f.s.Dispatch(`echo "a b" c`); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if want := []string{"a b", "c"}; !reflect.DeepEqual(f.calls[0].args, want) {
		t.Fatalf("args = %q; want %q", f.calls[0].args, want)
	}
	if err := f.s.Dispatch(`echo "oops`); !errors.Is(err, ErrSyntax) {
		t.Fatalf("Dispatch(unbalanced) err=%v; want ErrSyntax", err)
	}
}

func TestDispatch_PlainSplitKeepsQuotes(t *testing.T) {
	f := newFixture(t, Config{}, "echo")
	_ = f.s.Dispatch(`echo "a b"`)
	if want := []string{`"a`, `b"`}; !reflect.DeepEqual(f.calls[0].args, want) {
		t.Fatalf("args = %q; want %q", f.calls[0].args, want)
	}
}

func TestDispatch_HandlerPanicPropagates(t *testing.T) {
	b := symtab.NewBuilder()
	_ = b.AddCommand(symtab.Command{Name: "boom", Handler: func(symtab.Env, []string) int { panic("boom") }})
	f := newFixture(t, Config{Symbols: b.Build()})
	defer func() {
		if recover() == nil {
			t.Fatalf("handler panic was swallowed")
		}
	}()
	_ = f.s.Dispatch("boom")
}

func TestNew_ConfigErrors(t *testing.T) {
	tcs := []struct {
		name string
		cfg  Config
	}{
		{name: "negative capacity", cfg: Config{LineCapacity: -1}},
		{name: "negative history", cfg: Config{HistoryLines: -1}},
		{name: "long password", cfg: Config{Password: strings.Repeat("x", MaxPasswordLen+1)}},
		{name: "password exceeds line", cfg: Config{LineCapacity: 4, Password: "secret"}},
		{name: "both passwords", cfg: Config{Password: "a", PasswordHash: "b"}},
		{name: "bad hash", cfg: Config{PasswordHash: "not-bcrypt"}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg); err == nil {
				t.Fatalf("New(%+v) succeeded; want error", tc.cfg)
			}
		})
	}
}

func TestStart_PrintsBannerAndPrompt(t *testing.T) {
	f := newFixture(t, Config{Banner: "smk shell", Prompt: "# "})
	f.s.Start()
	if got, want := f.out.String(), "smk shell\n# "; got != want {
		t.Fatalf("Start output = %q; want %q", got, want)
	}
}

func TestSessions_HaveDistinctIDs(t *testing.T) {
	a := newFixture(t, Config{})
	b := newFixture(t, Config{})
	if a.s.ID() == "" || a.s.ID() == b.s.ID() {
		t.Fatalf("IDs %q and %q; want distinct non-empty", a.s.ID(), b.s.ID())
	}
}

func TestAuth_PlainPassword(t *testing.T) {
	f := newFixture(t, Config{Password: "secret"}, "led")
	f.s.Start()
	if f.s.Authenticated() {
		t.Fatalf("Authenticated() before login")
	}
	if !strings.HasSuffix(f.out.String(), "Password: ") {
		t.Fatalf("output %q does not end with password prompt", f.out.String())
	}

	f.feed("led\r")
	if len(f.calls) != 0 {
		t.Fatalf("command ran before login: %+v", f.calls)
	}
	if !strings.Contains(f.out.String(), "Login failed.") {
		t.Fatalf("output %q lacks failure report", f.out.String())
	}

	f.feed("secret\r")
	if !f.s.Authenticated() {
		t.Fatalf("Authenticated() false after correct password")
	}
	if strings.Contains(f.out.String(), "secret") {
		t.Fatalf("password echoed in clear: %q", f.out.String())
	}
	if len(f.s.History()) != 0 {
		t.Fatalf("password attempts stored in history: %q", f.s.History())
	}

	f.feed("led on\r")
	if len(f.calls) != 1 {
		t.Fatalf("calls after login = %+v; want 1", f.calls)
	}
}

func TestAuth_PasswordFillsLine(t *testing.T) {
	f := newFixture(t, Config{LineCapacity: 6, Password: "secret"})
	f.feed("secret\r")
	if !f.s.Authenticated() {
		t.Fatalf("password of exactly line capacity was rejected")
	}
}

func TestAuth_HistoryDisabledWhileLoggedOut(t *testing.T) {
	f := newFixture(t, Config{Password: "pw"})
	f.feed("pw\r")
	f.feed("echo\r")
	f.s.Logout()
	f.feed("\x1b[A")
	if f.s.Line() != "" {
		t.Fatalf("Up at password prompt recalled %q", f.s.Line())
	}
}

func TestAuth_Bcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}
	f := newFixture(t, Config{PasswordHash: string(hash)})
	if err := f.s.Dispatch("hunter3"); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("Dispatch(wrong) err=%v; want ErrAuthFailed", err)
	}
	if err := f.s.Dispatch("hunter2"); err != nil {
		t.Fatalf("Dispatch(right): %v", err)
	}
	if !f.s.Authenticated() {
		t.Fatalf("Authenticated() false after correct password")
	}
}

func TestHashPassword(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("HashPassword(\"\") succeeded")
	}
	h, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("pw")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestComplete(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		want string
	}{
		{name: "unique", in: "he\t", want: "help "},
		{name: "common prefix", in: "l\t", want: "led"},
		{name: "no match", in: "zz\t", want: "zz"},
		{name: "after space", in: "led o\t", want: "led o"},
		{name: "empty", in: "\t", want: ""},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, Config{}, "led", "ledmode", "help")
			f.feed(tc.in)
			if got := f.s.Line(); got != tc.want {
				t.Fatalf("feed(%q) line=%q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDispatch_HandlerSeesContext(t *testing.T) {
	var got any
	b := symtab.NewBuilder()
	err := b.AddCommand(symtab.Command{Name: "owner", Handler: func(env symtab.Env, _ []string) int {
		got = env.Context()
		return 0
	}})
	if err != nil {
		t.Fatalf("AddCommand: %v", err)
	}
	f := newFixture(t, Config{Symbols: b.Build(), Context: "console-1"})
	f.feed("owner\r")
	if got != "console-1" {
		t.Fatalf("env.Context() = %v; want console-1", got)
	}
}
