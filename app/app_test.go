package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"smkshell/hal"
	"smkshell/smk/services/shell"
)

type fakeLED struct {
	mu    sync.Mutex
	on    bool
	highs int
}

func (l *fakeLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.highs++
}

func (l *fakeLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
}

type fakeSerial struct {
	r   io.Reader
	mu  sync.Mutex
	out bytes.Buffer
}

func (s *fakeSerial) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *fakeSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

func (s *fakeSerial) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

type fakeLogger struct{}

func (fakeLogger) WriteLineString(string) {}
func (fakeLogger) WriteLineBytes([]byte)  {}

type fakeKeyboard chan hal.KeyEvent

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k }

type fakeHAL struct {
	led    *fakeLED
	serial *fakeSerial
	kbd    hal.Keyboard
}

func (h *fakeHAL) Logger() hal.Logger   { return fakeLogger{} }
func (h *fakeHAL) LED() hal.LED         { return h.led }
func (h *fakeHAL) Display() hal.Display { return nil }
func (h *fakeHAL) Serial() hal.Serial   { return h.serial }

func (h *fakeHAL) Input() hal.Input {
	if h.kbd == nil {
		return nil
	}
	return h
}

func (h *fakeHAL) Keyboard() hal.Keyboard { return h.kbd }

func newFakeHAL(input string) *fakeHAL {
	return &fakeHAL{led: &fakeLED{}, serial: &fakeSerial{r: strings.NewReader(input)}}
}

func runConsole(t *testing.T, h hal.HAL, cfg Config) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Run(ctx, h, cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunCommands(t *testing.T) {
	h := newFakeHAL("led on\rversion\rset board pico\rget board\rexit\r")
	defer func() { boardName = "smk" }()
	runConsole(t, h, Config{})

	out := h.serial.String()
	for _, want := range []string{"smk> ", "smk dev", "board = pico", "bye\r\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q lacks %q", out, want)
		}
	}
	if !h.led.on {
		t.Fatalf("led on did not switch the LED on")
	}
	if strings.Contains(out, "\n") && !strings.Contains(out, "\r\n") {
		t.Fatalf("serial output not CRLF translated: %q", out)
	}
}

func TestRunExitsAtEndOfInput(t *testing.T) {
	h := newFakeHAL("led toggle\rblink 0\r")
	runConsole(t, h, Config{})
	if !h.led.on {
		t.Fatalf("led toggle did not switch the LED on")
	}
}

func TestCommandErrors(t *testing.T) {
	h := newFakeHAL("led\rled blue\rblink x\rnope\r")
	runConsole(t, h, Config{})
	out := h.serial.String()
	for _, want := range []string{"usage: led on|off|toggle", `led: bad state "blue"`, `blink: bad count "x"`, "nope: command not found"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q lacks %q", out, want)
		}
	}
}

func TestBlinkUsesVariables(t *testing.T) {
	h := newFakeHAL("set blink_ms 1\rblink 2\rset blink_count 1\rblink\r")
	defer func() { blinkMS, blinkCount = 100, 3 }()
	runConsole(t, h, Config{})
	if h.led.highs != 3 || h.led.on {
		t.Fatalf("LED highs=%d on=%v; want 3 false", h.led.highs, h.led.on)
	}
}

func TestQuitAlias(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	h := &fakeHAL{led: &fakeLED{}, serial: &fakeSerial{r: pr}}

	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), h, Config{}) }()
	if _, err := pw.Write([]byte("quit\r")); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("quit did not stop the console")
	}
}

func TestKeyboardInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	kbd := make(fakeKeyboard, 16)
	h := &fakeHAL{led: &fakeLED{}, serial: &fakeSerial{r: pr}, kbd: kbd}

	s, err := New(h, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, r := range "led on" {
		kbd <- hal.KeyEvent{Press: true, Rune: r}
	}
	kbd <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !h.led.on {
		t.Fatalf("keyboard command did not run")
	}

	kbd <- hal.KeyEvent{Code: hal.KeyUp, Press: true}
	_ = s.Step()
	if got := s.Session().Line(); got != "led on" {
		t.Fatalf("Line() after Up = %q; want %q", got, "led on")
	}
}

func TestCommandsReachOwnConsole(t *testing.T) {
	a, b := newFakeHAL(""), newFakeHAL("")
	sa, err := New(a, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := New(b, Config{}); err != nil {
		t.Fatalf("New: %v", err)
	}

	sa.Session().Feed([]byte("led on\r"))
	if !a.led.on || b.led.on {
		t.Fatalf("LEDs a=%v b=%v; want only a on", a.led.on, b.led.on)
	}

	var out bytes.Buffer
	bare, err := shell.New(shell.Config{Out: shell.NewWriterPrinter(&out, false)})
	if err != nil {
		t.Fatalf("shell.New: %v", err)
	}
	if err := bare.Dispatch("led on"); err == nil || !strings.Contains(out.String(), "led: no LED") {
		t.Fatalf("led outside a console err=%v output %q", err, out.String())
	}
}

func TestNewErrors(t *testing.T) {
	h := newFakeHAL("")
	if _, err := New(h, Config{Terminal: true}); err == nil {
		t.Fatalf("New(Terminal without display) succeeded")
	}
	_, err := New(h, Config{Shell: shell.Config{LineCapacity: -1}})
	if err == nil {
		t.Fatalf("New(bad shell config) succeeded")
	}
}

func TestReportPanicRepanics(t *testing.T) {
	h := newFakeHAL("")
	s, err := New(h, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	boom := errors.New("boom")
	defer func() {
		if r := recover(); r != boom {
			t.Fatalf("recovered %v; want %v", r, boom)
		}
	}()
	func() {
		defer s.reportPanic()
		panic(boom)
	}()
}
