package shell

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// WriterPrinter formats into an io.Writer, turning "\n" into "\r\n" for raw
// terminals. Write errors are dropped; the console has nowhere to report them.
type WriterPrinter struct {
	mu   sync.Mutex
	w    io.Writer
	crlf bool
	buf  bytes.Buffer
}

// NewWriterPrinter returns a printer writing to w. With crlf set every "\n"
// goes out as "\r\n".
func NewWriterPrinter(w io.Writer, crlf bool) *WriterPrinter {
	return &WriterPrinter{w: w, crlf: crlf}
}

func (p *WriterPrinter) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buf.Reset()
	fmt.Fprintf(&p.buf, format, args...)
	out := p.buf.Bytes()
	if p.crlf && bytes.IndexByte(out, '\n') >= 0 {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	_, _ = p.w.Write(out)
}

// MultiPrinter copies output to several printers.
type MultiPrinter []Printer

func (m MultiPrinter) Printf(format string, args ...any) {
	for _, p := range m {
		p.Printf(format, args...)
	}
}
