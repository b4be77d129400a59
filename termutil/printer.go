// Package termutil implements the output sink the `print` intrinsic
// writes through. It is trimmed from the teacher's termutil/printer.go:
// that file's Printer implementations include an interactive raw-mode
// terminal pager (SIGINT handling, "continue y/n?" prompts), an HTML
// sink, and a sub-process pipe sink, all serving the teacher's
// interactive REPL (github.com/yasushi-saito/readline +
// golang.org/x/crypto/ssh/terminal). Wrench's CLI (cmd/wrench) is a
// one-shot batch script runner with no REPL, so only the
// interface shape, its non-interactive io.Writer-backed
// implementation, and an in-memory BufferPrinter survive; see
// DESIGN.md for the full list of what was dropped and why.
package termutil

import (
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Printer is the sink `print` writes human-readable value renderings to.
type Printer interface {
	// Println writes s followed by a newline.
	Println(s string)
	// Close releases the printer's resources.
	Close()
}

// batchPrinter is a non-interactive printer that writes to the given
// output without paging, the survivor of the teacher's batchPrinter.
type batchPrinter struct {
	out io.Writer
	err errors.Once
}

// NewPrinter creates a Printer that writes to out non-interactively.
func NewPrinter(out io.Writer) Printer {
	return &batchPrinter{out: out}
}

func (p *batchPrinter) Println(s string) {
	if _, err := io.WriteString(p.out, s+"\n"); err != nil {
		if p.err.Err() == nil {
			log.Error.Printf("print: write: %v", err)
		}
		p.err.Set(err)
	}
}

func (p *batchPrinter) Close() {}

// BufferPrinter accumulates printed lines in memory, for tests that want
// to assert on a program's full printed output without touching stdout.
type BufferPrinter struct {
	lines []string
}

// NewBufferPrinter creates an in-memory Printer.
func NewBufferPrinter() *BufferPrinter {
	return &BufferPrinter{}
}

func (p *BufferPrinter) Println(s string) { p.lines = append(p.lines, s) }
func (p *BufferPrinter) Close()            {}

// Lines returns every line printed so far, in print order.
func (p *BufferPrinter) Lines() []string { return p.lines }

// String joins every printed line with newlines. Unlike the output of
// NewPrinter's printer, the result has no trailing newline.
func (p *BufferPrinter) String() string {
	s := ""
	for i, l := range p.lines {
		if i > 0 {
			s += "\n"
		}
		s += l
	}
	return s
}
