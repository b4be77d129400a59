package wrench

import (
	"context"

	"github.com/grailbio/base/file"
)

// Session runs a wrench program end to end: read source, parse, check,
// evaluate. It is grounded on the teacher's Session (gql/gql.go), trimmed
// to what a one-shot script runner needs — no global-variable injection,
// no REPL incremental statement evaluation, since wrench programs are
// always a single complete Program run to completion.
type Session struct {
	// Sink receives every value printed by the `print` intrinsic. Callers
	// that don't care about captured output pass a Printer writing to
	// os.Stdout; tests typically pass a termutil.BufferPrinter.
	Sink Printer
}

// NewSession creates a Session that prints through sink.
func NewSession(sink Printer) *Session {
	return &Session{Sink: sink}
}

// RunFile reads path (via github.com/grailbio/base/file; this module
// registers no s3:// or other remote implementation, so only local paths
// resolve), parses, type-checks, and evaluates it.
func (s *Session) RunFile(ctx context.Context, path string) error {
	data, err := file.ReadFile(ctx, path)
	if err != nil {
		return err
	}
	return s.RunSource(ctx, path, string(data))
}

// RunSource parses, type-checks, and evaluates src. filename is embedded
// in reported error positions only.
func (s *Session) RunSource(ctx context.Context, filename, src string) error {
	prog, err := Parse(filename, src)
	if err != nil {
		return err
	}
	if err := CheckProgram(prog); err != nil {
		return err
	}
	return Run(ctx, prog, s.Sink)
}
