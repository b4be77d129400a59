package wrench

import "fmt"

// Pos is a source position: 1-based line and column, plus a byte offset.
// It mirrors the position text/scanner.Position reports, kept as our own
// type so error values don't need to import text/scanner.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// String renders "line:column", the conventional Go source-position form.
func (p Pos) String() string {
	if p.Line == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
