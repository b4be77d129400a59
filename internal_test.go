package wrench

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

// TestNegativeIntLiteralExponentIsTypeError covers the static case of
// `**`'s negative-integer-exponent rule. The grammar has no unary-minus
// syntax, so a negative int literal has no surface-syntax form; this
// builds the AST directly to exercise the checker's literal-exponent
// special case.
func TestNegativeIntLiteralExponentIsTypeError(t *testing.T) {
	prog := &Program{Stmts: []Stmt{
		&VarDeclStmt{
			DeclaredType: IntType,
			Name:         "x",
			Init: &BinaryExpr{
				Op:    tokStarStar,
				Left:  &LiteralExpr{Val: NewInt(2)},
				Right: &LiteralExpr{Val: NewInt(-1)},
			},
		},
	}}
	err := CheckProgram(prog)
	expect.True(t, err != nil)
	_, ok := err.(*TypeError)
	expect.True(t, ok)
}
