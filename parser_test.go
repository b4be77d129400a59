package wrench_test

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/AAUP4-Projekt/wrench"
)

func parseExpr(t *testing.T, src string) wrench.Expr {
	prog, err := wrench.Parse("test.wr", "const int x = "+src+";")
	expect.NoError(t, err)
	expect.EQ(t, len(prog.Stmts), 1)
	decl, ok := prog.Stmts[0].(*wrench.VarDeclStmt)
	expect.True(t, ok)
	return decl.Init
}

// TestPrecedenceMultiplicationBindsTighterThanAddition covers the
// grammar's level-2-over-level-3 precedence: "1 + 2 * 3" must parse as
// "1 + (2 * 3)", not "(1 + 2) * 3".
func TestPrecedenceMultiplicationBindsTighterThanAddition(t *testing.T) {
	e := parseExpr(t, "1 + 2 * 3")
	bin, ok := e.(*wrench.BinaryExpr)
	expect.True(t, ok)
	expect.EQ(t, bin.String(), "(1 + (2 * 3))")
}

// TestPowerIsRightAssociative covers level-1's right associativity:
// "2 ** 3 ** 2" must parse as "2 ** (3 ** 2)".
func TestPowerIsRightAssociative(t *testing.T) {
	e := parseExpr(t, "2 ** 3 ** 2")
	expect.EQ(t, e.String(), "(2 ** (3 ** 2))")
}

// TestAndBindsTighterThanOr covers level-6-over-level-7.
func TestAndBindsTighterThanOr(t *testing.T) {
	e := parseExpr(t, "true or false and true")
	expect.EQ(t, e.String(), "(true or (false and true))")
}

// TestGreaterThanDesugarsToLessThan covers the parser's operand-swap
// desugaring of '>' and '>=' into '<' and '<=' (§4.2).
func TestGreaterThanDesugarsToLessThan(t *testing.T) {
	e := parseExpr(t, "1 > 2")
	bin, ok := e.(*wrench.BinaryExpr)
	expect.True(t, ok)
	expect.EQ(t, bin.String(), "(2 < 1)")

	e2 := parseExpr(t, "1 >= 2")
	bin2, ok := e2.(*wrench.BinaryExpr)
	expect.True(t, ok)
	expect.EQ(t, bin2.String(), "(2 <= 1)")
}

// TestPipeRewritesToCall covers the parse-time "a pipe f(b, c)" ==
// "f(a, b, c)" rewrite: the parser never produces a distinct pipe AST
// node, only a CallExpr with the piped value prepended to the argument
// list.
func TestPipeRewritesToCall(t *testing.T) {
	e := parseExpr(t, "a pipe f(b, c)")
	call, ok := e.(*wrench.CallExpr)
	expect.True(t, ok)
	expect.EQ(t, call.Callee, "f")
	expect.EQ(t, len(call.Args), 3)
	expect.EQ(t, call.Args[0].String(), "a")
	expect.EQ(t, call.Args[1].String(), "b")
	expect.EQ(t, call.Args[2].String(), "c")
}

// TestPipeWithNoExtraArgs covers the zero-extra-argument pipe form
// "a pipe f()" == "f(a)".
func TestPipeWithNoExtraArgs(t *testing.T) {
	e := parseExpr(t, "a pipe f()")
	call, ok := e.(*wrench.CallExpr)
	expect.True(t, ok)
	expect.EQ(t, len(call.Args), 1)
	expect.EQ(t, call.Args[0].String(), "a")
}

func TestArrayLiteral(t *testing.T) {
	e := parseExpr(t, "[1, 2, 3]")
	arr, ok := e.(*wrench.ArrayLitExpr)
	expect.True(t, ok)
	expect.EQ(t, len(arr.Elems), 3)
}

func TestRowLiteral(t *testing.T) {
	e := parseExpr(t, `row(int id = 1, string name = "a")`)
	row, ok := e.(*wrench.RowLitExpr)
	expect.True(t, ok)
	expect.EQ(t, len(row.Fields), 2)
	expect.EQ(t, row.Fields[0].Name, "id")
	expect.EQ(t, row.Fields[1].Name, "name")
}

func TestTableLiteral(t *testing.T) {
	e := parseExpr(t, "table(int id, string name)")
	tbl, ok := e.(*wrench.TableLitExpr)
	expect.True(t, ok)
	expect.EQ(t, len(tbl.Fields), 2)
}

// TestArrayTypeIsContextuallyRecognized covers the "array" type keyword,
// which is deliberately absent from the reserved-word table and instead
// recognized by the parser from its position as the head of a type.
func TestArrayTypeIsContextuallyRecognized(t *testing.T) {
	prog, err := wrench.Parse("test.wr", "const array(int) xs = [1, 2];")
	expect.NoError(t, err)
	decl := prog.Stmts[0].(*wrench.VarDeclStmt)
	expect.EQ(t, decl.DeclaredType.String(), "array(int)")
}

// TestIndexAndColumnProjectionChain covers postfix-level parsing of
// indexing and dot-projection, including chaining.
func TestIndexAndColumnProjectionChain(t *testing.T) {
	e := parseExpr(t, "rows[0].name")
	proj, ok := e.(*wrench.ColumnProjExpr)
	expect.True(t, ok)
	expect.EQ(t, proj.Field, "name")
	_, ok = proj.X.(*wrench.IndexExpr)
	expect.True(t, ok)
}

// TestParserRoundTrip exercises the pretty-print/re-parse invariant
// (§8): printing a parsed program and re-parsing the result must
// produce an AST with the same structural rendering.
func TestParserRoundTrip(t *testing.T) {
	src := "const int x = 1 + 2 * 3; fn int add(int a, int b) { return a + b; }"
	prog1, err := wrench.Parse("test.wr", src)
	expect.NoError(t, err)
	printed := prog1.String()

	prog2, err := wrench.Parse("test.wr", printed)
	expect.NoError(t, err)
	expect.EQ(t, prog2.String(), printed)
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := wrench.Parse("test.wr", "const int x = ;")
	expect.True(t, err != nil)
	pe, ok := err.(*wrench.ParseError)
	expect.True(t, ok)
	expect.EQ(t, pe.Pos.Line, 1)
}

// TestAsyncImportAtHeadOfPipeChainParses covers two positions the parser
// accepts for async_import: a declaration's whole initializer, and the
// leftmost operand of a pipe chain.
func TestAsyncImportAtHeadOfPipeChainParses(t *testing.T) {
	_, err := wrench.Parse("test.wr", `
		fn table(int id) identity(table(int id) t) { return t; }
		const table(int id) t = async_import("f.csv", table(int id));
		const table(int id) u = async_import("f.csv", table(int id)) pipe identity();
	`)
	expect.NoError(t, err)
}

// TestAsyncImportAsCallArgumentIsParseError covers §9's restriction:
// async_import is a parse error wherever it isn't the head of a pipe
// chain, including as an ordinary function argument.
func TestAsyncImportAsCallArgumentIsParseError(t *testing.T) {
	_, err := wrench.Parse("test.wr", `
		fn bool identity(bool b) { return b; }
		const bool b = identity(async_import("f.csv", table(int id)) == async_import("f.csv", table(int id)));
	`)
	expect.True(t, err != nil)
	_, ok := err.(*wrench.ParseError)
	expect.True(t, ok)
}

// TestAsyncImportAsPipeRHSIsParseError covers the other restricted
// position named in DESIGN.md: the right-hand side of a pipe stage.
func TestAsyncImportAsPipeRHSIsParseError(t *testing.T) {
	_, err := wrench.Parse("test.wr", `
		const string p = "f.csv";
		const table(int id) t = p pipe async_import(table(int id));
	`)
	expect.True(t, err != nil)
	_, ok := err.(*wrench.ParseError)
	expect.True(t, ok)
}
