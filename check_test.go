package wrench_test

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/AAUP4-Projekt/wrench"
)

func checkSrc(src string) error {
	prog, err := wrench.Parse("test.wr", src)
	if err != nil {
		return err
	}
	return wrench.CheckProgram(prog)
}

// TestAssignStringToIntIsTypeError is scenario S5: declaring an int
// variable with a string initializer must fail type-checking with a
// TypeError at the declaration's position.
func TestAssignStringToIntIsTypeError(t *testing.T) {
	err := checkSrc(`var int x = "hi";`)
	expect.True(t, err != nil)
	te, ok := err.(*wrench.TypeError)
	expect.True(t, ok)
	expect.EQ(t, te.Pos.Line, 1)
}

func TestIntWidensToDouble(t *testing.T) {
	expect.NoError(t, checkSrc(`const double x = 1;`))
}

func TestDoubleDoesNotNarrowToInt(t *testing.T) {
	err := checkSrc(`const int x = 1.5;`)
	expect.True(t, err != nil)
}

// TestRowStructuralEquivalenceIgnoresFieldOrder covers §8's field-order
// independence: two row types with the same (name, type) pairs in a
// different declaration order must type-check as the same row type.
func TestRowStructuralEquivalenceIgnoresFieldOrder(t *testing.T) {
	err := checkSrc(`
		fn row(int id, string name) identity(row(int id, string name) r) {
			return r;
		}
		const row(string name, int id) x = row(string name = "a", int id = 1);
		const row(int id, string name) y = identity(x);
	`)
	expect.NoError(t, err)
}

func TestRowMismatchedFieldTypeIsTypeError(t *testing.T) {
	err := checkSrc(`const row(int id) x = row(string id = "a");`)
	expect.True(t, err != nil)
}

func TestNonLiteralNegativeExponentIsNotAStaticError(t *testing.T) {
	// The grammar has no unary-minus syntax, so a negative exponent can
	// only ever arise from a computed expression, never a literal; the
	// checker must accept this program and defer any negative-exponent
	// failure to evaluation. The literal case (AST-constructed, since it
	// has no surface syntax) is covered in internal_test.go.
	err := checkSrc(`
		fn int neg(int n) { return 0 - n; }
		const int x = 2 ** neg(1);
	`)
	expect.NoError(t, err)
}

func TestRedeclarationInSameScopeIsTypeError(t *testing.T) {
	err := checkSrc(`const int x = 1; const int x = 2;`)
	expect.True(t, err != nil)
}

func TestShadowingInNestedScopeIsAllowed(t *testing.T) {
	err := checkSrc(`
		const int x = 1;
		if (true) {
			const string x = "shadowed";
		}
	`)
	expect.NoError(t, err)
}

func TestAssignToConstIsTypeError(t *testing.T) {
	err := checkSrc(`const int x = 1; x = 2;`)
	expect.True(t, err != nil)
}

func TestUndeclaredIdentifierIsTypeError(t *testing.T) {
	err := checkSrc(`const int x = y;`)
	expect.True(t, err != nil)
}

func TestForLoopVariableMustMatchTableRowType(t *testing.T) {
	err := checkSrc(`
		const table(int id) t = table(int id);
		for (row(string id) r in t) {
			print(r);
		}
	`)
	expect.True(t, err != nil)
}
