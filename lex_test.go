package wrench

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func lexKinds(t *testing.T, src string) []TokenKind {
	toks, err := LexAll("test.wr", src)
	expect.NoError(t, err)
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

// assertKinds checks got against want element by element, rather than
// comparing the slices as a whole, to keep each assertion a simple
// scalar equality.
func assertKinds(t *testing.T, got, want []TokenKind) {
	expect.EQ(t, len(got), len(want))
	for i := range want {
		expect.EQ(t, got[i], want[i])
	}
}

func TestLexKeywordsAndPunctuation(t *testing.T) {
	got := lexKinds(t, "var int x = 1;")
	want := []TokenKind{tokVar, tokTypeInt, tokIdent, tokAssign, tokInt, tokSemi, tokEOF}
	assertKinds(t, got, want)
}

// TestLexOperatorPrefixMatching exercises the table-driven multi-character
// operator matcher: '*' is a prefix of '**', '<'/'>' are prefixes of
// '<='/'>=', so the lexer must look ahead before committing to the
// shorter token.
func TestLexOperatorPrefixMatching(t *testing.T) {
	cases := []struct {
		src  string
		want []TokenKind
	}{
		{"a ** b", []TokenKind{tokIdent, tokStarStar, tokIdent, tokEOF}},
		{"a * b", []TokenKind{tokIdent, tokStar, tokIdent, tokEOF}},
		{"a <= b", []TokenKind{tokIdent, tokLe, tokIdent, tokEOF}},
		{"a < b", []TokenKind{tokIdent, tokLt, tokIdent, tokEOF}},
		{"a >= b", []TokenKind{tokIdent, tokGe, tokIdent, tokEOF}},
		{"a > b", []TokenKind{tokIdent, tokGt, tokIdent, tokEOF}},
		{"a == b", []TokenKind{tokIdent, tokEqEq, tokIdent, tokEOF}},
		{"a = b", []TokenKind{tokIdent, tokAssign, tokIdent, tokEOF}},
	}
	for _, c := range cases {
		assertKinds(t, lexKinds(t, c.src), c.want)
	}
}

func TestLexLiterals(t *testing.T) {
	toks, err := LexAll("test.wr", `42 3.5 "hi there" true false null`)
	expect.NoError(t, err)
	expect.EQ(t, toks[0].Kind, tokInt)
	expect.EQ(t, toks[0].Int, int64(42))
	expect.EQ(t, toks[1].Kind, tokFloat)
	expect.EQ(t, toks[1].Float64, 3.5)
	expect.EQ(t, toks[2].Kind, tokString)
	expect.EQ(t, toks[2].Str, "hi there")
	expect.EQ(t, toks[3].Kind, tokTrue)
	expect.EQ(t, toks[4].Kind, tokFalse)
	expect.EQ(t, toks[5].Kind, tokNull)
}

func TestLexIdentifierVsKeyword(t *testing.T) {
	toks, err := LexAll("test.wr", "pipeline pipe")
	expect.NoError(t, err)
	expect.EQ(t, toks[0].Kind, tokIdent)
	expect.EQ(t, toks[0].Str, "pipeline")
	expect.EQ(t, toks[1].Kind, tokPipe)
}

func TestLexMalformedStringIsLexError(t *testing.T) {
	_, err := LexAll("test.wr", `"unterminated`)
	expect.True(t, err != nil)
	_, ok := err.(*LexError)
	expect.True(t, ok)
}
