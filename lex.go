package wrench

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"text/scanner"
)

// lexer turns source text into a stream of Tokens. It is built on
// text/scanner, the same tokenizing primitive the teacher's own lexer uses,
// with a table-driven multi-character-operator matcher (registerOp /
// opPrefixes / opChars) carried over from that implementation.
type lexer struct {
	sc     scanner.Scanner
	curPos Pos

	opPrefixes map[string][]TokenKind
	ops        map[string]TokenKind
	opChars    [256]bool
}

type lexOpDef struct {
	str string
	tok TokenKind
}

var lexOpDefs = []lexOpDef{
	{"**", tokStarStar},
	{"==", tokEqEq},
	{"<=", tokLe},
	{">=", tokGe},
	{"<", tokLt},
	{">", tokGt},
	{"+", tokPlus},
	{"-", tokMinus},
	{"*", tokStar},
	{"/", tokSlash},
	{"%", tokPercent},
	{"!", tokBang},
	{"=", tokAssign},
	{";", tokSemi},
	{",", tokComma},
	{"(", tokLParen},
	{")", tokRParen},
	{"{", tokLBrace},
	{"}", tokRBrace},
	{"[", tokLBracket},
	{"]", tokRBracket},
	{".", tokDot},
}

func (lex *lexer) registerOp(op string, tok TokenKind) {
	for _, ch := range op {
		lex.opChars[ch] = true
	}
	lex.ops[op] = tok
	for i := 0; i < len(op); i++ {
		prefix := op[0 : i+1]
		lex.opPrefixes[prefix] = append(lex.opPrefixes[prefix], tok)
	}
}

func (lex *lexer) numPossibleOpsWithPrefix(prefix string) int {
	return len(lex.opPrefixes[prefix])
}

func newLexer(filename string, in io.Reader) *lexer {
	lex := &lexer{
		opPrefixes: map[string][]TokenKind{},
		ops:        map[string]TokenKind{},
	}
	lex.sc.Init(in)
	lex.sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	lex.sc.Position.Filename = filename
	lex.sc.Error = func(s *scanner.Scanner, msg string) {
		panic(&LexError{Pos: scannerPos(s.Pos()), Message: msg})
	}
	for _, d := range lexOpDefs {
		lex.registerOp(d.str, d.tok)
	}
	return lex
}

func scannerPos(p scanner.Position) Pos {
	return Pos{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func (lex *lexer) pos() Pos { return lex.curPos }

// next reads the next token from the source, or returns a tokEOF token.
func (lex *lexer) next() Token {
	tok := lex.sc.Scan()
	lex.curPos = scannerPos(lex.sc.Position)
	switch tok {
	case scanner.EOF:
		return Token{Kind: tokEOF, Pos: lex.curPos}
	case scanner.Ident:
		str := lex.sc.TokenText()
		if kw, ok := keywords[str]; ok {
			return Token{Kind: kw, Pos: lex.curPos, Str: str}
		}
		return Token{Kind: tokIdent, Pos: lex.curPos, Str: str}
	case scanner.String:
		raw := lex.sc.TokenText()
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			panic(&LexError{Pos: lex.curPos, Message: "malformed string literal: " + raw})
		}
		return Token{Kind: tokString, Pos: lex.curPos, Str: unquoted}
	case scanner.Int:
		str := lex.sc.TokenText()
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			panic(&LexError{Pos: lex.curPos, Message: "malformed integer literal: " + str})
		}
		return Token{Kind: tokInt, Pos: lex.curPos, Int: n}
	case scanner.Float:
		str := lex.sc.TokenText()
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			panic(&LexError{Pos: lex.curPos, Message: "malformed double literal: " + str})
		}
		return Token{Kind: tokFloat, Pos: lex.curPos, Float64: f}
	default:
		if tok <= 0 || tok > 128 {
			panic(&LexError{Pos: lex.curPos, Message: "invalid character: " + scanner.TokenString(tok)})
		}
		buf := bytes.Buffer{}
		buf.WriteByte(byte(tok))
		if lex.numPossibleOpsWithPrefix(buf.String()) <= 1 {
			if op, ok := lex.ops[buf.String()]; ok {
				return Token{Kind: op, Pos: lex.curPos}
			}
		}
		for {
			ch := lex.sc.Peek()
			if ch <= 0 || ch >= 256 || !lex.opChars[ch] {
				break
			}
			buf.WriteByte(byte(ch))
			switch lex.numPossibleOpsWithPrefix(buf.String()) {
			case 0:
				buf.Truncate(buf.Len() - 1)
				goto done
			case 1:
				lex.sc.Next()
				if op, ok := lex.ops[buf.String()]; ok {
					return Token{Kind: op, Pos: lex.curPos}
				}
			default:
				lex.sc.Next()
			}
		}
	done:
		op, ok := lex.ops[buf.String()]
		if !ok {
			panic(&LexError{Pos: lex.curPos, Message: "invalid character: " + strconv.Quote(buf.String())})
		}
		return Token{Kind: op, Pos: lex.curPos}
	}
}

// LexAll tokenizes src in full, for the CLI's `-debug` token dump
// (§10.6); ordinary parsing drives the lexer one token at a time instead.
func LexAll(filename, src string) (toks []Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			if le, ok := r.(*LexError); ok {
				err = le
				return
			}
			panic(r)
		}
	}()
	lex := newLexer(filename, strings.NewReader(src))
	for {
		t := lex.next()
		toks = append(toks, t)
		if t.Kind == tokEOF {
			break
		}
	}
	return toks, nil
}
