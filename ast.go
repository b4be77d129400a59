package wrench

import (
	"fmt"
	"strings"
)

// ASTNode is the common capability of every syntax-tree node: it knows
// its own source position and can render itself, mirroring the teacher's
// ASTNode interface (gql/ast.go), minus the teacher's hash() method (which
// exists to content-address tables for distributed caching — a concern
// wrench has no use for, see DESIGN.md).
type ASTNode interface {
	Pos() Pos
	String() string
}

// Expr is an expression node: it type-checks to a Type and evaluates to a
// Value.
type Expr interface {
	ASTNode
	checkExpr(ck *checker) Type
	evalExpr(ev *evaluator) Value
}

// Stmt is a statement node: it type-checks for well-formedness and
// executes for effect, possibly producing a control-flow signal (a
// `return`).
type Stmt interface {
	ASTNode
	checkStmt(ck *checker)
	evalStmt(ev *evaluator) ctrl
}

// ASTUnknown is a sentinel node used where no real source position is
// available (e.g. synthesizing an error about a value with no syntactic
// origin), matching the teacher's own &ASTUnknown{} convention used
// throughout gql/log.go-style helpers.
type ASTUnknown struct{}

func (*ASTUnknown) Pos() Pos      { return Pos{} }
func (*ASTUnknown) String() string { return "<unknown>" }

// ---- Expressions ----

type LiteralExpr struct {
	P   Pos
	Val Value
}

func (n *LiteralExpr) Pos() Pos { return n.P }
func (n *LiteralExpr) String() string {
	if n.Val.typ.Kind == StringKind {
		return fmt.Sprintf("%q", n.Val.s)
	}
	return n.Val.Print()
}

type VarRefExpr struct {
	P    Pos
	Name string
}

func (n *VarRefExpr) Pos() Pos      { return n.P }
func (n *VarRefExpr) String() string { return n.Name }

type UnaryExpr struct {
	P  Pos
	Op TokenKind // tokBang
	X  Expr
}

func (n *UnaryExpr) Pos() Pos      { return n.P }
func (n *UnaryExpr) String() string { return "!" + n.X.String() }

type BinaryExpr struct {
	P           Pos
	Op          TokenKind // + - * / % ** == < <=
	Left, Right Expr
}

func (n *BinaryExpr) Pos() Pos { return n.P }
func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + opSymbol(n.Op) + " " + n.Right.String() + ")"
}

func opSymbol(op TokenKind) string {
	switch op {
	case tokPlus:
		return "+"
	case tokMinus:
		return "-"
	case tokStar:
		return "*"
	case tokSlash:
		return "/"
	case tokPercent:
		return "%"
	case tokStarStar:
		return "**"
	case tokEqEq:
		return "=="
	case tokLt:
		return "<"
	case tokLe:
		return "<="
	default:
		return "?"
	}
}

// AndExpr and OrExpr are dedicated short-circuiting nodes. `and` is
// produced by the parser's desugaring of `a and b` into the conditional
// "if a then b else false" (§4.2, §9); `or` is its own evaluator case.
// Both are represented directly as AST nodes rather than as a generic
// conditional, since that is the only place a built-in conditional
// expression node is needed.
type AndExpr struct {
	P           Pos
	Left, Right Expr
}

func (n *AndExpr) Pos() Pos      { return n.P }
func (n *AndExpr) String() string { return "(" + n.Left.String() + " and " + n.Right.String() + ")" }

type OrExpr struct {
	P           Pos
	Left, Right Expr
}

func (n *OrExpr) Pos() Pos      { return n.P }
func (n *OrExpr) String() string { return "(" + n.Left.String() + " or " + n.Right.String() + ")" }

// CallExpr is a function call, also the target of a pipe-rewrite: `a pipe
// f(b, c)` parses directly into `&CallExpr{Callee: "f", Args: [a, b, c]}`,
// mirroring the teacher's NewASTPipe, which rewrites ASTPipe into an
// ASTFuncall at parse time rather than keeping pipe as a distinct runtime
// node.
type CallExpr struct {
	P      Pos
	Callee string
	Args   []Expr
}

func (n *CallExpr) Pos() Pos { return n.P }
func (n *CallExpr) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Callee + "(" + strings.Join(parts, ", ") + ")"
}

type IndexExpr struct {
	P   Pos
	X   Expr
	Idx Expr
}

func (n *IndexExpr) Pos() Pos      { return n.P }
func (n *IndexExpr) String() string { return n.X.String() + "[" + n.Idx.String() + "]" }

type ColumnProjExpr struct {
	P     Pos
	X     Expr
	Field string
}

func (n *ColumnProjExpr) Pos() Pos      { return n.P }
func (n *ColumnProjExpr) String() string { return n.X.String() + "." + n.Field }

type ArrayLitExpr struct {
	P     Pos
	Elems []Expr

	// ElemType is filled in by checkExpr and consulted by evalExpr, so
	// the element type is computed exactly once rather than by
	// re-evaluating Elems[0] at eval time.
	ElemType Type
}

func (n *ArrayLitExpr) Pos() Pos { return n.P }
func (n *ArrayLitExpr) String() string {
	parts := make([]string, len(n.Elems))
	for i, e := range n.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RowLitField is one `T name = expr` entry of a row(...) literal.
type RowLitField struct {
	Type  Type
	Name  string
	Value Expr
}

type RowLitExpr struct {
	P      Pos
	Fields []RowLitField
}

func (n *RowLitExpr) Pos() Pos { return n.P }
func (n *RowLitExpr) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = f.Type.String() + " " + f.Name + " = " + f.Value.String()
	}
	return "row(" + strings.Join(parts, ", ") + ")"
}

// TableLitField is one `T name` schema entry of a table(...) literal.
type TableLitField struct {
	Type Type
	Name string
}

// TableLitExpr declares an empty table with a fixed schema.
type TableLitExpr struct {
	P      Pos
	Fields []TableLitField
}

func (n *TableLitExpr) Pos() Pos { return n.P }
func (n *TableLitExpr) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = f.Type.String() + " " + f.Name
	}
	return "table(" + strings.Join(parts, ", ") + ")"
}

// ---- Statements ----

type ExprStmt struct {
	P Pos
	X Expr
}

func (n *ExprStmt) Pos() Pos      { return n.P }
func (n *ExprStmt) String() string { return n.X.String() + ";" }

type VarDeclStmt struct {
	P            Pos
	Name         string
	DeclaredType Type
	Init         Expr
	Mutable      bool // true for `var`, false for `const`
}

func (n *VarDeclStmt) Pos() Pos { return n.P }
func (n *VarDeclStmt) String() string {
	kw := "const"
	if n.Mutable {
		kw = "var"
	}
	return fmt.Sprintf("%s %s %s = %s;", kw, n.DeclaredType, n.Name, n.Init)
}

type AssignStmt struct {
	P     Pos
	Name  string
	Value Expr
}

func (n *AssignStmt) Pos() Pos      { return n.P }
func (n *AssignStmt) String() string { return n.Name + " = " + n.Value.String() + ";" }

type ReturnStmt struct {
	P     Pos
	Value Expr
}

func (n *ReturnStmt) Pos() Pos      { return n.P }
func (n *ReturnStmt) String() string { return "return " + n.Value.String() + ";" }

type BlockStmt struct {
	P     Pos
	Stmts []Stmt
}

func (n *BlockStmt) Pos() Pos { return n.P }
func (n *BlockStmt) String() string {
	parts := make([]string, len(n.Stmts))
	for i, s := range n.Stmts {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

type IfStmt struct {
	P    Pos
	Cond Expr
	Then *BlockStmt
	Else *BlockStmt // nil if no else clause
}

func (n *IfStmt) Pos() Pos { return n.P }
func (n *IfStmt) String() string {
	s := "if (" + n.Cond.String() + ") " + n.Then.String()
	if n.Else != nil {
		s += " else " + n.Else.String()
	}
	return s
}

type ForStmt struct {
	P          Pos
	ParamType  Type
	ParamName  string
	TableExpr  Expr
	Body       *BlockStmt
}

func (n *ForStmt) Pos() Pos { return n.P }
func (n *ForStmt) String() string {
	return fmt.Sprintf("for (%s %s in %s) %s", n.ParamType, n.ParamName, n.TableExpr, n.Body)
}

type WhileStmt struct {
	P    Pos
	Cond Expr
	Body *BlockStmt
}

func (n *WhileStmt) Pos() Pos { return n.P }
func (n *WhileStmt) String() string {
	return "while (" + n.Cond.String() + ") " + n.Body.String()
}

// FuncDeclStmt declares a named function, introducing a fn(...)->Tret
// binding in the enclosing scope.
type FuncDeclStmt struct {
	P      Pos
	Name   string
	Params []FormalArg
	Ret    Type
	Body   *BlockStmt
}

func (n *FuncDeclStmt) Pos() Pos { return n.P }
func (n *FuncDeclStmt) String() string {
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = p.Type.String() + " " + p.Name
	}
	return fmt.Sprintf("fn %s %s(%s) %s", n.Ret, n.Name, strings.Join(parts, ", "), n.Body)
}

// Program is the top-level compilation unit: a sequence of statements
// executed directly in the global frame (no block scope of its own).
type Program struct {
	Stmts []Stmt
}

func (p *Program) String() string {
	parts := make([]string, len(p.Stmts))
	for i, s := range p.Stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
