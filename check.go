package wrench

import (
	"fmt"
)

// checker performs the single static-analysis pass over the AST: it
// attaches (implicitly, via the return value of checkExpr) a Type to
// every expression and enforces the well-formedness rules of §4.3. It is
// grounded on the teacher's "abstract interpretation" pass (gql/ai.go):
// the same frame-stack-of-declared-types shape (aiFrame/aiBindings), but
// storing the *declared* static type of each binding rather than an
// inferred one, since wrench requires type annotations at every
// declaration instead of inferring them.
type checker struct {
	frames []map[string]typeInfo

	// funcReturn is the return type of the function currently being
	// checked, or nil outside any function body. Used to validate `return`
	// statements and to track "every path that returns a value must
	// return Tret".
	funcReturn *Type
}

type typeInfo struct {
	typ     Type
	mutable bool
}

func newChecker() *checker {
	ck := &checker{}
	ck.pushFrame()
	registerIntrinsicTypes(ck)
	return ck
}

func (ck *checker) pushFrame() {
	ck.frames = append(ck.frames, map[string]typeInfo{})
}

func (ck *checker) popFrame() {
	ck.frames = ck.frames[:len(ck.frames)-1]
}

// declare introduces name in the innermost (current) scope. Redeclaring a
// name already present in that exact scope is a checker error; shadowing
// a name from an outer scope is allowed (§4.3).
func (ck *checker) declare(node ASTNode, name string, typ Type, mutable bool) {
	top := ck.frames[len(ck.frames)-1]
	if _, ok := top[name]; ok {
		ck.fail(node, "'%s' is already declared in this scope", name)
	}
	top[name] = typeInfo{typ: typ, mutable: mutable}
}

func (ck *checker) lookup(node ASTNode, name string) typeInfo {
	for i := len(ck.frames) - 1; i >= 0; i-- {
		if info, ok := ck.frames[i][name]; ok {
			return info
		}
	}
	ck.fail(node, "undeclared identifier '%s'", name)
	panic("unreachable")
}

func (ck *checker) fail(node ASTNode, format string, args ...interface{}) {
	panic(&TypeError{Pos: node.Pos(), Message: fmt.Sprintf(format, args...)})
}

// CheckProgram type-checks an entire program, returning a *TypeError (via
// recover) instead of panicking out of the package, matching the
// fail-fast, halt-on-first-error propagation model of §7.
func CheckProgram(prog *Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if te, ok := r.(*TypeError); ok {
				err = te
				return
			}
			panic(r)
		}
	}()
	ck := newChecker()
	for _, s := range prog.Stmts {
		s.checkStmt(ck)
	}
	return nil
}

// ---- Expressions ----

func (n *LiteralExpr) checkExpr(ck *checker) Type { return n.Val.typ }

func (n *VarRefExpr) checkExpr(ck *checker) Type {
	return ck.lookup(n, n.Name).typ
}

func (n *UnaryExpr) checkExpr(ck *checker) Type {
	xt := n.X.checkExpr(ck)
	if xt.Kind != BoolKind {
		ck.fail(n, "operand of '!' must be bool, got %v", xt)
	}
	return BoolType
}

func (n *BinaryExpr) checkExpr(ck *checker) Type {
	lt := n.Left.checkExpr(ck)
	rt := n.Right.checkExpr(ck)
	switch n.Op {
	case tokPlus, tokMinus, tokStar, tokSlash, tokPercent:
		result, ok := widenNumeric(lt, rt)
		if !ok {
			ck.fail(n, "arithmetic operands must be numeric, got %v and %v", lt, rt)
		}
		return result
	case tokStarStar:
		if !lt.IsNumeric() || !rt.IsNumeric() {
			ck.fail(n, "'**' operands must be numeric, got %v and %v", lt, rt)
		}
		if lt.Kind == DoubleKind || rt.Kind == DoubleKind {
			return DoubleType
		}
		if lit, ok := n.Right.(*LiteralExpr); ok && lit.Val.typ.Kind == IntKind && lit.Val.i < 0 {
			ck.fail(n, "negative integer exponent in '**'")
		}
		return IntType
	case tokEqEq:
		if lt.IsNumeric() && rt.IsNumeric() {
			return BoolType
		}
		if lt.Kind != rt.Kind {
			ck.fail(n, "'==' operands must have the same type, got %v and %v", lt, rt)
		}
		if lt.Kind != BoolKind && lt.Kind != StringKind && lt.Kind != NullKind {
			ck.fail(n, "'==' is not defined for type %v", lt)
		}
		return BoolType
	case tokLt, tokLe:
		if _, ok := widenNumeric(lt, rt); !ok {
			ck.fail(n, "comparison operands must be numeric, got %v and %v", lt, rt)
		}
		return BoolType
	default:
		ck.fail(n, "unsupported binary operator")
		panic("unreachable")
	}
}

func (n *AndExpr) checkExpr(ck *checker) Type {
	lt := n.Left.checkExpr(ck)
	rt := n.Right.checkExpr(ck)
	if lt.Kind != BoolKind || rt.Kind != BoolKind {
		ck.fail(n, "'and' operands must be bool, got %v and %v", lt, rt)
	}
	return BoolType
}

func (n *OrExpr) checkExpr(ck *checker) Type {
	lt := n.Left.checkExpr(ck)
	rt := n.Right.checkExpr(ck)
	if lt.Kind != BoolKind || rt.Kind != BoolKind {
		ck.fail(n, "'or' operands must be bool, got %v and %v", lt, rt)
	}
	return BoolType
}

func (n *CallExpr) checkExpr(ck *checker) Type {
	if t, ok := checkIntrinsicCall(ck, n); ok {
		return t
	}
	info := ck.lookup(n, n.Callee)
	if info.typ.Kind != FuncKind {
		ck.fail(n, "'%s' is not a function", n.Callee)
	}
	if len(info.typ.Params) != len(n.Args) {
		ck.fail(n, "'%s' expects %d argument(s), got %d", n.Callee, len(info.typ.Params), len(n.Args))
	}
	for i, arg := range n.Args {
		argType := arg.checkExpr(ck)
		want := info.typ.Params[i]
		if !assignableFrom(want, argType) {
			ck.fail(arg, "argument %d of '%s': expected %v, got %v", i+1, n.Callee, want, argType)
		}
	}
	return *info.typ.Ret
}

// checkIntrinsicCall special-cases the fixed intrinsic registry (§4.4):
// import/async_import's result type is the literal schema given at the
// call site, table_add_row's row type is derived from its table
// argument, and print accepts any single value. None of these fit a
// single fixed FuncType, since wrench's type system has no polymorphism.
func checkIntrinsicCall(ck *checker, n *CallExpr) (Type, bool) {
	switch n.Callee {
	case "import", "async_import":
		if len(n.Args) != 2 {
			ck.fail(n, "'%s' expects 2 arguments (path, schema), got %d", n.Callee, len(n.Args))
		}
		pathType := n.Args[0].checkExpr(ck)
		if pathType.Kind != StringKind {
			ck.fail(n.Args[0], "'%s' path argument must be string, got %v", n.Callee, pathType)
		}
		schemaLit, ok := n.Args[1].(*TableLitExpr)
		if !ok {
			ck.fail(n.Args[1], "'%s' schema argument must be a table(...) literal", n.Callee)
		}
		return schemaLit.checkExpr(ck), true
	case "print":
		if len(n.Args) != 1 {
			ck.fail(n, "'print' expects 1 argument, got %d", len(n.Args))
		}
		n.Args[0].checkExpr(ck)
		return NullType, true
	case "table_add_row":
		if len(n.Args) != 2 {
			ck.fail(n, "'table_add_row' expects 2 arguments (table, row), got %d", len(n.Args))
		}
		tt := n.Args[0].checkExpr(ck)
		if tt.Kind != TableKind {
			ck.fail(n.Args[0], "'table_add_row' first argument must be a table, got %v", tt)
		}
		rt := n.Args[1].checkExpr(ck)
		if !rt.Equal(tt.RowOfTable()) {
			ck.fail(n.Args[1], "'table_add_row' row type %v does not match table schema %v", rt, tt.RowOfTable())
		}
		return NullType, true
	default:
		return InvalidType, false
	}
}

func (n *IndexExpr) checkExpr(ck *checker) Type {
	xt := n.X.checkExpr(ck)
	it := n.Idx.checkExpr(ck)
	if xt.Kind != ArrayKind {
		ck.fail(n, "indexing target must be an array, got %v", xt)
	}
	if it.Kind != IntKind {
		ck.fail(n, "index must be int, got %v", it)
	}
	return *xt.Elem
}

func (n *ColumnProjExpr) checkExpr(ck *checker) Type {
	xt := n.X.checkExpr(ck)
	if xt.Kind != RowKind {
		ck.fail(n, "'.%s' target must be a row, got %v", n.Field, xt)
	}
	f, ok := xt.Field(n.Field)
	if !ok {
		ck.fail(n, "row type %v has no field '%s'", xt, n.Field)
	}
	return f.Type
}

func (n *ArrayLitExpr) checkExpr(ck *checker) Type {
	if len(n.Elems) == 0 {
		ck.fail(n, "empty array literal requires an explicit element type (not supported by this grammar)")
	}
	elemType := n.Elems[0].checkExpr(ck)
	for _, e := range n.Elems[1:] {
		t := e.checkExpr(ck)
		if !assignableFrom(elemType, t) {
			if assignableFrom(t, elemType) {
				elemType = t
				continue
			}
			ck.fail(e, "array elements must share a type: expected %v, got %v", elemType, t)
		}
	}
	n.ElemType = elemType
	return ArrayType(elemType)
}

func (n *RowLitExpr) checkExpr(ck *checker) Type {
	fields := make([]Field, len(n.Fields))
	for i, f := range n.Fields {
		vt := f.Value.checkExpr(ck)
		if !assignableFrom(f.Type, vt) {
			ck.fail(f.Value, "field '%s' declared %v, got %v", f.Name, f.Type, vt)
		}
		fields[i] = Field{Name: f.Name, Type: f.Type}
	}
	return RowType(fields)
}

func (n *TableLitExpr) checkExpr(ck *checker) Type {
	fields := make([]Field, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = Field{Name: f.Name, Type: f.Type}
	}
	return TableType(fields)
}

// ---- Statements ----

func (n *ExprStmt) checkStmt(ck *checker) { n.X.checkExpr(ck) }

func (n *VarDeclStmt) checkStmt(ck *checker) {
	it := n.Init.checkExpr(ck)
	if !assignableFrom(n.DeclaredType, it) {
		ck.fail(n, "'%s' declared %v, initializer has type %v", n.Name, n.DeclaredType, it)
	}
	ck.declare(n, n.Name, n.DeclaredType, n.Mutable)
}

func (n *AssignStmt) checkStmt(ck *checker) {
	info := ck.lookup(n, n.Name)
	if !info.mutable {
		ck.fail(n, "cannot assign to const '%s'", n.Name)
	}
	vt := n.Value.checkExpr(ck)
	if !assignableFrom(info.typ, vt) {
		ck.fail(n, "cannot assign %v to '%s' of type %v", vt, n.Name, info.typ)
	}
}

func (n *ReturnStmt) checkStmt(ck *checker) {
	if ck.funcReturn == nil {
		ck.fail(n, "'return' outside of a function body")
	}
	vt := n.Value.checkExpr(ck)
	if !assignableFrom(*ck.funcReturn, vt) {
		ck.fail(n, "return type mismatch: function returns %v, got %v", *ck.funcReturn, vt)
	}
}

func checkBlock(ck *checker, b *BlockStmt) {
	ck.pushFrame()
	defer ck.popFrame()
	for _, s := range b.Stmts {
		s.checkStmt(ck)
	}
}

func (n *BlockStmt) checkStmt(ck *checker) { checkBlock(ck, n) }

func (n *IfStmt) checkStmt(ck *checker) {
	ct := n.Cond.checkExpr(ck)
	if ct.Kind != BoolKind {
		ck.fail(n, "'if' condition must be bool, got %v", ct)
	}
	checkBlock(ck, n.Then)
	if n.Else != nil {
		checkBlock(ck, n.Else)
	}
}

func (n *ForStmt) checkStmt(ck *checker) {
	tt := n.TableExpr.checkExpr(ck)
	if tt.Kind != TableKind {
		ck.fail(n, "'for ... in' expression must be a table, got %v", tt)
	}
	rowType := tt.RowOfTable()
	if !n.ParamType.Equal(rowType) {
		ck.fail(n, "for loop variable '%s' declared %v, does not match table row type %v", n.ParamName, n.ParamType, rowType)
	}
	ck.pushFrame()
	defer ck.popFrame()
	ck.declare(n, n.ParamName, n.ParamType, false)
	for _, s := range n.Body.Stmts {
		s.checkStmt(ck)
	}
}

func (n *WhileStmt) checkStmt(ck *checker) {
	ct := n.Cond.checkExpr(ck)
	if ct.Kind != BoolKind {
		ck.fail(n, "'while' condition must be bool, got %v", ct)
	}
	checkBlock(ck, n.Body)
}

func (n *FuncDeclStmt) checkStmt(ck *checker) {
	params := make([]Type, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Type
	}
	ck.declare(n, n.Name, FuncType(params, n.Ret), false)

	ck.pushFrame()
	defer ck.popFrame()
	for _, p := range n.Params {
		ck.declare(n, p.Name, p.Type, false)
	}
	prevRet := ck.funcReturn
	ret := n.Ret
	ck.funcReturn = &ret
	defer func() { ck.funcReturn = prevRet }()
	for _, s := range n.Body.Stmts {
		s.checkStmt(ck)
	}
}

// registerIntrinsicTypes declares the fixed intrinsic registry (§4.4) in
// the global scope before user code is checked. Concrete signatures for
// import/async_import depend on the schema argument at each call site, so
// those two are special-cased in CallExpr checking above rather than
// given one fixed FuncType; print and table_add_row have uniform
// signatures modeled with an "any" row/table acceptance via a permissive
// check in their call sites instead of a single static FuncType entry,
// since wrench's type system has no polymorphism. We model this by
// intercepting their names directly in CallExpr.checkExpr-adjacent logic
// above (checkIntrinsicCall), rather than forcing them through the
// identical generic path used for user-defined calls.
func registerIntrinsicTypes(ck *checker) {
	// Intrinsics are resolved by name in CallExpr.checkExpr's intrinsic
	// fast path (see checkIntrinsicCall); no generic FuncType binding is
	// needed here since each intrinsic's signature depends on its call
	// site (the schema argument of import/async_import, the table's row
	// type for table_add_row, or any value type for print).
}
