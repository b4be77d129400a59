package wrench

import (
	"github.com/AAUP4-Projekt/wrench/wrenchcsv"
)

// intrinsicFuncs is the fixed registry of named intrinsics (§4.4), each
// wired as a *Func built by NewBuiltinFunc, mirroring the teacher's
// RegisterBuiltinFunc registry (gql/func.go): a builtin is just a Func
// whose Go callback runs in place of a user-defined body. CallExpr.evalExpr
// resolves a call against this registry before falling back to the
// environment (checkIntrinsicCall special-cases the same names
// unconditionally at check time), and dispatches through callFunc's
// fn.Builtin branch exactly as a looked-up builtin Func value would.
var intrinsicFuncs = map[string]*Func{
	"import":        NewBuiltinFunc("import", nil, InvalidType, builtinImport(false)),
	"async_import":  NewBuiltinFunc("async_import", nil, InvalidType, builtinImport(true)),
	"print":         NewBuiltinFunc("print", nil, NullType, builtinPrint),
	"table_add_row": NewBuiltinFunc("table_add_row", nil, NullType, builtinTableAddRow),
}

func columnKindOf(t Type) wrenchcsv.ColumnKind {
	switch t.Kind {
	case BoolKind:
		return wrenchcsv.KindBool
	case IntKind:
		return wrenchcsv.KindInt
	case DoubleKind:
		return wrenchcsv.KindDouble
	default:
		return wrenchcsv.KindString
	}
}

func cellToValue(node ASTNode, cell wrenchcsv.Cell) Value {
	if cell.Null {
		return Null
	}
	switch cell.Kind {
	case wrenchcsv.KindBool:
		return NewBool(cell.B)
	case wrenchcsv.KindInt:
		return NewInt(cell.I)
	case wrenchcsv.KindDouble:
		return NewDouble(cell.F)
	case wrenchcsv.KindString:
		return NewString(cell.S)
	default:
		panic(newRuntimeError(node, ImportFailed, "unsupported column kind"))
	}
}

// builtinImport backs both `import` and `async_import`: the core
// semantics are identical (§4.4), the `async` flag only chooses whether
// the CSV read overlaps with whatever the evaluator does between issuing
// the call and observing its result (§5) — here, nothing, since wrench
// evaluates strictly sequentially, but the seam is real: a future
// evaluator that starts the read earlier (e.g. at the top of a pipe
// chain, before evaluating sibling arguments) can exploit it without
// changing observable behavior. The schema argument has already been
// evaluated to a TableValue by the time this runs (checkIntrinsicCall
// requires a literal table(...) at the call site), so its element types
// come from the value's own Type rather than re-inspecting the call's AST.
func builtinImport(async bool) BuiltinFunc {
	return func(ev *evaluator, node ASTNode, args []Value) Value {
		checkCancellation(ev.ctx, node)
		path := args[0].Str(node)
		schema := args[1].Type()
		fields := schema.Fields
		columns := make([]wrenchcsv.Column, len(fields))
		for i, f := range fields {
			columns[i] = wrenchcsv.Column{Name: f.Name, Kind: columnKindOf(f.Type)}
		}

		var cellRows [][]wrenchcsv.Cell
		var err error
		if async {
			cellRows, err = wrenchcsv.ReadAsync(ev.ctx, path, columns).Wait()
		} else {
			cellRows, err = wrenchcsv.Read(ev.ctx, path, columns)
		}
		if err != nil {
			panic(newRuntimeError(node, ImportFailed, "%v", err))
		}

		rows := make([]*Row, len(cellRows))
		for ri, cells := range cellRows {
			names := make([]string, len(fields))
			values := make([]Value, len(fields))
			for ci, f := range fields {
				names[ci] = f.Name
				values[ci] = cellToValue(node, cells[ci])
			}
			rows[ri] = NewRow(names, values)
		}
		return NewTableValue(schema, NewTableWithRows(schema, rows))
	}
}

func builtinPrint(ev *evaluator, node ASTNode, args []Value) Value {
	if ev.sink != nil {
		ev.sink.Println(args[0].Print())
	}
	return Null
}

// builtinTableAddRow appends r to t in place, t being shared by every
// binding that holds the same table value (the language's single
// sanctioned mutation, §4.4, §5, and DESIGN.md's table_add_row decision).
func builtinTableAddRow(ev *evaluator, node ASTNode, args []Value) Value {
	t := args[0].Table(node)
	r := args[1].Row(node)
	t.AddRow(r)
	return Null
}
