package wrench

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a runtime value tagged with its static Type, in the spirit of
// the teacher's Value (gql/value.go): a small tagged union with accessor
// methods per kind. Unlike the teacher, which packs every kind into a
// single unsafe.Pointer+uint64 pair for zero-allocation genomic-scale
// table scans, wrench keeps one safe, explicitly-typed field per kind —
// Wrench has no equivalent hot path scanning billions of rows, so the
// unsafe packing buys nothing here.
type Value struct {
	typ Type

	b     bool
	i     int64
	f     float64
	s     string
	arr   []Value
	row   *Row
	table *Table
	fn    *Func
}

// Type returns the value's static type.
func (v Value) Type() Type { return v.typ }

var (
	Null  = Value{typ: NullType}
	True  = Value{typ: BoolType, b: true}
	False = Value{typ: BoolType, b: false}
)

func NewBool(b bool) Value {
	if b {
		return True
	}
	return False
}

func NewInt(i int64) Value     { return Value{typ: IntType, i: i} }
func NewDouble(f float64) Value { return Value{typ: DoubleType, f: f} }
func NewString(s string) Value  { return Value{typ: StringType, s: s} }

func NewArray(elem Type, vs []Value) Value {
	return Value{typ: ArrayType(elem), arr: vs}
}

func NewRowValue(t Type, r *Row) Value {
	return Value{typ: t, row: r}
}

func NewTableValue(t Type, tbl *Table) Value {
	return Value{typ: t, table: tbl}
}

func NewFuncValue(t Type, fn *Func) Value {
	return Value{typ: t, fn: fn}
}

// wrongType panics with a RuntimeError reporting that v is not the kind the
// caller expected, mirroring the teacher's accessor-method error shape:
// every accessor takes the offending ASTNode solely so the error can report
// a source position.
func wrongType(node ASTNode, v Value, want string) {
	panic(newRuntimeError(node, SchemaMismatch, "expected %s, got %v value", want, v.typ))
}

func (v Value) Bool(node ASTNode) bool {
	if v.typ.Kind != BoolKind {
		wrongType(node, v, "bool")
	}
	return v.b
}

func (v Value) Int(node ASTNode) int64 {
	if v.typ.Kind != IntKind {
		wrongType(node, v, "int")
	}
	return v.i
}

func (v Value) Double(node ASTNode) float64 {
	if v.typ.Kind != DoubleKind {
		wrongType(node, v, "double")
	}
	return v.f
}

// Num returns v's numeric value widened to float64, accepting either int or
// double.
func (v Value) Num(node ASTNode) float64 {
	switch v.typ.Kind {
	case IntKind:
		return float64(v.i)
	case DoubleKind:
		return v.f
	default:
		wrongType(node, v, "numeric")
		return 0
	}
}

func (v Value) Str(node ASTNode) string {
	if v.typ.Kind != StringKind {
		wrongType(node, v, "string")
	}
	return v.s
}

func (v Value) Array(node ASTNode) []Value {
	if v.typ.Kind != ArrayKind {
		wrongType(node, v, "array")
	}
	return v.arr
}

func (v Value) Row(node ASTNode) *Row {
	if v.typ.Kind != RowKind {
		wrongType(node, v, "row")
	}
	return v.row
}

func (v Value) Table(node ASTNode) *Table {
	if v.typ.Kind != TableKind {
		wrongType(node, v, "table")
	}
	return v.table
}

func (v Value) Func(node ASTNode) *Func {
	if v.typ.Kind != FuncKind {
		wrongType(node, v, "function")
	}
	return v.fn
}

// Equal implements the language's "==" for the kinds it is legal on: bool,
// string, null, and numerics (after widening).
func (v Value) Equal(other Value) bool {
	if v.typ.IsNumeric() && other.typ.IsNumeric() {
		return v.Num(&ASTUnknown{}) == other.Num(&ASTUnknown{})
	}
	if v.typ.Kind != other.typ.Kind {
		return false
	}
	switch v.typ.Kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == other.b
	case StringKind:
		return v.s == other.s
	default:
		return false
	}
}

// Print renders v in the standard output format described for the `print`
// intrinsic: int base 10, double shortest round-tripping form, bool as
// true/false, string verbatim, null as "null", row as "{f1=v1, ...}", table
// as newline-separated row renderings.
func (v Value) Print() string {
	switch v.typ.Kind {
	case NullKind:
		return "null"
	case BoolKind:
		if v.b {
			return "true"
		}
		return "false"
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case DoubleKind:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case StringKind:
		return v.s
	case ArrayKind:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.Print()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case RowKind:
		return v.row.Print()
	case TableKind:
		rows := v.table.Rows()
		parts := make([]string, len(rows))
		for i, r := range rows {
			parts[i] = r.Print()
		}
		return strings.Join(parts, "\n")
	case FuncKind:
		return fmt.Sprintf("<function %s>", v.typ)
	default:
		return "<invalid>"
	}
}
