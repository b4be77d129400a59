package wrench

import (
	"sort"
	"strings"
)

// Kind tags the shape of a Type, mirroring the teacher's ValueType byte enum
// (gql/value_type.go) but scoped to wrench's smaller, statically-declared
// type set.
type Kind byte

const (
	InvalidKind Kind = iota
	NullKind
	BoolKind
	IntKind
	DoubleKind
	StringKind
	ArrayKind
	RowKind
	TableKind
	FuncKind
)

// Field is a single named, typed column of a row or table.
type Field struct {
	Name string
	Type Type
}

// Type is wrench's static type. Primitive kinds need nothing more than
// Kind. Array needs Elem. Row and Table need Fields, kept in both
// declaration order (for literal construction and pretty-printing, per the
// structural-types design note) and looked up via a canonical sorted copy
// for structural equivalence.
type Type struct {
	Kind Kind

	Elem *Type // ArrayKind

	Fields []Field // RowKind, TableKind: declaration order

	Params []Type // FuncKind
	Ret    *Type  // FuncKind
}

var (
	BoolType   = Type{Kind: BoolKind}
	IntType    = Type{Kind: IntKind}
	DoubleType = Type{Kind: DoubleKind}
	StringType = Type{Kind: StringKind}
	NullType   = Type{Kind: NullKind}
	InvalidType = Type{Kind: InvalidKind}
)

func ArrayType(elem Type) Type {
	return Type{Kind: ArrayKind, Elem: &elem}
}

func RowType(fields []Field) Type {
	return Type{Kind: RowKind, Fields: fields}
}

func TableType(fields []Field) Type {
	return Type{Kind: TableKind, Fields: fields}
}

func FuncType(params []Type, ret Type) Type {
	return Type{Kind: FuncKind, Params: params, Ret: &ret}
}

// IsNumeric reports whether t is int or double.
func (t Type) IsNumeric() bool {
	return t.Kind == IntKind || t.Kind == DoubleKind
}

// canonicalFields returns t.Fields sorted by name, used for structural
// equivalence per the "canonical sorted list of (name,type) pairs" design
// note. Source order is preserved separately in Fields for literal
// construction and pretty-printing.
func canonicalFields(fields []Field) []Field {
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}

// Equal reports whether t and other are the same type. Row and table types
// are compared structurally: same multiset of (name, type) pairs,
// independent of declaration order.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case ArrayKind:
		return t.Elem.Equal(*other.Elem)
	case RowKind, TableKind:
		a, b := canonicalFields(t.Fields), canonicalFields(other.Fields)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i].Name != b[i].Name || !a[i].Type.Equal(b[i].Type) {
				return false
			}
		}
		return true
	case FuncKind:
		if len(t.Params) != len(other.Params) || !t.Ret.Equal(*other.Ret) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Field looks up a field by name, searching declaration order.
func (t Type) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RowOfTable returns the row type with the same columns as this table type.
//
// REQUIRES: t.Kind == TableKind.
func (t Type) RowOfTable() Type {
	return RowType(t.Fields)
}

func (t Type) String() string {
	switch t.Kind {
	case InvalidKind:
		return "<invalid>"
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case DoubleKind:
		return "double"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array(" + t.Elem.String() + ")"
	case RowKind, TableKind:
		prefix := "row"
		if t.Kind == TableKind {
			prefix = "table"
		}
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Type.String() + " " + f.Name
		}
		return prefix + "(" + strings.Join(parts, ", ") + ")"
	case FuncKind:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + t.Ret.String()
	default:
		return "<unknown>"
	}
}

// assignableFrom reports whether a value of type "from" may be used where
// "to" is expected, applying the language's only implicit conversion: int
// widens to double.
func assignableFrom(to, from Type) bool {
	if to.Equal(from) {
		return true
	}
	if to.Kind == DoubleKind && from.Kind == IntKind {
		return true
	}
	return false
}

// widenNumeric returns the common numeric type of two operand types under
// int->double widening, and whether both operands were numeric at all.
func widenNumeric(a, b Type) (Type, bool) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return InvalidType, false
	}
	if a.Kind == DoubleKind || b.Kind == DoubleKind {
		return DoubleType, true
	}
	return IntType, true
}
