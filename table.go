package wrench

import "strings"

// Row is a fixed-schema named-field record value, the runtime counterpart
// of a row(...) type. It is the equivalent of the teacher's Struct
// (gql/struct.go), simplified to a plain ordered slice of fields: wrench
// rows are small (a handful of declared columns) and have no need for the
// teacher's itable-embedding, heap-allocation-avoiding struct variants
// (structN/simpleStructN), which exist to serve genomic tables with
// thousands of columns scanned at high throughput.
type Row struct {
	names  []string
	values []Value
}

// NewRow builds a row from parallel name/value slices, in the order the
// row literal declared its columns.
func NewRow(names []string, values []Value) *Row {
	return &Row{names: names, values: values}
}

// Len returns the number of fields in the row.
func (r *Row) Len() int { return len(r.names) }

// Field returns the name and value of the i'th column, in declaration
// order.
func (r *Row) Field(i int) (string, Value) { return r.names[i], r.values[i] }

// Value returns the value of the named column and whether it was found.
func (r *Row) Value(name string) (Value, bool) {
	for i, n := range r.names {
		if n == name {
			return r.values[i], true
		}
	}
	return Value{}, false
}

// Print renders the row as "{f1=v1, f2=v2, ...}" per the print intrinsic's
// output format.
func (r *Row) Print() string {
	parts := make([]string, len(r.names))
	for i, name := range r.names {
		parts[i] = name + "=" + r.values[i].Print()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// tableState is the mutable backing store shared by every Value that
// refers to the same logical table. table_add_row appends through this
// shared pointer so the append is visible to every binding holding the
// table, matching the language's pass-by-shared-reference table semantics
// (see DESIGN.md's "table_add_row mutation" decision).
type tableState struct {
	rows []*Row
}

// Table is an ordered sequence of rows sharing one column schema.
type Table struct {
	schema Type // Kind == TableKind
	state  *tableState
}

// NewTable creates an empty table with the given schema (a table(...)
// literal's runtime value).
func NewTable(schema Type) *Table {
	return &Table{schema: schema, state: &tableState{}}
}

// NewTableWithRows creates a table pre-populated with rows, e.g. the result
// of an import.
func NewTableWithRows(schema Type, rows []*Row) *Table {
	return &Table{schema: schema, state: &tableState{rows: rows}}
}

// Schema returns the table's column schema, as a TableKind type.
func (t *Table) Schema() Type { return t.schema }

// Len returns the current row count.
func (t *Table) Len() int { return len(t.state.rows) }

// Rows returns a snapshot of the table's rows in insertion order. Callers
// that intend to iterate (e.g. the evaluator's `for` statement) must take
// this snapshot once, up front: per the evaluator's ordering contract, a
// `for` loop observes the rows as they stood when the loop began, even if
// the body appends more via table_add_row.
func (t *Table) Rows() []*Row {
	snapshot := make([]*Row, len(t.state.rows))
	copy(snapshot, t.state.rows)
	return snapshot
}

// AddRow appends r to the table, implementing the `table_add_row`
// intrinsic's in-place append semantics. It is the language's single
// sanctioned mutation.
func (t *Table) AddRow(r *Row) {
	t.state.rows = append(t.state.rows, r)
}
