// Package wrenchcsv reads schema-typed CSV files for the language's
// `import` / `async_import` intrinsics. It is grounded on the teacher's
// TSV reader (gql/tsv_table.go, gql/tsv_format.go): a first-row header,
// comma-delimited (the teacher reads tab-delimited TSV; wrench's external
// interface names CSV, so the delimiter is the one difference), per-column
// typed parsing, and the same family of null-sentinel strings
// (NA/N/A/NULL/NaN/...).
//
// This package deliberately knows nothing about wrench's own Value/Type/
// Row types so it can be imported by the root package without forming an
// import cycle; the root package's intrinsics.go converts Cell/Column
// to and from wrench.Value/wrench.Row.
package wrenchcsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/file"
)

// ColumnKind is the primitive type of one CSV column, as declared by the
// schema argument of import/async_import.
type ColumnKind int

const (
	KindBool ColumnKind = iota
	KindInt
	KindDouble
	KindString
)

// Column is one schema field: its name and declared kind. Order matches
// declaration order in the schema's table(...) literal; the header row
// may list columns in any order (§6), so columns are matched by name.
type Column struct {
	Name string
	Kind ColumnKind
}

// Cell is a single parsed value: either null, or one of the four
// primitive kinds.
type Cell struct {
	Null bool
	Kind ColumnKind
	B    bool
	I    int64
	F    float64
	S    string
}

// ImportError wraps a failure to open or parse a CSV file, the backing
// cause of RuntimeError::ImportFailed at the call site.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string { return fmt.Sprintf("import %s: %v", e.Path, e.Err) }
func (e *ImportError) Unwrap() error { return e.Err }

// Read synchronously reads path as CSV, matching rows against columns by
// header name, and returns one []Cell per data row in file order. Column
// order within each returned row matches the `columns` argument's order
// (i.e. the caller's schema order), not the file's header order.
func Read(ctx context.Context, path string, columns []Column) ([][]Cell, error) {
	rows, err := readRaw(ctx, path)
	if err != nil {
		return nil, &ImportError{Path: path, Err: err}
	}
	return parseRows(path, rows, columns)
}

func readRaw(ctx context.Context, path string) ([][]string, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer in.Close(ctx) // nolint: errcheck

	r := newCSVReader(in.Reader(ctx))
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func newCSVReader(in io.Reader) *csv.Reader {
	r := csv.NewReader(in)
	r.Comma = ','
	r.Comment = '#'
	r.LazyQuotes = true
	return r
}

func parseRows(path string, rawRows [][]string, columns []Column) ([][]Cell, error) {
	if len(rawRows) == 0 {
		return nil, nil
	}
	header := rawRows[0]
	// fileCol[i] is the index into `columns` that header column i maps to,
	// or -1 if the file has a column wrench's schema does not declare.
	colIndexByName := map[string]int{}
	for i, c := range columns {
		colIndexByName[c.Name] = i
	}
	fileCol := make([]int, len(header))
	for i, name := range header {
		if idx, ok := colIndexByName[name]; ok {
			fileCol[i] = idx
		} else {
			fileCol[i] = -1
		}
	}

	out := make([][]Cell, 0, len(rawRows)-1)
	for _, raw := range rawRows[1:] {
		row := make([]Cell, len(columns))
		for i := range row {
			row[i] = Cell{Null: true, Kind: columns[i].Kind}
		}
		for fi, v := range raw {
			if fi >= len(fileCol) || fileCol[fi] < 0 {
				continue
			}
			ci := fileCol[fi]
			cell, err := parseCell(v, columns[ci].Kind)
			if err != nil {
				return nil, &ImportError{Path: path, Err: fmt.Errorf("column %q: %w", columns[ci].Name, err)}
			}
			row[ci] = cell
		}
		out = append(out, row)
	}
	return out, nil
}

// isNull recognizes the common family of null sentinels seen in CSV
// exports, the same set the teacher's tsv_table.go checks for.
func isNull(v string) bool {
	switch v {
	case "", "NA", "N/A", "#N/A", "#N/A N/A", "#NA", "NULL", "NaN", "nan", "-NaN", "-nan":
		return true
	default:
		return false
	}
}

func parseCell(v string, kind ColumnKind) (Cell, error) {
	if isNull(v) {
		return Cell{Null: true, Kind: kind}, nil
	}
	switch kind {
	case KindInt:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Cell{}, fmt.Errorf("%q is not an int: %w", v, err)
		}
		return Cell{Kind: KindInt, I: n}, nil
	case KindDouble:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Cell{}, fmt.Errorf("%q is not a double: %w", v, err)
		}
		return Cell{Kind: KindDouble, F: f}, nil
	case KindBool:
		switch v {
		case "Y", "yes", "true", "TRUE":
			return Cell{Kind: KindBool, B: true}, nil
		case "N", "no", "false", "FALSE":
			return Cell{Kind: KindBool, B: false}, nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Cell{}, fmt.Errorf("%q is not a bool: %w", v, err)
		}
		return Cell{Kind: KindBool, B: b}, nil
	case KindString:
		return Cell{Kind: KindString, S: v}, nil
	default:
		return Cell{}, fmt.Errorf("unknown column kind %d", kind)
	}
}
