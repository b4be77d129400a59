// Package symbol manages symbols. Symbols are deduped strings represented as
// small integers, so the evaluator's environment lookups are cheap integer
// compares instead of string compares (the parser and checker use plain
// strings).
package symbol

import (
	"sync"

	"github.com/grailbio/base/log"
)

// ID represents an interned symbol.
type ID int32

// Invalid is a sentinel zero value; Intern never returns it for a non-empty
// string.
const Invalid = ID(0)

type table struct {
	mu    sync.Mutex
	ids   map[string]ID
	names []string // names[0] is unused; index 0 is Invalid.
}

var symbols = newTable()

func newTable() *table {
	return &table{
		ids:   map[string]ID{},
		names: []string{"(invalid)"},
	}
}

// Intern finds or creates an ID for the given string.
func Intern(v string) ID {
	if v == "" {
		log.Panicf("symbol: empty symbol")
	}
	symbols.mu.Lock()
	defer symbols.mu.Unlock()
	if id, ok := symbols.ids[v]; ok {
		return id
	}
	id := ID(len(symbols.names))
	symbols.names = append(symbols.names, v)
	symbols.ids[v] = id
	return id
}

// Str returns a human-readable string for the symbol.
//
// Note: we don't call it String() since that makes the type satisfy
// fmt.Stringer implicitly in contexts where a plain int32 is expected.
func (id ID) Str() string {
	symbols.mu.Lock()
	defer symbols.mu.Unlock()
	if int(id) <= 0 || int(id) >= len(symbols.names) {
		log.Panicf("symbol: id %d not found", id)
	}
	return symbols.names[id]
}
