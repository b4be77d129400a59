package wrench

import "github.com/AAUP4-Projekt/wrench/symbol"

// binding is one identifier's slot: its declared type, whether it is a
// `var` (reassignable) or `const`, and its current value. Closures and
// loop bodies that share a frame see updates to a binding's value through
// this single shared struct, giving wrench the language's "reassignment
// through shared environment" semantics.
type binding struct {
	typ     Type
	mutable bool
	value   Value
}

// frame is one scope level: a block, function body, or loop body. Frames
// form a stack, pushed on entry and popped on exit, mirroring the
// teacher's bindings/callFrame stack (gql/eval.go), simplified here since
// wrench has no inline sym0/sym1 fast path — that optimization exists to
// avoid map allocation on the teacher's hot per-row evaluation path for
// genomic tables with millions of rows, which wrench's evaluator does not
// have (a wrench `for` body still evaluates once per row, but table sizes
// here are modest CSVs, not genome-scale data).
type frame struct {
	vars map[symbol.ID]*binding
}

func newFrame() *frame {
	return &frame{vars: map[symbol.ID]*binding{}}
}

// Bindings is the environment: a stack of frames. Lookups walk frames
// innermost (last pushed) to outermost.
type Bindings struct {
	frames []*frame
}

// NewBindings creates a fresh environment with a single global frame.
func NewBindings() *Bindings {
	return &Bindings{frames: []*frame{newFrame()}}
}

// Push enters a new scope (block, function body, loop body).
func (b *Bindings) Push() {
	b.frames = append(b.frames, newFrame())
}

// Pop exits the innermost scope.
func (b *Bindings) Pop() {
	b.frames = b.frames[:len(b.frames)-1]
}

// Declare introduces a new binding in the innermost frame. The checker is
// responsible for rejecting same-scope redeclaration before evaluation
// ever runs, so Declare does not check for an existing entry.
func (b *Bindings) Declare(sym symbol.ID, typ Type, mutable bool, value Value) {
	b.frames[len(b.frames)-1].vars[sym] = &binding{typ: typ, mutable: mutable, value: value}
}

// Lookup finds the innermost binding for sym.
func (b *Bindings) Lookup(sym symbol.ID) (*binding, bool) {
	for i := len(b.frames) - 1; i >= 0; i-- {
		if bnd, ok := b.frames[i].vars[sym]; ok {
			return bnd, true
		}
	}
	return nil, false
}

// Capture snapshots the current frame stack for a closure: the closure
// shares the very same frame objects (so later mutation of an outer `var`
// is visible inside the closure), but the slice itself is copied so
// frames pushed in the defining scope *after* the closure is created do
// not leak into it. This is the function value's "captures the defining
// environment by shared reference" contract (§3 Data Model).
func (b *Bindings) Capture() *Bindings {
	frames := make([]*frame, len(b.frames))
	copy(frames, b.frames)
	return &Bindings{frames: frames}
}
