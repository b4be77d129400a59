package wrenchcsv

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// prefetchGroup runs a single background worker gated by a
// weight-1 semaphore, the same shape as the teacher's limitedWorkerGroup
// (gql/builtin_flatten.go) stripped to its single-task case: async_import
// has exactly one background operation to overlap (the file read +
// parse), not an unbounded fan-out, so a full errgroup.Group is more
// machinery than the job needs — one semaphore slot is enough to express
// "start this now, let me keep going, and block later only if I need the
// result before it's done."
type prefetchGroup struct {
	sem  *semaphore.Weighted
	rows [][]Cell
	err  error
}

func newPrefetchGroup(ctx context.Context, path string, columns []Column) *prefetchGroup {
	g := &prefetchGroup{sem: semaphore.NewWeighted(1)}
	_ = g.sem.Acquire(ctx, 1)
	go func() {
		defer g.sem.Release(1)
		g.rows, g.err = Read(ctx, path, columns)
	}()
	return g
}

// Wait blocks until the background read has completed, by re-acquiring
// the same weight-1 token the background goroutine holds until it
// finishes — the worker's Release is what unblocks it, so the semaphore
// is the actual synchronization, not a decoration alongside it. Per §5's
// concurrency contract, async_import must have "returned to the next
// expression before subsequent statements execute" with a fully
// materialized result, so every caller of ReadAsync waits out the
// prefetch before the intrinsic itself returns — only the overlap between
// the background goroutine and whatever the evaluator does between the
// call and the wait is actually exploited. The re-acquire always uses a
// background context: a caller's own ctx may have been the one that
// canceled the read, but Wait must still observe the worker's outcome
// rather than returning early with rows/err unset.
func (g *prefetchGroup) Wait() ([][]Cell, error) {
	_ = g.sem.Acquire(context.Background(), 1)
	g.sem.Release(1)
	return g.rows, g.err
}

// ReadAsync starts the CSV read on a background goroutine and immediately
// returns a handle; the caller decides when to block for the result.
// Today's evaluator calls Wait right away (see the root package's
// async_import intrinsic), since wrench has no further work to interleave
// within a single intrinsic call, but the seam exists for a future
// evaluator that pipelines multiple async_import calls.
func ReadAsync(ctx context.Context, path string, columns []Column) *prefetchGroup {
	return newPrefetchGroup(ctx, path, columns)
}
