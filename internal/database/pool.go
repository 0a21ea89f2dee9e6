package database

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// defaultParallelism mirrors the concurrency model's default scheduling
// width: max(1, cpus-1), leaving one core free for the caller.
func defaultParallelism() int64 {
	n := int64(runtime.GOMAXPROCS(0)) - 1
	if n < 1 {
		n = 1
	}
	return n
}

// pool bounds fan-out concurrency for both the tree builder's recursive
// directory descent and the search strategies' recursive child traversal —
// one pool type, several call sites.
type pool struct {
	sem *semaphore.Weighted
}

func newPool(parallelism int64) *pool {
	if parallelism < 1 {
		parallelism = defaultParallelism()
	}
	return &pool{sem: semaphore.NewWeighted(parallelism)}
}

// goBounded acquires a pool slot (blocking until one is free or ctx is
// cancelled) and then runs fn, passing it a release func, as a new task in
// g. fn must call release once it is done with the work that actually
// needed bounding — and, critically, before it schedules any further
// goBounded calls of its own (e.g. recursing into a directory's
// subdirectories, or a search strategy recursing into a node's children).
// A goroutine that instead held onto its slot across such a recursive
// schedule would deadlock the whole pool the moment every outstanding
// permit is held by a goroutine blocked acquiring a permit for its own
// child: every real caller here is a recursive fan-out, so release-before-
// recurse is mandatory, not an optimization. Calling release more than
// once, or never, is safe: the wrapper releases automatically on return if
// fn didn't already.
func (p *pool) goBounded(ctx context.Context, g *errgroup.Group, fn func(release func()) error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		g.Go(func() error { return err })
		return
	}
	g.Go(func() error {
		var once sync.Once
		release := func() { once.Do(func() { p.sem.Release(1) }) }
		defer release()
		return fn(release)
	})
}
