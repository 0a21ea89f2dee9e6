package database

import (
	"context"

	"github.com/example/ixsearch/internal/ixerr"
	"github.com/example/ixsearch/internal/query"
)

// Search runs q against db and returns matched ids in the order q requests
// (spec §4.4's strategy-selection table; §4.6 for the final ordering pass).
// abort via ctx: a canceled ctx makes a strategy return ixerr.ErrSearchAbort.
func (db *Database) Search(ctx context.Context, q *query.Query) ([]EntryID, error) {
	if q.IsEmpty() {
		return db.collectHits(q, nil)
	}

	p := newPool(defaultParallelism())

	var (
		hits []bool
		err  error
	)
	switch {
	case !q.MatchPath():
		hits, err = db.matchBasename(ctx, p, q)
	case !q.RegexEnabled():
		hits, err = db.matchComponentWisePath(ctx, p, q)
	case q.AnchoredPath():
		hits, err = db.matchFullPath(ctx, p, q)
	default:
		hits, err = db.matchRegexPath(ctx, p, q)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ixerr.ErrSearchAbort
		}
		return nil, err
	}
	return db.collectHits(q, hits)
}

// checkAborted reports ixerr.ErrSearchAbort once ctx is done, matching every
// strategy's periodic abort_signal poll (spec §4.5).
func checkAborted(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ixerr.ErrSearchAbort
	default:
		return nil
	}
}

// markAllDescendants sets hits for every id under node, recursing through
// the whole subtree. Shared by the strategies that short-circuit a subtree
// once an ancestor has matched (database/search/filters.rs's
// match_all_descendants).
func markAllDescendants(ctx context.Context, db *Database, hits []bool, node *EntryNode) error {
	if err := checkAborted(ctx); err != nil {
		return err
	}
	for id := node.ChildStart; id < node.ChildEnd; id++ {
		hits[id] = true
		child := &db.nodes[id]
		if child.hasAnyChild() {
			if err := markAllDescendants(ctx, db, hits, child); err != nil {
				return err
			}
		}
	}
	return nil
}
