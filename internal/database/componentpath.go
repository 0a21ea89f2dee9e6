package database

import (
	"context"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/example/ixsearch/internal/query"
)

// matchComponentWisePath is the literal match_path=true,regex=false strategy
// (spec §4.5): a matching root's whole id range short-circuits, otherwise
// the regex is tested against each node's basename alone (not an assembled
// full path) and, on a match, the whole subtree short-circuits too — a
// literal substring contained in any ancestor's basename is equivalent to
// being contained in the full path. Grounded on
// database/search/filters/component_wise_path.rs.
//
// One errgroup is shared across the whole search, and every recursive step
// schedules its children into it and returns without waiting, the same
// fire-and-forget shape walk.go uses for the tree builder. Each step
// releases its pool slot before that recursive schedule (see pool.go's
// goBounded), not after, so a slot is never held by a goroutine blocked
// acquiring one for its own children — the bounded-pool recursive-fork
// deadlock that pattern would otherwise hit.
func (db *Database) matchComponentWisePath(ctx context.Context, p *pool, q *query.Query) ([]bool, error) {
	hits := make([]bool, len(db.nodes))
	re := q.Regex()

	var g errgroup.Group
	for i, root := range db.roots {
		i, root := i, root
		rootNode := &db.nodes[root.id]

		if re.MatchString(root.path) {
			next := db.nextRootBound(i)
			for id := root.id; id < next; id++ {
				hits[id] = true
			}
			continue
		}

		db.traverseComponentWise(ctx, p, &g, re, hits, rootNode)
	}
	return hits, g.Wait()
}

func (db *Database) traverseComponentWise(ctx context.Context, p *pool, g *errgroup.Group, re *regexp.Regexp, hits []bool, node *EntryNode) {
	for id := node.ChildStart; id < node.ChildEnd; id++ {
		id := id
		p.goBounded(ctx, g, func(release func()) error {
			if err := checkAborted(ctx); err != nil {
				return err
			}
			child := &db.nodes[id]
			matched := re.MatchString(string(db.basename(child)))
			hasChild := child.hasAnyChild()
			if matched {
				hits[id] = true
			}

			// This id's own test is done; give up the slot before any
			// recursive scheduling below.
			release()

			if matched {
				if hasChild {
					return markAllDescendants(ctx, db, hits, child)
				}
				return nil
			}

			if hasChild {
				db.traverseComponentWise(ctx, p, g, re, hits, child)
			}
			return nil
		})
	}
}
