package database

import (
	"context"
	"path/filepath"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/example/ixsearch/internal/query"
)

// matchFullPath is the regex+match-path strategy for queries the caller has
// asserted are anchored (query.Query.AnchoredPath — see that method's doc
// for why this is opt-in rather than detected automatically): same
// traversal as Regex-path, but a match still short-circuits its subtree, per
// spec §4.5's "Full-path... can still short-circuit on anchored ancestors."
// Grounded on database/search/filters/full_path.rs.
func (db *Database) matchFullPath(ctx context.Context, p *pool, q *query.Query) ([]bool, error) {
	return db.traverseFullPathRoots(ctx, p, q, true)
}

// matchRegexPath is the conservative regex+match-path strategy (spec §4.5):
// identical traversal, but an ancestor match never short-circuits its
// descendants, since an arbitrary regex may constrain the suffix (anchored,
// end-anchored, character classes) in a way a prefix match doesn't satisfy.
// Grounded on database/search/filters/regex_path.rs and database/search.rs's
// match_path (the query.regex_enabled() branch).
func (db *Database) matchRegexPath(ctx context.Context, p *pool, q *query.Query) ([]bool, error) {
	return db.traverseFullPathRoots(ctx, p, q, false)
}

func (db *Database) traverseFullPathRoots(ctx context.Context, p *pool, q *query.Query, shortCircuit bool) ([]bool, error) {
	hits := make([]bool, len(db.nodes))
	re := q.Regex()

	var g errgroup.Group
	for i, root := range db.roots {
		i, root := i, root
		rootNode := &db.nodes[root.id]

		matched := re.MatchString(root.path)
		if matched {
			hits[root.id] = true
		}

		if matched && shortCircuit {
			next := db.nextRootBound(i)
			for id := root.id; id < next; id++ {
				hits[id] = true
			}
			continue
		}

		db.traverseFullPath(ctx, p, &g, re, hits, rootNode, root.path, shortCircuit)
	}
	return hits, g.Wait()
}

// traverseFullPath walks node's children, assembling each child's full path
// by joining parentPath with its basename (unlike the component-wise
// strategy, which tests basenames alone). Fire-and-forget scheduling into
// the shared errgroup g, matching walk.go's shape — each step releases its
// pool slot before recursively scheduling its own children (see pool.go's
// goBounded), so a slot is never held across the blocking acquire that
// schedule would otherwise need.
func (db *Database) traverseFullPath(ctx context.Context, p *pool, g *errgroup.Group, re *regexp.Regexp, hits []bool, node *EntryNode, parentPath string, shortCircuit bool) {
	for id := node.ChildStart; id < node.ChildEnd; id++ {
		id := id
		p.goBounded(ctx, g, func(release func()) error {
			if err := checkAborted(ctx); err != nil {
				return err
			}
			child := &db.nodes[id]
			childPath := filepath.Join(parentPath, string(db.basename(child)))
			matched := re.MatchString(childPath)
			hasChild := child.hasAnyChild()
			if matched {
				hits[id] = true
			}

			release()

			if matched && shortCircuit {
				if hasChild {
					return markAllDescendants(ctx, db, hits, child)
				}
				return nil
			}

			if hasChild {
				db.traverseFullPath(ctx, p, g, re, hits, child, childPath, shortCircuit)
			}
			return nil
		})
	}
}
