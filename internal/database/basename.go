package database

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/example/ixsearch/internal/query"
)

// matchBasename regex-tests every entry's basename in parallel chunks,
// grounded on database/search.rs's match_basename: a basename match carries
// no implication about ancestors or descendants, so there is no tree
// structure to exploit here.
func (db *Database) matchBasename(ctx context.Context, p *pool, q *query.Query) ([]bool, error) {
	n := len(db.nodes)
	hits := make([]bool, n)
	re := q.Regex()

	const chunkSize = 4096
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunkSize {
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		p.goBounded(ctx, &g, func(release func()) error {
			for id := lo; id < hi; id++ {
				if id%256 == 0 {
					if err := checkAborted(ctx); err != nil {
						return err
					}
				}
				if re.MatchString(string(db.basename(&db.nodes[id]))) {
					hits[id] = true
				}
			}
			return nil
		})
	}
	return hits, g.Wait()
}
