package database

import (
	"sort"

	"github.com/example/ixsearch/internal/query"
)

// collectHits delivers matched ids in the order q requests (spec §4.6). A
// nil hits slice means Passthrough: every id matched. Ported directly from
// database/search.rs's collect_hits.
func (db *Database) collectHits(q *query.Query, hits []bool) ([]EntryID, error) {
	var ids []EntryID

	if db.isFastSortable(q.SortBy()) {
		sorted := db.sortedIDs[q.SortBy()]
		ids = make([]EntryID, 0, len(sorted))
		if q.SortOrder() == query.Ascending {
			for _, id := range sorted {
				if hits == nil || hits[id] {
					ids = append(ids, id)
				}
			}
		} else {
			for i := len(sorted) - 1; i >= 0; i-- {
				id := sorted[i]
				if hits == nil || hits[id] {
					ids = append(ids, id)
				}
			}
		}
	} else {
		for id := 0; id < len(db.nodes); id++ {
			if hits == nil || hits[id] {
				ids = append(ids, EntryID(id))
			}
		}
		cmp := compareFuncFor(q.SortBy())
		sort.Slice(ids, func(i, j int) bool {
			a, b := db.Entry(ids[i]), db.Entry(ids[j])
			if q.SortOrder() == query.Descending {
				a, b = b, a
			}
			return cmp(a, b) < 0
		})
	}

	if q.SortDirsBeforeFiles() {
		sort.SliceStable(ids, func(i, j int) bool {
			return db.nodes[ids[i]].IsDir && !db.nodes[ids[j]].IsDir
		})
	}

	return ids, nil
}
