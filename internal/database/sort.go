package database

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// compareFunc orders two entries for a given StatusKind's sort. Used both
// to build a fast-sort permutation and as the fallback comparator when no
// permutation exists for the requested sort key (§4.3, §4.6).
type compareFunc func(a, b Entry) int

func compareByBasename(a, b Entry) int {
	return strings.Compare(a.Basename(), b.Basename())
}

// compareByPath compares full paths component by component, not as raw
// byte strings, so a shorter path component never beats a lexicographically
// smaller but longer one purely because of a separator byte's position.
func compareByPath(a, b Entry) int {
	pa := strings.Split(filepath.ToSlash(a.Path()), "/")
	pb := strings.Split(filepath.ToSlash(b.Path()), "/")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := strings.Compare(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	return len(pa) - len(pb)
}

func compareByExtension(a, b Entry) int {
	return strings.Compare(a.Extension(), b.Extension())
}

func compareBySize(a, b Entry) int {
	av, _ := a.Size()
	bv, _ := b.Size()
	if av != bv {
		if av < bv {
			return -1
		}
		return 1
	}
	return compareByBasename(a, b)
}

func compareByMode(a, b Entry) int {
	av, _ := a.Mode()
	bv, _ := b.Mode()
	if av != bv {
		if av < bv {
			return -1
		}
		return 1
	}
	return compareByBasename(a, b)
}

func compareByTime(get func(Entry) (int64, bool)) compareFunc {
	return func(a, b Entry) int {
		av, _ := get(a)
		bv, _ := get(b)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
		return compareByBasename(a, b)
	}
}

// compareFuncFor returns the comparator for a StatusKind, per the table in
// spec §4.3.
func compareFuncFor(kind StatusKind) compareFunc {
	switch kind {
	case Basename:
		return compareByBasename
	case Path:
		return compareByPath
	case Extension:
		return compareByExtension
	case Size:
		return compareBySize
	case Mode:
		return compareByMode
	case Created:
		return compareByTime(func(e Entry) (int64, bool) { d, ok := e.Created(); return int64(d), ok })
	case Modified:
		return compareByTime(func(e Entry) (int64, bool) { d, ok := e.Modified(); return int64(d), ok })
	case Accessed:
		return compareByTime(func(e Entry) (int64, bool) { d, ok := e.Accessed(); return int64(d), ok })
	default:
		return compareByBasename
	}
}

// sortIDsBy produces a permutation of [0..N) ordered by kind's comparator
// alone: the attribute comparators break ties by basename, while basename,
// path and extension orderings have no tiebreak. Per SPEC_FULL.md §4.3, this
// is a parallel unstable sort over chunked id slices: each chunk is sorted
// concurrently, bounded by p (the same pool type basename.go's chunked scan
// uses), then the sorted chunks are merged.
// Chunks sort concurrently, but the merge itself is sequential — the same
// division of labor a parallel merge sort normally uses.
func sortIDsBy(db *Database, kind StatusKind, p *pool) []EntryID {
	n := len(db.nodes)
	ids := make([]EntryID, n)
	for i := range ids {
		ids[i] = EntryID(i)
	}
	cmp := compareFuncFor(kind)
	less := func(a, b EntryID) bool {
		return cmp(db.Entry(a), db.Entry(b)) < 0
	}

	const chunkSize = 4096
	if n <= chunkSize {
		sort.Slice(ids, func(i, j int) bool { return less(ids[i], ids[j]) })
		return ids
	}

	var chunks [][]EntryID
	for lo := 0; lo < n; lo += chunkSize {
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		chunks = append(chunks, ids[lo:hi])
	}

	var g errgroup.Group
	for _, c := range chunks {
		c := c
		p.goBounded(context.Background(), &g, func(release func()) error {
			sort.Slice(c, func(i, j int) bool { return less(c[i], c[j]) })
			return nil
		})
	}
	_ = g.Wait() // chunk sorts never fail: no fallible work, no cancelable ctx

	return mergeSortedChunks(chunks, less)
}

// mergeSortedChunks pairwise-merges already-sorted id slices down to one.
func mergeSortedChunks(chunks [][]EntryID, less func(a, b EntryID) bool) []EntryID {
	for len(chunks) > 1 {
		merged := make([][]EntryID, 0, (len(chunks)+1)/2)
		for i := 0; i < len(chunks); i += 2 {
			if i+1 == len(chunks) {
				merged = append(merged, chunks[i])
				break
			}
			merged = append(merged, mergeTwoSorted(chunks[i], chunks[i+1], less))
		}
		chunks = merged
	}
	if len(chunks) == 0 {
		return nil
	}
	return chunks[0]
}

func mergeTwoSorted(a, b []EntryID, less func(a, b EntryID) bool) []EntryID {
	out := make([]EntryID, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if less(b[j], a[i]) {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
