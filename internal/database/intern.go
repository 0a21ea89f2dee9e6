package database

import "github.com/cespare/xxhash/v2"

// nameSpan is the (start, len) location of one interned basename inside the
// shared name arena.
type nameSpan struct {
	start uint32
	len   uint16
}

// interner deduplicates basenames by content hash while the arena is built.
// It owns the arena during indexing; Database.nameArena is handed the final
// buffer once the build finishes. Not safe for concurrent use — callers hold
// the build's single mutex while calling intern.
type interner struct {
	arena   []byte
	buckets map[uint64][]nameSpan
}

func newInterner() *interner {
	return &interner{buckets: make(map[uint64][]nameSpan)}
}

// intern returns the arena span for name, appending it to the arena only if
// an identical basename has not been seen before.
func (in *interner) intern(name string) nameSpan {
	h := xxhash.Sum64String(name)
	for _, span := range in.buckets[h] {
		if string(in.arena[span.start:span.start+uint32(span.len)]) == name {
			return span
		}
	}

	span := nameSpan{start: uint32(len(in.arena)), len: uint16(len(name))}
	in.arena = append(in.arena, name...)
	in.buckets[h] = append(in.buckets[h], span)
	return span
}
