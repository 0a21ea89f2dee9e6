// Package database implements the Index Engine: a parallel filesystem walker
// that produces a cache-friendly, arena-packed entry tree, plus the Query
// Engine's four search strategies and result collector, which operate
// directly on that tree's unexported fields.
package database

import (
	"path/filepath"
	"time"
)

// rootEntry records one canonicalized root directory and the node id its
// EntryNode occupies. Kept as a slice, not a map, because iteration order is
// load-bearing: a root's "next root" id is the upper bound used by the
// path-search strategies to delimit that root's id range (see nextRootBound).
type rootEntry struct {
	id   EntryID
	path string
}

// Database is the immutable, arena-packed index produced by Builder.Build.
// All search operations borrow it read-only and may run concurrently.
type Database struct {
	nameArena []byte
	nodes     []EntryNode
	roots     []rootEntry

	indexFlags StatusFlags

	size     []uint64
	mode     []uint32
	created  []time.Duration
	modified []time.Duration
	accessed []time.Duration

	sortedIDs [numStatusKinds][]EntryID
}

// NumEntries returns the total number of entries in the database, across all
// roots.
func (db *Database) NumEntries() int {
	return len(db.nodes)
}

// IsIndexed reports whether kind's attribute column is present.
func (db *Database) IsIndexed(kind StatusKind) bool {
	return db.indexFlags[kind]
}

// isFastSortable reports whether a pre-sorted id permutation exists for kind.
func (db *Database) isFastSortable(kind StatusKind) bool {
	return db.sortedIDs[kind] != nil
}

// basename returns the basename bytes for node n, sliced directly out of the
// name arena (no copy).
func (db *Database) basename(n *EntryNode) []byte {
	return db.nameArena[n.NameStart : n.NameStart+uint32(n.NameLen)]
}

// rootPath returns the canonical path recorded for root node id, and
// whether id is in fact a root.
func (db *Database) rootPath(id EntryID) (string, bool) {
	for _, r := range db.roots {
		if r.id == id {
			return r.path, true
		}
	}
	return "", false
}

// nextRootBound returns the exclusive upper bound of the id range owned by
// the root at roots[idx]: the id of the following root, or the total entry
// count for the last root.
func (db *Database) nextRootBound(idx int) EntryID {
	if idx+1 < len(db.roots) {
		return db.roots[idx+1].id
	}
	return EntryID(len(db.nodes))
}

// Entry is a read-only handle onto one indexed filesystem entry.
type Entry struct {
	db *Database
	id EntryID
}

// Entry returns a handle for id. The caller is responsible for passing a
// valid id; ids never change meaning once a Database is built.
func (db *Database) Entry(id EntryID) Entry {
	return Entry{db: db, id: id}
}

// Entries iterates every entry in id order.
func (db *Database) Entries() []Entry {
	out := make([]Entry, len(db.nodes))
	for i := range db.nodes {
		out[i] = Entry{db: db, id: EntryID(i)}
	}
	return out
}

// RootEntries iterates only the top-level root entries, in root-table order.
func (db *Database) RootEntries() []Entry {
	out := make([]Entry, len(db.roots))
	for i, r := range db.roots {
		out[i] = Entry{db: db, id: r.id}
	}
	return out
}

func (e Entry) ID() EntryID { return e.id }

func (e Entry) node() *EntryNode { return &e.db.nodes[e.id] }

// Basename returns the entry's basename as a string (a copy; the arena
// itself is never exposed mutably).
func (e Entry) Basename() string {
	return string(e.db.basename(e.node()))
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.node().IsDir
}

// Parent returns the entry's parent. The root's parent is itself.
func (e Entry) Parent() Entry {
	return Entry{db: e.db, id: e.node().Parent}
}

// Children iterates e's direct children, in the directories-first order
// invariant 2 guarantees.
func (e Entry) Children() []Entry {
	n := e.node()
	if !n.hasAnyChild() {
		return nil
	}
	out := make([]Entry, 0, n.ChildEnd-n.ChildStart)
	for id := n.ChildStart; id < n.ChildEnd; id++ {
		out = append(out, Entry{db: e.db, id: id})
	}
	return out
}

// Path assembles the entry's full path by walking parents to a root, then
// joining basenames with the OS separator. This is O(depth), never cached.
func (e Entry) Path() string {
	if path, ok := e.db.rootPath(e.id); ok {
		return path
	}
	return filepath.Join(e.Parent().Path(), e.Basename())
}

// Extension returns the basename's extension without the leading dot, or ""
// if there is none — matching Rust's Path::extension() semantics (a leading
// dot with no further text, e.g. ".bashrc", has no extension).
func (e Entry) Extension() string {
	base := e.Basename()
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return ""
	}
	return ext[1:]
}

// Size returns the indexed size column value: byte length for files, raw
// pre-filter child count for directories (spec open question, preserved).
func (e Entry) Size() (uint64, bool) {
	if e.db.size == nil {
		return 0, false
	}
	return e.db.size[e.id], true
}

func (e Entry) Mode() (uint32, bool) {
	if e.db.mode == nil {
		return 0, false
	}
	return e.db.mode[e.id], true
}

func (e Entry) Created() (time.Duration, bool) {
	if e.db.created == nil {
		return 0, false
	}
	return e.db.created[e.id], true
}

func (e Entry) Modified() (time.Duration, bool) {
	if e.db.modified == nil {
		return 0, false
	}
	return e.db.modified[e.id], true
}

func (e Entry) Accessed() (time.Duration, bool) {
	if e.db.accessed == nil {
		return 0, false
	}
	return e.db.accessed[e.id], true
}
