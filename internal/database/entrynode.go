package database

import "math"

// EntryID indexes Database.nodes and every optional attribute column. It is
// also a valid index into any sorted-id permutation.
type EntryID uint32

// noChildren is the child_start/child_end sentinel for a node that has not
// yet had its child range assigned (or, for leaves, never will).
const noChildren = math.MaxUint32

// EntryNode is the fixed-size record stored per filesystem entry discovered
// during a build. Children of a single parent occupy a contiguous id range,
// directories first, matching invariant 2.
type EntryNode struct {
	NameStart uint32
	NameLen   uint16
	Parent    EntryID
	ChildStart,
	ChildEnd EntryID
	IsDir bool
}

// hasAnyChild reports whether n has at least one child in the arena.
func (n *EntryNode) hasAnyChild() bool {
	return n.ChildStart < n.ChildEnd
}
