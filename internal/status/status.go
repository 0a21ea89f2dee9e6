// Package status defines the StatusKind enum shared by the database and
// query packages. It exists as its own package, rather than living in
// internal/database where it conceptually belongs, only so that
// internal/query can name a sort key without importing internal/database —
// which in turn must import internal/query's compiled Query type for its
// search strategy dispatch (SPEC_FULL.md §4.5).
package status

// Kind names one of the attributes that can be indexed and, independently,
// marked fast-sortable. Used as an index into fixed-size arrays (Flags, the
// database's sorted-id table) throughout both packages.
type Kind int

const (
	Basename Kind = iota
	Path
	Extension
	Size
	Mode
	Created
	Modified
	Accessed

	NumKinds
)

func (k Kind) String() string {
	switch k {
	case Basename:
		return "basename"
	case Path:
		return "path"
	case Extension:
		return "extension"
	case Size:
		return "size"
	case Mode:
		return "mode"
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Accessed:
		return "accessed"
	default:
		return "unknown"
	}
}

// Flags is a fixed-size set of booleans indexed by Kind, standing in for the
// enum_map<StatusKind, bool> flag sets used throughout the build path (index
// flags, fast-sort flags).
type Flags [NumKinds]bool

func DefaultIndexFlags() Flags {
	var f Flags
	f[Basename] = true
	f[Path] = true
	f[Extension] = true
	return f
}
