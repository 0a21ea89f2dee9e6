package database

import "github.com/example/ixsearch/internal/status"

// StatusKind and StatusFlags are aliases onto internal/status, which holds
// the enum so internal/query can reference a sort key without importing
// internal/database (see that package's doc comment for why).
type (
	StatusKind  = status.Kind
	StatusFlags = status.Flags
)

const (
	Basename  = status.Basename
	Path      = status.Path
	Extension = status.Extension
	Size      = status.Size
	Mode      = status.Mode
	Created   = status.Created
	Modified  = status.Modified
	Accessed  = status.Accessed

	numStatusKinds = status.NumKinds
)

func defaultIndexFlags() StatusFlags {
	return status.DefaultIndexFlags()
}
