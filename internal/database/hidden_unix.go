//go:build !windows

package database

import "os"

// isHiddenName reports whether a Unix basename is hidden: a leading dot.
func isHiddenName(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// isHiddenFile reports whether an entry is hidden. On Unix this is purely
// name-based; fi is accepted only to keep the call site platform-agnostic.
func isHiddenFile(name string, fi os.FileInfo) bool {
	return isHiddenName(name)
}
