//go:build windows

package database

import (
	"os"

	"github.com/example/ixsearch/internal/mode"
)

// isHiddenFile reports whether a Windows entry is hidden: either the
// filesystem's hidden attribute bit, or a leading dot in the basename.
func isHiddenFile(name string, fi os.FileInfo) bool {
	if fi != nil && mode.FromFileInfo(fi).IsHidden() {
		return true
	}
	return isHiddenName(name)
}

func isHiddenName(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
