package database

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/example/ixsearch/internal/ixerr"
)

// canonicalizeDirs resolves each path to an absolute, symlink-free form,
// rejects non-UTF-8 results, then removes any entry whose string has another
// surviving entry as a byte prefix. That drops duplicates and subdirectories,
// and also a sibling whose name extends another's (/x/foobar next to /x/foo).
// Comparison is done on the
// canonical string itself (not filepath.Rel or similar) deliberately, to
// avoid platform path-comparison quirks — mirrors
// database::util::canonicalize_dirs.
func canonicalizeDirs(dirs []string) ([]string, error) {
	canon := make([]string, 0, len(dirs))
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			return nil, ixerr.NewIO(d, err)
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return nil, ixerr.NewIO(d, err)
		}
		if !utf8.ValidString(resolved) {
			return nil, ixerr.ErrNonUTF8Path
		}
		canon = append(canon, resolved)
	}

	sort.Strings(canon)

	out := canon[:0:0]
	for _, p := range canon {
		if len(out) > 0 && strings.HasPrefix(p, out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
