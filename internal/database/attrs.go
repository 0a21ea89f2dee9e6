package database

import (
	"os"
	"time"

	"github.com/djherbis/times"

	"github.com/example/ixsearch/internal/mode"
)

// epoch is the fixed reference point timestamps are stored as a duration
// from (spec §3.1): the Unix epoch. Metadata older than the epoch is
// clamped to it rather than producing a negative duration.
var epoch = time.Unix(0, 0)

// attrs is the per-entry metadata captured at walk time, filled in only for
// the columns the build's index flags request. Zero-valued fields for
// columns that are not indexed are never read back.
type attrs struct {
	size     uint64
	mode     uint32
	created  time.Duration
	modified time.Duration
	accessed time.Duration
}

// needsMetadata reports whether any attribute requiring a stat call is
// indexed for an entry of the given kind. A directory's size (its pre-filter
// child count) is computed separately from a stat, so it does not by itself
// require metadata — matching indexer.rs's IndexOptions::needs_metadata.
func (f StatusFlags) needsMetadata(isDir bool) bool {
	return (!isDir && f[Size]) || f[Mode] || f[Created] || f[Modified] || f[Accessed]
}

// captureAttrs reads the attribute columns requested by flags from fi and
// its underlying path. fi may be nil when neither ignoreHidden nor any
// stat-requiring attribute was needed when the entry was listed; any column
// that would have needed fi is then left at its zero value. childCount is
// the directory's raw pre-filter child count, used as its Size column
// value; ignored for files.
func captureAttrs(path string, fi os.FileInfo, isDir bool, flags StatusFlags, childCount uint64) attrs {
	var a attrs

	if isDir {
		if flags[Size] {
			a.size = childCount
		}
	} else if flags[Size] && fi != nil {
		a.size = uint64(fi.Size())
	}

	if flags[Mode] && fi != nil {
		a.mode = uint32(mode.FromFileInfo(fi))
	}

	if flags[Created] || flags[Accessed] {
		if t, err := times.Stat(path); err == nil {
			if flags[Created] {
				a.created = sanitizeTime(birthTime(t))
			}
			if flags[Accessed] {
				a.accessed = sanitizeTime(t.AccessTime())
			}
		}
	}

	if flags[Modified] && fi != nil {
		a.modified = sanitizeTime(fi.ModTime())
	}

	return a
}

// birthTime returns the platform's best approximation of creation time,
// falling back to ModTime when the OS/filesystem doesn't expose one.
func birthTime(t times.Timespec) time.Time {
	if t.HasBirthTime() {
		return t.BirthTime()
	}
	return t.ModTime()
}

// sanitizeTime clamps a timestamp to no earlier than the epoch, guarding
// against metadata with an invalid pre-epoch system time (sanitize_system_time).
func sanitizeTime(t time.Time) time.Duration {
	d := t.Sub(epoch)
	if d < 0 {
		return 0
	}
	return d
}
