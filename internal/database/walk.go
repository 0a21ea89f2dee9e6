package database

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/ixsearch/internal/ixerr"
)

// dirEntry is a DirEntry-like value carrying just what the walker needs, so
// the underlying OS directory handle is released before any recursion —
// holding onto os.DirEntry/os.File across the whole subtree walk would risk
// file-descriptor exhaustion on large trees.
type dirEntry struct {
	name  string
	path  string
	isDir bool
	fi    os.FileInfo // nil unless hidden-check or metadata capture needed it
}

// buildContext owns the in-progress Database during a walk: the arena and
// node/attribute slices are mutated only while mu is held, matching the
// single-mutex arena design in §4.2/§5. Directory reads and metadata
// capture happen unlocked.
type buildContext struct {
	mu sync.Mutex

	in    *interner
	nodes []EntryNode
	roots []rootEntry

	flags         StatusFlags
	ignoreHidden  bool
	ignorePattern bool
	pool          *pool

	size     []uint64
	mode     []uint32
	created  []time.Duration
	modified []time.Duration
	accessed []time.Duration
}

func newBuildContext(flags StatusFlags, ignoreHidden, ignorePattern bool, parallelism int64) *buildContext {
	bc := &buildContext{
		in:            newInterner(),
		flags:         flags,
		ignoreHidden:  ignoreHidden,
		ignorePattern: ignorePattern,
		pool:          newPool(parallelism),
	}
	if flags[Size] {
		bc.size = []uint64{}
	}
	if flags[Mode] {
		bc.mode = []uint32{}
	}
	if flags[Created] {
		bc.created = []time.Duration{}
	}
	if flags[Modified] {
		bc.modified = []time.Duration{}
	}
	if flags[Accessed] {
		bc.accessed = []time.Duration{}
	}
	return bc
}

// pushEntryLocked appends one entry to the arena and node/attribute slices.
// Callers must hold mu.
func (bc *buildContext) pushEntryLocked(name string, a attrs, isDir bool, parentID EntryID) EntryID {
	span := bc.in.intern(name)
	id := EntryID(len(bc.nodes))
	bc.nodes = append(bc.nodes, EntryNode{
		NameStart:  span.start,
		NameLen:    span.len,
		Parent:     parentID,
		ChildStart: noChildren,
		ChildEnd:   noChildren,
		IsDir:      isDir,
	})
	if bc.size != nil {
		bc.size = append(bc.size, a.size)
	}
	if bc.mode != nil {
		bc.mode = append(bc.mode, a.mode)
	}
	if bc.created != nil {
		bc.created = append(bc.created, a.created)
	}
	if bc.modified != nil {
		bc.modified = append(bc.modified, a.modified)
	}
	if bc.accessed != nil {
		bc.accessed = append(bc.accessed, a.accessed)
	}
	return id
}

// listDir reads one directory's immediate children, returning them split
// into directories and files, plus the raw pre-filter child count (used
// as a directory's Size column value per spec §4.2). Unreadable
// directories and per-entry stat failures are absorbed, never fatal.
func (bc *buildContext) listDir(dir string) (dirs, files []dirEntry, childCount uint64, err error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, 0, err
	}
	childCount = uint64(len(des))

	for _, d := range des {
		name := d.Name()
		isDir := d.IsDir()

		var fi os.FileInfo
		if bc.ignoreHidden || bc.flags.needsMetadata(isDir) {
			info, err := d.Info()
			if err != nil {
				continue
			}
			fi = info
		}

		if bc.ignoreHidden && isHiddenFile(name, fi) {
			continue
		}

		de := dirEntry{name: name, path: filepath.Join(dir, name), isDir: isDir, fi: fi}
		if isDir {
			dirs = append(dirs, de)
		} else {
			files = append(files, de)
		}
	}
	return dirs, files, childCount, nil
}

// filterIgnored removes entries matched by chain, additive to ignoreHidden.
func (bc *buildContext) filterIgnored(chain []ignoreRule, entries []dirEntry) []dirEntry {
	if len(chain) == 0 {
		return entries
	}
	out := entries[:0]
	for _, e := range entries {
		if !ignoredByChain(chain, e.path) {
			out = append(out, e)
		}
	}
	return out
}

// appendChain copies chain before appending, so concurrent siblings that
// both extend the same parent chain never share a backing array.
func appendChain(chain []ignoreRule, r ignoreRule) []ignoreRule {
	out := make([]ignoreRule, len(chain), len(chain)+1)
	copy(out, chain)
	return append(out, r)
}

// indexRoot stats path, pushes its root node, and walks its subtree. A
// non-directory root is silently skipped; a failed root stat is fatal.
func (bc *buildContext) indexRoot(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return ixerr.NewIO(path, err)
	}
	if !fi.IsDir() {
		return nil
	}

	dirs, files, childCount, _ := bc.listDir(path)
	a := captureAttrs(path, fi, true, bc.flags, childCount)

	rootID := EntryID(len(bc.nodes))
	bc.mu.Lock()
	bc.pushEntryLocked(filepath.Base(path), a, true, rootID)
	bc.roots = append(bc.roots, rootEntry{id: rootID, path: path})
	bc.mu.Unlock()

	children := append(append([]dirEntry{}, dirs...), files...)
	if len(children) == 0 {
		return nil
	}

	ctx := context.Background()
	var g errgroup.Group
	if err := bc.walkDir(ctx, &g, rootID, path, children, nil, nil); err != nil {
		return err
	}
	return g.Wait()
}

// walkDir pushes parentPath's already-read children as one contiguous arena
// block (directories first, invariant 2), then fans out into each
// subdirectory in parallel, bounded by bc.pool. dirEntries is unfiltered by
// ignore patterns; walkDir applies parentPath's own chain (inherited plus
// its own ignore file, if any) before splitting and pushing.
//
// release is the pool slot handed to this call by the goBounded that
// scheduled it (nil for the unbounded top-level call from indexRoot). It is
// called as soon as this call's own work is done and before the loop below
// schedules this directory's children — never while blocked acquiring a
// slot for them, which is what would deadlock the pool once every
// outstanding permit is held by a goroutine doing exactly that.
func (bc *buildContext) walkDir(ctx context.Context, g *errgroup.Group, parentID EntryID, parentPath string, dirEntries []dirEntry, chain []ignoreRule, release func()) error {
	childChain := chain
	if bc.ignorePattern {
		if r := readIgnoreRule(parentPath); r.m != nil {
			childChain = appendChain(chain, r)
		}
		dirEntries = bc.filterIgnored(childChain, dirEntries)
	}

	var dirs, files []dirEntry
	for _, de := range dirEntries {
		if de.isDir {
			dirs = append(dirs, de)
		} else {
			files = append(files, de)
		}
	}
	if len(dirs) == 0 && len(files) == 0 {
		return nil
	}

	// Look ahead into each subdirectory and capture every child's attributes
	// now, unlocked, so the arena lock's critical section below never
	// performs I/O.
	childEntries := make([][]dirEntry, len(dirs))
	dirAttrs := make([]attrs, len(dirs))
	for i, d := range dirs {
		sub, subFiles, count, _ := bc.listDir(d.path)
		childEntries[i] = append(append([]dirEntry{}, sub...), subFiles...)
		dirAttrs[i] = captureAttrs(d.path, d.fi, true, bc.flags, count)
	}
	fileAttrs := make([]attrs, len(files))
	for i, f := range files {
		fileAttrs[i] = captureAttrs(f.path, f.fi, false, bc.flags, 0)
	}

	bc.mu.Lock()
	if uint64(len(bc.nodes))+uint64(len(dirs)+len(files)) > math.MaxUint32 {
		bc.mu.Unlock()
		return ixerr.ErrTooManyEntries
	}
	start := EntryID(len(bc.nodes))
	dirEnd := start + EntryID(len(dirs))
	end := dirEnd + EntryID(len(files))
	bc.nodes[parentID].ChildStart = start
	bc.nodes[parentID].ChildEnd = end

	for i, d := range dirs {
		bc.pushEntryLocked(d.name, dirAttrs[i], true, parentID)
	}
	for i, f := range files {
		bc.pushEntryLocked(f.name, fileAttrs[i], false, parentID)
	}
	bc.mu.Unlock()

	// This call's own work (the lookahead reads and the locked push above)
	// is done; give up the slot before scheduling children rather than
	// holding it across goBounded calls that may block acquiring theirs.
	if release != nil {
		release()
	}

	for i := range dirs {
		i := i
		id := start + EntryID(i)
		entries := childEntries[i]
		if len(entries) == 0 {
			continue
		}
		dirPath := dirs[i].path
		bc.pool.goBounded(ctx, g, func(childRelease func()) error {
			return bc.walkDir(ctx, g, id, dirPath, entries, childChain, childRelease)
		})
	}
	return nil
}

func (bc *buildContext) finish() *Database {
	return &Database{
		nameArena:  bc.in.arena,
		nodes:      bc.nodes,
		roots:      bc.roots,
		indexFlags: bc.flags,
		size:       bc.size,
		mode:       bc.mode,
		created:    bc.created,
		modified:   bc.modified,
		accessed:   bc.accessed,
	}
}
