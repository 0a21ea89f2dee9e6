package database

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/example/ixsearch/internal/ixerr"
)

// Builder accumulates root directories and build options, then produces an
// immutable Database. Mirrors the Build API in §6.1: AddDir, Index,
// FastSort, IgnoreHidden, Build.
type Builder struct {
	dirs          []string
	indexFlags    StatusFlags
	fastSortFlags StatusFlags
	ignoreHidden  bool
	ignorePattern bool
	parallelism   int64
}

// NewBuilder returns a Builder with the default index set: basename, path
// and extension indexed (all else opt-in), basename fast-sortable.
func NewBuilder() *Builder {
	b := &Builder{indexFlags: defaultIndexFlags()}
	b.fastSortFlags[Basename] = true
	return b
}

// AddDir registers a root directory to walk. Relative paths are resolved
// against the process's working directory at Build time.
func (b *Builder) AddDir(path string) *Builder {
	b.dirs = append(b.dirs, path)
	return b
}

// Index marks kind to be captured as an attribute column.
func (b *Builder) Index(kind StatusKind) *Builder {
	b.indexFlags[kind] = true
	return b
}

// FastSort marks kind to have a pre-sorted id permutation built.
func (b *Builder) FastSort(kind StatusKind) *Builder {
	b.fastSortFlags[kind] = true
	return b
}

// IgnoreHidden sets whether entries whose basename is platform-hidden are
// excluded from the walk (and, for directories, not descended into).
func (b *Builder) IgnoreHidden(yes bool) *Builder {
	b.ignoreHidden = yes
	return b
}

// IgnorePatterns enables the [ADD] .ixignore/.gitignore exclude-pattern
// supplement, additive to IgnoreHidden. Off by default.
func (b *Builder) IgnorePatterns(yes bool) *Builder {
	b.ignorePattern = yes
	return b
}

// Parallelism overrides the worker pool width used for the walk. Values
// below 1 fall back to the default (max(1, GOMAXPROCS-1)).
func (b *Builder) Parallelism(n int) *Builder {
	b.parallelism = int64(n)
	return b
}

// Build canonicalizes the registered roots and walks each one, producing an
// immutable Database. Returns InvalidOption if a fast-sort attribute is not
// also indexed, or an I/O error if a root cannot be stat'd.
func (b *Builder) Build() (*Database, error) {
	for kind := StatusKind(0); kind < numStatusKinds; kind++ {
		if b.fastSortFlags[kind] && !b.indexFlags[kind] {
			return nil, ixerr.NewInvalidOption("fast sorting cannot be enabled for a non-indexed status: " + kind.String())
		}
	}

	dirs, err := canonicalizeDirs(b.dirs)
	if err != nil {
		return nil, err
	}

	bc := newBuildContext(b.indexFlags, b.ignoreHidden, b.ignorePattern, b.parallelism)

	for _, dir := range dirs {
		if err := bc.indexRoot(dir); err != nil {
			return nil, err
		}
	}

	db := bc.finish()
	if err := buildSortedIDs(db, b.fastSortFlags, bc.pool); err != nil {
		return nil, err
	}
	return db, nil
}

// buildSortedIDs fills db.sortedIDs for every kind flagged fast-sortable.
// One dispatcher task per kind is scheduled through p, but each dispatcher
// releases its slot immediately, so the kinds are sorted concurrently and
// only sortIDsBy's own, separate chunked use of p bounds the actual
// parallel sort — nesting an unreleased slot inside
// sortIDsBy's own goBounded calls would be the same recursive-fork deadlock
// the search strategies and the tree walker avoid the same way.
func buildSortedIDs(db *Database, fastSort StatusFlags, p *pool) error {
	var g errgroup.Group
	for kind := StatusKind(0); kind < numStatusKinds; kind++ {
		if !fastSort[kind] {
			continue
		}
		kind := kind
		p.goBounded(context.Background(), &g, func(release func()) error {
			release()
			db.sortedIDs[kind] = sortIDsBy(db, kind, p)
			return nil
		})
	}
	return g.Wait()
}
