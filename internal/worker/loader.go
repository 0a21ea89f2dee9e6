package worker

import (
	"github.com/example/ixsearch/internal/database"
	"github.com/example/ixsearch/internal/persist"
)

// LoadResult is delivered once by RunLoader's channel.
type LoadResult struct {
	DB  *database.Database
	Err error
}

// RunLoader reads a persisted database off the caller's goroutine, grounded
// on original_source's Loader (src/bin/ix/worker.rs): fire a background
// goroutine immediately, hand back a channel the caller can select on
// alongside its own event loop instead of blocking the UI on disk I/O.
func RunLoader(path string) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		db, err := persist.Load(path)
		ch <- LoadResult{DB: db, Err: err}
	}()
	return ch
}
