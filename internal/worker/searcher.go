// Package worker runs database loads and searches off the caller's
// goroutine, delivering results over channels. Grounded on original_source's
// src/bin/ix/worker.rs: a Searcher owns a query channel and a stop channel,
// serviced by one goroutine that aborts whatever search is in flight the
// moment a new query arrives. crossbeam::channel::select! becomes a `select`
// over Go channels; context.CancelFunc stands in for the Arc<AtomicBool>
// abort signal (see SPEC_FULL.md §4.7), and the teacher's own
// internal/ws/server.go shows the same shape — one goroutine servicing a
// command channel and a stop channel.
package worker

import (
	"context"
	"errors"

	"github.com/example/ixsearch/internal/database"
	"github.com/example/ixsearch/internal/ixerr"
	"github.com/example/ixsearch/internal/query"
)

// Result is one completed search's outcome, tagged with the query that
// produced it so a caller juggling a fast typist's keystrokes can discard a
// result for a query it no longer cares about.
type Result struct {
	Query *query.Query
	IDs   []database.EntryID
	Err   error
}

// Searcher serializes a stream of queries against one Database, starting one
// search per query and cancelling the previous search as soon as a new query
// supersedes it (spec §4.7, scenario S6).
type Searcher struct {
	db       *database.Database
	queryCh  chan *query.Query
	resultCh chan Result
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSearcher starts the servicing goroutine and returns a handle to it.
func NewSearcher(db *database.Database) *Searcher {
	s := &Searcher{
		db:       db,
		queryCh:  make(chan *query.Query),
		resultCh: make(chan Result, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go s.run()
	return s
}

// Submit supersedes any in-flight search with q. Blocks until the servicing
// goroutine accepts it; never blocks on the search itself completing.
func (s *Searcher) Submit(q *query.Query) {
	select {
	case s.queryCh <- q:
	case <-s.doneCh:
	}
}

// Results is where completed searches are delivered, one at a time — a
// superseded search never sends here (spec §4.7's "worker produces no value
// on the result channel" for an aborted search).
func (s *Searcher) Results() <-chan Result { return s.resultCh }

// Close stops the servicing goroutine, aborting whatever search is in
// flight. Submit and Results must not be used afterward.
func (s *Searcher) Close() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *Searcher) run() {
	defer close(s.doneCh)

	var cancel context.CancelFunc
	for {
		select {
		case q := <-s.queryCh:
			if cancel != nil {
				cancel()
			}
			ctx, c := context.WithCancel(context.Background())
			cancel = c
			go s.runSearch(ctx, q)

		case <-s.stopCh:
			if cancel != nil {
				cancel()
			}
			return
		}
	}
}

func (s *Searcher) runSearch(ctx context.Context, q *query.Query) {
	ids, err := s.db.Search(ctx, q)
	if errors.Is(err, ixerr.ErrSearchAbort) {
		return
	}
	select {
	case s.resultCh <- Result{Query: q, IDs: ids, Err: err}:
	case <-ctx.Done():
	}
}
