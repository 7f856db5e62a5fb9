package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Workers runs its workers concurrently, at most limit at a time.
type Workers struct {
	workers []Worker
	limit   int
}

// New returns a Workers that runs at most limit workers at once. A limit
// below 1 means one at a time.
func New(limit int, workers ...Worker) *Workers {
	return &Workers{workers: workers, limit: max(limit, 1)}
}

// Add appends workers to the set.
func (w *Workers) Add(workers ...Worker) {
	w.workers = append(w.workers, workers...)
}

// Run starts every worker and waits for all of them. The first error cancels
// the context passed to the remaining workers and is returned. Workers that
// have not started when the context is cancelled are not started.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.limit)

	for _, worker := range w.workers {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}

	return g.Wait()
}
