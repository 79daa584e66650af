package service

import (
	"context"
	"time"
)

// DatasetFunc processes one dataset file.
type DatasetFunc func(ctx context.Context, path string) error

// BatchItem is the outcome of one dataset in a batch.
type BatchItem struct {
	Path     string
	Err      error
	Duration time.Duration
}

// BatchRunner processes datasets one after another. A failing dataset is
// recorded and the batch moves on; only cancellation stops it early.
type BatchRunner struct {
	observer UseCaseObserver
}

func NewBatchRunner(observers ...UseCaseObserver) *BatchRunner {
	return &BatchRunner{observer: useCaseObserverOrNoop(observers)}
}

// Run calls fn for every path in order and returns one item per path.
// Paths not reached because ctx was cancelled carry ctx.Err().
func (b *BatchRunner) Run(ctx context.Context, paths []string, fn DatasetFunc) (items []BatchItem) {
	var err error
	fields := map[string]any{"datasets": len(paths)}
	defer observe(ctx, b.observer, "batch", fields, &err)()

	items = make([]BatchItem, 0, len(paths))
	for _, path := range paths {
		if ctxErr := ctx.Err(); ctxErr != nil {
			items = append(items, BatchItem{Path: path, Err: ctxErr})
			continue
		}
		started := time.Now()
		itemErr := fn(ctx, path)
		items = append(items, BatchItem{Path: path, Err: itemErr, Duration: time.Since(started)})
	}

	failed := Failed(items)
	fields["failed"] = failed
	err = ctx.Err()
	return items
}

// Failed counts the items that ended with an error.
func Failed(items []BatchItem) int {
	n := 0
	for _, it := range items {
		if it.Err != nil {
			n++
		}
	}
	return n
}
