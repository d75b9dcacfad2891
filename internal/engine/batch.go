package engine

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// BatchItem is one named production input of a batch run.
type BatchItem struct {
	Name  string
	Input model.ProductionInput
}

// BatchResult pairs an item with its solution. Err holds the validation
// error of an item that could not be built; it never aborts the batch.
type BatchResult struct {
	Name     string
	Input    model.ProductionInput
	Solution model.Solution
	Err      error
}

// OptimizeBatch solves items concurrently on at most workers goroutines.
// Results are index-aligned with items. The only error returned is the
// context's, when the run is cancelled before every item is solved.
func (o *Optimizer) OptimizeBatch(ctx context.Context, items []BatchItem, workers int) ([]BatchResult, error) {
	logger := logr.FromContextOrDiscard(ctx)
	if workers < 1 {
		workers = 1
	}
	start := time.Now()

	results := make([]BatchResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sol, err := o.Optimize(item.Input)
			results[i] = BatchResult{Name: item.Name, Input: item.Input, Solution: sol, Err: err}
			if err != nil {
				logger.Info("Skipping invalid batch item", "item", item.Name, "error", err.Error())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("Batch optimization completed",
		"items", len(items),
		"failed", failed,
		"workers", workers,
		"duration", time.Since(start).String())
	return results, nil
}
