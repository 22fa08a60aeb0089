package fuzzymatch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FindMany looks up several needles concurrently with at most workers
// lookups in flight. Results are returned in needle order. Cancelling ctx
// stops lookups that have not started yet.
func (e *Engine[R]) FindMany(ctx context.Context, needles []string, workers int, opts ...LookupOption) ([]*Result[R], error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Fail fast on conflicting options instead of once per needle
	if _, _, err := resolveOptions(opts); err != nil {
		return nil, err
	}

	results := make([]*Result[R], len(needles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, needle := range needles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := e.Lookup(needle, opts...)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop may have stopped early without any goroutine reporting it
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debugw("Batch lookup finished", "needles", len(needles), "workers", workers)
	return results, nil
}
