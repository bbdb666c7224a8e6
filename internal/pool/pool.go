// Package pool fans work out over a bounded number of goroutines and
// collects results in input order.
package pool

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Func processes the i-th item and returns its result.
type Func[T, R any] func(ctx context.Context, i int, item T) R

// FailFunc builds the result for an item that panicked or never ran.
type FailFunc[T, R any] func(item T, err error) R

// Run calls fn for every item and returns the results indexed like items.
// With workers <= 1, or a single item, it runs sequentially. Otherwise at
// most workers calls run at once. Once ctx is done, items not yet started
// are handed to onFail with ctx.Err() so every slot is filled.
func Run[T, R any](ctx context.Context, items []T, workers int, fn Func[T, R], onFail FailFunc[T, R]) []R {
	results := make([]R, len(items))

	call := func(i int, item T) {
		defer func() {
			if rec := recover(); rec != nil {
				results[i] = onFail(item, fmt.Errorf("parallel execution error: %v", rec))
			}
		}()
		results[i] = fn(ctx, i, item)
	}

	if workers <= 1 || len(items) <= 1 {
		for i, item := range items {
			if err := ctx.Err(); err != nil {
				results[i] = onFail(item, err)
				continue
			}
			call(i, item)
		}
		return results
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			results[i] = onFail(item, err)
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = onFail(item, err)
				return nil
			}
			call(i, item)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
