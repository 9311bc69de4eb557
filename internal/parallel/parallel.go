// Package parallel provides bounded fan-out over independent, read-only work items.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the default concurrency limit for parallel operations.
const DefaultLimit = 4

// Result holds the result of a parallel operation.
type Result[T any] struct {
	Value T
	Err   error
}

// Map runs fn for each item concurrently and returns results in input order.
// Individual errors are captured in Result.Err rather than failing the entire operation.
func Map[T any, R any](
	ctx context.Context,
	items []T,
	fn func(ctx context.Context, item T) (R, error),
) []Result[R] {
	return MapWithLimit(ctx, items, DefaultLimit, fn)
}

// MapWithLimit is like Map but with a custom concurrency limit.
func MapWithLimit[T any, R any](
	ctx context.Context,
	items []T,
	limit int,
	fn func(ctx context.Context, item T) (R, error),
) []Result[R] {
	results := make([]Result[R], len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			value, err := fn(gctx, item)
			// Each goroutine owns its slot.
			results[i] = Result[R]{Value: value, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
