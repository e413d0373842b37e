package catalog

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// mapLimit applies fn to every item through a worker pool of at most limit
// goroutines. results[i] always corresponds to items[i] regardless of
// completion order. The first error cancels the pool context and fails the
// aggregate call: in-flight siblings finish, later tasks observe the
// cancellation, and no partial results are returned.
func mapLimit[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))

	p := pool.New().
		WithMaxGoroutines(limit).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for i, item := range items {
		i, item := i, item
		p.Go(func(ctx context.Context) error {
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
