package traffic

import(
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Map runs fn over every segment (as Iterate would yield them) with at most `workers` running
// at once; zero or less means one per CPU. Results are in iteration order. The first error
// cancels the context handed to the others, and is returned.
func Map[T any](ctx context.Context, tr *Traffic, threshold time.Duration, workers int,
	fn func(context.Context, *Flight) (T, error)) ([]T, error) {
	flights,err := tr.Flights(threshold)
	if err != nil { return nil, err }

	if workers <= 0 { workers = runtime.NumCPU() }
	results := make([]T, len(flights))

	g,ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i,f := range flights {
		i,f := i,f
		g.Go(func() error {
			if err := ctx.Err(); err != nil { return err }
			v,err := fn(ctx, f)
			if err != nil { return err }
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
