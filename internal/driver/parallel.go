package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BuildAll compiles the given files concurrently. The per-file results come
// back in input order; the first lowering or I/O failure cancels the rest.
// Diagnostics do not cancel the group - callers inspect each result's bag.
func BuildAll(ctx context.Context, paths []string, maxDiag int) ([]*BuildResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	results := make([]*BuildResult, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := BuildFile(path, maxDiag, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
