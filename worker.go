package gridpath

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Query is one start/goal pair of a batch.
type Query struct {
	Start Coord `json:"start"`
	Goal  Coord `json:"goal"`
}

// SearchAll runs every query against grid on a pool of workers and returns
// the results in query order. Each search owns its own state, so the grid
// is only read and must not be modified until SearchAll returns. The first
// error cancels the remaining queries.
func SearchAll(
	ctx context.Context,
	grid *Grid,
	queries []Query,
	options ...Option,
) ([]Result, error) {
	opts := newOptions(options)
	results := make([]Result, len(queries))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.NumberOfWorkers)
	for i, query := range queries {
		group.Go(func() error {
			res, err := Search(groupCtx, grid, query.Start, query.Goal, options...)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
