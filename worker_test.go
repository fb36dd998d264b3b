package gridpath_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridpath"
)

func TestSearchAll(t *testing.T) {
	g := gridWithWalls(t, 6, 6, c(0, 4), c(2, 2), c(2, 4), c(4, 0), c(4, 1), c(4, 3))
	queries := []gridpath.Query{
		{Start: c(0, 0), Goal: c(5, 5)},
		{Start: c(5, 5), Goal: c(0, 0)},
		{Start: c(1, 1), Goal: c(1, 1)},
		{Start: c(0, 5), Goal: c(5, 0)},
	}

	results, err := gridpath.SearchAll(context.Background(), g, queries, gridpath.WithWorkers(3))
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i, q := range queries {
		want := search(t, g, q.Start, q.Goal)
		got := results[i]
		require.Equal(t, q.Start, got.Start)
		require.Equal(t, q.Goal, got.Goal)
		require.Equal(t, want.Found, got.Found)
		require.Equal(t, want.Path, got.Path)
		require.Equal(t, want.Steps, got.Steps)
	}
	require.Equal(t, 94, results[0].Cost)
}

func TestSearchAllOutOfBounds(t *testing.T) {
	g := gridpath.NewGrid(3, 3)
	_, err := gridpath.SearchAll(context.Background(), g, []gridpath.Query{
		{Start: c(0, 0), Goal: c(2, 2)},
		{Start: c(0, 0), Goal: c(7, 2)},
	}, gridpath.WithWorkers(1))
	require.ErrorIs(t, err, gridpath.ErrOutOfBounds)
}

func TestSearchAllEmpty(t *testing.T) {
	results, err := gridpath.SearchAll(context.Background(), gridpath.NewGrid(2, 2), nil)
	require.NoError(t, err)
	require.Empty(t, results)
}
