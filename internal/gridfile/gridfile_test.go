package gridfile_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/gridfile"
)

func TestLoad(t *testing.T) {
	in := "1,2 3\n0,0 0\n\n4,1 3\r\n"
	g, err := gridfile.Load(strings.NewReader(in), 5, 3)
	require.NoError(t, err)
	require.Equal(t, 5, g.Width())
	require.Equal(t, gridpath.Wall, g.Terrain(gridpath.Coord{X: 1, Y: 2}))
	require.Equal(t, gridpath.Wall, g.Terrain(gridpath.Coord{X: 4, Y: 1}))
	require.Equal(t, gridpath.Empty, g.Terrain(gridpath.Coord{X: 0, Y: 0}))
	require.Len(t, g.Walls(), 2)
}

func TestLoadMalformed(t *testing.T) {
	cases := map[string]struct {
		in   string
		line int
	}{
		"no code":        {"1,2 3\n1,2\n", 2},
		"bad x":          {"a,2 3\n", 1},
		"missing y":      {"1 3\n", 1},
		"bad code":       {"1,2 wall\n", 1},
		"unknown code":   {"1,2 9\n", 1},
		"transient kind": {"0,0 3\n1,2 1\n", 2},
		"out of bounds":  {"7,0 3\n", 1},
		"negative":       {"-1,0 3\n", 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			g, err := gridfile.Load(strings.NewReader(tc.in), 5, 3)
			require.Nil(t, g)
			require.ErrorIs(t, err, gridfile.ErrMalformed)
			var me *gridfile.MalformedError
			require.True(t, errors.As(err, &me))
			require.Equal(t, tc.line, me.Line)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	g := gridpath.NewGrid(4, 4)
	for _, w := range []gridpath.Coord{{X: 2, Y: 1}, {X: 0, Y: 3}, {X: 2, Y: 0}} {
		require.NoError(t, g.SetTerrain(w, gridpath.Wall))
	}
	require.NoError(t, g.SetTerrain(gridpath.Coord{X: 1, Y: 1}, gridpath.Start))
	require.NoError(t, g.SetTerrain(gridpath.Coord{X: 3, Y: 3}, gridpath.Goal))
	require.NoError(t, g.SetTerrain(gridpath.Coord{X: 3, Y: 0}, gridpath.PathMarker))

	var buf bytes.Buffer
	require.NoError(t, gridfile.Save(&buf, g))
	require.Equal(t, "0,3 3\n2,0 3\n2,1 3\n", buf.String())

	back, err := gridfile.Load(&buf, 4, 4)
	require.NoError(t, err)
	require.Equal(t, g.Walls(), back.Walls())
	require.Equal(t, gridpath.Empty, back.Terrain(gridpath.Coord{X: 1, Y: 1}))
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.grid")
	g := gridpath.NewGrid(3, 3)
	require.NoError(t, g.SetTerrain(gridpath.Coord{X: 1, Y: 1}, gridpath.Wall))
	require.NoError(t, gridfile.SaveFile(path, g))

	back, err := gridfile.LoadFile(path, 3, 3)
	require.NoError(t, err)
	require.Equal(t, g.Walls(), back.Walls())

	_, err = gridfile.LoadFile(filepath.Join(t.TempDir(), "missing.grid"), 3, 3)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcherReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.grid")
	require.NoError(t, os.WriteFile(path, []byte("1,1 3\n"), 0o644))

	w, err := gridfile.NewWatcher(path, 3, 3, nil)
	require.NoError(t, err)
	require.Len(t, w.Grid().Walls(), 1)

	changed := make(chan *gridpath.Grid, 4)
	w.OnChange(func(g *gridpath.Grid) { changed <- g })
	failed := make(chan error, 4)
	w.OnError(func(err error) { failed <- err })

	require.NoError(t, os.WriteFile(path, []byte("0,0 3\n2,2 3\n"), 0o644))
	g, err := w.Reload()
	require.NoError(t, err)
	require.Len(t, g.Walls(), 2)
	require.Same(t, g, <-changed)
	require.Same(t, g, w.Grid())

	require.NoError(t, os.WriteFile(path, []byte("nonsense\n"), 0o644))
	_, err = w.Reload()
	require.ErrorIs(t, err, gridfile.ErrMalformed)
	require.ErrorIs(t, <-failed, gridfile.ErrMalformed)
	require.Same(t, g, w.Grid())
}

func TestWatcherPicksUpWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.grid")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	w, err := gridfile.NewWatcher(path, 3, 3, nil)
	require.NoError(t, err)
	changed := make(chan *gridpath.Grid, 16)
	w.OnChange(func(g *gridpath.Grid) { changed <- g })

	stop, err := w.Watch()
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("1,1 3\n"), 0o644))
	deadline := time.After(5 * time.Second)
	for {
		select {
		case g := <-changed:
			if len(g.Walls()) == 1 {
				return
			}
		case <-deadline:
			t.Fatal("no reload after write")
		}
	}
}
