package gridpath_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridpath"
)

func TestStepperIterations(t *testing.T) {
	g := gridpath.NewGrid(3, 1)
	s, err := gridpath.NewStepper(g, c(0, 0), c(2, 0))
	require.NoError(t, err)
	require.Equal(t, gridpath.Idle, s.State())
	require.Equal(t, []gridpath.Coord{c(0, 0)}, s.Frontier())

	snap := s.Step()
	require.Equal(t, 1, snap.Index)
	require.Equal(t, c(0, 0), snap.Current)
	require.Equal(t, parseSteps(t,
		"choose_lowest_f_score:0,0",
		"add_to_closed_list:0,0",
		"add_to_open_list:1,0",
	), snap.Events)
	require.Equal(t, 1, snap.FrontierLen)
	require.Equal(t, 1, snap.ExploredLen)
	require.Equal(t, gridpath.Running, snap.State)
	require.False(t, snap.Done)

	snap = s.Step()
	require.Equal(t, c(1, 0), snap.Current)
	require.Len(t, snap.Events, 3)

	snap = s.Step()
	require.True(t, snap.Done)
	require.True(t, snap.Found)
	require.Equal(t, gridpath.Succeeded, snap.State)
	require.Equal(t, parseSteps(t, "choose_lowest_f_score:2,0"), snap.Events)
	require.Equal(t, []gridpath.Coord{c(1, 0), c(0, 0)}, snap.Path)

	// Terminal snapshots repeat without new events.
	again := s.Step()
	require.True(t, again.Done)
	require.Empty(t, again.Events)
	require.Equal(t, 3, again.Index)
	require.Len(t, s.Steps(), 7)
}

func TestStepperNodeState(t *testing.T) {
	g := gridpath.NewGrid(3, 3)
	s, err := gridpath.NewStepper(g, c(0, 0), c(2, 2))
	require.NoError(t, err)

	start, err := s.NodeState(c(0, 0))
	require.NoError(t, err)
	require.Equal(t, gridpath.InFrontier, start.Membership)
	require.Equal(t, 0, start.G)
	require.Equal(t, 40, start.H)
	require.False(t, start.HasParent)

	s.Step()

	diag, err := s.NodeState(c(1, 1))
	require.NoError(t, err)
	require.Equal(t, gridpath.NodeState{
		Coord:          c(1, 1),
		Membership:     gridpath.InFrontier,
		Scored:         true,
		G:              14,
		H:              20,
		F:              34,
		Parent:         c(0, 0),
		HasParent:      true,
		ParentMoveCost: 14,
	}, diag)

	start, err = s.NodeState(c(0, 0))
	require.NoError(t, err)
	require.Equal(t, gridpath.Explored, start.Membership)

	far, err := s.NodeState(c(2, 2))
	require.NoError(t, err)
	require.Equal(t, gridpath.Unvisited, far.Membership)
	require.False(t, far.Scored)

	_, err = s.NodeState(c(5, 5))
	require.ErrorIs(t, err, gridpath.ErrOutOfBounds)
}

func TestStepperFrontierExploredDisjoint(t *testing.T) {
	g := gridWithWalls(t, 6, 6, c(0, 4), c(2, 2), c(2, 4), c(4, 0), c(4, 1), c(4, 3))
	for _, sel := range bothSelections {
		t.Run(sel.String(), func(t *testing.T) {
			s, err := gridpath.NewStepper(g, c(0, 0), c(5, 5), gridpath.WithSelection(sel))
			require.NoError(t, err)

			everExplored := map[gridpath.Coord]bool{}
			for !s.Done() {
				snap := s.Step()
				open := map[gridpath.Coord]bool{}
				for _, f := range s.Frontier() {
					require.False(t, open[f], "%s twice in frontier", f)
					open[f] = true
				}
				for _, e := range s.Explored() {
					require.False(t, open[e], "%s in both collections", e)
					everExplored[e] = true
				}
				for _, ev := range snap.Events {
					if ev.Kind == gridpath.AddToFrontier {
						require.False(t, everExplored[ev.At], "%s re-entered the frontier", ev.At)
					}
				}
				require.Equal(t, len(open), snap.FrontierLen)
			}
		})
	}
}

func TestStepperReset(t *testing.T) {
	g := gridWithWalls(t, 6, 6, c(0, 4), c(2, 2), c(2, 4), c(4, 0), c(4, 1), c(4, 3))
	s, err := gridpath.NewStepper(g, c(0, 0), c(5, 5))
	require.NoError(t, err)

	first := s.Run()
	require.True(t, first.Found)

	s.Reset()
	require.Equal(t, gridpath.Idle, s.State())
	require.Empty(t, s.Steps())
	require.Equal(t, []gridpath.Coord{c(0, 0)}, s.Frontier())
	require.Empty(t, s.Explored())

	second := s.Run()
	require.Equal(t, first.Path, second.Path)
	require.Equal(t, first.Steps, second.Steps)
	require.NotEqual(t, first.RunID, second.RunID)
	require.Equal(t, s.ID().String(), second.RunID)
}

func TestStepperFailsWhenFrontierDrains(t *testing.T) {
	g := gridWithWalls(t, 3, 1, c(1, 0))
	s, err := gridpath.NewStepper(g, c(0, 0), c(2, 0))
	require.NoError(t, err)

	snap := s.Step()
	require.True(t, snap.Done)
	require.False(t, snap.Found)
	require.Equal(t, gridpath.Failed, snap.State)
	require.Equal(t, parseSteps(t,
		"choose_lowest_f_score:0,0",
		"add_to_closed_list:0,0",
	), snap.Events)

	res := s.Result()
	require.False(t, res.Found)
	require.Nil(t, res.Path)
}

func TestNewStepperOutOfBounds(t *testing.T) {
	_, err := gridpath.NewStepper(gridpath.NewGrid(2, 2), c(0, 0), c(2, 0))
	require.ErrorIs(t, err, gridpath.ErrOutOfBounds)
}
