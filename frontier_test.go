package gridpath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// score sets g so that f equals v, as an accepted neighbour would.
func score(s *searchState, i, v int) {
	r := s.at(i)
	r.g, r.h, r.scored = v, 0, true
}

func TestFirstFrontierMoveToFront(t *testing.T) {
	state := newSearchState(8)
	f := newFrontier(SelectFirst, state)

	for i, v := range []int{50, 40, 60, 30} {
		f.insert(i)
		score(state, i, v)
		f.promoteIfLower(i)
	}
	require.Equal(t, InFrontier, state.at(2).membership)
	require.Equal(t, []int{3, 1, 0, 2}, f.nodes())
	require.Equal(t, 3, f.peekMin())

	// Equal scores do not promote.
	score(state, 2, 30)
	f.promoteIfLower(2)
	require.Equal(t, 3, f.peekMin())

	// After the minimum leaves, the front is whatever comes next in list
	// order, even though 2 now scores lower than 1.
	f.remove(3)
	require.Equal(t, 1, f.peekMin())
	require.Equal(t, []int{1, 0, 2}, f.nodes())

	score(state, 0, 10)
	f.promoteIfLower(0)
	require.Equal(t, []int{0, 1, 2}, f.nodes())
	require.Equal(t, 3, f.len())

	f.remove(1)
	require.Equal(t, []int{0, 2}, f.nodes())
}

func TestLowestFrontierTrueMinimum(t *testing.T) {
	state := newSearchState(8)
	f := newFrontier(SelectLowest, state)

	for i, v := range []int{50, 40, 60, 30} {
		f.insert(i)
		score(state, i, v)
		f.promoteIfLower(i)
	}
	require.Equal(t, 3, f.peekMin())

	score(state, 2, 35)
	f.promoteIfLower(2)
	f.remove(3)
	require.Equal(t, 2, f.peekMin())

	f.remove(2)
	require.Equal(t, 1, f.peekMin())

	// Ties go to the earlier insertion.
	score(state, 0, 40)
	f.promoteIfLower(0)
	require.Equal(t, 0, f.peekMin())

	f.remove(0)
	require.Equal(t, 1, f.peekMin())
	require.Equal(t, 1, f.len())
	require.Equal(t, []int{1}, f.nodes())
	require.Equal(t, -1, state.at(0).heapIndex)
}

func TestSearchStateReset(t *testing.T) {
	state := newSearchState(4)
	r := state.at(2)
	r.g, r.h, r.parent, r.membership, r.scored = 10, 20, 1, Explored, true

	state.reset()
	require.Equal(t, record{parent: noParent, heapIndex: -1}, *state.at(2))
	_, ok := state.parentOf(2)
	require.False(t, ok)
}

func TestParseSelection(t *testing.T) {
	for _, sel := range []Selection{SelectFirst, SelectLowest} {
		got, err := ParseSelection(sel.String())
		require.NoError(t, err)
		require.Equal(t, sel, got)
	}
	got, err := ParseSelection("")
	require.NoError(t, err)
	require.Equal(t, SelectFirst, got)

	_, err = ParseSelection("best")
	require.Error(t, err)
}
