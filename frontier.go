package gridpath

import (
	"fmt"
	"slices"
)

// Selection picks how the frontier yields the next node to expand.
type Selection uint8

const (
	// SelectFirst keeps the frontier as a list and moves a node to the front
	// only when its f score drops below the current front's. Once the front
	// is removed the next element by list order is chosen, which is not
	// necessarily the lowest.
	SelectFirst Selection = iota
	// SelectLowest keeps the frontier as a binary heap and always expands
	// the lowest f score, ties broken by insertion order.
	SelectLowest
)

func (s Selection) String() string {
	switch s {
	case SelectFirst:
		return "first"
	case SelectLowest:
		return "lowest"
	}
	return fmt.Sprintf("selection(%d)", uint8(s))
}

// ParseSelection parses the names produced by String.
func ParseSelection(name string) (Selection, error) {
	switch name {
	case "first", "":
		return SelectFirst, nil
	case "lowest":
		return SelectLowest, nil
	}
	return 0, fmt.Errorf("unknown selection %q (want first or lowest)", name)
}

func (s Selection) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Selection) UnmarshalText(text []byte) error {
	v, err := ParseSelection(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// frontier is the open set. Nodes are arena indices.
type frontier interface {
	insert(i int)
	remove(i int)
	promoteIfLower(i int)
	peekMin() int
	len() int
	nodes() []int
}

func newFrontier(sel Selection, state *searchState) frontier {
	if sel == SelectLowest {
		return &lowestFrontier{state: state, queue: priorityQueue{state: state}}
	}
	return &firstFrontier{state: state}
}

// firstFrontier is the move-to-front list.
type firstFrontier struct {
	state *searchState
	list  []int
}

func (f *firstFrontier) insert(i int) {
	f.state.at(i).membership = InFrontier
	f.list = append(f.list, i)
}

func (f *firstFrontier) remove(i int) {
	if pos := slices.Index(f.list, i); pos >= 0 {
		f.list = slices.Delete(f.list, pos, pos+1)
	}
}

func (f *firstFrontier) promoteIfLower(i int) {
	if len(f.list) == 0 || f.list[0] == i {
		return
	}
	if f.state.at(i).f() >= f.state.at(f.list[0]).f() {
		return
	}
	f.remove(i)
	f.list = slices.Insert(f.list, 0, i)
}

func (f *firstFrontier) peekMin() int { return f.list[0] }

func (f *firstFrontier) len() int { return len(f.list) }

func (f *firstFrontier) nodes() []int { return slices.Clone(f.list) }
