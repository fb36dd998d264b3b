package gridpath

// Membership tells which collection of a run currently holds a node.
type Membership uint8

const (
	Unvisited Membership = iota
	InFrontier
	Explored
)

func (m Membership) String() string {
	switch m {
	case InFrontier:
		return "frontier"
	case Explored:
		return "explored"
	default:
		return "unvisited"
	}
}

const noParent = -1

// record is the per-run search state of one cell.
type record struct {
	g, h           int
	scored         bool
	parent         int
	parentMoveCost int
	membership     Membership

	seq       int // frontier insertion order
	heapIndex int
}

func (r *record) f() int { return r.g + r.h }

// searchState is the arena of records for a single run, indexed like the
// grid cells. Parents are arena indices, so the search tree holds no
// pointers.
type searchState struct {
	records []record
	nextSeq int
}

func newSearchState(size int) *searchState {
	s := &searchState{records: make([]record, size)}
	s.reset()
	return s
}

// reset clears scores, parents and membership of every record.
func (s *searchState) reset() {
	for i := range s.records {
		s.records[i] = record{parent: noParent, heapIndex: -1}
	}
	s.nextSeq = 0
}

func (s *searchState) at(i int) *record { return &s.records[i] }

func (s *searchState) parentOf(i int) (int, bool) {
	p := s.records[i].parent
	return p, p != noParent
}

// explored is the closed set. Membership transitions into it are one-way.
type explored struct {
	state *searchState
	nodes []int
}

func (e *explored) add(i int) {
	e.state.at(i).membership = Explored
	e.nodes = append(e.nodes, i)
}

func (e *explored) contains(i int) bool { return e.state.at(i).membership == Explored }

func (e *explored) len() int { return len(e.nodes) }

// NodeState is a read-only view of a cell's search state within a run.
type NodeState struct {
	Coord          Coord
	Membership     Membership
	Scored         bool
	G, H, F        int
	Parent         Coord
	HasParent      bool
	ParentMoveCost int
}
