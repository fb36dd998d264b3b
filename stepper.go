package gridpath

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pdrpinto/gridpath/internal/pathutil"
)

// RunState is the lifecycle of a search run.
type RunState uint8

const (
	Idle RunState = iota
	Running
	Succeeded
	Failed
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// StepSnapshot exposes the state of a run after one iteration.
type StepSnapshot struct {
	Index       int
	Current     Coord
	Events      []Step // emitted during this iteration only
	FrontierLen int
	ExploredLen int
	State       RunState
	Done        bool
	Found       bool
	Path        []Coord // set once Found
}

// Stepper runs a search one frontier expansion at a time so callers can
// drive it from a UI loop or a time budget. It holds all per-run state;
// the grid is only read.
type Stepper struct {
	id        uuid.UUID
	grid      *Grid
	start     Coord
	goal      Coord
	startIdx  int
	goalIdx   int
	heuristic Heuristic
	selection Selection
	logger    *slog.Logger

	state    *searchState
	open     frontier
	closed   explored
	steps    []Step
	scratch  []Neighbor
	runState RunState
	index    int
	current  Coord
	path     []Coord

	startedAt time.Time
	elapsed   time.Duration
}

// NewStepper prepares a run from start to goal. Both coordinates must lie
// inside the grid.
func NewStepper(grid *Grid, start, goal Coord, options ...Option) (*Stepper, error) {
	opts := newOptions(options)
	if err := grid.check(start); err != nil {
		return nil, err
	}
	if err := grid.check(goal); err != nil {
		return nil, err
	}

	s := &Stepper{
		grid:      grid,
		start:     start,
		goal:      goal,
		startIdx:  grid.index(start),
		goalIdx:   grid.index(goal),
		heuristic: opts.Heuristic,
		selection: opts.Selection,
		logger:    opts.Logger,
		state:     newSearchState(grid.Len()),
		scratch:   make([]Neighbor, 0, len(moves)),
	}
	s.Reset()
	return s, nil
}

// Reset clears all search state and starts a new run with a fresh ID.
func (s *Stepper) Reset() {
	s.id = uuid.New()
	s.state.reset()
	s.open = newFrontier(s.selection, s.state)
	s.closed = explored{state: s.state}
	s.steps = nil
	s.path = nil
	s.index = 0
	s.current = s.start
	s.elapsed = 0
	s.runState = Idle

	s.open.insert(s.startIdx)
	r := s.state.at(s.startIdx)
	r.g = 0
	r.h = s.heuristic(s.start, s.goal)
	r.scored = true
	s.open.promoteIfLower(s.startIdx)
}

// ID identifies the run in logs and results.
func (s *Stepper) ID() uuid.UUID { return s.id }

// State returns the lifecycle state of the run.
func (s *Stepper) State() RunState { return s.runState }

// Done reports whether the run reached a terminal state.
func (s *Stepper) Done() bool { return s.runState == Succeeded || s.runState == Failed }

// Step performs one iteration of the search loop. Once the run is done it
// keeps returning the terminal snapshot without emitting events.
func (s *Stepper) Step() StepSnapshot {
	if s.Done() {
		return s.snapshot(len(s.steps))
	}
	if s.runState == Idle {
		s.runState = Running
		s.startedAt = time.Now()
		s.logger.Debug("search started", "run_id", s.id, "start", s.start, "goal", s.goal, "selection", s.selection)
	}
	if s.open.len() == 0 {
		s.finish(Failed)
		return s.snapshot(len(s.steps))
	}

	mark := len(s.steps)
	s.index++
	cur := s.open.peekMin()
	s.current = s.grid.coord(cur)
	s.emit(ChooseLowest, cur)

	if cur == s.goalIdx {
		s.path = s.reconstruct()
		s.finish(Succeeded)
		return s.snapshot(mark)
	}

	s.open.remove(cur)
	s.closed.add(cur)
	s.emit(AddToExplored, cur)

	g := s.state.at(cur).g
	s.scratch = s.grid.appendNeighbors(s.scratch[:0], s.current)
	for _, nb := range s.scratch {
		ni := s.grid.index(nb.At)
		if s.closed.contains(ni) {
			continue
		}
		r := s.state.at(ni)
		r.parentMoveCost = nb.Cost
		tentative := g + nb.Cost

		switch {
		case r.membership != InFrontier:
			s.open.insert(ni)
			s.emit(AddToFrontier, ni)
		case tentative < r.g:
			// cheaper route to a frontier node
		default:
			continue
		}

		r.parent = cur
		r.g = tentative
		r.h = s.heuristic(nb.At, s.goal)
		r.scored = true
		s.open.promoteIfLower(ni)
	}

	if s.open.len() == 0 {
		s.finish(Failed)
	}
	return s.snapshot(mark)
}

// Run steps until the run is done.
func (s *Stepper) Run() Result {
	for !s.Done() {
		s.Step()
	}
	return s.Result()
}

// Result returns the outcome so far. Found is false until the run succeeds.
func (s *Stepper) Result() Result {
	res := Result{
		RunID:     s.id.String(),
		Start:     s.start,
		Goal:      s.goal,
		Selection: s.selection,
		State:     s.runState,
		Found:     s.runState == Succeeded,
		Steps:     s.steps[:len(s.steps):len(s.steps)],
		Expanded:  s.closed.len(),
		Duration:  s.elapsed,
	}
	if res.Found {
		res.Path = s.path[:len(s.path):len(s.path)]
		res.Cost = s.state.at(s.goalIdx).g
	}
	return res
}

// Steps returns the step log emitted so far.
func (s *Stepper) Steps() []Step { return s.steps[:len(s.steps):len(s.steps)] }

// Frontier returns the cells currently in the open set, in frontier order.
func (s *Stepper) Frontier() []Coord { return s.coords(s.open.nodes()) }

// Explored returns the cells in the closed set, in the order they were closed.
func (s *Stepper) Explored() []Coord { return s.coords(s.closed.nodes) }

// NodeState returns the search state of the cell at c.
func (s *Stepper) NodeState(c Coord) (NodeState, error) {
	if err := s.grid.check(c); err != nil {
		return NodeState{}, err
	}
	r := s.state.at(s.grid.index(c))
	ns := NodeState{
		Coord:          c,
		Membership:     r.membership,
		Scored:         r.scored,
		G:              r.g,
		H:              r.h,
		F:              r.f(),
		ParentMoveCost: r.parentMoveCost,
	}
	if r.parent != noParent {
		ns.Parent = s.grid.coord(r.parent)
		ns.HasParent = true
	}
	return ns, nil
}

func (s *Stepper) emit(kind StepKind, i int) {
	s.steps = append(s.steps, Step{Kind: kind, At: s.grid.coord(i)})
}

func (s *Stepper) finish(state RunState) {
	s.runState = state
	s.elapsed = time.Since(s.startedAt)
	s.logger.Debug("search finished",
		"run_id", s.id,
		"state", state,
		"iterations", s.index,
		"expanded", s.closed.len(),
		"path_len", len(s.path),
		"duration", s.elapsed,
	)
}

// reconstruct walks parents from the goal. The goal is excluded and the
// start is the last element.
func (s *Stepper) reconstruct() []Coord {
	return s.coords(pathutil.Ancestors(s.goalIdx, s.state.parentOf))
}

func (s *Stepper) coords(idx []int) []Coord {
	out := make([]Coord, len(idx))
	for k, i := range idx {
		out[k] = s.grid.coord(i)
	}
	return out
}

func (s *Stepper) snapshot(mark int) StepSnapshot {
	return StepSnapshot{
		Index:       s.index,
		Current:     s.current,
		Events:      s.steps[mark:len(s.steps):len(s.steps)],
		FrontierLen: s.open.len(),
		ExploredLen: s.closed.len(),
		State:       s.runState,
		Done:        s.Done(),
		Found:       s.runState == Succeeded,
		Path:        s.path,
	}
}
