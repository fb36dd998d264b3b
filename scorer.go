package gridpath

// Movement costs: orthogonal = 10, diagonal = 14 (≈10√2).
const (
	OrthogonalCost = 10
	DiagonalCost   = 14
)

type move struct{ dx, dy int }

func (m move) diagonal() bool { return m.dx != 0 && m.dy != 0 }

func (m move) cost() int {
	if m.diagonal() {
		return DiagonalCost
	}
	return OrthogonalCost
}

// Order: top, bottom, left, right, top-left, top-right, bottom-left, bottom-right.
var moves = [8]move{
	{0, -1}, {0, 1}, {-1, 0}, {1, 0},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// Heuristic estimates the remaining cost from one cell to another.
type Heuristic func(from, to Coord) int

// Manhattan is the default heuristic: Manhattan distance scaled by the
// orthogonal move cost.
func Manhattan(from, to Coord) int {
	return (abs(from.X-to.X) + abs(from.Y-to.Y)) * OrthogonalCost
}

// Octile is the exact cost of an unobstructed 8-directional walk.
func Octile(from, to Coord) int {
	dx, dy := abs(from.X-to.X), abs(from.Y-to.Y)
	if dx < dy {
		dx, dy = dy, dx
	}
	return dy*DiagonalCost + (dx-dy)*OrthogonalCost
}

// StepCost returns the cost of moving between two adjacent cells.
func StepCost(from, to Coord) int {
	if from.X != to.X && from.Y != to.Y {
		return DiagonalCost
	}
	return OrthogonalCost
}

// PathCost sums the move costs along path, which is ordered goal-adjacent
// first and start last as returned by Search, ending the walk at goal.
func PathCost(path []Coord, goal Coord) int {
	total := 0
	prev := goal
	for _, c := range path {
		total += StepCost(prev, c)
		prev = c
	}
	return total
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
