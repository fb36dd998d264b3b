package gridpath

// Overlay returns a copy of grid with the step log and path painted as
// marker terrain, the way a replay ends up after the last frame. Start and
// goal cells keep their terrain. Steps and path cells outside the grid are
// ignored.
func Overlay(grid *Grid, steps []Step, path []Coord) *Grid {
	out := grid.Clone()
	for _, step := range steps {
		paint(out, step.At, stepMarker(step.Kind))
	}
	for _, c := range path {
		paint(out, c, PathMarker)
	}
	return out
}

func stepMarker(kind StepKind) Terrain {
	switch kind {
	case ChooseLowest:
		return LowestScoreMarker
	case AddToFrontier:
		return FrontierMarker
	default:
		return ExploredMarker
	}
}

func paint(g *Grid, c Coord, t Terrain) {
	if !g.InBounds(c) {
		return
	}
	i := g.index(c)
	if g.cells[i] == Start || g.cells[i] == Goal {
		return
	}
	g.cells[i] = t
}
