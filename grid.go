package gridpath

import (
	"encoding/json"
	"fmt"
)

// Coord is a cell position. X grows to the right, Y grows downwards.
type Coord struct {
	X, Y int
}

func (c Coord) String() string { return fmt.Sprintf("%d,%d", c.X, c.Y) }

// MarshalJSON encodes c as a two element array.
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

// UnmarshalJSON decodes a two element array.
func (c *Coord) UnmarshalJSON(data []byte) error {
	var xy [2]int
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("coord: %w", err)
	}
	c.X, c.Y = xy[0], xy[1]
	return nil
}

// Node is a single cell of a Grid. Search state lives in the run that
// explores the grid, not here.
type Node struct {
	Coord   Coord
	Terrain Terrain
}

// Neighbor is a cell reachable in one move, with the cost of that move.
type Neighbor struct {
	At   Coord
	Cost int
}

// Grid is a fixed-size W×H lattice of terrain cells.
//
// A Grid is safe for concurrent reads. Terrain writes must not overlap with
// reads, including running searches.
type Grid struct {
	width, height int
	cells         []Terrain // row-major, y*width + x
}

// NewGrid returns an empty grid. It panics if either dimension is not positive.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("gridpath: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Terrain, width*height),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

func (g *Grid) check(c Coord) error {
	if !g.InBounds(c) {
		return &OutOfBoundsError{At: c, Width: g.width, Height: g.height}
	}
	return nil
}

func (g *Grid) index(c Coord) int { return c.Y*g.width + c.X }

func (g *Grid) coord(i int) Coord { return Coord{X: i % g.width, Y: i / g.width} }

// Get returns the node at c.
func (g *Grid) Get(c Coord) (Node, error) {
	if err := g.check(c); err != nil {
		return Node{}, err
	}
	return Node{Coord: c, Terrain: g.cells[g.index(c)]}, nil
}

// Terrain returns the terrain at c, or Wall when c is outside the grid.
func (g *Grid) Terrain(c Coord) Terrain {
	if !g.InBounds(c) {
		return Wall
	}
	return g.cells[g.index(c)]
}

// SetTerrain replaces the terrain at c.
func (g *Grid) SetTerrain(c Coord, t Terrain) error {
	if err := g.check(c); err != nil {
		return err
	}
	if !t.Valid() {
		return fmt.Errorf("set terrain at %s: unknown terrain %d", c, uint8(t))
	}
	g.cells[g.index(c)] = t
	return nil
}

// Blocked reports whether c is a wall or lies outside the grid.
func (g *Grid) Blocked(c Coord) bool { return g.Terrain(c) == Wall }

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Terrain, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Each calls fn for every cell, column by column.
func (g *Grid) Each(fn func(Node)) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			c := Coord{X: x, Y: y}
			fn(Node{Coord: c, Terrain: g.cells[g.index(c)]})
		}
	}
}

// Walls returns every wall cell in column order.
func (g *Grid) Walls() []Coord {
	var walls []Coord
	g.Each(func(n Node) {
		if n.Terrain == Wall {
			walls = append(walls, n.Coord)
		}
	})
	return walls
}

// Neighbors returns the cells reachable from c in one move. Walls, cells
// outside the grid and diagonals that would cut past a wall corner are
// excluded.
func (g *Grid) Neighbors(c Coord) ([]Neighbor, error) {
	if err := g.check(c); err != nil {
		return nil, err
	}
	return g.appendNeighbors(make([]Neighbor, 0, len(moves)), c), nil
}

func (g *Grid) appendNeighbors(dst []Neighbor, c Coord) []Neighbor {
	for _, m := range moves {
		next := Coord{X: c.X + m.dx, Y: c.Y + m.dy}
		if g.Blocked(next) {
			continue
		}
		// Diagonal corner cutting prevention
		if m.diagonal() && (g.Blocked(Coord{X: c.X + m.dx, Y: c.Y}) || g.Blocked(Coord{X: c.X, Y: c.Y + m.dy})) {
			continue
		}
		dst = append(dst, Neighbor{At: next, Cost: m.cost()})
	}
	return dst
}
