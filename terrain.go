package gridpath

import "fmt"

// Terrain tags a grid cell. The numeric values are the codes used by the
// persisted grid format.
type Terrain uint8

const (
	Empty Terrain = iota
	Start
	Goal
	Wall
	PathMarker
	LowestScoreMarker
	ExploredMarker
	FrontierMarker
)

var terrainNames = [...]string{
	Empty:             "empty",
	Start:             "start",
	Goal:              "goal",
	Wall:              "wall",
	PathMarker:        "path",
	LowestScoreMarker: "lowest_score",
	ExploredMarker:    "explored",
	FrontierMarker:    "frontier",
}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return fmt.Sprintf("terrain(%d)", uint8(t))
}

// Valid reports whether t is a known terrain kind.
func (t Terrain) Valid() bool { return t <= FrontierMarker }

// Persistable reports whether t survives a save/load round trip.
// Start, goal and every replay marker are transient.
func (t Terrain) Persistable() bool { return t == Empty || t == Wall }
