// Package gridfile reads and writes the plain-text grid format: one
// "x,y code" line per persisted cell, where code is the numeric terrain.
package gridfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pdrpinto/gridpath"
)

// ErrMalformed is matched by every *MalformedError.
var ErrMalformed = errors.New("malformed grid file")

// MalformedError reports the first line that could not be loaded.
type MalformedError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("grid line %d %q: %s", e.Line, e.Text, e.Reason)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// Load builds a width×height grid from r. Any bad line fails the whole load.
// Blank lines are skipped.
func Load(r io.Reader, width, height int) (*gridpath.Grid, error) {
	g := gridpath.NewGrid(width, height)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		at, terrain, reason := parseLine(text)
		if reason != "" {
			return nil, &MalformedError{Line: line, Text: text, Reason: reason}
		}
		if err := g.SetTerrain(at, terrain); err != nil {
			return nil, &MalformedError{Line: line, Text: text, Reason: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	return g, nil
}

func parseLine(text string) (gridpath.Coord, gridpath.Terrain, string) {
	coord, code, ok := strings.Cut(text, " ")
	if !ok {
		return gridpath.Coord{}, 0, `want "x,y code"`
	}
	at, err := gridpath.ParseCoord(coord)
	if err != nil {
		return gridpath.Coord{}, 0, err.Error()
	}
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return gridpath.Coord{}, 0, fmt.Sprintf("terrain code %q is not an integer", code)
	}
	if n < 0 || n > 255 || !gridpath.Terrain(n).Valid() {
		return gridpath.Coord{}, 0, fmt.Sprintf("unknown terrain code %d", n)
	}
	terrain := gridpath.Terrain(n)
	if !terrain.Persistable() {
		return gridpath.Coord{}, 0, fmt.Sprintf("terrain %s is not persisted", terrain)
	}
	return at, terrain, ""
}

// Save writes every persisted non-empty cell of g, column by column.
func Save(w io.Writer, g *gridpath.Grid) error {
	bw := bufio.NewWriter(w)
	var err error
	g.Each(func(n gridpath.Node) {
		if err != nil || n.Terrain == gridpath.Empty || !n.Terrain.Persistable() {
			return
		}
		_, err = fmt.Fprintf(bw, "%d,%d %d\n", n.Coord.X, n.Coord.Y, uint8(n.Terrain))
	})
	if err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	return nil
}

// LoadFile is Load on the file at path.
func LoadFile(path string, width, height int) (*gridpath.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grid %s: %w", path, err)
	}
	defer f.Close()
	g, err := Load(f, width, height)
	if err != nil {
		return nil, fmt.Errorf("load grid %s: %w", path, err)
	}
	return g, nil
}

// SaveFile writes g to path, replacing any existing file.
func SaveFile(path string, g *gridpath.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create grid %s: %w", path, err)
	}
	if err := Save(f, g); err != nil {
		f.Close()
		return fmt.Errorf("save grid %s: %w", path, err)
	}
	return f.Close()
}
