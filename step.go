package gridpath

import (
	"fmt"
	"strconv"
	"strings"
)

// StepKind is the type of a step log event.
type StepKind uint8

const (
	ChooseLowest StepKind = iota
	AddToFrontier
	AddToExplored
)

// Text names as they appear in step log files.
var stepKindNames = [...]string{
	ChooseLowest:  "choose_lowest_f_score",
	AddToFrontier: "add_to_open_list",
	AddToExplored: "add_to_closed_list",
}

func (k StepKind) String() string {
	if int(k) < len(stepKindNames) {
		return stepKindNames[k]
	}
	return fmt.Sprintf("step(%d)", uint8(k))
}

// Step is one event of a search run, in emission order.
type Step struct {
	Kind StepKind
	At   Coord
}

// String renders the step as "kind:x,y".
func (s Step) String() string { return s.Kind.String() + ":" + s.At.String() }

func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Step) UnmarshalText(text []byte) error {
	v, err := ParseStep(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStep parses the form produced by Step.String.
func ParseStep(text string) (Step, error) {
	name, at, ok := strings.Cut(text, ":")
	if !ok {
		return Step{}, fmt.Errorf("parse step %q: missing ':'", text)
	}
	kind := -1
	for k, n := range stepKindNames {
		if n == name {
			kind = k
			break
		}
	}
	if kind < 0 {
		return Step{}, fmt.Errorf("parse step %q: unknown kind %q", text, name)
	}
	c, err := ParseCoord(at)
	if err != nil {
		return Step{}, fmt.Errorf("parse step %q: %w", text, err)
	}
	return Step{Kind: StepKind(kind), At: c}, nil
}

// ParseCoord parses "x,y".
func ParseCoord(text string) (Coord, error) {
	xs, ys, ok := strings.Cut(text, ",")
	if !ok {
		return Coord{}, fmt.Errorf("coordinate %q: want x,y", text)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Coord{}, fmt.Errorf("coordinate %q: %w", text, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Coord{}, fmt.Errorf("coordinate %q: %w", text, err)
	}
	return Coord{X: x, Y: y}, nil
}
