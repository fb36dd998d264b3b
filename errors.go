package gridpath

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every *OutOfBoundsError.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// OutOfBoundsError reports a coordinate outside a grid's extent.
type OutOfBoundsError struct {
	At            Coord
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("coordinate %s outside %dx%d grid", e.At, e.Width, e.Height)
}

func (e *OutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }
