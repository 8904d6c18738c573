package grid

import (
	"errors"
	"fmt"
	"iter"
)

// ErrShapeMismatch is returned when data does not fit the requested shape
var ErrShapeMismatch = errors.New("grid: data does not match shape")

// Shape is the fixed width and height of a grid. It maps 2D cells onto a
// linear, row-major offset.
type Shape struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Size returns the number of cells in the grid
func (s Shape) Size() int {
	return s.Width * s.Height
}

// Fits reports whether both sides are positive and the grid has at most
// limit cells. The product is never formed, so huge sides cannot overflow.
func (s Shape) Fits(limit int) bool {
	return s.Width > 0 && s.Height > 0 && s.Width <= limit/s.Height
}

// Contains checks if a cell lies within the grid
func (s Shape) Contains(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.Width && c.Y < s.Height
}

// Index returns the linear offset of a cell.
// It panics if the cell is outside the grid; callers check Contains first.
func (s Shape) Index(c Coord) int {
	if !s.Contains(c) {
		panic(fmt.Sprintf("grid: cell %v outside %dx%d grid", c, s.Width, s.Height))
	}
	return c.X + c.Y*s.Width
}

// Coord is the inverse of Index
func (s Shape) Coord(idx int) Coord {
	return Coord{X: idx % s.Width, Y: idx / s.Width}
}

// All iterates every cell in row-major order (ascending y, then ascending x)
func (s Shape) All() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for y := 0; y < s.Height; y++ {
			for x := 0; x < s.Width; x++ {
				if !yield(Coord{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
