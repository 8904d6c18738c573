// Package grid provides the integer cell coordinates, grid shapes, dense
// per-cell storage and circle rasterization the planner is built on.
package grid

import (
	"fmt"
	"math"
)

// Coord identifies a single grid cell by its column (X) and row (Y)
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Distance calculates the Euclidean distance between two cells.
// It is computed in floating point so diagonal offsets are not truncated.
func (c Coord) Distance(other Coord) float64 {
	dx := float64(c.X - other.X)
	dy := float64(c.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// IsAdjacent reports whether other is one of the 8-connected neighbors of c
func (c Coord) IsAdjacent(other Coord) bool {
	if c == other {
		return false
	}
	return abs(c.X-other.X) <= 1 && abs(c.Y-other.Y) <= 1
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
