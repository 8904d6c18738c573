package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"grid-planner/internal/grid"
)

// ErrBrokenPath is returned by Validate for paths that cannot be followed
var ErrBrokenPath = errors.New("search: broken path")

// LineString converts a path to an orb line string with one vertex per cell
func LineString(path []grid.Coord) orb.LineString {
	ls := make(orb.LineString, 0, len(path))
	for _, c := range path {
		ls = append(ls, orb.Point{float64(c.X), float64(c.Y)})
	}
	return ls
}

// Waypoints reduces a path to the cells where it turns, using Douglas-Peucker
// with the given tolerance in cells. The first and last cells are always kept.
func Waypoints(path []grid.Coord, epsilon float64) []grid.Coord {
	if len(path) <= 2 {
		out := make([]grid.Coord, len(path))
		copy(out, path)
		return out
	}

	reduced := simplify.DouglasPeucker(epsilon).LineString(LineString(path))

	out := make([]grid.Coord, 0, len(reduced))
	for _, p := range reduced {
		out = append(out, grid.Coord{X: int(math.Round(p.X())), Y: int(math.Round(p.Y()))})
	}
	return out
}

// Validate checks that every cell of path is accessible in space and that
// consecutive cells are 8-connected. An empty path is valid.
func Validate(space Space, path []grid.Coord) error {
	for i, c := range path {
		if !space.IsAccessible(c) {
			return fmt.Errorf("%w: cell %d %v is not accessible", ErrBrokenPath, i, c)
		}
		if i > 0 && !path[i-1].IsAdjacent(c) {
			return fmt.Errorf("%w: %v does not neighbor %v", ErrBrokenPath, c, path[i-1])
		}
	}
	return nil
}
