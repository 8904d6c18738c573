// Package cspace builds the discretized configuration space: which cells of
// the grid an agent with a given radius may occupy once obstacles and the
// grid boundary are accounted for.
package cspace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"grid-planner/internal/grid"
)

// MaxCells is the largest grid a space can be built for
const MaxCells = 1 << 31

var (
	// ErrInvalidShape is returned for grids with no cells or too many
	ErrInvalidShape = errors.New("cspace: invalid grid shape")
	// ErrRadiusTooLarge is returned when boundary padding leaves no free interior
	ErrRadiusTooLarge = errors.New("cspace: agent radius leaves no free cells")
	// ErrInvalidState is returned when pre-built data holds an unknown state
	ErrInvalidState = errors.New("cspace: invalid cell state")
)

// Space is a grid of cell states for an agent with a fixed radius.
// It is mutated only by AddObstacles and may be shared read-only afterwards.
type Space struct {
	radius int
	states *grid.DataMap[State]
}

// New creates a free space of the given shape and pads its boundary
func New(shape grid.Shape, radius int) (*Space, error) {
	if err := validate(shape, radius); err != nil {
		return nil, err
	}

	s := &Space{
		radius: radius,
		states: grid.NewDataMap(shape, Free),
	}
	s.padBoundary()
	return s, nil
}

// FromStates creates a space from a pre-built state map, e.g. one read back
// from disk. Boundary padding is re-applied so a reload always carries the
// same invariant as a freshly built space. The map is copied.
func FromStates(states *grid.DataMap[State], radius int) (*Space, error) {
	if states == nil {
		return nil, fmt.Errorf("%w: nil state map", ErrInvalidShape)
	}
	if err := validate(states.Shape(), radius); err != nil {
		return nil, err
	}
	for _, st := range states.Values() {
		if !st.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidState, st)
		}
	}

	s := &Space{
		radius: radius,
		states: states.Clone(),
	}
	s.padBoundary()
	return s, nil
}

func validate(shape grid.Shape, radius int) error {
	if shape.Width <= 0 || shape.Height <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidShape, shape)
	}
	if !shape.Fits(MaxCells) {
		return fmt.Errorf("%w: %v grid exceeds %d cells", ErrInvalidShape, shape, MaxCells)
	}
	if radius < 0 {
		return fmt.Errorf("%w: negative agent radius %d", ErrInvalidShape, radius)
	}
	// 2r >= side, written so that a huge radius cannot overflow
	if radius >= (min(shape.Width, shape.Height)+1)/2 {
		return fmt.Errorf("%w: radius %d on %v grid", ErrRadiusTooLarge, radius, shape)
	}
	return nil
}

// padBoundary marks the bands of cells within radius of each grid edge
func (s *Space) padBoundary() {
	shape := s.states.Shape()
	r := s.radius

	for c := range shape.All() {
		if c.X < r || c.Y < r || c.X >= shape.Width-r || c.Y >= shape.Height-r {
			s.mark(c, Padded)
		}
	}
}

// mark raises a cell to st. States only become more restrictive.
func (s *Space) mark(c grid.Coord, st State) {
	if s.states.At(c) == Obstacle {
		return
	}
	s.states.Set(c, st)
}

// AddObstacles rasterizes circular obstacles into the space. Each circle is
// first padded by the agent radius, then its own footprint is marked as an
// obstacle so that it never reads back as merely padded.
func (s *Space) AddObstacles(circles ...grid.Circle) {
	shape := s.states.Shape()
	for _, circle := range circles {
		for c := range circle.Expand(s.radius).Cells(shape) {
			s.mark(c, Padded)
		}
		for c := range circle.Cells(shape) {
			s.mark(c, Obstacle)
		}
	}
}

// IsAccessible reports whether the cell is inside the grid and free
func (s *Space) IsAccessible(c grid.Coord) bool {
	return s.states.Shape().Contains(c) && s.states.At(c) == Free
}

// AccessibleNeighbors returns the free cells of the 3x3 window centered on c,
// clipped at the grid edges, in row-major order (ascending y, then x).
// The center itself is included when it is free.
func (s *Space) AccessibleNeighbors(c grid.Coord) []grid.Coord {
	shape := s.states.Shape()
	minX, maxX := max(c.X-1, 0), min(c.X+1, shape.Width-1)
	minY, maxY := max(c.Y-1, 0), min(c.Y+1, shape.Height-1)

	nbrs := make([]grid.Coord, 0, 9)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			n := grid.Coord{X: x, Y: y}
			if s.states.At(n) == Free {
				nbrs = append(nbrs, n)
			}
		}
	}
	return nbrs
}

// Shape returns the grid shape
func (s *Space) Shape() grid.Shape {
	return s.states.Shape()
}

// Radius returns the agent radius in cells
func (s *Space) Radius() int {
	return s.radius
}

// State returns the state of a cell inside the grid
func (s *Space) State(c grid.Coord) State {
	return s.states.At(c)
}

// States returns a copy of the state map
func (s *Space) States() *grid.DataMap[State] {
	return s.states.Clone()
}

// Count returns how many cells are in the given state
func (s *Space) Count(st State) int {
	n := 0
	for _, v := range s.states.Values() {
		if v == st {
			n++
		}
	}
	return n
}

// String renders the states as rows of integers, lowest row first
func (s *Space) String() string {
	shape := s.states.Shape()
	var b strings.Builder
	for y := 0; y < shape.Height; y++ {
		for x := 0; x < shape.Width; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(int(s.states.At(grid.Coord{X: x, Y: y}))))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
