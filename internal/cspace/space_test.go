package cspace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/internal/grid"
)

func nearEdge(shape grid.Shape, c grid.Coord, r int) bool {
	return c.X < r || c.Y < r || c.X >= shape.Width-r || c.Y >= shape.Height-r
}

func TestNewPadsBoundary(t *testing.T) {
	shape := grid.Shape{Width: 12, Height: 9}
	s, err := New(shape, 2)
	require.NoError(t, err)

	for c := range shape.All() {
		if nearEdge(shape, c, 2) {
			assert.Equal(t, Padded, s.State(c), "%v should be padded", c)
		} else {
			assert.Equal(t, Free, s.State(c), "%v should be free", c)
		}
	}
	assert.Equal(t, 8*5, s.Count(Free))
	assert.Zero(t, s.Count(Obstacle))
}

func TestNewRadiusZeroHasNoPadding(t *testing.T) {
	s, err := New(grid.Shape{Width: 4, Height: 4}, 0)
	require.NoError(t, err)
	assert.Equal(t, 16, s.Count(Free))
}

func TestNewRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name   string
		shape  grid.Shape
		radius int
		want   error
	}{
		{"zero width", grid.Shape{Width: 0, Height: 5}, 0, ErrInvalidShape},
		{"zero height", grid.Shape{Width: 5, Height: 0}, 0, ErrInvalidShape},
		{"negative radius", grid.Shape{Width: 5, Height: 5}, -1, ErrInvalidShape},
		{"radius half of even side", grid.Shape{Width: 10, Height: 20}, 5, ErrRadiusTooLarge},
		{"radius beyond odd side", grid.Shape{Width: 20, Height: 9}, 5, ErrRadiusTooLarge},
		{"cell count wraps to zero", grid.Shape{Width: 1 << 32, Height: 1 << 32}, 1, ErrInvalidShape},
		{"cell count wraps, no radius", grid.Shape{Width: 1 << 32, Height: 1 << 32}, 0, ErrInvalidShape},
		{"too many cells", grid.Shape{Width: MaxCells, Height: 2}, 0, ErrInvalidShape},
		{"huge radius", grid.Shape{Width: 10, Height: 10}, math.MaxInt, ErrRadiusTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.shape, tt.radius)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// Largest radius still leaving a free interior
	s, err := New(grid.Shape{Width: 9, Height: 9}, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count(Free))
	assert.True(t, s.IsAccessible(grid.Coord{X: 4, Y: 4}))
}

func TestFromStatesReappliesPadding(t *testing.T) {
	shape := grid.Shape{Width: 6, Height: 6}
	states := grid.NewDataMap(shape, Free)
	states.Set(grid.Coord{X: 3, Y: 3}, Obstacle)

	s, err := FromStates(states, 1)
	require.NoError(t, err)

	for c := range shape.All() {
		switch {
		case c == grid.Coord{X: 3, Y: 3}:
			assert.Equal(t, Obstacle, s.State(c))
		case nearEdge(shape, c, 1):
			assert.Equal(t, Padded, s.State(c), "%v should be padded after reload", c)
		default:
			assert.Equal(t, Free, s.State(c))
		}
	}

	// Source map is not aliased
	assert.Equal(t, Free, states.At(grid.Coord{}))
}

func TestFromStatesKeepsObstaclesOnBoundary(t *testing.T) {
	shape := grid.Shape{Width: 6, Height: 6}
	states := grid.NewDataMap(shape, Free)
	states.Set(grid.Coord{X: 0, Y: 0}, Obstacle)

	s, err := FromStates(states, 1)
	require.NoError(t, err)
	assert.Equal(t, Obstacle, s.State(grid.Coord{X: 0, Y: 0}))
}

func TestFromStatesRejectsUnknownState(t *testing.T) {
	states := grid.NewDataMap(grid.Shape{Width: 4, Height: 4}, Free)
	states.Set(grid.Coord{X: 1, Y: 1}, State(7))

	_, err := FromStates(states, 0)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = FromStates(nil, 0)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestAddObstaclesFootprintAndPadding(t *testing.T) {
	shape := grid.Shape{Width: 15, Height: 15}
	s, err := New(shape, 1)
	require.NoError(t, err)

	circle := grid.Circle{Center: grid.Coord{X: 7, Y: 7}, Radius: 2}
	s.AddObstacles(circle)

	for c := range shape.All() {
		d2 := (c.X-7)*(c.X-7) + (c.Y-7)*(c.Y-7)
		switch {
		case d2 <= 4:
			assert.Equal(t, Obstacle, s.State(c), "%v in footprint", c)
		case d2 <= 9:
			assert.Equal(t, Padded, s.State(c), "%v in padding ring", c)
		case nearEdge(shape, c, 1):
			assert.Equal(t, Padded, s.State(c))
		default:
			assert.Equal(t, Free, s.State(c), "%v outside", c)
		}
	}
}

func TestAddObstaclesIsMonotonic(t *testing.T) {
	shape := grid.Shape{Width: 20, Height: 20}
	s, err := New(shape, 2)
	require.NoError(t, err)

	s.AddObstacles(grid.Circle{Center: grid.Coord{X: 8, Y: 8}, Radius: 3})
	before := s.States()

	// The second circle's padding ring overlaps the first footprint
	s.AddObstacles(grid.Circle{Center: grid.Coord{X: 12, Y: 8}, Radius: 1})

	for c := range shape.All() {
		prev, now := before.At(c), s.State(c)
		assert.GreaterOrEqual(t, restriction(now), restriction(prev), "%v went from %v to %v", c, prev, now)
	}
	assert.Equal(t, Obstacle, s.State(grid.Coord{X: 11, Y: 8}), "footprint stays obstacle under later padding")
}

func restriction(st State) int {
	switch st {
	case Free:
		return 0
	case Padded:
		return 1
	default:
		return 2
	}
}

func TestAddObstaclesOrderIndependent(t *testing.T) {
	shape := grid.Shape{Width: 16, Height: 16}
	a := grid.Circle{Center: grid.Coord{X: 5, Y: 5}, Radius: 3}
	b := grid.Circle{Center: grid.Coord{X: 9, Y: 7}, Radius: 2}

	s1, err := New(shape, 1)
	require.NoError(t, err)
	s1.AddObstacles(a, b)

	s2, err := New(shape, 1)
	require.NoError(t, err)
	s2.AddObstacles(b, a)

	assert.Equal(t, s1.States().Values(), s2.States().Values())
}

func TestIsAccessible(t *testing.T) {
	s, err := New(grid.Shape{Width: 5, Height: 5}, 1)
	require.NoError(t, err)
	s.AddObstacles(grid.Circle{Center: grid.Coord{X: 3, Y: 3}, Radius: 0})

	assert.True(t, s.IsAccessible(grid.Coord{X: 1, Y: 1}))
	assert.False(t, s.IsAccessible(grid.Coord{X: 0, Y: 1}), "padded")
	assert.False(t, s.IsAccessible(grid.Coord{X: 3, Y: 3}), "obstacle")
	assert.False(t, s.IsAccessible(grid.Coord{X: 5, Y: 1}), "outside")
	assert.False(t, s.IsAccessible(grid.Coord{X: -1, Y: 1}), "outside")
}

func TestAccessibleNeighborsCounts(t *testing.T) {
	s, err := New(grid.Shape{Width: 5, Height: 5}, 0)
	require.NoError(t, err)

	tests := []struct {
		name string
		c    grid.Coord
		want int
	}{
		{"interior", grid.Coord{X: 2, Y: 2}, 9},
		{"edge", grid.Coord{X: 0, Y: 2}, 6},
		{"corner", grid.Coord{X: 4, Y: 4}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nbrs := s.AccessibleNeighbors(tt.c)
			assert.Len(t, nbrs, tt.want)
			assert.Contains(t, nbrs, tt.c, "free center is included")
		})
	}
}

func TestAccessibleNeighborsOrderAndFiltering(t *testing.T) {
	s, err := New(grid.Shape{Width: 5, Height: 5}, 0)
	require.NoError(t, err)
	s.AddObstacles(grid.Circle{Center: grid.Coord{X: 3, Y: 1}, Radius: 0})

	got := s.AccessibleNeighbors(grid.Coord{X: 2, Y: 1})
	want := []grid.Coord{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		{X: 1, Y: 1}, {X: 2, Y: 1},
		{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2},
	}
	assert.Equal(t, want, got)
}

func TestAccessibleNeighborsStayInBounds(t *testing.T) {
	shape := grid.Shape{Width: 7, Height: 4}
	s, err := New(shape, 0)
	require.NoError(t, err)

	for c := range shape.All() {
		surrounding := 0
		for _, n := range s.AccessibleNeighbors(c) {
			assert.True(t, shape.Contains(n))
			assert.True(t, n == c || n.IsAdjacent(c))
			if n != c {
				surrounding++
			}
		}
		assert.LessOrEqual(t, surrounding, 8)
	}
}

func TestString(t *testing.T) {
	s, err := New(grid.Shape{Width: 3, Height: 3}, 0)
	require.NoError(t, err)
	s.AddObstacles(grid.Circle{Center: grid.Coord{X: 2, Y: 0}, Radius: 0})

	assert.Equal(t, "0 0 1\n0 0 0\n0 0 0\n", s.String())
}
