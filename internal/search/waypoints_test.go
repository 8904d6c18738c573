package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/internal/grid"
)

func TestWaypointsStraightLine(t *testing.T) {
	path := []grid.Coord{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}}
	assert.Equal(t, []grid.Coord{{X: 1, Y: 1}, {X: 4, Y: 4}}, Waypoints(path, 0.5))
}

func TestWaypointsKeepsCorner(t *testing.T) {
	path := []grid.Coord{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		{X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3},
	}
	assert.Equal(t, []grid.Coord{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}}, Waypoints(path, 0.5))
}

func TestWaypointsShortPaths(t *testing.T) {
	assert.Empty(t, Waypoints(nil, 0.5))
	two := []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}}
	assert.Equal(t, two, Waypoints(two, 0.5))
}

func TestLineString(t *testing.T) {
	ls := LineString([]grid.Coord{{X: 1, Y: 2}, {X: 2, Y: 3}})
	require.Len(t, ls, 2)
	assert.Equal(t, 2.0, ls[1].X())
	assert.Equal(t, 3.0, ls[1].Y())
}

func TestValidate(t *testing.T) {
	space := newSpace(t, 6, 6, 0, grid.Circle{Center: grid.Coord{X: 3, Y: 3}, Radius: 0})

	assert.NoError(t, Validate(space, nil))
	assert.NoError(t, Validate(space, []grid.Coord{{X: 1, Y: 1}, {X: 2, Y: 2}}))
	assert.ErrorIs(t, Validate(space, []grid.Coord{{X: 1, Y: 1}, {X: 3, Y: 1}}), ErrBrokenPath)
	assert.ErrorIs(t, Validate(space, []grid.Coord{{X: 2, Y: 2}, {X: 3, Y: 3}}), ErrBrokenPath)
}
