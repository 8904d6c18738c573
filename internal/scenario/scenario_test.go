package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/internal/grid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{"1", None},
		{"2", Impossible},
		{"3", Simple},
		{"4", Complex},
		{"5", Maze},
		{"maze", Maze},
		{" Simple ", Simple},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"0", "6", "-1", "spiral", ""} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrUnknown, bad)
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, id := range All() {
		text, err := id.MarshalText()
		require.NoError(t, err)

		var back ID
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, id, back)
		assert.NotEmpty(t, id.Description())
	}

	_, err := ID(42).MarshalText()
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestCircles(t *testing.T) {
	shape := grid.Shape{Width: 250, Height: 100}

	tests := []struct {
		id     ID
		count  int
		radius int
	}{
		{None, 0, 0},
		{Impossible, 1, 50},
		{Simple, 2, 44},
		{Complex, 17, 6},
		{Maze, 24, 4},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			circles, err := tt.id.Circles(shape, 6)
			require.NoError(t, err)
			assert.Len(t, circles, tt.count)
			for _, c := range circles {
				assert.Equal(t, tt.radius, c.Radius)
				assert.True(t, shape.Contains(c.Center), "center %v outside grid", c.Center)
			}
		})
	}
}

func TestSimpleCorners(t *testing.T) {
	circles, err := Simple.Circles(grid.Shape{Width: 10, Height: 10}, 1)
	require.NoError(t, err)
	assert.Equal(t, []grid.Circle{
		{Center: grid.Coord{X: 0, Y: 9}, Radius: 4},
		{Center: grid.Coord{X: 9, Y: 0}, Radius: 4},
	}, circles)
}

func TestCirclesRadiusTooLarge(t *testing.T) {
	_, err := Maze.Circles(grid.Shape{Width: 20, Height: 20}, 3)
	assert.ErrorIs(t, err, ErrRadiusTooLarge)

	_, err = ID(9).Circles(grid.Shape{Width: 20, Height: 20}, 0)
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestMazeCentersInsideSmallGrids(t *testing.T) {
	for _, shape := range []grid.Shape{{Width: 3, Height: 3}, {Width: 5, Height: 7}, {Width: 11, Height: 6}} {
		circles, err := Maze.Circles(shape, 0)
		require.NoError(t, err)
		require.Len(t, circles, 24)
		for _, c := range circles {
			assert.True(t, shape.Contains(c.Center), "center %v outside %v", c.Center, shape)
		}
	}
}
