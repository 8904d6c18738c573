package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/internal/grid"
)

func TestParseGrid(t *testing.T) {
	h, w, r, err := parseGrid([]string{"80", "120", "2"})
	require.NoError(t, err)
	assert.Equal(t, 80, h)
	assert.Equal(t, 120, w)
	assert.Equal(t, 2, r)

	_, _, _, err = parseGrid([]string{"80", "wide", "2"})
	assert.ErrorContains(t, err, "width")
}

func TestParseCoord(t *testing.T) {
	c, err := parseCoord("3,4")
	require.NoError(t, err)
	assert.Equal(t, grid.Coord{X: 3, Y: 4}, c)

	c, err = parseCoord(" 10 , 0 ")
	require.NoError(t, err)
	assert.Equal(t, grid.Coord{X: 10, Y: 0}, c)

	for _, bad := range []string{"3", "3;4", "a,4", "3,b"} {
		_, err := parseCoord(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseOptionalCoord(t *testing.T) {
	c, err := parseOptionalCoord("")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = parseOptionalCoord("1,2")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, grid.Coord{X: 1, Y: 2}, *c)
}

func TestRunRequiresFourArgs(t *testing.T) {
	assert.Error(t, runCmd.Args(runCmd, []string{"10", "10", "1"}))
	assert.NoError(t, runCmd.Args(runCmd, []string{"10", "10", "1", "3"}))
}
