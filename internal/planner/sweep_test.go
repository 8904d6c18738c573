package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/internal/grid"
	"grid-planner/internal/scenario"
)

func TestSweepAllScenarios(t *testing.T) {
	p := newPlanner(t, nil)

	reports, err := p.Sweep(context.Background(), grid.Shape{Width: 60, Height: 60}, 1, scenario.All())
	require.NoError(t, err)
	require.Len(t, reports, len(scenario.All()))

	for i, id := range scenario.All() {
		assert.Equal(t, id, reports[i].Scenario)
	}
	assert.True(t, reports[0].Found, "none")
	assert.False(t, reports[1].Found, "impossible")
	assert.True(t, reports[2].Found, "simple")
}

func TestSweepMatchesSequentialPlans(t *testing.T) {
	p := newPlanner(t, nil)
	shape := grid.Shape{Width: 50, Height: 40}
	ctx := context.Background()

	reports, err := p.Sweep(ctx, shape, 1, scenario.All())
	require.NoError(t, err)

	for i, id := range scenario.All() {
		r, err := p.Plan(ctx, Request{Shape: shape, Radius: 1, Scenario: id})
		require.NoError(t, err)
		assert.Equal(t, r.Path, reports[i].Path, id.String())
		assert.Equal(t, r.Expanded, reports[i].Expanded, id.String())
	}
}

func TestSweepRadiusTooLarge(t *testing.T) {
	p := newPlanner(t, nil)

	_, err := p.Sweep(context.Background(), grid.Shape{Width: 10, Height: 10}, 4, scenario.All())
	assert.ErrorIs(t, err, scenario.ErrRadiusTooLarge)
}
