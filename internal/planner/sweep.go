package planner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"grid-planner/internal/grid"
	"grid-planner/internal/scenario"
)

// Sweep plans every given scenario on the same grid concurrently. Each
// scenario gets its own configuration space and search state. Reports are
// returned in the order of ids; the first construction error cancels the rest.
func (p *Planner) Sweep(ctx context.Context, shape grid.Shape, radius int, ids []scenario.ID) ([]Report, error) {
	reports := make([]Report, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			r, err := p.Plan(ctx, Request{Shape: shape, Radius: radius, Scenario: id})
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
