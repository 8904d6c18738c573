package planner

import (
	"grid-planner/internal/grid"
	"grid-planner/internal/obstacle"
)

// blockers finds the obstacles whose padded footprint covers an endpoint
type blockers struct {
	radius int
	index  *obstacle.Index
}

func newBlockers(circles []grid.Circle, radius int) *blockers {
	padded := make([]grid.Circle, len(circles))
	for i, c := range circles {
		padded[i] = c.Expand(radius)
	}
	return &blockers{radius: radius, index: obstacle.NewIndex(padded)}
}

// at returns the obstacles, unpadded, that make c inaccessible
func (b *blockers) at(c grid.Coord) []grid.Circle {
	var circles []grid.Circle
	for _, p := range b.index.Covering(c) {
		circles = append(circles, p.Expand(-b.radius))
	}
	return circles
}
