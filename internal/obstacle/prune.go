package obstacle

import "grid-planner/internal/grid"

// Prune removes circles that lie entirely inside another circle of the list.
// A contained circle covers a subset of the containing circle's cells both
// with and without agent padding, so rasterizing the pruned list gives the
// same configuration space. Exact duplicates keep their first occurrence and
// the surviving circles keep their original order.
func Prune(circles []grid.Circle) []grid.Circle {
	idx := NewIndex(circles)
	dropped := make([]bool, len(circles))

	for _, e := range idx.entries {
		minX, minY, maxX, maxY := e.circle.Bounds()
		for _, other := range idx.query(minX, minY, maxX, maxY) {
			if other.pos == e.pos || dropped[other.pos] {
				continue
			}
			if other.circle == e.circle && other.pos > e.pos {
				continue
			}
			if other.circle.Contains(e.circle) {
				dropped[e.pos] = true
				break
			}
		}
	}

	result := make([]grid.Circle, 0, len(circles))
	for i, c := range circles {
		if !dropped[i] && c.Radius >= 0 {
			result = append(result, c)
		}
	}
	return result
}
