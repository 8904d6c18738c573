// Package obstacle indexes, prunes and loads circular obstacles.
package obstacle

import (
	"github.com/dhconnelly/rtreego"

	"grid-planner/internal/grid"
)

// entry wraps a circle for R-tree storage
type entry struct {
	circle grid.Circle
	pos    int // position in the slice the index was built from
	bbox   rtreego.Rect
}

// Bounds implements rtreego.Spatial
func (e *entry) Bounds() rtreego.Rect {
	return e.bbox
}

// Index answers spatial queries over a fixed set of circles
type Index struct {
	tree    *rtreego.Rtree
	entries []*entry
}

// NewIndex builds an index over circles. Circles with a negative radius
// cover no cells and are left out.
func NewIndex(circles []grid.Circle) *Index {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	idx := &Index{tree: tree}

	for i, c := range circles {
		if c.Radius < 0 {
			continue
		}
		minX, minY, maxX, maxY := c.Bounds()
		bbox, err := cellRect(minX, minY, maxX, maxY)
		if err != nil {
			continue
		}
		e := &entry{circle: c, pos: i, bbox: bbox}
		tree.Insert(e)
		idx.entries = append(idx.entries, e)
	}
	return idx
}

// Len returns the number of indexed circles
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Query returns the circles whose bounding box overlaps the inclusive cell
// range [minX, maxX] x [minY, maxY]
func (idx *Index) Query(minX, minY, maxX, maxY int) []grid.Circle {
	found := idx.query(minX, minY, maxX, maxY)
	circles := make([]grid.Circle, 0, len(found))
	for _, e := range found {
		circles = append(circles, e.circle)
	}
	return circles
}

// Covering returns the circles whose footprint includes the cell
func (idx *Index) Covering(c grid.Coord) []grid.Circle {
	var circles []grid.Circle
	for _, e := range idx.query(c.X, c.Y, c.X, c.Y) {
		dx, dy := c.X-e.circle.Center.X, c.Y-e.circle.Center.Y
		if dx*dx+dy*dy <= e.circle.Radius*e.circle.Radius {
			circles = append(circles, e.circle)
		}
	}
	return circles
}

func (idx *Index) query(minX, minY, maxX, maxY int) []*entry {
	bbox, err := cellRect(minX, minY, maxX, maxY)
	if err != nil {
		return nil
	}

	results := idx.tree.SearchIntersect(bbox)
	entries := make([]*entry, 0, len(results))
	for _, item := range results {
		entries = append(entries, item.(*entry))
	}
	return entries
}

// cellRect treats each cell as a unit square, so an inclusive cell range
// always has a positive extent
func cellRect(minX, minY, maxX, maxY int) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{float64(minX), float64(minY)},
		[]float64{float64(maxX-minX) + 1, float64(maxY-minY) + 1},
	)
}
