package grid

import "iter"

// Circle is a disc of cells with an integer radius
type Circle struct {
	Center Coord `json:"center"`
	Radius int   `json:"radius"`
}

// Expand returns the circle grown by the given number of cells
func (c Circle) Expand(by int) Circle {
	return Circle{Center: c.Center, Radius: c.Radius + by}
}

// Bounds returns the inclusive bounding box of the circle, unclipped
func (c Circle) Bounds() (minX, minY, maxX, maxY int) {
	return c.Center.X - c.Radius, c.Center.Y - c.Radius,
		c.Center.X + c.Radius, c.Center.Y + c.Radius
}

// Contains reports whether other lies entirely inside c
func (c Circle) Contains(other Circle) bool {
	if other.Radius > c.Radius {
		return false
	}
	return c.Center.Distance(other.Center)+float64(other.Radius) <= float64(c.Radius)
}

// Cells yields every cell of the shape covered by the circle, that is every
// (x, y) inside the grid with (x-cx)² + (y-cy)² <= r².
// The edge test is inclusive, unlike a strict dx² < r²-dy² loop, so radius 0
// yields the center and the cells at exactly distance r are covered.
//
// Rows are walked from the center outwards and each row offset is reflected
// into the four quadrants. Reflections that land on an axis are yielded once,
// but overlapping circles will still yield shared cells once per circle.
func (c Circle) Cells(shape Shape) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		r := c.Radius
		if r < 0 {
			return
		}

		cx, cy := c.Center.X, c.Center.Y
		emit := func(x, y int) bool {
			if x < 0 || y < 0 || x >= shape.Width || y >= shape.Height {
				return true
			}
			return yield(Coord{X: x, Y: y})
		}

		for dy := 0; dy <= r; dy++ {
			xMaxSq := r*r - dy*dy
			for dx := 0; dx*dx <= xMaxSq; dx++ {
				// Quadrant I
				if !emit(cx+dx, cy+dy) {
					return
				}
				// Quadrant II
				if dx > 0 && !emit(cx-dx, cy+dy) {
					return
				}
				// Quadrant III
				if dx > 0 && dy > 0 && !emit(cx-dx, cy-dy) {
					return
				}
				// Quadrant IV
				if dy > 0 && !emit(cx+dx, cy-dy) {
					return
				}
			}
		}
	}
}
