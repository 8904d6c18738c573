// Package scenario holds the canned obstacle layouts. Each layout is plain
// data: a list of circles derived from the grid shape and agent radius.
package scenario

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"grid-planner/internal/grid"
)

var (
	// ErrUnknown is returned for an id or name outside the known set
	ErrUnknown = errors.New("scenario: unknown scenario")
	// ErrRadiusTooLarge is returned when the agent radius leaves the layout's
	// circles with a negative radius
	ErrRadiusTooLarge = errors.New("scenario: agent radius too large for layout")
)

// ID selects a canned layout. Values match the numbers accepted on the
// command line.
type ID int

const (
	None ID = iota + 1
	Impossible
	Simple
	Complex
	Maze
)

var names = map[ID]string{
	None:       "none",
	Impossible: "impossible",
	Simple:     "simple",
	Complex:    "complex",
	Maze:       "maze",
}

var descriptions = map[ID]string{
	None:       "no obstacles",
	Impossible: "single circle in the center spanning the narrow dimension",
	Simple:     "two circles at the corners away from start and goal",
	Complex:    "lattice of seventeen circles",
	Maze:       "staggered columns of circles",
}

// All returns every layout in id order
func All() []ID {
	return []ID{None, Impossible, Simple, Complex, Maze}
}

func (id ID) String() string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("scenario(%d)", int(id))
}

// Description is a one-line summary of the layout
func (id ID) Description() string {
	return descriptions[id]
}

// Parse accepts either the number or the name of a layout
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		id := ID(n)
		if _, ok := names[id]; ok {
			return id, nil
		}
		return 0, fmt.Errorf("%w: %d", ErrUnknown, n)
	}
	for id, name := range names {
		if name == s {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, s)
}

// MarshalText implements encoding.TextMarshaler
func (id ID) MarshalText() ([]byte, error) {
	if _, ok := names[id]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknown, int(id))
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Circles builds the layout for a grid shape and agent radius
func (id ID) Circles(shape grid.Shape, agentRadius int) ([]grid.Circle, error) {
	nx, ny := shape.Width, shape.Height
	narrow := min(nx, ny)

	switch id {
	case None:
		return []grid.Circle{}, nil

	case Impossible:
		return []grid.Circle{circle(nx/2, ny/2, narrow/2)}, nil

	case Simple:
		r, err := layoutRadius(id, narrow/2, agentRadius)
		if err != nil {
			return nil, err
		}
		return []grid.Circle{
			circle(0, ny-1, r),
			circle(nx-1, 0, r),
		}, nil

	case Complex:
		r, err := layoutRadius(id, narrow/8, agentRadius)
		if err != nil {
			return nil, err
		}
		return []grid.Circle{
			circle(0, ny/4, r),
			circle(0, ny/2, r),
			circle(0, 3*ny/4, r),

			circle(nx/4, 0, r),
			circle(nx/4, ny/3, r),
			circle(nx/4, 2*ny/3, r),
			circle(nx/4, ny-1, r),

			circle(nx/2, ny/4, r),
			circle(nx/2, ny/2, r),
			circle(nx/2, 3*ny/4, r),

			circle(3*nx/4, 0, r),
			circle(3*nx/4, ny/3, r),
			circle(3*nx/4, 2*ny/3, r),
			circle(3*nx/4, ny-1, r),

			circle(nx-1, ny/4, r),
			circle(nx-1, ny/2, r),
			circle(nx-1, 3*ny/4, r),
		}, nil

	case Maze:
		r, err := layoutRadius(id, narrow/10, agentRadius)
		if err != nil {
			return nil, err
		}
		var circles []grid.Circle
		for col := 1; col <= 4; col++ {
			x := col * nx / 5
			// Odd columns hang from the bottom edge, even columns from the top
			rows := []int{0, ny / 6, ny / 3, ny / 2, 2 * ny / 3, 5 * ny / 6}
			if col%2 == 0 {
				rows = []int{ny / 6, ny / 3, ny / 2, 2 * ny / 3, 5 * ny / 6, ny - 1}
			}
			for _, y := range rows {
				circles = append(circles, circle(x, y, r))
			}
		}
		return circles, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknown, int(id))
}

func layoutRadius(id ID, base, agentRadius int) (int, error) {
	r := base - agentRadius
	if r < 0 {
		return 0, fmt.Errorf("%w: %s needs agent radius <= %d, got %d", ErrRadiusTooLarge, id, base, agentRadius)
	}
	return r, nil
}

func circle(x, y, r int) grid.Circle {
	return grid.Circle{Center: grid.Coord{X: x, Y: y}, Radius: r}
}
