package cspace

import "fmt"

// State is the occupancy of a single cell
type State uint8

const (
	// Free cells are traversable
	Free State = iota
	// Obstacle cells are covered by an obstacle footprint
	Obstacle
	// Padded cells are blocked only by the agent's inflation radius
	Padded
)

// Valid reports whether s is one of the known states
func (s State) Valid() bool {
	return s <= Padded
}

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case Obstacle:
		return "obstacle"
	case Padded:
		return "padded"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}
