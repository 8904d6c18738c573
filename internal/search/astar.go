// Package search runs A* over a configuration space.
package search

import (
	"container/heap"
	"math"

	"github.com/charmbracelet/log"

	"grid-planner/internal/grid"
)

// stepCost is the cost of any move, orthogonal or diagonal
const stepCost = 1.0

// Space is the view of a configuration space the search needs
type Space interface {
	Shape() grid.Shape
	IsAccessible(c grid.Coord) bool
	AccessibleNeighbors(c grid.Coord) []grid.Coord
}

// Result is the outcome of one search
type Result struct {
	Path     []grid.Coord // start to goal inclusive, empty if not found
	Cost     float64      // g-cost recorded for the goal
	Expanded int          // cells popped and closed
	Pushed   int          // frontier insertions, stale duplicates included
	Found    bool
}

// cellStatus tracks where a cell is in the search
type cellStatus uint8

const (
	unvisited cellStatus = iota
	open
	closed
)

// node is the per-cell bookkeeping for one search
type node struct {
	parent grid.Coord
	g      float64 // cost from start
	f      float64 // g + heuristic to goal
}

var unsetNode = node{g: math.Inf(1), f: math.Inf(1)}

// Option configures an AStar
type Option func(*AStar)

// WithLogger reports search outcomes to logger
func WithLogger(logger *log.Logger) Option {
	return func(a *AStar) { a.logger = logger }
}

// AStar searches a configuration space. It holds no per-search state, so a
// single value may run searches from several goroutines once the space is
// no longer being modified.
type AStar struct {
	space  Space
	logger *log.Logger
}

// New creates a search engine over space
func New(space Space, opts ...Option) *AStar {
	a := &AStar{space: space}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SearchPath returns the path from start to goal, or an empty path when the
// endpoints are invalid or the goal cannot be reached
func (a *AStar) SearchPath(start, goal grid.Coord) []grid.Coord {
	return a.Search(start, goal).Path
}

// Search runs A* from start to goal.
//
// The frontier is a binary heap without decrease-key: improving a cell's cost
// pushes another entry and stale entries are dropped when popped. The search
// stops as soon as an expanded cell has the goal as a neighbor, which is not
// necessarily when the cheapest route to the goal is known.
func (a *AStar) Search(start, goal grid.Coord) Result {
	if !a.validStartGoal(start, goal) {
		return Result{Path: []grid.Coord{}}
	}

	shape := a.space.Shape()
	nodes := grid.NewDataMap(shape, unsetNode)
	status := grid.NewDataMap(shape, unvisited)

	startF := start.Distance(goal)
	nodes.Set(start, node{parent: start, g: 0, f: startF})
	status.Set(start, open)

	pq := &frontier{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, entry{cell: start, f: startF, seq: seq})

	res := Result{Pushed: 1}
	for pq.Len() > 0 {
		current := heap.Pop(pq).(entry)
		if status.At(current.cell) == closed {
			continue
		}
		status.Set(current.cell, closed)
		res.Expanded++

		cur := nodes.At(current.cell)
		for _, nbr := range a.space.AccessibleNeighbors(current.cell) {
			if nbr == goal {
				g := cur.g + stepCost
				nodes.Set(goal, node{parent: current.cell, g: g, f: g})
				res.Path = reconstructPath(nodes, goal)
				res.Cost = g
				res.Found = true
				a.logFound(start, goal, res)
				return res
			}

			if status.At(nbr) == closed {
				continue
			}

			g := cur.g + stepCost
			f := g + nbr.Distance(goal)
			if f < nodes.At(nbr).f {
				nodes.Set(nbr, node{parent: current.cell, g: g, f: f})
				status.Set(nbr, open)
				seq++
				heap.Push(pq, entry{cell: nbr, f: f, seq: seq})
				res.Pushed++
			}
		}
	}

	if a.logger != nil {
		a.logger.Info("goal not found", "start", start, "goal", goal, "expanded", res.Expanded)
	}
	res.Path = []grid.Coord{}
	return res
}

func (a *AStar) logFound(start, goal grid.Coord, res Result) {
	if a.logger == nil {
		return
	}
	a.logger.Info("goal found", "start", start, "goal", goal,
		"length", len(res.Path), "expanded", res.Expanded)
}

// validStartGoal rejects endpoints that cannot produce a path. These are
// ordinary outcomes, so the caller may retry with other endpoints.
func (a *AStar) validStartGoal(start, goal grid.Coord) bool {
	shape := a.space.Shape()
	reason := ""
	switch {
	case !shape.Contains(start):
		reason = "start is not in the grid"
	case !shape.Contains(goal):
		reason = "goal is not in the grid"
	case !a.space.IsAccessible(start):
		reason = "start is not accessible"
	case !a.space.IsAccessible(goal):
		reason = "goal is not accessible"
	case start == goal:
		reason = "start is already at goal"
	}
	if reason == "" {
		return true
	}
	if a.logger != nil {
		a.logger.Warn(reason, "start", start, "goal", goal)
	}
	return false
}

// reconstructPath follows parent links from goal back to the start, the one
// node that is its own parent, and returns the cells in start to goal order
func reconstructPath(nodes *grid.DataMap[node], goal grid.Coord) []grid.Coord {
	path := []grid.Coord{goal}
	for c := goal; nodes.At(c).parent != c; {
		c = nodes.At(c).parent
		path = append(path, c)
	}

	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
