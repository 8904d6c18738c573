// Package planner wires the configuration space, the search and the file
// formats into planning runs.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"grid-planner/internal/config"
	"grid-planner/internal/cspace"
	"grid-planner/internal/fileio"
	"grid-planner/internal/grid"
	"grid-planner/internal/obstacle"
	"grid-planner/internal/scenario"
	"grid-planner/internal/search"
	"grid-planner/internal/store"
)

// Request describes one planning run
type Request struct {
	Shape     grid.Shape
	Radius    int
	Scenario  scenario.ID
	Obstacles []grid.Circle // added on top of the scenario layout
	Start     *grid.Coord   // nil for the default start
	Goal      *grid.Coord   // nil for the default goal
}

// Files lists the outputs written by Run
type Files struct {
	ConfigSpace string `json:"configSpace"`
	Path        string `json:"path"`
	GeoJSON     string `json:"geojson"`
}

// Report is the outcome of a planning run
type Report struct {
	RunID     string        `json:"runId"`
	Shape     grid.Shape    `json:"shape"`
	Radius    int           `json:"radius"`
	Scenario  scenario.ID   `json:"scenario"`
	Obstacles []grid.Circle `json:"obstacles"`
	Start     grid.Coord    `json:"start"`
	Goal      grid.Coord    `json:"goal"`
	Found     bool          `json:"found"`
	Path      []grid.Coord  `json:"path"`
	Waypoints []grid.Coord  `json:"waypoints"`
	Expanded  int           `json:"expanded"`
	Elapsed   time.Duration `json:"elapsed"`
	Files     *Files        `json:"files,omitempty"`

	// Set when the search fails and an endpoint lies inside padded obstacles
	StartBlockedBy []grid.Circle `json:"startBlockedBy,omitempty"`
	GoalBlockedBy  []grid.Circle `json:"goalBlockedBy,omitempty"`
}

// Planner runs planning requests
type Planner struct {
	cfg    config.Config
	logger *log.Logger
	store  *store.Store
}

// New creates a planner. The store may be nil to skip run history.
func New(cfg config.Config, logger *log.Logger, st *store.Store) *Planner {
	if logger == nil {
		logger = log.Default()
	}
	return &Planner{cfg: cfg, logger: logger, store: st}
}

// DefaultEndpoints returns the cells just inside the boundary padding at the
// lower-left and upper-right corners
func DefaultEndpoints(shape grid.Shape, radius int) (start, goal grid.Coord) {
	start = grid.Coord{X: radius + 1, Y: radius + 1}
	goal = grid.Coord{X: shape.Width - radius - 1, Y: shape.Height - radius - 1}
	return start, goal
}

// Build creates the configuration space for a request and returns it with
// the obstacles that were rasterized into it
func Build(req Request) (*cspace.Space, []grid.Circle, error) {
	space, err := cspace.New(req.Shape, req.Radius)
	if err != nil {
		return nil, nil, err
	}

	layout, err := req.Scenario.Circles(req.Shape, req.Radius)
	if err != nil {
		return nil, nil, err
	}

	circles := obstacle.Prune(append(layout, req.Obstacles...))
	space.AddObstacles(circles...)
	return space, circles, nil
}

func (req Request) endpoints() (start, goal grid.Coord) {
	start, goal = DefaultEndpoints(req.Shape, req.Radius)
	if req.Start != nil {
		start = *req.Start
	}
	if req.Goal != nil {
		goal = *req.Goal
	}
	return start, goal
}

// Plan builds the space and searches it without touching the filesystem.
// The search itself cannot be interrupted; when ctx ends first Plan returns
// ctx.Err() and the search result is discarded.
func (p *Planner) Plan(ctx context.Context, req Request) (Report, error) {
	space, circles, err := Build(req)
	if err != nil {
		return Report{}, err
	}
	return p.solve(ctx, req, space, circles)
}

// Run executes the full pipeline: build the space, write it, read it back,
// search the reloaded copy and write the path and GeoJSON outputs
func (p *Planner) Run(ctx context.Context, req Request) (Report, error) {
	space, circles, err := Build(req)
	if err != nil {
		return Report{}, err
	}

	files := &Files{
		ConfigSpace: p.cfg.OutputPath(p.cfg.ConfigSpaceFile),
		Path:        p.cfg.OutputPath(p.cfg.PathFile),
		GeoJSON:     p.cfg.OutputPath(p.cfg.GeoJSONFile),
	}

	if err := fileio.SaveSpace(files.ConfigSpace, space); err != nil {
		return Report{}, err
	}
	p.logger.Debug("configuration space written", "file", files.ConfigSpace,
		"free", space.Count(cspace.Free), "padded", space.Count(cspace.Padded), "obstacle", space.Count(cspace.Obstacle))

	reloaded, err := fileio.LoadSpace(files.ConfigSpace)
	if err != nil {
		return Report{}, err
	}

	report, err := p.solve(ctx, req, reloaded, circles)
	if err != nil {
		return report, err
	}
	report.Files = files

	if err := fileio.SavePath(files.Path, report.Path); err != nil {
		return report, err
	}
	if err := fileio.SaveGeoJSON(files.GeoJSON, fileio.Solution{
		Shape:     report.Shape,
		Radius:    report.Radius,
		Obstacles: circles,
		Path:      report.Path,
		Waypoints: report.Waypoints,
	}); err != nil {
		return report, err
	}
	return report, nil
}

func (p *Planner) solve(ctx context.Context, req Request, space *cspace.Space, circles []grid.Circle) (Report, error) {
	start, goal := req.endpoints()
	report := Report{
		RunID:     uuid.NewString(),
		Shape:     req.Shape,
		Radius:    req.Radius,
		Scenario:  req.Scenario,
		Obstacles: circles,
		Start:     start,
		Goal:      goal,
	}

	logger := p.logger.With("run", report.RunID)
	logger.Info("searching", "grid", req.Shape, "radius", req.Radius,
		"scenario", req.Scenario, "obstacles", len(circles), "start", start, "goal", goal)

	began := time.Now()
	res, err := searchContext(ctx, search.New(space, search.WithLogger(logger)), start, goal)
	if err != nil {
		return report, fmt.Errorf("search %s: %w", report.RunID, err)
	}

	report.Elapsed = time.Since(began)
	report.Found = res.Found
	report.Path = res.Path
	report.Expanded = res.Expanded
	report.Waypoints = search.Waypoints(res.Path, p.cfg.SimplifyEpsilon)

	if !res.Found && len(circles) > 0 {
		b := newBlockers(circles, req.Radius)
		report.StartBlockedBy = b.at(start)
		report.GoalBlockedBy = b.at(goal)
		if len(report.StartBlockedBy) > 0 || len(report.GoalBlockedBy) > 0 {
			logger.Warn("endpoint inside obstacle", "start", len(report.StartBlockedBy), "goal", len(report.GoalBlockedBy))
		}
	}

	p.record(ctx, logger, report)
	return report, nil
}

// searchContext runs the search on its own goroutine so the caller can stop
// waiting for it
func searchContext(ctx context.Context, engine *search.AStar, start, goal grid.Coord) (search.Result, error) {
	if err := ctx.Err(); err != nil {
		return search.Result{}, err
	}

	done := make(chan search.Result, 1)
	go func() {
		done <- engine.Search(start, goal)
	}()

	select {
	case <-ctx.Done():
		return search.Result{}, ctx.Err()
	case res := <-done:
		return res, nil
	}
}

func (p *Planner) record(ctx context.Context, logger *log.Logger, r Report) {
	if p.store == nil || !p.cfg.RecordRuns {
		return
	}

	err := p.store.SaveRun(ctx, store.Run{
		ID:          r.RunID,
		Scenario:    r.Scenario.String(),
		Width:       r.Shape.Width,
		Height:      r.Shape.Height,
		AgentRadius: r.Radius,
		Obstacles:   len(r.Obstacles),
		StartX:      r.Start.X,
		StartY:      r.Start.Y,
		GoalX:       r.Goal.X,
		GoalY:       r.Goal.Y,
		Found:       r.Found,
		PathLength:  len(r.Path),
		Waypoints:   len(r.Waypoints),
		Expanded:    r.Expanded,
		Elapsed:     r.Elapsed,
	})
	if err != nil {
		logger.Warn("failed to record run", "err", err)
	}
}
