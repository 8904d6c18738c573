// Package server exposes the planner over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"grid-planner/internal/config"
	"grid-planner/internal/cspace"
	"grid-planner/internal/grid"
	"grid-planner/internal/planner"
	"grid-planner/internal/scenario"
	"grid-planner/internal/store"
)

const defaultRunsLimit = 20

// Server handles planning requests
type Server struct {
	cfg     config.ServerConfig
	planner *planner.Planner
	store   *store.Store
	logger  *log.Logger

	mu      sync.RWMutex
	served  int
	lastRun string
}

// New creates a server. The store may be nil, in which case /runs reports
// that history is disabled.
func New(cfg config.ServerConfig, p *planner.Planner, st *store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, planner: p, store: st, logger: logger}
}

// Handler returns the routes with CORS applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/plan", corsMiddleware(s.planHandler))
	mux.HandleFunc("/scenarios", corsMiddleware(s.scenariosHandler))
	mux.HandleFunc("/runs", corsMiddleware(s.runsHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// scenarioParam accepts a scenario as a JSON number or name
type scenarioParam scenario.ID

func (p *scenarioParam) UnmarshalJSON(data []byte) error {
	id, err := scenario.Parse(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*p = scenarioParam(id)
	return nil
}

// PlanRequest is the body of POST /plan
type PlanRequest struct {
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Radius    int           `json:"radius"`
	Scenario  scenarioParam `json:"scenario"`
	Obstacles []grid.Circle `json:"obstacles,omitempty"`
	Start     *grid.Coord   `json:"start,omitempty"`
	Goal      *grid.Coord   `json:"goal,omitempty"`
}

// PlanResponse is the result of POST /plan. Path and waypoints are empty,
// never null, when no path is found.
type PlanResponse struct {
	RunID     string       `json:"runId,omitempty"`
	Path      []grid.Coord `json:"path"`
	Waypoints []grid.Coord `json:"waypoints"`
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Expanded  int          `json:"expanded"`
	ElapsedMS float64      `json:"elapsedMs"`
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /plan - build a configuration space and search it
func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.logger.Warn("method not allowed", "path", r.URL.Path, "method", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid request body", "err", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Scenario == 0 {
		req.Scenario = scenarioParam(scenario.None)
	}

	shape := grid.Shape{Width: req.Width, Height: req.Height}
	if req.Width <= 0 || req.Height <= 0 {
		s.logger.Warn("invalid grid", "width", req.Width, "height", req.Height)
		http.Error(w, "width and height must be positive", http.StatusBadRequest)
		return
	}
	if s.cfg.MaxCells > 0 && !shape.Fits(s.cfg.MaxCells) {
		s.logger.Warn("grid too large", "width", req.Width, "height", req.Height, "max", s.cfg.MaxCells)
		http.Error(w, fmt.Sprintf("grid %v exceeds limit of %d cells", shape, s.cfg.MaxCells), http.StatusBadRequest)
		return
	}

	s.logger.Info("plan request", "width", req.Width, "height", req.Height, "radius", req.Radius,
		"scenario", scenario.ID(req.Scenario), "obstacles", len(req.Obstacles))

	report, err := s.planner.Plan(r.Context(), planner.Request{
		Shape:     shape,
		Radius:    req.Radius,
		Scenario:  scenario.ID(req.Scenario),
		Obstacles: req.Obstacles,
		Start:     req.Start,
		Goal:      req.Goal,
	})
	if err != nil {
		status := statusFor(err)
		s.logger.Warn("plan failed", "status", status, "err", err)
		http.Error(w, err.Error(), status)
		return
	}

	s.mu.Lock()
	s.served++
	s.lastRun = report.RunID
	s.mu.Unlock()

	resp := PlanResponse{
		RunID:     report.RunID,
		Path:      nonNil(report.Path),
		Waypoints: nonNil(report.Waypoints),
		Success:   report.Found,
		Expanded:  report.Expanded,
		ElapsedMS: float64(report.Elapsed) / float64(time.Millisecond),
	}
	switch {
	case report.Found:
	case len(report.StartBlockedBy) > 0:
		resp.Message = fmt.Sprintf("Start %v lies inside %d obstacle(s)", report.Start, len(report.StartBlockedBy))
	case len(report.GoalBlockedBy) > 0:
		resp.Message = fmt.Sprintf("Goal %v lies inside %d obstacle(s)", report.Goal, len(report.GoalBlockedBy))
	default:
		resp.Message = fmt.Sprintf("No path from %v to %v", report.Start, report.Goal)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /scenarios - list the canned layouts
func (s *Server) scenariosHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type entry struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	var list []entry
	for _, id := range scenario.All() {
		list = append(list, entry{ID: int(id), Name: id.String(), Description: id.Description()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": list})
}

// GET /runs?limit=n - recent run history
func (s *Server) runsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.store == nil {
		http.Error(w, "Run history is disabled", http.StatusNotFound)
		return
	}

	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := s.store.RecentRuns(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to read runs", "err", err)
		http.Error(w, "Failed to read run history", http.StatusInternalServerError)
		return
	}
	stats, err := s.store.ScenarioStats(r.Context())
	if err != nil {
		s.logger.Error("failed to read stats", "err", err)
		http.Error(w, "Failed to read run history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"runs":  nonNil(runs),
		"stats": nonNil(stats),
	})
}

// GET /health - health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	served, lastRun := s.served, s.lastRun
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ready",
		"served":  served,
		"lastRun": lastRun,
		"history": s.store != nil,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, cspace.ErrInvalidShape),
		errors.Is(err, cspace.ErrRadiusTooLarge),
		errors.Is(err, scenario.ErrUnknown),
		errors.Is(err, scenario.ErrRadiusTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
