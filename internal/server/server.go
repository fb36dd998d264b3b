// Package server exposes the search engine over HTTP with JSON bodies.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/metrics"
)

// Settings tunes a Server.
type Settings struct {
	Selection   gridpath.Selection
	Workers     int
	MaxBatch    int
	MaxSessions int
	Logger      *slog.Logger
}

// Server holds the current grid and the open stepping sessions.
type Server struct {
	grid     atomic.Pointer[gridpath.Grid]
	settings Settings
	logger   *slog.Logger
	mux      *http.ServeMux

	mu       sync.Mutex
	sessions map[string]*session
}

// session is a resumable search driven by successive step requests.
type session struct {
	mu      sync.Mutex
	stepper *gridpath.Stepper
}

// New creates a Server for grid and registers all routes.
func New(grid *gridpath.Grid, settings Settings) *Server {
	if settings.Logger == nil {
		settings.Logger = slog.Default()
	}
	if settings.MaxBatch < 1 {
		settings.MaxBatch = 100
	}
	if settings.MaxSessions < 1 {
		settings.MaxSessions = 64
	}
	s := &Server{
		settings: settings,
		logger:   settings.Logger,
		mux:      http.NewServeMux(),
		sessions: make(map[string]*session),
	}
	s.grid.Store(grid)

	s.mux.HandleFunc("POST /v1/search", s.search)
	s.mux.HandleFunc("POST /v1/search/batch", s.searchBatch)
	s.mux.HandleFunc("GET /v1/grid", s.getGrid)
	s.mux.HandleFunc("POST /v1/sessions", s.openSession)
	s.mux.HandleFunc("POST /v1/sessions/{id}/step", s.stepSession)
	s.mux.HandleFunc("DELETE /v1/sessions/{id}", s.closeSession)
	s.mux.HandleFunc("GET /healthz", s.healthz)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return loggingMiddleware(s.logger, s.mux) }

// Grid returns the grid new searches run against.
func (s *Server) Grid() *gridpath.Grid { return s.grid.Load() }

// SwapGrid replaces the grid for subsequent searches. Running sessions keep
// the grid they were opened on.
func (s *Server) SwapGrid(g *gridpath.Grid) { s.grid.Store(g) }

type searchRequest struct {
	Start     gridpath.Coord      `json:"start"`
	Goal      gridpath.Coord      `json:"goal"`
	Selection *gridpath.Selection `json:"selection,omitempty"`
}

type batchRequest struct {
	Queries   []gridpath.Query    `json:"queries"`
	Selection *gridpath.Selection `json:"selection,omitempty"`
}

type batchResponse struct {
	Results []gridpath.Result `json:"results"`
}

type gridResponse struct {
	Width  int              `json:"width"`
	Height int              `json:"height"`
	Walls  []gridpath.Coord `json:"walls"`
}

type sessionResponse struct {
	ID    string         `json:"id"`
	Start gridpath.Coord `json:"start"`
	Goal  gridpath.Coord `json:"goal"`
}

type stepResponse struct {
	Index       int              `json:"index"`
	Current     gridpath.Coord   `json:"current"`
	Events      []gridpath.Step  `json:"events"`
	FrontierLen int              `json:"frontier_len"`
	ExploredLen int              `json:"explored_len"`
	State       string           `json:"state"`
	Done        bool             `json:"done"`
	Found       bool             `json:"found"`
	Path        []gridpath.Coord `json:"path,omitempty"`
}

func (s *Server) options(sel *gridpath.Selection) []gridpath.Option {
	selection := s.settings.Selection
	if sel != nil {
		selection = *sel
	}
	opts := []gridpath.Option{
		gridpath.WithSelection(selection),
		gridpath.WithLogger(s.logger),
	}
	if s.settings.Workers > 0 {
		opts = append(opts, gridpath.WithWorkers(s.settings.Workers))
	}
	return opts
}

// POST /v1/search: one blocking search. A disconnected goal is a 200 with found=false.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	res, err := gridpath.Search(r.Context(), s.Grid(), req.Start, req.Goal, s.options(req.Selection)...)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}
	metrics.ObserveResult(res)
	if !res.Found {
		s.logger.Info("no path", "run_id", res.RunID, "start", res.Start, "goal", res.Goal)
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /v1/search/batch: independent searches on the worker pool.
func (s *Server) searchBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(req.Queries) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one query")
		return
	}
	if len(req.Queries) > s.settings.MaxBatch {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(req.Queries), s.settings.MaxBatch))
		return
	}
	results, err := gridpath.SearchAll(r.Context(), s.Grid(), req.Queries, s.options(req.Selection)...)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}
	for _, res := range results {
		metrics.ObserveResult(res)
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

// GET /v1/grid: dimensions and walls of the current grid.
func (s *Server) getGrid(w http.ResponseWriter, r *http.Request) {
	g := s.Grid()
	walls := g.Walls()
	if walls == nil {
		walls = []gridpath.Coord{}
	}
	writeJSON(w, http.StatusOK, gridResponse{Width: g.Width(), Height: g.Height(), Walls: walls})
}

// POST /v1/sessions: open a stepping session.
func (s *Server) openSession(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	stepper, err := gridpath.NewStepper(s.Grid(), req.Start, req.Goal, s.options(req.Selection)...)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}

	id := stepper.ID().String()
	s.mu.Lock()
	if len(s.sessions) >= s.settings.MaxSessions {
		s.mu.Unlock()
		writeError(w, http.StatusTooManyRequests, fmt.Sprintf("session limit %d reached", s.settings.MaxSessions))
		return
	}
	s.sessions[id] = &session{stepper: stepper}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, sessionResponse{ID: id, Start: req.Start, Goal: req.Goal})
}

// POST /v1/sessions/{id}/step: advance a session by one iteration.
func (s *Server) stepSession(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(r.PathValue("id"))
	if sess == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.mu.Lock()
	wasDone := sess.stepper.Done()
	snap := sess.stepper.Step()
	if snap.Done && !wasDone {
		metrics.ObserveResult(sess.stepper.Result())
	}
	sess.mu.Unlock()

	events := snap.Events
	if events == nil {
		events = []gridpath.Step{}
	}
	writeJSON(w, http.StatusOK, stepResponse{
		Index:       snap.Index,
		Current:     snap.Current,
		Events:      events,
		FrontierLen: snap.FrontierLen,
		ExploredLen: snap.ExploredLen,
		State:       snap.State.String(),
		Done:        snap.Done,
		Found:       snap.Found,
		Path:        snap.Path,
	})
}

// DELETE /v1/sessions/{id}
func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /healthz: always 200 (liveness probe).
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) lookup(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *Server) writeSearchError(w http.ResponseWriter, err error) {
	if errors.Is(err, gridpath.ErrOutOfBounds) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("search failed", "err", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}
