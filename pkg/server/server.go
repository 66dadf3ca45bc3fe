// Package server exposes the analyzer over HTTP.
//
//	POST /v1/analyze   {"brief": "...", "profile": "weighted"}
//	GET  /v1/catalog   ?profile=coarse
//	GET  /healthz
//	GET  /metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/xrsl/wfx/pkg/brief"
	"github.com/xrsl/wfx/pkg/catalog"
	clog "github.com/xrsl/wfx/pkg/log"
	"github.com/xrsl/wfx/pkg/metrics"
	"github.com/xrsl/wfx/pkg/report"
	"github.com/xrsl/wfx/pkg/score"
)

// maxRequestBodySize limits POST body sizes.
const maxRequestBodySize = 1 << 20 // 1 MB

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// DefaultProfile is used when a request names none.
	DefaultProfile string
	// CatalogPath, if set, replaces the built-in catalog of every profile.
	CatalogPath string
	Metrics     *metrics.Metrics
}

// Server holds one loaded profile per name. Profiles are immutable, so
// concurrent requests share them freely.
type Server struct {
	profiles       map[string]*score.Profile
	defaultProfile string
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

// AnalyzeRequest is the body of POST /v1/analyze.
type AnalyzeRequest struct {
	Brief   string `json:"brief"`
	Profile string `json:"profile,omitempty"`
}

// CatalogResponse is the body of GET /v1/catalog.
type CatalogResponse struct {
	Profile   string             `json:"profile"`
	Version   string             `json:"version"`
	Digest    string             `json:"digest"`
	Workflows []catalog.Workflow `json:"workflows"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// New loads every profile up front so a bad catalog fails at startup.
func New(opts Options) (*Server, error) {
	if opts.DefaultProfile == "" {
		opts.DefaultProfile = score.ProfileWeighted
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	s := &Server{
		profiles:       make(map[string]*score.Profile, len(score.Profiles)),
		defaultProfile: opts.DefaultProfile,
		metrics:        opts.Metrics,
		logger:         clog.GetLogger("server"),
	}
	for _, name := range score.Profiles {
		p, err := score.LoadProfile(name, opts.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load profile %s: %w", name, err)
		}
		s.profiles[name] = p
	}
	if _, ok := s.profiles[s.defaultProfile]; !ok {
		return nil, fmt.Errorf("unknown default profile %q (valid: %v)", s.defaultProfile, score.Profiles)
	}
	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /v1/catalog", s.handleCatalog)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("server_started", "addr", addr, "default_profile", s.defaultProfile)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server_stopped")
	return nil
}

func (s *Server) profile(name string) (*score.Profile, bool) {
	if name == "" {
		name = s.defaultProfile
	}
	p, ok := s.profiles[name]
	return p, ok
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	logger := s.logger.With("request_id", reqID)
	w.Header().Set("X-Request-ID", reqID)

	var body AnalyzeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error(), RequestID: reqID})
		return
	}

	p, ok := s.profile(body.Profile)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     fmt.Sprintf("unknown profile %q", body.Profile),
			RequestID: reqID,
		})
		return
	}

	start := time.Now()
	a, err := p.Analyze(body.Brief)
	if err != nil {
		s.metrics.ObserveRejected(p.Name)
		status := http.StatusInternalServerError
		if errors.Is(err, brief.ErrEmptyBrief) {
			status = http.StatusBadRequest
		}
		logger.Warn("analysis_rejected", "profile", p.Name, "error", err)
		writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: reqID})
		return
	}
	elapsed := time.Since(start)
	s.metrics.ObserveAnalysis(a, elapsed)

	top, _ := a.Top()
	logger.Info("brief_analyzed",
		"profile", p.Name,
		"top_workflow", top.Workflow,
		"match_percentage", top.MatchPercentage,
		"duration_ms", elapsed.Milliseconds(),
	)

	writeJSON(w, http.StatusOK, report.JSON(a, true))
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("profile")
	p, ok := s.profile(name)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unknown profile %q", name)})
		return
	}
	c := p.Engine.Catalog()
	writeJSON(w, http.StatusOK, CatalogResponse{
		Profile:   p.Name,
		Version:   c.Version(),
		Digest:    c.Digest(),
		Workflows: c.Workflows(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"profiles": score.Profiles,
		"time":     time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		clog.Debug("response_write_failed", "error", err)
	}
}
