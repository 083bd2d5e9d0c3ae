// Package server is the HTTP shell around the analysis engine: request
// decoding, CORS, response envelopes, and the optional insight and
// history collaborators. All analysis semantics live below it.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bughound/internal/analyzer"
	"bughound/internal/config"
	"bughound/internal/history"
	"bughound/internal/insight"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server serves the analysis API. The engine is stateless, so a single
// Server handles concurrent requests without coordination beyond what the
// optional history store does internally.
type Server struct {
	engine *analyzer.Engine
	scorer *insight.Scorer
	store  *history.Store
	logger *zap.Logger
	cfg    config.ServerConfig

	insightTimeout time.Duration
}

// New assembles a server. scorer and store may be nil; the corresponding
// features degrade to absent rather than failing requests.
func New(cfg *config.Config, logger *zap.Logger, scorer *insight.Scorer, store *history.Store) *Server {
	return &Server{
		engine:         analyzer.New(),
		scorer:         scorer,
		store:          store,
		logger:         logger,
		cfg:            cfg.Server,
		insightTimeout: cfg.Insight.ParseTimeout(),
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)

	var h http.Handler = mux
	h = withCORS(s.cfg.AllowedOrigin, h)
	h = withRecovery(s.logger, h)
	h = withLogging(s.logger, h)
	h = withRequestID(h)
	return h
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ParseRequestTimeout(),
		WriteTimeout: s.cfg.ParseRequestTimeout(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// analyzeRequest is the /analyze request body. UseML defaults to true
// when omitted, matching the API this service replaces.
type analyzeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	UseML    *bool  `json:"use_ml"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "No code provided")
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}

	report := s.engine.Analyze(req.Code, req.Language)
	resp := NewAnalyzeResponse(report, req.Code)

	if s.useML(req) {
		ctx, cancel := context.WithTimeout(r.Context(), s.insightTimeout)
		defer cancel()
		resp.AttachInsights(s.scorer.Score(ctx, req.Code))
	}

	if s.store != nil {
		// best effort; a history failure must not fail the analysis
		if err := s.store.Record(strings.ToLower(req.Language), resp.Severity.String(),
			resp.TotalIssues, resp.LinesAnalyzed); err != nil {
			s.logger.Warn("failed to record analysis", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) useML(req analyzeRequest) bool {
	if s.scorer == nil {
		return false
	}
	return req.UseML == nil || *req.UseML
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": Version,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusOK, &history.Stats{
			ByLanguage: map[string]int64{},
			BySeverity: map[string]int64{},
		})
		return
	}
	stats, err := s.store.Aggregate()
	if err != nil {
		s.logger.Error("failed to aggregate history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
