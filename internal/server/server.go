// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/autosave"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/summary"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	repo        *storage.Repository
	savers      *autosave.Registry
	summaries   *summary.Generator
	exporter    *export.Exporter
	validator   middleware.TokenValidator
	rateLimiter *ratelimit.Limiter
	metrics     *Metrics
	logger      logrus.FieldLogger
}

// Config holds server configuration
type Config struct {
	Port int
	// RateLimit defaults to ratelimit.LoadConfig() when nil
	RateLimit *ratelimit.Config
}

// Deps are the collaborators the handlers use. Summaries, Exporter and
// Validator are optional: without them the AI and PDF endpoints answer 503
// and every caller is the guest.
type Deps struct {
	Repository *storage.Repository
	Savers     *autosave.Registry
	Summaries  *summary.Generator
	Exporter   *export.Exporter
	Validator  middleware.TokenValidator
	Metrics    *Metrics
	Logger     logrus.FieldLogger
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	savers := deps.Savers
	if savers == nil {
		savers = autosave.NewRegistry(deps.Repository, autosave.DefaultDelay, logger)
	}
	rateCfg := cfg.RateLimit
	if rateCfg == nil {
		rateCfg = ratelimit.LoadConfig()
	}

	s := &Server{
		repo:        deps.Repository,
		savers:      savers,
		summaries:   deps.Summaries,
		exporter:    deps.Exporter,
		validator:   deps.Validator,
		rateLimiter: ratelimit.NewLimiter(rateCfg),
		metrics:     metrics,
		logger:      logger,
	}

	mux := http.NewServeMux()
	s.route(mux, "GET /health", s.handleHealth)
	s.route(mux, "GET /templates", s.handleListTemplates)
	mux.Handle("GET /metrics", metrics.Handler())

	// CV document
	s.route(mux, "GET /cv", s.handleGetCV)
	s.route(mux, "PUT /cv", s.handlePutCV)
	s.route(mux, "POST /cv/autosave", s.handleAutosave)
	s.route(mux, "PUT /cv/personal", s.handlePutPersonal)
	s.route(mux, "PUT /cv/target-role", s.handlePutTargetRole)

	// Entries
	s.route(mux, "POST /cv/skills", s.handleAddSkill)
	s.route(mux, "DELETE /cv/skills/{skill}", s.handleRemoveSkill)
	s.route(mux, "POST /cv/experiences", s.handleAddExperience)
	s.route(mux, "PUT /cv/experiences/{id}", s.handleUpdateExperience)
	s.route(mux, "DELETE /cv/experiences/{id}", s.handleRemoveExperience)
	s.route(mux, "POST /cv/education", s.handleAddEducation)
	s.route(mux, "PUT /cv/education/{id}", s.handleUpdateEducation)
	s.route(mux, "DELETE /cv/education/{id}", s.handleRemoveEducation)
	s.route(mux, "POST /cv/projects", s.handleAddProject)
	s.route(mux, "PUT /cv/projects/{id}", s.handleUpdateProject)
	s.route(mux, "DELETE /cv/projects/{id}", s.handleRemoveProject)

	// Professional summary
	s.route(mux, "POST /cv/summary", s.handleGenerateSummary)
	s.route(mux, "PUT /cv/summary", s.handlePutSummary)

	// Rendered resume
	s.route(mux, "GET /cv/resume.html", s.handleResumeHTML)
	s.route(mux, "GET /cv/resume.txt", s.handleResumeText)
	s.route(mux, "GET /cv/resume.pdf", s.handleResumePDF)
	s.route(mux, "POST /cv/resume/share", s.handleShareResume)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(middleware.OptionalAuth(s.validator)(mux))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export runs headless Chrome
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// route registers h under pattern with per-route metrics
func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.metrics.Instrument(pattern, h))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.httpServer.Addr).Info("Server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops accepting requests and writes every pending autosave
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.rateLimiter.Stop()

	if n := s.savers.FlushAll(); n > 0 {
		s.logger.WithField("count", n).Info("Flushed pending autosaves")
	}
	s.savers.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging and a request id
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := s.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start),
			"remote":     r.RemoteAddr,
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("Request failed")
			return
		}
		entry.Debug("Request completed")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Warn("Error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID returns the caller's IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.WithFields(logrus.Fields{
		"path":  r.URL.Path,
		"limit": info.Limit,
		"reset": info.ResetTime.Format(time.RFC3339),
	}).Warn("Rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
