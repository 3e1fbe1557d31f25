package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/export"
	"github.com/jonathan/resume-editor/internal/llm"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/server/middleware"
	"github.com/jonathan/resume-editor/internal/server/ratelimit"
	"github.com/jonathan/resume-editor/internal/session"
)

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	logger        zerolog.Logger
	sessions      *session.Store
	renderer      *rendering.Renderer
	exporter      *export.Exporter
	renderService export.RenderService
	suggester     *llm.Suggester
	rateLimiter   *ratelimit.Limiter
	jwtService    *JWTService
	userService   *UserService
	authHandler   *AuthHandler
	sweepInterval time.Duration
	onShutdown    []func()
}

// Config holds the server's settings and collaborators.
type Config struct {
	Port     int
	Logger   zerolog.Logger
	Sessions *session.Store
	Users    db.UserStore
	JWT      *config.JWTConfig
	Password *config.PasswordConfig
	Renderer *rendering.Renderer
	Exporter *export.Exporter
	// RenderService backs POST /api/generate-pdf. Nil leaves the route unregistered.
	RenderService export.RenderService
	// Suggester may be nil, in which case suggestions report the service as unavailable.
	Suggester *llm.Suggester
	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
	// SweepInterval is how often expired sessions are removed. Defaults to one minute.
	SweepInterval time.Duration
	// OnShutdown runs after the listener is closed, e.g. to close the directory.
	OnShutdown []func()
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	switch {
	case cfg.Sessions == nil:
		return nil, errors.New("server: session store is required")
	case cfg.Users == nil:
		return nil, errors.New("server: user directory is required")
	case cfg.JWT == nil || cfg.Password == nil:
		return nil, errors.New("server: JWT and password configuration are required")
	case cfg.Renderer == nil:
		return nil, errors.New("server: renderer is required")
	case cfg.Exporter == nil:
		return nil, errors.New("server: exporter is required")
	}

	s := &Server{
		logger:        cfg.Logger.With().Str("component", "server").Logger(),
		sessions:      cfg.Sessions,
		renderer:      cfg.Renderer,
		exporter:      cfg.Exporter,
		renderService: cfg.RenderService,
		suggester:     cfg.Suggester,
		sweepInterval: cfg.SweepInterval,
		onShutdown:    cfg.OnShutdown,
	}
	if s.suggester == nil {
		s.suggester = llm.NewSuggester(nil, cfg.Logger)
	}
	if s.sweepInterval <= 0 {
		s.sweepInterval = time.Minute
	}

	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rlConfig)

	s.userService = NewUserService(cfg.Users, cfg.Password)
	s.jwtService = NewJWTService(cfg.JWT)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService, s.sessions, s.logger)

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Sessions
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("POST /auth/logout", protected(s.authHandler.Logout))
	mux.Handle("GET /admin/users", auth(middleware.RequireAdmin(http.HandlerFunc(s.handleListUsers))))

	// Document editing
	mux.Handle("GET /document", protected(s.handleGetDocument))
	mux.Handle("PUT /document", protected(s.handleReplaceDocument))
	mux.Handle("PUT /document/fields/{field}", protected(s.handleSetField))
	mux.Handle("PUT /document/contact/{field}", protected(s.handleSetContactField))
	mux.Handle("POST /document/sections", protected(s.handleAddSection))
	mux.Handle("DELETE /document/sections/{id}", protected(s.handleDeleteSection))
	mux.Handle("POST /document/sections/{index}/move", protected(s.handleMoveSection))
	mux.Handle("PUT /document/sections/{id}/title", protected(s.handleSetTitle))
	mux.Handle("PUT /document/sections/{id}/content", protected(s.handleSetContent))
	mux.Handle("POST /document/sections/{id}/skills", protected(s.handleAddSkill))
	mux.Handle("DELETE /document/sections/{id}/skills", protected(s.handleRemoveSkill))
	mux.Handle("POST /document/sections/{id}/entries", protected(s.handleAddEntry))
	mux.Handle("DELETE /document/sections/{id}/entries/{entryID}", protected(s.handleRemoveEntry))
	mux.Handle("POST /document/undo", protected(s.handleUndo))
	mux.Handle("POST /document/redo", protected(s.handleRedo))
	mux.Handle("PUT /document/style", protected(s.handleSetStyle))

	// Projections and export
	mux.Handle("GET /preview", protected(s.handlePreview))
	mux.Handle("GET /preview.md", protected(s.handlePreviewMarkdown))
	mux.Handle("POST /export/pdf", protected(s.handleExportPDF))
	mux.Handle("POST /export/pdf/stream", protected(s.handleExportPDFStream))
	mux.Handle("POST /ai/suggest", protected(s.handleSuggest))

	if s.renderService != nil {
		mux.HandleFunc("POST "+export.GeneratePath, s.handleGeneratePDF)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRecovery(s.withRateLimit(s.withLogging(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // PDF rendering can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go s.sweepSessions(sweepCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	s.logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()

	s.logger.Info().Msg("server stopped")
	return nil
}

// Close releases background resources without touching the listener.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	for _, fn := range s.onShutdown {
		fn()
	}
	s.onShutdown = nil
}

// sweepSessions periodically ends expired sessions.
func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.sessions.Sweep(); n > 0 {
				s.logger.Info().Int("removed", n).Msg("expired sessions removed")
			}
			observability.ActiveSessions.Set(float64(s.sessions.Len()))
		case <-ctx.Done():
			return
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "X-Export-Path, X-Export-Notice")

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

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		event := s.logger.Info()
		if rec.status >= http.StatusInternalServerError {
			event = s.logger.Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// withRecovery turns handler panics into 500 responses.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				jsonResponse(w, http.StatusInternalServerError, map[string]any{
					"error": "Internal Server Error",
					"code":  http.StatusInternalServerError,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
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
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds() + 0.999)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn().
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Dur("retry_after", info.RetryAfter).
		Msg("rate limit exceeded")

	jsonResponse(w, http.StatusTooManyRequests, response)
}
