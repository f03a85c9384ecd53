package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/priya/resume-builder/internal/config"
	"github.com/priya/resume-builder/internal/db"
	"github.com/priya/resume-builder/internal/llm"
	"github.com/priya/resume-builder/internal/profile"
	"github.com/priya/resume-builder/internal/rendering"
	"github.com/priya/resume-builder/internal/server/middleware"
	"github.com/priya/resume-builder/internal/server/ratelimit"
)

// Server is the HTTP API server.
type Server struct {
	httpServer   *http.Server
	db           *db.DB
	logger       *zap.Logger
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService
	userService  *UserService
	authHandler  *AuthHandler
	aggregator   *profile.Aggregator
	suggester    *llm.Suggester
	llmClient    llm.Client
	pdfRenderer  *rendering.PDFRenderer
	templatePath string
}

// New creates a server from configuration. A nil logger falls back to a
// production zap logger.
func New(ctx context.Context, cfg *config.ServerConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:           database,
		logger:       logger,
		rateLimiter:  ratelimit.NewLimiter(ratelimit.LoadConfig()),
		aggregator:   profile.New(database, logger),
		pdfRenderer:  &rendering.PDFRenderer{ChromePath: cfg.ChromePath},
		templatePath: cfg.TemplatePath,
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// Suggestions are optional; without an API key the endpoints answer 503.
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
		s.suggester = llm.NewSuggester(client)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF rendering holds the response open
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes wires the REST surface. Section routes are scoped by user id and
// section type; the literal /order pattern wins over the {item_id} wildcard
// in Go 1.22+ ServeMux precedence.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	authed := http.NewServeMux()
	authed.HandleFunc("PUT /auth/password", s.authHandler.UpdatePassword)

	authed.HandleFunc("GET /users/{user_id}/sections/{section_type}", s.handleListSection)
	authed.HandleFunc("POST /users/{user_id}/sections/{section_type}", s.handleCreateSectionItem)
	authed.HandleFunc("PUT /users/{user_id}/sections/{section_type}/order", s.handleSetOrder)
	authed.HandleFunc("GET /users/{user_id}/sections/{section_type}/order", s.handleGetOrder)
	authed.HandleFunc("PUT /users/{user_id}/sections/{section_type}/{item_id}", s.handleUpdateSectionItem)
	authed.HandleFunc("DELETE /users/{user_id}/sections/{section_type}/{item_id}", s.handleDeleteSectionItem)
	authed.HandleFunc("POST /users/{user_id}/sections/{section_type}/{item_id}/toggle", s.handleToggleInclude)
	authed.HandleFunc("POST /users/{user_id}/sections/{section_type}/{item_id}/move-up", s.handleMoveUp)
	authed.HandleFunc("POST /users/{user_id}/sections/{section_type}/{item_id}/move-down", s.handleMoveDown)

	authed.HandleFunc("GET /users/{user_id}/resume", s.handleGetResumeProfile)
	authed.HandleFunc("GET /users/{user_id}/resume/latex", s.handleGetResumeLaTeX)
	authed.HandleFunc("GET /users/{user_id}/resume/pdf", s.handleGetResumePDF)
	authed.HandleFunc("POST /users/{user_id}/suggestions/summary", s.handleSuggestSummary)
	authed.HandleFunc("POST /users/{user_id}/suggestions/bullets", s.handleSuggestBullets)

	mux.Handle("/", middleware.Auth(s.jwtService.AsTokenValidator())(authed))
	return mux
}

// Start begins listening and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	s.db.Close()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers for the SPA frontend.
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

// withRateLimit enforces per-client limits before any handler runs.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path)

		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())))
			s.logger.Warn("rate limit exceeded",
				zap.String("client", clientID(r)), zap.String("path", r.URL.Path))
			jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate_limit_exceeded",
				"message":     "Rate limit exceeded. Please try again later.",
				"retry_after": int(info.RetryAfter.Seconds()),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// clientID identifies the caller for rate limiting; IP from RemoteAddr.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// errorResponse writes an error JSON response.
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}
