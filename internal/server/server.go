// Package server exposes day boards over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/javiermolinar/deckhand/internal/dayutil"
	"github.com/javiermolinar/deckhand/internal/schedule"
)

const shutdownTimeout = 5 * time.Second

// Server serves one board per day. Boards are opened on first use and kept
// in memory, so a drag started by one request can be dropped by the next.
type Server struct {
	repo    schedule.Repository
	logger  *zap.Logger
	version string

	// mu guards boards and every Board in it.
	mu     sync.Mutex
	boards map[string]*schedule.Board
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and board logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// New creates a Server over repo.
func New(repo schedule.Repository, opts ...Option) *Server {
	s := &Server{
		repo:    repo,
		logger:  zap.NewNop(),
		version: "dev",
		boards:  make(map[string]*schedule.Board),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the gin engine with all routes registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))
	s.setupRoutes(r)
	return r
}

func (s *Server) setupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/days", s.handleListDays)

		day := api.Group("/days/:day")
		day.GET("/schedule", s.handleSchedule)
		day.PUT("/roster", s.handleReplaceRoster)
		day.POST("/drag", s.handleDrag)
		day.DELETE("/drag", s.handleCancelDrag)
		day.POST("/drop", s.handleDrop)
		day.POST("/move", s.handleMove)
		day.PUT("/instructors/:index", s.handleSetInstructor)
		day.POST("/save", s.handleSave)
		day.POST("/reset", s.handleReset)
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// board returns the cached board for day, opening it on first use.
// The caller must hold s.mu.
func (s *Server) board(ctx context.Context, day string) (*schedule.Board, error) {
	if b, ok := s.boards[day]; ok {
		return b, nil
	}
	b, err := schedule.Open(ctx, s.repo, day, schedule.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.boards[day] = b
	return b, nil
}

// withBoard resolves the :day parameter and runs fn on its board under the
// server lock. Errors returned by fn are written as JSON.
func (s *Server) withBoard(c *gin.Context, fn func(day string, b *schedule.Board) error) {
	day, err := dayutil.Normalize(c.Param("day"))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.board(c.Request.Context(), day)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	if err := fn(day, b); err != nil {
		writeError(c, s.logger, err)
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
