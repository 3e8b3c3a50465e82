// Package server is the HTTP backend the chat client talks to.
//
// It exposes POST /api/chat and GET /api/health and keeps a single thread
// shared by every caller.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/diogo/agentchat/internal/agent"
	"github.com/diogo/agentchat/internal/models"
)

const (
	shutdownTimeout = 30 * time.Second
	maxRequestBytes = 1 << 20
)

// Server answers chat requests with an agent
type Server struct {
	agent         agent.Agent
	thread        *agent.Thread
	logger        *slog.Logger
	allowedOrigin string
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request and error logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAllowedOrigin sets the CORS origin. Empty or "*" allows any origin.
func WithAllowedOrigin(origin string) Option {
	return func(s *Server) {
		s.allowedOrigin = origin
	}
}

// WithThread replaces the thread created by New
func WithThread(t *agent.Thread) Option {
	return func(s *Server) {
		if t != nil {
			s.thread = t
		}
	}
}

// New creates a Server with a fresh thread
func New(a agent.Agent, opts ...Option) *Server {
	s := &Server{
		agent:         a,
		thread:        agent.NewThread(),
		logger:        slog.Default(),
		allowedOrigin: "*",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Thread returns the conversation thread served by s
func (s *Server) Thread() *agent.Thread {
	return s.thread
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors(s.allowedOrigin))

	r.Post(models.EndpointChat, s.handleChat)
	r.Get(models.EndpointHealth, s.handleHealth)

	return r
}

// Run listens on addr and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully, letting in-flight runs finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server_listening",
			"addr", ln.Addr().String(),
			"agent", s.agent.Name(),
			"thread_id", s.thread.ID(),
		)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server_shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
