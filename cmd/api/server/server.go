package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"task-manager-api/cmd/api/di"
	"task-manager-api/internal/adapter/gin/middleware"
	ginrouter "task-manager-api/internal/adapter/gin/router"
	"task-manager-api/internal/config"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance wired to the container's handlers.
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	router := ginrouter.SetupRouter(
		ginrouter.Handlers{
			Auth: c.AuthHandler,
			User: c.UserHandler,
			Task: c.TaskHandler,
		},
		c.Tokens,
		middleware.RateLimiterConfig{
			Enabled:           cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
		},
		c.RedisClient,
		l,
	)

	addr := ":" + cfg.App.HTTPPort
	l.Info("HTTP API configured", zap.String("address", addr))

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// WithSignal derives a context that is canceled on SIGINT or SIGTERM, so the
// run loop can drain in-flight requests before the process exits. The
// returned stop function releases the signal registration and cancels the
// context.
func WithSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
