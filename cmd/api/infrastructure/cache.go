package infrastructure

import (
	"fmt"

	"go.uber.org/zap"

	"task-manager-api/internal/config"
	redisclient "task-manager-api/pkg/redis"
)

// NewRedisClient creates the Redis client when caching is enabled.
// Returns (nil, nil) when Redis is disabled; callers treat a nil client
// as "no cache".
func NewRedisClient(cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	if !cfg.Redis.Enabled {
		l.Info("Redis disabled, running without cache")
		return nil, nil
	}

	client, err := redisclient.NewClient(redisclient.Config{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  cfg.Redis.MaxRetries,
		PoolSize:    cfg.Redis.PoolSize,
		MinIdleConn: cfg.Redis.MinIdleConn,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
