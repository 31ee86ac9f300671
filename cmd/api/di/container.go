package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"task-manager-api/cmd/api/infrastructure"
	"task-manager-api/internal/adapter/cache"
	"task-manager-api/internal/adapter/db/postgres"
	ginhandler "task-manager-api/internal/adapter/gin/handler"
	"task-manager-api/internal/adapter/repository/cached"
	"task-manager-api/internal/config"
	authuc "task-manager-api/internal/usecase/auth"
	taskuc "task-manager-api/internal/usecase/task"
	useruc "task-manager-api/internal/usecase/user"
	"task-manager-api/pkg/auth"
	redisclient "task-manager-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Tokens      *auth.TokenService
	AuthHandler *ginhandler.AuthHandler
	UserHandler *ginhandler.UserHandler
	TaskHandler *ginhandler.TaskHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize database
	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis client (nil when disabled)
	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Initialize auth primitives
	hasher := auth.NewPasswordService()
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize repositories, with a cache-aside layer over users when
	// Redis is available
	var userRepo useruc.Repository = postgres.NewUserRepoPG(db, l)
	if rdb != nil {
		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		userRepo = cached.NewCachedUserRepository(userRepo, userCache, l)
	}
	taskRepo := postgres.NewTaskRepoPG(db, l)

	// Initialize use cases
	authUC := authuc.New(userRepo, hasher, tokens, l)
	userUC := useruc.New(userRepo, hasher, l)
	taskUC := taskuc.New(taskRepo, l)

	// Initialize Gin handlers
	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		Tokens:      tokens,
		AuthHandler: ginhandler.NewAuthHandler(authUC, l),
		UserHandler: ginhandler.NewUserHandler(userUC, l),
		TaskHandler: ginhandler.NewTaskHandler(taskUC, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
