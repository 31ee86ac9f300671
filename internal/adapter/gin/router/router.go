package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-manager-api/internal/adapter/gin/handler"
	"task-manager-api/internal/adapter/gin/middleware"
	"task-manager-api/pkg/auth"
	"task-manager-api/pkg/logger"
	redisclient "task-manager-api/pkg/redis"
)

// Handlers bundles the HTTP handlers the router mounts.
type Handlers struct {
	Auth *handler.AuthHandler
	User *handler.UserHandler
	Task *handler.TaskHandler
}

// SetupRouter configures and returns a Gin router with all routes and middleware.
func SetupRouter(
	h Handlers,
	tokens *auth.TokenService,
	rateLimit middleware.RateLimiterConfig,
	redisClient *redisclient.Client,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(logger.RequestID())
	router.Use(logger.Recovery(log))
	router.Use(logger.Middleware(log))
	if redisClient != nil {
		router.Use(middleware.RateLimiter(rateLimit, redisClient.Client, log))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "task-manager-api",
		})
	})

	requireAuth := middleware.RequireAuth(tokens, log)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", h.Auth.Register)
			authRoutes.POST("/login", h.Auth.Login)
			authRoutes.GET("/profile", requireAuth, h.Auth.Profile)
		}

		userRoutes := api.Group("/user")
		{
			userRoutes.POST("", h.User.CreateUser)
			userRoutes.POST("/email", h.User.GetUserByEmail)
			userRoutes.GET("", requireAuth, h.User.ListUsers)
			userRoutes.GET("/:id", requireAuth, h.User.GetUser)
		}

		taskRoutes := api.Group("/task", requireAuth)
		{
			taskRoutes.GET("", h.Task.ListTasks)
			taskRoutes.GET("/user", h.Task.ListMyTasks)
			taskRoutes.GET("/:id", h.Task.GetTask)
			taskRoutes.POST("", h.Task.CreateTask)
			taskRoutes.PUT("/:id", h.Task.UpdateTask)
			taskRoutes.DELETE("/:id", h.Task.DeleteTask)
		}
	}

	return router
}
