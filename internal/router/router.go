// Package router wires repositories, services and handlers into the gin
// engine and declares the HTTP surface.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/client"
	"taskboard-api/internal/config"
	"taskboard-api/internal/handler"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/presence"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/service"
)

// Config carries everything Setup needs to assemble the application
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	S3Client       client.S3ClientInterface
	Mailer         client.Mailer
	JWT            config.JWTConfig
	BasePath       string
	AllowedOrigins []string
}

// Setup builds the gin engine with all routes registered
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	boardRepo := repository.NewBoardRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	notificationRepo := repository.NewNotificationRepository(cfg.DB)

	// Services
	authService := service.NewAuthService(userRepo, notificationRepo, cfg.S3Client, cfg.Mailer, cfg.JWT, cfg.Logger)
	boardService := service.NewBoardService(boardRepo, taskRepo, userRepo, notificationRepo, cfg.Mailer, cfg.Metrics, cfg.Logger)
	taskService := service.NewTaskService(taskRepo, boardRepo, cfg.Metrics, cfg.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	boardHandler := handler.NewBoardHandler(boardService)
	taskHandler := handler.NewTaskHandler(taskService)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)
	wsHandler := handler.NewWSHandler(presence.NewTracker(), cfg.Redis, cfg.Metrics, cfg.JWT.Secret, cfg.Logger)

	// Health and metrics at root (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.BasePath)
	{
		// Health under base path for ingress probes
		if cfg.BasePath != "" {
			api.GET("/health", healthHandler.Health)
			api.GET("/ready", healthHandler.Ready)
			api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		}

		// Websocket authenticates via query token inside the handler
		api.GET("/ws/presence", wsHandler.HandleWebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google-sync", authHandler.GoogleSync)

			authed := auth.Group("")
			authed.Use(middleware.Auth(cfg.JWT.Secret))
			{
				authed.PUT("/update-dp", authHandler.UpdateProfilePicture)
				authed.GET("/notifications", authHandler.GetNotifications)
				authed.PUT("/notifications/read", authHandler.MarkNotificationsRead)
			}
		}

		boards := api.Group("/boards")
		boards.Use(middleware.Auth(cfg.JWT.Secret))
		{
			boards.GET("", boardHandler.GetBoards)
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:boardId", boardHandler.GetBoard)
			boards.DELETE("/:boardId", boardHandler.DeleteBoard)
			boards.PUT("/:boardId/join", boardHandler.JoinBoard)
			boards.PUT("/:boardId/leave", boardHandler.LeaveBoard)
			boards.DELETE("/:boardId/members/:userId", boardHandler.KickMember)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.Auth(cfg.JWT.Secret))
		{
			tasks.GET("", taskHandler.GetBoardTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/my-tasks", taskHandler.GetMyTasks)
			tasks.GET("/stats", taskHandler.GetStats)
			tasks.PUT("/:taskId", taskHandler.UpdateTask)
			tasks.PUT("/:taskId/move", taskHandler.MoveTask)
			tasks.DELETE("/:taskId", taskHandler.DeleteTask)
		}
	}

	return r
}
