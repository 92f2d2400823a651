package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khapung280/RENTNEST-sub000/internal/auth"
	"github.com/khapung280/RENTNEST-sub000/internal/config"
	"github.com/khapung280/RENTNEST-sub000/internal/handler"
	"github.com/khapung280/RENTNEST-sub000/internal/logger"
	"github.com/khapung280/RENTNEST-sub000/internal/middleware"
	"github.com/khapung280/RENTNEST-sub000/internal/model"
	"github.com/khapung280/RENTNEST-sub000/internal/repository"
	"github.com/khapung280/RENTNEST-sub000/internal/scheduler"
	"github.com/khapung280/RENTNEST-sub000/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zlog.Sync()

	zlog.Info("starting rentnest",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit))

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	db, err := repository.Connect(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	zlog.Info("connected to PostgreSQL database")

	// Initialize repositories
	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)
	conversationRepo := repository.NewConversationRepository(db)

	// Initialize services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours)
	authService := service.NewAuthService(userRepo, tokens, zlog)
	searchService := service.NewSearchService(propertyRepo, cfg.Search.DefaultLimit, cfg.Search.DefaultDuration, zlog)
	propertyService := service.NewPropertyService(propertyRepo, cfg.Search.DefaultDuration, zlog)
	bookingService := service.NewBookingService(bookingRepo, propertyRepo, zlog)
	assistantService := service.NewAssistantService(searchService, propertyRepo, cfg.Search.ChatResultLimit, zlog)
	chatService := service.NewChatService(assistantService, conversationRepo, zlog)

	zlog.Info("services initialized")

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	searchHandler := handler.NewSearchHandler(searchService)
	propertyHandler := handler.NewPropertyHandler(propertyService, searchService, cfg.Search.ChatResultLimit)
	bookingHandler := handler.NewBookingHandler(bookingService)
	chatHandler := handler.NewChatHandler(chatService)
	adminHandler := handler.NewAdminHandler(propertyService, cfg.Search.MaxLimit)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "rentnest",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Public endpoints
		apiV1.POST("/auth/register", authHandler.Register)
		apiV1.POST("/auth/login", authHandler.Login)

		apiV1.POST("/search", searchHandler.Search)
		apiV1.GET("/properties", propertyHandler.List)
		apiV1.GET("/properties/:id", propertyHandler.Get)
		apiV1.GET("/properties/:id/similar", propertyHandler.Similar)
		apiV1.GET("/properties/:id/availability", bookingHandler.Availability)

		// Authenticated endpoints
		authed := apiV1.Group("")
		authed.Use(middleware.Auth(tokens))
		{
			authed.GET("/auth/me", authHandler.Me)

			authed.POST("/chat", chatHandler.Chat)
			authed.GET("/chat/history", chatHandler.History)

			authed.POST("/bookings", bookingHandler.Create)
			authed.GET("/bookings", bookingHandler.ListOwn)

			// Owner endpoints
			owner := authed.Group("/owner")
			owner.Use(middleware.RequireRole(model.RoleOwner, model.RoleAdmin))
			{
				owner.POST("/properties", propertyHandler.Create)
				owner.PUT("/properties/:id", propertyHandler.Update)
				owner.GET("/properties", propertyHandler.ListOwn)
				owner.GET("/bookings", bookingHandler.ListForOwner)
				owner.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
			}

			// Admin endpoints
			admin := authed.Group("/admin")
			admin.Use(middleware.RequireRole(model.RoleAdmin))
			{
				admin.GET("/properties/pending", adminHandler.ListPending)
				admin.POST("/properties/:id/approve", adminHandler.Approve)
				admin.POST("/properties/:id/reject", adminHandler.Reject)
				admin.POST("/properties/:id/verify", adminHandler.SetVerified)
			}
		}
	}

	// Background jobs
	sched := scheduler.NewScheduler(bookingService, cfg, zlog)
	if err := sched.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	zlog.Info("starting server", zap.String("addr", addr))

	go func() {
		if err := router.Run(addr); err != nil {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
}
