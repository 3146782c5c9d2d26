package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/tripmark/booking-backend/internal/cache"
	"github.com/tripmark/booking-backend/internal/config"
	"github.com/tripmark/booking-backend/internal/database"
	"github.com/tripmark/booking-backend/internal/handlers"
	"github.com/tripmark/booking-backend/internal/middleware"
	"github.com/tripmark/booking-backend/internal/models"
	"github.com/tripmark/booking-backend/internal/services"
	"github.com/tripmark/booking-backend/pkg/jwt"
	"github.com/tripmark/booking-backend/pkg/validator"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting TripMark Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Redis-backed wishlist cache (optional)
	var redisClient *redis.Client
	var wishlistCache *cache.WishlistCache
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithError(err).Warn("Redis unreachable, continuing without wishlist cache")
			redisClient = nil
		} else {
			wishlistCache = cache.NewWishlistCache(redisClient)
			logger.Info("Wishlist cache enabled")
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Initialize repositories
	userRepo := database.NewUserRepository(db)
	packageRepo := database.NewPackageRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	feedbackRepo := database.NewFeedbackRepository(db)
	wishlistRepo := database.NewWishlistRepository(db)
	auditRepo := database.NewAuditLogRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	emailValidator := validator.NewEmailValidator()

	authService := services.NewAuthService(userRepo, jwtService, emailValidator, cfg.Security.BcryptCost)
	bookingService := services.NewBookingService(bookingRepo, packageRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, bookingRepo, packageRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, wishlistCache, logger)

	var auditService *services.AuditService
	if cfg.Security.EnableAuditLog {
		auditService = services.NewAuditService(auditRepo, logger)
	}

	logger.Info("Services initialized")

	// Initialize handlers
	userHandler := handlers.NewUserHandler(authService, auditService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, auditService, logger)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, logger)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService, logger)
	packageHandler := handlers.NewPackageHandler(packageRepo, logger)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	api := router.Group("/api")
	{
		// Public routes
		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.GET("/packages", packageHandler.List)
		api.GET("/packages/:id", packageHandler.Get)

		// Admin approval gate
		admin := api.Group("/user")
		admin.Use(middleware.AuthMiddleware(jwtService, logger), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/pending-requests", userHandler.PendingRequests)
			admin.PUT("/approve-user/:id", userHandler.ApproveUser)
			admin.DELETE("/reject-user/:id", userHandler.RejectUser)
		}

		// Booking lifecycle
		bookings := api.Group("/bookings")
		bookings.Use(middleware.AuthMiddleware(jwtService, logger))
		{
			bookings.POST("/create", middleware.RequireRole(models.RoleTraveler), bookingHandler.Create)
			bookings.GET("/my-bookings", middleware.RequireRole(models.RoleTraveler), bookingHandler.MyBookings)
			bookings.PUT("/update-status", bookingHandler.UpdateStatus)
			bookings.GET("/guide-assignments", middleware.RequireRole(models.RoleGuide), bookingHandler.GuideAssignments)
			bookings.GET("/all", bookingHandler.All)
		}

		// Feedback channels
		feedback := api.Group("/feedback")
		feedback.Use(middleware.AuthMiddleware(jwtService, logger))
		{
			feedback.POST("/add", middleware.RequireRole(models.RoleTraveler), feedbackHandler.Add)
			feedback.POST("/guide-add", middleware.RequireRole(models.RoleTraveler), feedbackHandler.GuideAdd)
			feedback.GET("/agent/:agentId", feedbackHandler.ForAgent)
			feedback.GET("/my-reviews", middleware.RequireRole(models.RoleGuide), feedbackHandler.MyReviews)
			feedback.DELETE("/delete/:id", feedbackHandler.Delete)
		}

		// Wishlist
		wishlist := api.Group("/wishlist")
		wishlist.Use(middleware.AuthMiddleware(jwtService, logger), middleware.RequireRole(models.RoleTraveler))
		{
			wishlist.POST("/toggle", wishlistHandler.Toggle)
			wishlist.GET("/my-wishlist", wishlistHandler.MyWishlist)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID
			fields["role"] = userCtx.Role
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
