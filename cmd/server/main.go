package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tunewave/backend/internal/auth"
	"github.com/tunewave/backend/internal/cache"
	"github.com/tunewave/backend/internal/config"
	"github.com/tunewave/backend/internal/database"
	"github.com/tunewave/backend/internal/handlers"
	"github.com/tunewave/backend/internal/logger"
	"github.com/tunewave/backend/internal/metrics"
	"github.com/tunewave/backend/internal/middleware"
	"github.com/tunewave/backend/internal/recommendations"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("=== Tunewave server starting ===",
		zap.String("environment", cfg.Environment),
	)

	if err := database.Initialize(cfg.DatabaseURL, cfg.Environment); err != nil {
		logger.FatalWithFields("Failed to initialize database", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.FatalWithFields("Failed to run migrations", err)
	}

	// Redis backs the rate limiter only; the server runs without it.
	if cfg.RedisHost != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
		if err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
		}
	}

	metrics.Initialize()

	authService := auth.NewService(database.DB, cfg.JWTSecret, cfg.TokenTTL)
	engine := recommendations.NewEngine(database.DB, cfg.Recommendations)
	h := handlers.NewHandlers(database.DB, authService, engine)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // Configure properly for production
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if err := database.Health(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC(),
			"service":   "tunewave-backend",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register",
				middleware.RedisRateLimitMiddleware("register", 10, time.Minute),
				h.Register)
			authGroup.POST("/login",
				middleware.RedisRateLimitMiddleware("login", 20, time.Minute),
				h.Login)
		}

		protected := api.Group("")
		protected.Use(h.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/me", h.GetMe)
				users.PATCH("/me", h.UpdateMe)
			}

			protected.GET("/tracks", h.SearchTracks)
			protected.GET("/tracks/:id", h.GetTrack)
			protected.GET("/artists", h.ListArtists)
			protected.GET("/artists/:id", h.GetArtist)

			playlists := protected.Group("/playlists")
			{
				playlists.POST("", h.CreatePlaylist)
				playlists.GET("", h.ListPlaylists)
				playlists.GET("/:id", h.GetPlaylist)
				playlists.PATCH("/:id", h.UpdatePlaylist)
				playlists.DELETE("/:id", h.DeletePlaylist)
				playlists.POST("/:id/tracks", h.AddTrackToPlaylist)
				playlists.DELETE("/:id/tracks/:trackID", h.RemoveTrackFromPlaylist)
			}

			stream := protected.Group("/stream")
			{
				stream.POST("/:id/start", h.StartPlayback)
				stream.POST("/stop", h.StopPlayback)
				stream.GET("/history", h.GetPlaybackHistory)
			}

			protected.GET("/recommendations", h.GetRecommendations)

			admin := protected.Group("/admin")
			admin.Use(h.AdminMiddleware())
			{
				admin.GET("/users", h.AdminListUsers)
				admin.PATCH("/users/:id/active", h.AdminSetUserActive)
				admin.POST("/artists", h.AdminCreateArtist)
				admin.POST("/tracks", h.AdminCreateTrack)
				admin.DELETE("/tracks/:id", h.AdminDeleteTrack)
				admin.GET("/audit-logs", h.AdminListAuditLogs)
			}
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("Tunewave backend listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithFields("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorWithFields("Server forced to shutdown", err)
	}

	logger.Log.Info("Server exited")
}
