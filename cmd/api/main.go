package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/userboard/userboard/docs" // Swagger docs (generated)
	"github.com/userboard/userboard/internal/auth"
	"github.com/userboard/userboard/internal/config"
	"github.com/userboard/userboard/internal/database"
	httpServer "github.com/userboard/userboard/internal/http"
	"github.com/userboard/userboard/internal/logging"
	"github.com/userboard/userboard/internal/stats"
	"github.com/userboard/userboard/internal/user"
)

// @title           Userboard API
// @version         1.0
// @description     A user-account web application: sign-up, login, and a token-protected user dashboard.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Mongo connection pool; the connection itself is established lazily on
	// first use and revalidated with a ping before reuse
	pool := database.NewPool(cfg.Mongo.URI, cfg.Mongo.Database, logger)
	defer func() {
		if err := pool.Close(context.Background()); err != nil {
			logger.Warn("failed to close mongo pool", "error", err.Error())
		}
	}()

	// Redis backs the stats cache only; run without it if unreachable
	var statsCache *stats.Cache
	if redisClient, err := initRedis(cfg.Redis); err != nil {
		logger.Warn("redis unavailable, stats caching disabled", "error", err.Error())
	} else {
		defer redisClient.Close()
		statsCache = stats.NewCache(redisClient, cfg.Redis.StatsTTL)
	}

	// Initialize repository and services
	userRepo := user.NewRepository(pool)

	tokenService, err := auth.NewTokenService(cfg.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	authService := auth.NewService(userRepo, auth.NewHasher(), tokenService)
	statsService := stats.NewService(userRepo, statsCache, logger)

	// Initialize HTTP handlers
	authHandler := auth.NewHandler(authService, logger)
	userHandler := user.NewHandler(userRepo, logger)
	statsHandler := stats.NewHandler(statsService, logger)
	authMiddleware := auth.NewMiddleware(tokenService)

	// Initialize router
	router := httpServer.NewRouter(cfg, authHandler, userHandler, statsHandler, authMiddleware, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
