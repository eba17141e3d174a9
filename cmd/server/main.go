package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/im-vetri/Useful-APIs/internal/adapters/cache"
	"github.com/im-vetri/Useful-APIs/internal/adapters/providers"
	"github.com/im-vetri/Useful-APIs/internal/api"
	"github.com/im-vetri/Useful-APIs/internal/config"
	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/platform/db"
	"github.com/im-vetri/Useful-APIs/internal/platform/logging"
	"github.com/im-vetri/Useful-APIs/internal/ports"
	"github.com/im-vetri/Useful-APIs/internal/services"
)

// main is the application composition root.
// It wires the provider registry and cache backend behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	distanceCache, cleanup, err := buildCache(cfg)
	if err != nil {
		logger.Fatal("init cache backend", zap.Error(err))
	}
	if cleanup != nil {
		defer cleanup()
	}

	base := domain.Options{
		GoogleAPIKey: cfg.GoogleAPIKey,
		ORSAPIKey:    cfg.ORSAPIKey,
		OSRMBaseURL:  cfg.OSRMBaseURL,
	}

	engine := services.NewEngine(logger, providers.NewRegistry(), distanceCache)
	router := api.NewRouter(logger, engine, base)

	// Timeouts are tuned for cold-cache matrix calls (external API latency).
	logger.Info("server listening",
		zap.String("addr", ":"+cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("cache_backend", cfg.CacheBackend))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}

// buildCache picks the distance cache backend. "none" disables caching and
// keeps every resolution stateless.
func buildCache(cfg config.Config) (ports.DistanceCache, func(), error) {
	switch cfg.CacheBackend {
	case "postgres":
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSchema(context.Background(), sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return cache.NewPostgresDistanceCache(sqlDB), func() { sqlDB.Close() }, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisDistanceCache(rdb, cfg.CacheTTL), func() { rdb.Close() }, nil

	case "none":
		return nil, nil, nil
	}

	return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
}
