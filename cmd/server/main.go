package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/contentcraft/contentcraft-api/cmd"
	"github.com/contentcraft/contentcraft-api/internal/analytics"
	"github.com/contentcraft/contentcraft-api/internal/config"
	"github.com/contentcraft/contentcraft-api/internal/gateway"
	"github.com/contentcraft/contentcraft-api/internal/platform/logger"
	"github.com/contentcraft/contentcraft-api/internal/platform/otel"
	"github.com/contentcraft/contentcraft-api/internal/ratelimit"
	"github.com/contentcraft/contentcraft-api/internal/server"
	"github.com/contentcraft/contentcraft-api/internal/server/validator"
	"github.com/contentcraft/contentcraft-api/internal/store/sqlite"

	// Import providers to trigger init() registration
	_ "github.com/contentcraft/contentcraft-api/internal/llm/cloudflare"
	_ "github.com/contentcraft/contentcraft-api/internal/llm/gemini"
	_ "github.com/contentcraft/contentcraft-api/internal/llm/openrouter"
)

func main() {
	logger.Initialize(logger.DefaultConfig())
	defer logger.Sync()
	log := logger.Get()

	cmd.CheckForUpdates()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	shutdownTracer, err := otel.InitTracer("contentcraft-api", log, os.Stdout)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	validator.InitValidator()

	repo, err := sqlite.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ingestor := analytics.NewIngestor(log, repo)
	ingestor.Start(ctx)
	defer ingestor.Stop()

	var counter ratelimit.Counter = ratelimit.NewMemoryCounter()
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, falling back to in-memory counter", zap.Error(err))
		} else {
			counter = ratelimit.NewRedisCounter(client)
		}
	}
	limiter := ratelimit.NewLimiter(counter, cfg.RateLimit.HourlyCeiling)

	provider, err := gateway.BootstrapProvider(cfg, log)
	if err != nil {
		log.Fatal("failed to bootstrap provider", zap.Error(err))
	}

	service := gateway.NewService(log, cfg, provider, limiter, ingestor)
	analyticsSvc := analytics.NewService(repo)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.New(cfg, log, service, analyticsSvc).Handler(),
	}

	go func() {
		log.Info("starting contentcraft api",
			zap.String("port", cfg.Server.Port),
			zap.String("provider", cfg.Provider),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}
}
