// Package main is the entry point for the Top Notes catalog server.
// It serves the public storefront catalog and the admin API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/topnotes/catalog-api/internal/app"
	"github.com/topnotes/catalog-api/internal/cache/memory"
	"github.com/topnotes/catalog-api/internal/cache/redis"
	"github.com/topnotes/catalog-api/internal/config"
	"github.com/topnotes/catalog-api/internal/handler"
	"github.com/topnotes/catalog-api/internal/ratelimit"
	"github.com/topnotes/catalog-api/internal/repository"
	"github.com/topnotes/catalog-api/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Logging)
	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting Top Notes catalog server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Attempt counter store: Redis when enabled, in-process otherwise.
	var attemptCache repository.Cache
	if cfg.Redis.Enabled {
		redisCache, err := redis.NewCache(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisCache.Close()
		attemptCache = redisCache
	} else {
		memCache := memory.NewCache()
		defer memCache.Stop()
		attemptCache = memCache
	}

	imageStore, err := app.OpenImageStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize image storage")
	}

	limiter := ratelimit.NewLimiter(attemptCache, cfg.RateLimit, logger)

	authService := service.NewAuthService(store.Admins, store.Tokens, limiter, cfg.Auth.DefaultAdminName, logger)
	catalogService := service.NewCatalogService(store.Perfumes, cfg.Catalog.PublicPageSize, cfg.Catalog.AdminPageSize, logger)
	settingsService := service.NewSettingsService(store.Settings, logger)
	imageService := service.NewImageService(imageStore, cfg.Storage.MaxUploadSize, logger)

	router := handler.NewRouter(handler.RouterConfig{
		Catalog: handler.NewCatalogHandler(catalogService, logger),
		Admin: handler.NewAdminHandler(handler.AdminHandlerConfig{
			Auth:      authService,
			Catalog:   catalogService,
			Settings:  settingsService,
			Images:    imageService,
			MaxUpload: cfg.Storage.MaxUploadSize,
			Logger:    logger,
		}),
		Auth:   authService,
		Logger: logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			logger.Info().Str("addr", metricsServer.Addr).Str("path", cfg.Metrics.Path).Msg("metrics server listening")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown failed")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown failed")
		}
	}

	logger.Info().Msg("shutdown complete")
}
