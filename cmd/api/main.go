package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zenhealth/hospital-analytics/internal/adapters/cache"
	"github.com/zenhealth/hospital-analytics/internal/adapters/database"
	"github.com/zenhealth/hospital-analytics/internal/api/handlers"
	"github.com/zenhealth/hospital-analytics/internal/api/middleware"
	"github.com/zenhealth/hospital-analytics/internal/api/routes"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/clients/postgres"
	redisclient "github.com/zenhealth/hospital-analytics/internal/infrastructure/clients/redis"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/observability"
	"github.com/zenhealth/hospital-analytics/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("hospital-analytics-api", cfg.App.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	// Redis is optional; without it the API serves uncached.
	var cacheMiddleware *middleware.CacheMiddleware
	redisCli, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, response caching disabled")
	} else {
		defer redisCli.Close()
		cacheMiddleware = middleware.NewCacheMiddleware(cache.NewRedisAdapter(redisCli))
	}

	metricsRepo := database.NewMetricsAdapter(pgClient)
	reportRepo := database.NewReportAdapter(pgClient)
	catalogRepo := database.NewCatalogAdapter(pgClient)

	router := routes.NewRouter(
		handlers.NewHealthHandler(pgClient),
		handlers.NewKPIHandler(metricsRepo),
		handlers.NewTrendHandler(metricsRepo),
		handlers.NewComparisonHandler(metricsRepo),
		handlers.NewAlertHandler(metricsRepo),
		handlers.NewCatalogHandler(catalogRepo),
		handlers.NewReportHandler(reportRepo),
		cacheMiddleware,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
