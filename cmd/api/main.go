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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stocklens/stocklens/internal/cache"
	"github.com/stocklens/stocklens/internal/config"
	"github.com/stocklens/stocklens/internal/data"
	"github.com/stocklens/stocklens/internal/logger"
	"github.com/stocklens/stocklens/internal/middleware"
	"github.com/stocklens/stocklens/internal/models"
	"github.com/stocklens/stocklens/internal/scheduler"
	routes "github.com/stocklens/stocklens/internal/server"
	"github.com/stocklens/stocklens/internal/services"
	"github.com/stocklens/stocklens/internal/services/quotes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log.Info().Str("statsProvider", cfg.StatsProvider).Msg("Starting stocklens")

	// One cache instance per data source; the TTLs differ because
	// prices go stale in seconds while fundamentals last hours.
	priceCache := cache.New[float64](cfg.PriceTTL, cfg.PriceSweep)
	defer priceCache.Stop()
	statsCache := cache.New[models.MarketData](cfg.StatsTTL, cfg.StatsSweep)
	defer statsCache.Stop()

	priceProvider := quotes.NewYahooClient(cfg.YahooBaseURL, cfg.ProviderTimeout)

	var statsProvider quotes.StatsProvider
	if cfg.StatsProvider == config.StatsProviderStatic {
		staticStats, err := quotes.NewStaticStats(cfg.StatsDBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open static stats database")
		}
		defer staticStats.Close()
		statsProvider = staticStats
	} else {
		statsProvider = quotes.NewGoogleClient(cfg.GoogleBaseURL, cfg.ProviderTimeout)
	}

	priceService := services.NewPriceService(priceProvider, priceCache, cfg.ProviderTimeout, log)
	statsService := services.NewStatsService(statsProvider, statsCache, cfg.ProviderTimeout, log)
	snapshotService := services.NewSnapshotService(priceService, statsService, log)

	defaults := data.DefaultHoldings()

	// Background refresh on the UI cadence keeps the caches warm.
	sched := scheduler.New(log)
	refreshJob := services.NewRefreshJob(snapshotService, defaults, log)
	if err := sched.Every(cfg.RefreshInterval, refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register refresh job")
	}
	sched.Start()
	defer sched.Stop()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.AllowedOrigin}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	handlers := middleware.NewSnapshotHandlers(snapshotService, defaults, priceCache, statsCache, log)
	routes.RegisterRoutes(router, handlers)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()
	log.Info().Int("port", cfg.Port).Msg("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server stopped")
}
