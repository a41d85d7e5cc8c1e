package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/balloon-playback/internal/api/http"
	"github.com/i474232898/balloon-playback/internal/balloon"
	"github.com/i474232898/balloon-playback/internal/balloon/sources"
	"github.com/i474232898/balloon-playback/internal/config"
	"github.com/i474232898/balloon-playback/internal/logging"
	"github.com/i474232898/balloon-playback/internal/playback"
	"github.com/i474232898/balloon-playback/internal/render"
	"github.com/i474232898/balloon-playback/internal/scheduler"
	"github.com/i474232898/balloon-playback/internal/weather"
	"github.com/i474232898/balloon-playback/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info", "console")
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.DotEnvErr != nil {
		logger.Info().Err(cfg.DotEnvErr).Msg("no .env file loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Shared HTTP client for snapshot and wind calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Acquire the 24h window, one hour after another.
	fetcher := balloon.NewFetcher(sources.NewHTTPSource(httpClient, cfg.SnapshotURLTemplate), cfg.SnapshotHours, logger)
	series, err := fetcher.FetchSeries(ctx)
	if err != nil {
		if errors.Is(err, balloon.ErrNoSnapshots) {
			logger.Error().Msg("no balloon snapshots available; nothing to render")
			return
		}
		logger.Fatal().Err(err).Msg("snapshot acquisition aborted")
	}

	tracks := balloon.AssembleTracks(series)
	logger.Info().Int("tracks", len(tracks)).Int("points", tracks.PointCount()).Msg("tracks assembled")

	var enricher playback.Enricher
	if cfg.WindEnabled {
		prov, err := providers.New(cfg.WindProvider, httpClient, providers.Keys{
			OpenWeather: cfg.OpenWeatherAPIKey,
			WeatherAPI:  cfg.WeatherAPIKey,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure wind provider")
		}
		enricher = weather.NewEnricher(prov, cfg.WindConcurrency, logger)
		logger.Info().Str("provider", prov.Name()).Msg("wind enrichment enabled")
	}

	surface := render.NewMemorySurface()
	ctrl := playback.NewController(series, tracks, surface, enricher, logger)
	if err := ctrl.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to render initial hour")
	}

	sched := scheduler.New(ctrl, cfg.AutoplayInterval, logger)
	if err := sched.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start autoplay")
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "balloon-playback",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout + 10*time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "balloon-playback",
			"snapshots": len(series),
			"hours":     series.Hours(),
		})
	})

	httpapi.RegisterRoutes(app, ctrl, surface)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error().Err(err).Msg("fiber server stopped")
		}
	}()
	logger.Info().Str("port", cfg.Port).Msg("render surface listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}
}
