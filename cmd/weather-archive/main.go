package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/akozlov/weather-archive/internal/api/http"
	"github.com/akozlov/weather-archive/internal/archive"
	"github.com/akozlov/weather-archive/internal/config"
	"github.com/akozlov/weather-archive/internal/logging"
	"github.com/akozlov/weather-archive/internal/metrics"
	"github.com/akozlov/weather-archive/internal/scheduler"
	"github.com/akozlov/weather-archive/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog := logging.New(cfg.AppEnv, cfg.LogLevel, "weather-archive")
	collector := metrics.NewCollector("weather_archive")

	// Load the archive once at startup. An unreadable dataset is fatal.
	started := time.Now()
	series, err := archive.Load(cfg.DatasetPath, cfg.LoadOptions())
	if err != nil {
		appLog.Error("failed to load dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}
	collector.ObservationsLoaded.Set(float64(series.Len()))
	collector.DatasetLoadDuration.Observe(time.Since(started).Seconds())

	first, last := series.Coverage()
	appLog.Info("dataset loaded",
		"path", cfg.DatasetPath,
		"observations", series.Len(),
		"coverage_start", first,
		"coverage_end", last,
		"duration", time.Since(started))

	// The store hands the immutable series to request handlers and lets a
	// reload swap it atomically.
	seriesStore := store.NewSeriesStore(series)
	service := archive.NewService(seriesStore, cfg.Years())

	// Optional periodic dataset reload.
	reloader := scheduler.New(seriesStore, cfg.DatasetPath, cfg.LoadOptions(), cfg.ReloadInterval, appLog, collector)
	if err := reloader.Start(); err != nil {
		appLog.Error("failed to start reloader", "error", err)
		os.Exit(1)
	}
	defer reloader.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-archive",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
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
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-archive",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, service, collector)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLog.Error("fiber server stopped", "error", err)
		}
	}()
	appLog.Info("listening", "port", cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLog.Error("error during shutdown", "error", err)
	}
}
