package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/archipelago-data-aggregation/internal/api/http"
	"github.com/i474232898/archipelago-data-aggregation/internal/config"
	"github.com/i474232898/archipelago-data-aggregation/internal/dashboard"
	"github.com/i474232898/archipelago-data-aggregation/internal/freshness"
	"github.com/i474232898/archipelago-data-aggregation/internal/logger"
	"github.com/i474232898/archipelago-data-aggregation/internal/providers"
	"github.com/i474232898/archipelago-data-aggregation/internal/scheduler"
	"github.com/i474232898/archipelago-data-aggregation/internal/store"
)

func main() {
	log := logger.WithComponent("main")

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Durable store for cached payloads.
	medium, err := store.Open(ctx, store.Options{
		Backend:    cfg.StoreBackend,
		Dir:        cfg.StoreDir,
		RedisURL:   cfg.RedisURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer medium.Close()

	// Shared HTTP client for upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var waterFile *providers.WaterFileSource
	if cfg.WaterCutsFile != "" {
		waterFile = providers.NewWaterFileSource(cfg.WaterCutsFile)
	}

	fetchers := dashboard.HTTPFetchers(providers.Options{
		BaseURL: cfg.UpstreamBaseURL,
		Client:  httpClient,
		Backoff: providers.DefaultBackoff(),
	}, waterFile)

	service := dashboard.New(dashboard.Options{
		Policy:           freshness.NewPolicy(cfg.CacheKeyPrefix, cfg.Windows, time.Now()),
		Medium:           medium,
		Fetchers:         fetchers,
		AlertLabels:      cfg.AirAlertLabels,
		ForecastCommunes: cfg.ForecastCommunes,
		WaterFile:        waterFile,
		Now:              func() time.Time { return time.Now().In(cfg.Location) },
	})

	if err := service.Start(ctx); err != nil {
		log.Fatalf("failed to start dashboard service: %v", err)
	}

	// Periodic refresh, one job per category.
	var jobs []scheduler.Job
	for _, cat := range service.Categories() {
		jobs = append(jobs, scheduler.Job{Category: cat, Interval: cfg.Intervals[cat]})
	}
	sched := scheduler.New(service, jobs, cfg.RefreshForce)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "archipelago-data-aggregation",
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
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()
	log.Infof("listening on :%s", cfg.Port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
