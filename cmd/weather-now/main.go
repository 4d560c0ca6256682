package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kelvins/geocoder"

	httpapi "github.com/i474232898/weather-now/internal/api/http"
	"github.com/i474232898/weather-now/internal/config"
	"github.com/i474232898/weather-now/internal/location"
	"github.com/i474232898/weather-now/internal/logging"
	"github.com/i474232898/weather-now/internal/metrics"
	"github.com/i474232898/weather-now/internal/presentation"
	"github.com/i474232898/weather-now/internal/scheduler"
	"github.com/i474232898/weather-now/internal/screen"
	"github.com/i474232898/weather-now/internal/store"
	"github.com/i474232898/weather-now/internal/weather"
	"github.com/i474232898/weather-now/internal/weather/providers"
)

const appName = "weather-now"

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logging.New(os.Stdout, cfg.App.Env, cfg.Log.Level, appName)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	slog.SetDefault(lg)

	if err := run(cfg, lg); err != nil {
		lg.Error("weather-now stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, lg *slog.Logger) error {
	// A zero timeout keeps the request unbounded.
	httpClient := &http.Client{
		Timeout: cfg.Weather.Timeout,
	}

	m := metrics.New()
	pipeline := weather.NewPipeline(
		providers.NewWeatherstackProvider(httpClient, cfg.Weather.BaseURL),
		weather.WithRecorder(m),
		weather.WithLogger(lg),
	)

	screens := store.NewMemoryStore()
	source, push := newSource(cfg.Location, lg)

	controller := screen.NewController(screen.Deps{
		Source:    source,
		Pipeline:  pipeline,
		Presenter: presentation.NewPresenter(cfg.Display.Locale),
		Store:     screens,
		KeyFile:   cfg.Weather.KeyFile,
		Logger:    lg,
	})
	defer controller.Close()

	sched := scheduler.New(controller, lg)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	// A missing API key is fatal at startup.
	if err := <-sched.Done(); errors.Is(err, config.ErrAPIKeyMissing) {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	routes := httpapi.Routes{
		Screens:    screens,
		Foreground: controller,
		Metrics:    m.Handler(),
	}
	if push != nil {
		routes.Fixes = push
	}
	httpapi.RegisterRoutes(app, routes)

	listenErr := make(chan error, 1)
	go func() {
		lg.Info("starting server", "addr", cfg.ServerAddr(), "location_mode", cfg.Location.Mode)
		listenErr <- app.Listen(cfg.ServerAddr())
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-listenErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Warn("error during shutdown", "error", err)
	}
	return nil
}

// newSource builds the configured location source. The second result is
// non-nil only for the host-driven push source.
func newSource(cfg config.LocationConfig, lg *slog.Logger) (location.Source, *location.PushSource) {
	switch cfg.Mode {
	case config.LocationStatic:
		return location.NewStaticSource(cfg.Coordinate()), nil
	case config.LocationGeocode:
		return location.NewGeocodedSource(cfg.GeocoderKey, geocoder.Address{
			Street:  cfg.Street,
			City:    cfg.City,
			State:   cfg.State,
			Country: cfg.Country,
		}, lg), nil
	default:
		push := location.NewPushSource(cfg.Authorized, lg)
		return push, push
	}
}
