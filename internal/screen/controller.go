package screen

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/weather-now/internal/config"
	"github.com/i474232898/weather-now/internal/location"
	"github.com/i474232898/weather-now/internal/presentation"
	"github.com/i474232898/weather-now/internal/weather"
)

// Store receives the screens the controller publishes.
type Store interface {
	Save(screen presentation.Screen)
}

// Controller drives the weather screen: each Appear is one foreground cycle
// that shows the loading screen, waits for the first location fix and
// replaces the screen with the fetched conditions.
type Controller struct {
	source    location.Source
	pipeline  *weather.Pipeline
	presenter *presentation.Presenter
	store     Store
	keyFile   string
	loadKey   func(path string) (string, error)
	logger    *slog.Logger

	// cycle numbers foreground cycles; only the latest one may act on a fix.
	mu    sync.Mutex
	cycle uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Deps groups the collaborators of a Controller.
type Deps struct {
	Source    location.Source
	Pipeline  *weather.Pipeline
	Presenter *presentation.Presenter
	Store     Store
	KeyFile   string
	Logger    *slog.Logger
}

func NewController(d Deps) *Controller {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		source:    d.Source,
		pipeline:  d.Pipeline,
		presenter: d.Presenter,
		store:     d.Store,
		keyFile:   d.KeyFile,
		loadKey:   config.LoadAPIKey,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Appear starts a foreground cycle and returns its session id. The API key
// is read first; when it is missing no screen is published and the error
// wraps config.ErrAPIKeyMissing.
//
// The fetch itself happens later, on the first location fix. Updates are
// stopped as soon as that fix arrives. A fix delivered to the callback of an
// earlier cycle is ignored and leaves the current subscription running.
func (c *Controller) Appear(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	apiKey, err := c.loadKey(c.keyFile)
	if err != nil {
		return "", err
	}

	session := uuid.NewString()
	logger := c.logger.With("session", session)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cycle++
	cycle := c.cycle

	c.store.Save(c.presenter.Loading(session))
	logger.Info("weather screen appeared", "weekday", c.presenter.Weekday())

	c.source.StopUpdates()
	c.source.RequestAuthorization()
	c.source.StartUpdates(func(fix location.Coordinate) {
		if !c.stopIfCurrent(cycle) {
			logger.Debug("location fix ignored, screen appeared again since")
			return
		}
		logger.Info("location fix received",
			"latitude", fix.Latitude,
			"longitude", fix.Longitude,
		)

		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.fetch(session, apiKey, fix, logger)
		}()
	})

	return session, nil
}

// stopIfCurrent stops location updates when cycle is still the latest
// foreground cycle and reports whether it was.
func (c *Controller) stopIfCurrent(cycle uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cycle != cycle {
		return false
	}
	c.source.StopUpdates()
	return true
}

func (c *Controller) fetch(session, apiKey string, fix location.Coordinate, logger *slog.Logger) {
	err := c.pipeline.Run(c.ctx, fix.Latitude, fix.Longitude, apiKey, func(cond weather.Conditions) {
		screen := c.presenter.Render(session, cond)
		c.store.Save(screen)
		logger.Info("weather screen updated",
			"location", screen.Location,
			"temperature", screen.Temperature,
			"icon", screen.Icon,
		)
	})

	switch {
	case err == nil:
	case errors.Is(err, weather.ErrFetchInFlight):
		logger.Debug("location fix ignored, fetch already in flight")
	default:
		// The pipeline already logged the failure; the screen keeps loading.
		logger.Warn("weather screen left in loading state", "error", err)
	}
}

// Close stops location updates, cancels an in-flight fetch and waits for it.
func (c *Controller) Close() {
	c.source.StopUpdates()
	c.cancel()
	c.wg.Wait()
}
