package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-now/internal/config"
)

// Foregrounder starts one foreground cycle of the weather screen.
type Foregrounder interface {
	Appear(ctx context.Context) (string, error)
}

// Scheduler runs the initial foreground cycle on a gocron worker. The job
// is limited to one run: the screen is never refreshed in the background.
type Scheduler struct {
	scheduler *gocron.Scheduler
	screen    Foregrounder
	logger    *slog.Logger
	done      chan error
}

// New creates a new Scheduler.
func New(screen Foregrounder, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		screen:    screen,
		logger:    logger,
		done:      make(chan error, 1),
	}
}

// Start schedules the startup job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().StartImmediately().LimitRunsTo(1).Do(s.appear)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) appear() {
	session, err := s.screen.Appear(context.Background())
	if err != nil {
		if errors.Is(err, config.ErrAPIKeyMissing) {
			s.logger.Error("startup foreground cycle failed, weather api key missing", "error", err)
		} else {
			s.logger.Error("startup foreground cycle failed", "error", err)
		}
	} else {
		s.logger.Info("startup foreground cycle started", "session", session)
	}
	s.done <- err
}

// Done delivers the result of the startup cycle once it has run.
func (s *Scheduler) Done() <-chan error {
	return s.done
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
