package weather

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Pipeline runs the fetch-and-present step for one location fix. It allows
// at most one fetch in flight; duplicate triggers are rejected, not queued.
type Pipeline struct {
	fetcher  Fetcher
	recorder Recorder
	logger   *slog.Logger
	inFlight atomic.Bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder reports fetch outcomes and guard rejections to r.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline creates a Pipeline around fetcher.
func NewPipeline(fetcher Fetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:  fetcher,
		recorder: nopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// InFlight reports whether a fetch is currently running.
func (p *Pipeline) InFlight() bool {
	return p.inFlight.Load()
}

// Run fetches current conditions for the coordinate and hands the record to
// onDone. onDone is called exactly once on success and never on failure, so
// a failed fetch leaves whatever the caller is showing untouched.
//
// ErrFetchInFlight is returned without contacting the API when another Run
// has not finished yet.
func (p *Pipeline) Run(ctx context.Context, latitude, longitude float64, apiKey string, onDone func(Conditions)) error {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.recorder.IncRejected()
		p.logger.Warn("weather fetch rejected, another fetch is in flight",
			"latitude", latitude,
			"longitude", longitude,
		)
		return ErrFetchInFlight
	}
	defer p.inFlight.Store(false)

	start := time.Now()
	conditions, err := p.fetcher.FetchCurrentConditions(ctx, latitude, longitude, apiKey)
	outcome := Outcome(err)
	p.recorder.ObserveFetch(outcome, time.Since(start))

	if err != nil {
		p.logger.Error("weather fetch failed",
			"latitude", latitude,
			"longitude", longitude,
			"outcome", outcome,
			"error", err,
		)
		return err
	}

	p.logger.Debug("weather fetch completed",
		"location", conditions.LocationLabel,
		"code", conditions.ConditionCode,
		"elapsed", time.Since(start),
	)

	if onDone != nil {
		onDone(conditions)
	}
	return nil
}
