package weather

import (
	"context"
	"time"
)

// Fetcher abstracts the current-conditions weather API.
type Fetcher interface {
	FetchCurrentConditions(ctx context.Context, latitude, longitude float64, apiKey string) (Conditions, error)
}

// Recorder receives pipeline observations (see internal/metrics).
type Recorder interface {
	ObserveFetch(outcome string, elapsed time.Duration)
	IncRejected()
}

type nopRecorder struct{}

func (nopRecorder) ObserveFetch(string, time.Duration) {}
func (nopRecorder) IncRejected() {}
