package weather

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	mu      sync.Mutex
	calls   int
	result  Conditions
	err     error
	release chan struct{}
	started chan struct{}
}

func (s *stubFetcher) FetchCurrentConditions(ctx context.Context, latitude, longitude float64, apiKey string) (Conditions, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	return s.result, s.err
}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes []string
	rejected int
}

func (r *countingRecorder) ObserveFetch(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *countingRecorder) IncRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

var sunny = Conditions{
	TemperatureC:  "20",
	WindSpeed:     "5",
	WindDirection: "N",
	Pressure:      "1012",
	ConditionName: "Sunny",
	IsDaytime:     "yes",
	LocationLabel: "Russia, Moscow, Moscow",
	ConditionCode: "113",
}

func TestPipelineRun_DeliversOnce(t *testing.T) {
	rec := &countingRecorder{}
	p := NewPipeline(&stubFetcher{result: sunny}, WithRecorder(rec))

	var got []Conditions
	err := p.Run(context.Background(), 55.7518, 37.6184, "abc123", func(c Conditions) {
		got = append(got, c)
	})

	require.NoError(t, err)
	assert.Equal(t, []Conditions{sunny}, got)
	assert.Equal(t, []string{OutcomeSuccess}, rec.outcomes)
	assert.False(t, p.InFlight())
}

func TestPipelineRun_FailureSkipsCompletion(t *testing.T) {
	fetchErr := &DecodeError{Path: "current.temperature", Err: ErrMissingField}
	rec := &countingRecorder{}
	p := NewPipeline(&stubFetcher{err: fetchErr}, WithRecorder(rec))

	called := false
	err := p.Run(context.Background(), 1, 2, "k", func(Conditions) { called = true })

	assert.ErrorIs(t, err, ErrMissingField)
	assert.False(t, called)
	assert.Equal(t, []string{OutcomeDecodeError}, rec.outcomes)
	assert.False(t, p.InFlight(), "guard must be released after a failure")
}

func TestPipelineRun_RejectsWhileInFlight(t *testing.T) {
	f := &stubFetcher{
		result:  sunny,
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	rec := &countingRecorder{}
	p := NewPipeline(f, WithRecorder(rec))

	done := make(chan error, 1)
	go func() {
		done <- p.Run(context.Background(), 1, 2, "k", nil)
	}()
	<-f.started
	require.True(t, p.InFlight())

	err := p.Run(context.Background(), 1, 2, "k", func(Conditions) {
		t.Error("rejected run must not complete")
	})
	assert.True(t, errors.Is(err, ErrFetchInFlight))

	close(f.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, 1, rec.rejected)
}

func TestPipelineRun_Idempotent(t *testing.T) {
	p := NewPipeline(&stubFetcher{result: sunny})

	var first, second Conditions
	require.NoError(t, p.Run(context.Background(), 1, 2, "k", func(c Conditions) { first = c }))
	require.NoError(t, p.Run(context.Background(), 1, 2, "k", func(c Conditions) { second = c }))

	assert.Equal(t, first, second)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, Outcome(nil))
	assert.Equal(t, OutcomeDecodeError, Outcome(&DecodeError{Err: ErrEmptyDescriptions}))
	assert.Equal(t, OutcomeHTTPError, Outcome(&StatusError{StatusCode: 500}))
	assert.Equal(t, OutcomeAPIError, Outcome(&APIError{Code: 101}))
	assert.Equal(t, OutcomeTransportError, Outcome(context.DeadlineExceeded))
}
