package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-now/internal/config"
)

type countingScreen struct {
	calls atomic.Int32
	err   error
}

func (c *countingScreen) Appear(context.Context) (string, error) {
	c.calls.Add(1)
	return "s1", c.err
}

func waitDone(t *testing.T, s *Scheduler) error {
	t.Helper()
	select {
	case err := <-s.Done():
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("startup cycle did not run")
		return nil
	}
}

func TestScheduler_RunsStartupCycleOnce(t *testing.T) {
	screen := &countingScreen{}
	s := New(screen, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	require.NoError(t, waitDone(t, s))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), screen.calls.Load())
}

func TestScheduler_ReportsMissingKey(t *testing.T) {
	screen := &countingScreen{err: fmt.Errorf("%w: no file", config.ErrAPIKeyMissing)}
	s := New(screen, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.ErrorIs(t, waitDone(t, s), config.ErrAPIKeyMissing)
}
