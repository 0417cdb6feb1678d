package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/models"
)

type countingRefresher struct {
	mu    sync.Mutex
	calls int
	err   error
	ran   chan struct{}
}

func newCountingRefresher(err error) *countingRefresher {
	return &countingRefresher{err: err, ran: make(chan struct{}, 16)}
}

func (r *countingRefresher) Refresh(context.Context) (models.LoadStats, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	select {
	case r.ran <- struct{}{}:
	default:
	}
	return models.LoadStats{Fetched: 1, Kept: 1}, r.err
}

func (r *countingRefresher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func waitForRuns(t *testing.T, r *countingRefresher, n int) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-r.ran:
		case <-deadline:
			t.Fatalf("refresh ran %d times, want %d", r.count(), n)
		}
	}
}

func TestScheduler_DisabledInterval(t *testing.T) {
	r := newCountingRefresher(nil)
	s := New(r, 0)

	require.NoError(t, s.Start())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, r.count())

	s.Stop()
}

func TestScheduler_RunsJobPeriodically(t *testing.T) {
	r := newCountingRefresher(nil)
	s := New(r, 10*time.Millisecond)
	require.NoError(t, s.Start())
	defer s.Stop()

	waitForRuns(t, r, 2)
	assert.GreaterOrEqual(t, r.count(), 2)
}

func TestScheduler_KeepsRunningAfterFailure(t *testing.T) {
	r := newCountingRefresher(errors.New("portal down"))
	s := New(r, 10*time.Millisecond)
	require.NoError(t, s.Start())
	defer s.Stop()

	// A failing refresh must not unschedule the job.
	waitForRuns(t, r, 2)
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := New(newCountingRefresher(nil), time.Minute)
	s.Stop()
}
