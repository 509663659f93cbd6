package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/archipelago-data-aggregation/internal/freshness"
	"github.com/i474232898/archipelago-data-aggregation/internal/refresh"
)

type recorder struct {
	mu   sync.Mutex
	reqs []refresh.Request
}

func (r *recorder) Refresh(_ context.Context, req refresh.Request) []refresh.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	return nil
}

func (r *recorder) count(cat freshness.Category) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, req := range r.reqs {
		if len(req.Categories) == 1 && req.Categories[0] == cat {
			n++
		}
	}
	return n
}

func (r *recorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reqs)
}

func TestScheduler_FiresPerCategory(t *testing.T) {
	rec := &recorder{}
	s := New(rec, []Job{
		{Category: freshness.Weather, Interval: 20 * time.Millisecond},
		{Category: freshness.WaterCuts, Interval: 0},
	}, true)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.Eventually(t, func() bool { return rec.count(freshness.Weather) >= 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Zero(t, rec.count(freshness.WaterCuts))

	rec.mu.Lock()
	assert.True(t, rec.reqs[0].Force)
	rec.mu.Unlock()
}

func TestScheduler_StopsFiring(t *testing.T) {
	rec := &recorder{}
	s := New(rec, []Job{{Category: freshness.Vigilance, Interval: 10 * time.Millisecond}}, false)

	require.NoError(t, s.Start(context.Background()))
	require.Eventually(t, func() bool { return rec.total() >= 1 }, 2*time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()
	assert.False(t, s.Running())

	after := rec.total()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, rec.total())
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	rec := &recorder{}
	s := New(rec, []Job{{Category: freshness.AirQuality, Interval: 10 * time.Millisecond}}, false)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	require.Eventually(t, func() bool { return rec.total() >= 1 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool { return !s.Running() }, time.Second, 5*time.Millisecond)

	after := rec.total()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, rec.total())
}

func TestScheduler_DoesNotRunBeforeFirstInterval(t *testing.T) {
	rec := &recorder{}
	s := New(rec, []Job{{Category: freshness.Forecast, Interval: time.Hour}}, false)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, rec.total())
}

func TestScheduler_StartTwice(t *testing.T) {
	s := New(&recorder{}, nil, false)
	require.NoError(t, s.Start(context.Background()))
	assert.Error(t, s.Start(context.Background()))
	s.Stop()
}

func TestScheduler_NoJobsStillStopsOnContextCancel(t *testing.T) {
	s := New(&recorder{}, []Job{{Category: freshness.WaterCuts, Interval: 0}}, false)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	assert.True(t, s.Running())

	cancel()
	assert.Eventually(t, func() bool { return !s.Running() }, time.Second, 5*time.Millisecond)
}
