package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/archipelago-data-aggregation/internal/freshness"
	"github.com/i474232898/archipelago-data-aggregation/internal/logger"
	"github.com/i474232898/archipelago-data-aggregation/internal/refresh"
)

// Refresher is what a tick calls. *refresh.Group satisfies it.
type Refresher interface {
	Refresh(ctx context.Context, req refresh.Request) []refresh.Outcome
}

// Job refreshes one category every Interval. A zero interval disables it.
type Job struct {
	Category freshness.Category
	Interval time.Duration
}

// Scheduler runs one repeating job per category.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	jobs      []Job
	force     bool
	log       *logrus.Entry

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool
}

// New creates a Scheduler. When force is set every tick bypasses freshness.
func New(refresher Refresher, jobs []Job, force bool) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		jobs:      jobs,
		force:     force,
		log:       logger.WithComponent("scheduler"),
	}
}

var errAlreadyStarted = errors.New("scheduler already started")

// Start schedules the jobs and starts the underlying scheduler. The first run
// of each job happens one interval after Start. The scheduler stops when ctx
// is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.stopped {
		return errAlreadyStarted
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	scheduled := 0
	for _, job := range s.jobs {
		if job.Interval <= 0 {
			s.log.WithField("category", job.Category).Info("periodic refresh disabled")
			continue
		}
		_, err := s.scheduler.Every(job.Interval).
			Tag(string(job.Category)).
			SingletonMode().
			WaitForSchedule().
			Do(s.tick, job.Category)
		if err != nil {
			s.cancel()
			s.scheduler.Clear()
			return err
		}
		scheduled++
		s.log.WithFields(logrus.Fields{"category": job.Category, "every": job.Interval}).Info("periodic refresh scheduled")
	}

	s.started = true
	go func() {
		<-s.ctx.Done()
		s.Stop()
	}()

	if scheduled == 0 {
		s.log.Info("no categories to schedule")
		return nil
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) tick(cat freshness.Category) {
	ctx := s.ctx
	if ctx.Err() != nil {
		return
	}
	s.log.WithField("category", cat).Debug("running periodic refresh")
	s.refresher.Refresh(ctx, refresh.Request{
		Categories: []freshness.Category{cat},
		Force:      s.force,
	})
}

// Stop cancels in-flight ticks and releases the scheduler. It is safe to call
// more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	if s.cancel != nil {
		s.cancel()
	}
	if s.scheduler != nil && s.scheduler.IsRunning() {
		s.scheduler.Stop()
	}
	s.scheduler.Clear()
}

// Running reports whether jobs are still scheduled.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && !s.stopped
}
