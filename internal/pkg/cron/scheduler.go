package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/pkg/metrics"
)

// Task is a housekeeping routine repeated on a fixed interval.
type Task struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs each registered task in its own goroutine until Stop.
type Scheduler struct {
	tasks  []Task
	now    func() time.Time
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewScheduler creates a scheduler timing runs with now.
func NewScheduler(now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		now:    now,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddTask registers fn to run every interval once the scheduler starts.
func (s *Scheduler) AddTask(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, Task{Name: name, Interval: interval, Fn: fn})
	slog.Info("Housekeeping task registered", "task", name, "interval", interval)
}

// Start launches every task. Each one runs immediately, then on its ticker.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.loop(task)
	}
	slog.Info("Housekeeping scheduler started", "task_count", len(s.tasks))
}

// Stop cancels running tasks and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Housekeeping scheduler stopped")
}

// RunOnce runs every task a single time in registration order and returns
// the failures joined.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	tasks := append([]Task(nil), s.tasks...)
	s.mu.Unlock()

	var errs []error
	for _, task := range tasks {
		if err := s.execute(ctx, task); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", task.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Scheduler) loop(task Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	s.execute(s.ctx, task)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(s.ctx, task)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, task Task) error {
	start := s.now()
	err := task.Fn(ctx)
	elapsed := s.now().Sub(start)

	result := "ok"
	if err != nil {
		result = "error"
		slog.Error("Housekeeping task failed", "task", task.Name, "error", err, "duration", elapsed)
	} else {
		slog.Debug("Housekeeping task completed", "task", task.Name, "duration", elapsed)
	}
	metrics.HousekeepingRuns.WithLabelValues(task.Name, result).Inc()
	return err
}
