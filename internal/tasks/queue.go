// Package tasks runs post-commit work (cache recomputes, notification emails)
// out of band from the request that triggered it.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"conferencecentral/internal/domain"
)

// Config controls the worker pool.
type Config struct {
	Workers     int
	QueueSize   int
	TaskTimeout time.Duration
}

// Queue is a bounded TaskQueue drained by a fixed pool of workers.
// Task failures are logged and never reported to the enqueuer.
type Queue struct {
	logger  *slog.Logger
	tasks   chan domain.Task
	workers int
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewQueue returns a queue; call Run to start the workers.
func NewQueue(logger *slog.Logger, cfg Config) *Queue {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	return &Queue{
		logger:  logger,
		tasks:   make(chan domain.Task, cfg.QueueSize),
		workers: cfg.Workers,
		timeout: cfg.TaskTimeout,
	}
}

var _ domain.TaskQueue = (*Queue)(nil)

// Enqueue schedules task without blocking. It returns false and logs a warning
// when the queue is full or already stopped.
func (q *Queue) Enqueue(task domain.Task) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.logger.Warn("task dropped, queue stopped", "task", task.Name)
		return false
	}
	select {
	case q.tasks <- task:
		return true
	default:
		q.logger.Warn("task dropped, queue full", "task", task.Name)
		return false
	}
}

// Run starts the workers and blocks until ctx is done. Tasks already queued
// when ctx ends are still executed before Run returns.
func (q *Queue) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for i := 0; i < q.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range q.tasks {
				q.execute(task)
			}
		}()
	}

	<-ctx.Done()
	q.mu.Lock()
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()
	wg.Wait()
	return nil
}

func (q *Queue) execute(task domain.Task) {
	// Tasks outlive the request that enqueued them, so they get a fresh context.
	ctx := context.Background()
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}
	start := time.Now()
	err := safeRun(ctx, task)
	if err != nil {
		q.logger.Error("task failed", "task", task.Name, "err", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	q.logger.Debug("task done", "task", task.Name, "duration_ms", time.Since(start).Milliseconds())
}

func safeRun(ctx context.Context, task domain.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task.Run(ctx)
}

// Every calls fn every interval until ctx is done. Errors are logged.
func Every(ctx context.Context, logger *slog.Logger, name string, interval time.Duration, fn func(ctx context.Context) error) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := safeRun(ctx, domain.Task{Name: name, Run: fn}); err != nil {
				logger.Error("scheduled task failed", "task", name, "err", err)
			}
		}
	}
}
