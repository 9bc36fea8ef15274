// Package scheduler runs a job on a fixed interval until stopped.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Job is one scheduled run. Errors are logged and do not stop the loop.
type Job func(ctx context.Context) error

// Scheduler repeats a job on a ticker.
type Scheduler struct {
	job    Job
	config *Config

	mu       sync.Mutex
	runs     int
	failures int

	// Control
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Stats counts completed runs.
type Stats struct {
	Runs     int
	Failures int
}

// New creates a scheduler for job. The parent context cancels the loop as
// Stop does.
func New(parent context.Context, job Job, cfg *Config) *Scheduler {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(parent)

	return &Scheduler{
		job:    job,
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the scheduler loop.
func (sch *Scheduler) Start() {
	sch.wg.Add(1)
	go sch.loop()
	log.Debug("scheduler started", "interval", sch.config.Interval)
}

// Stop cancels the loop and waits for a running job to return.
func (sch *Scheduler) Stop() {
	sch.cancel()
	sch.wg.Wait()
	log.Debug("scheduler stopped")
}

// Done is closed once the loop has been cancelled.
func (sch *Scheduler) Done() <-chan struct{} {
	return sch.ctx.Done()
}

func (sch *Scheduler) loop() {
	defer sch.wg.Done()

	if sch.config.RunImmediately {
		sch.runOnce()
	}

	ticker := time.NewTicker(sch.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-sch.ctx.Done():
			return
		case <-ticker.C:
			sch.runOnce()
		}
	}
}

func (sch *Scheduler) runOnce() {
	if sch.ctx.Err() != nil {
		return
	}
	err := sch.job(sch.ctx)

	sch.mu.Lock()
	sch.runs++
	if err != nil {
		sch.failures++
	}
	sch.mu.Unlock()

	if err != nil {
		log.Warn("scheduled run failed", "err", err)
	}
}

// GetStats returns current scheduler statistics.
func (sch *Scheduler) GetStats() Stats {
	sch.mu.Lock()
	defer sch.mu.Unlock()
	return Stats{Runs: sch.runs, Failures: sch.failures}
}
