package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	cfg := &Config{Interval: 10 * time.Millisecond}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for sub-second interval")
	}
}

func TestSchedulerRunsImmediately(t *testing.T) {
	ran := make(chan struct{}, 1)
	job := func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}

	sch := New(context.Background(), job, &Config{Interval: time.Hour, RunImmediately: true})
	sch.Start()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("Job did not run at start")
	}
	sch.Stop()

	if stats := sch.GetStats(); stats.Runs != 1 || stats.Failures != 0 {
		t.Errorf("Expected 1 run, 0 failures, got %+v", stats)
	}
}

func TestSchedulerRepeatsAndCountsFailures(t *testing.T) {
	ran := make(chan struct{}, 10)
	job := func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return errors.New("boom")
	}

	sch := New(context.Background(), job, &Config{Interval: 5 * time.Millisecond})
	sch.Start()

	for i := 0; i < 3; i++ {
		select {
		case <-ran:
		case <-time.After(5 * time.Second):
			t.Fatalf("Run %d did not happen", i+1)
		}
	}
	sch.Stop()

	stats := sch.GetStats()
	if stats.Runs < 3 {
		t.Errorf("Expected at least 3 runs, got %d", stats.Runs)
	}
	if stats.Failures != stats.Runs {
		t.Errorf("Every run failed, got %+v", stats)
	}
}

func TestSchedulerStopsWithParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sch := New(ctx, func(ctx context.Context) error { return nil }, &Config{Interval: time.Hour})
	sch.Start()

	cancel()
	select {
	case <-sch.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Scheduler ignored parent cancellation")
	}
	sch.Stop()
}
