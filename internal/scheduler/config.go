package scheduler

import (
	"fmt"
	"time"
)

// MinInterval is the shortest accepted watch interval.
const MinInterval = time.Second

// Config defines how often the job runs.
type Config struct {
	// Interval between runs.
	Interval time.Duration `yaml:"interval"`
	// RunImmediately runs the job once at Start before the first tick.
	RunImmediately bool `yaml:"run_immediately"`
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() *Config {
	return &Config{
		Interval:       15 * time.Minute,
		RunImmediately: true,
	}
}

// Validate checks the interval.
func (c *Config) Validate() error {
	if c.Interval < MinInterval {
		return fmt.Errorf("interval must be at least %s, got %s", MinInterval, c.Interval)
	}
	return nil
}
