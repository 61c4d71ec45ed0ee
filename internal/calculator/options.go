package calculator

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

const (
	DefaultDailyInvestment = 100.0
	DefaultSkipSteps       = 0
)

type aggregateConfig struct {
	dailyInvestment float64
	skipSteps       int
	workers         int
}

// Option configures a return aggregation
type Option func(*aggregateConfig)

// WithDailyInvestment sets the constant dollar amount invested
// at every timestep. zero is allowed and produces a zero return
func WithDailyInvestment(amount float64) Option {
	return func(c *aggregateConfig) {
		c.dailyInvestment = amount
	}
}

// WithSkipSteps excludes the first n timesteps from the total,
// e.g. when an upstream rolling window leaves them undefined
func WithSkipSteps(n int) Option {
	return func(c *aggregateConfig) {
		c.skipSteps = n
	}
}

// WithWorkers bounds how many goroutines compute per-timestep
// reductions. results do not depend on the value
func WithWorkers(n int) Option {
	return func(c *aggregateConfig) {
		c.workers = n
	}
}

func newAggregateConfig(opts []Option) aggregateConfig {
	cfg := aggregateConfig{
		dailyInvestment: DefaultDailyInvestment,
		skipSteps:       DefaultSkipSteps,
		workers:         1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// validate checks the config against a matrix with numTimesteps
// columns. every violation is reported, not just the first
func (c aggregateConfig) validate(numTimesteps int) error {
	var err error
	if math.IsNaN(c.dailyInvestment) || math.IsInf(c.dailyInvestment, 0) || c.dailyInvestment < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: dailyInvestment=%v", ErrInvalidInvestment, c.dailyInvestment))
	}
	if c.skipSteps < 0 || c.skipSteps >= numTimesteps {
		err = multierr.Append(err, fmt.Errorf("%w: skipSteps=%d with %d timesteps", ErrInvalidSkip, c.skipSteps, numTimesteps))
	}
	if c.workers < 1 {
		err = multierr.Append(err, fmt.Errorf("workers must be >= 1, got %d", c.workers))
	}
	return err
}
