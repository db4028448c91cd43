package driver

import (
	"github.com/decibelcooper/ttbarplot/logger"
	"github.com/decibelcooper/ttbarplot/metrics"
)

// Default driver configuration.
const (
	defaultWorkers  = 1
	defaultProgress = 1000
)

// Option configures a run.
type Option func(*options)

type options struct {
	maxEvents int
	workers   int
	progress  int
	logger    logger.Logger
	metrics   *metrics.Recorder
}

// WithMaxEvents stops the run after n events. Zero reads the whole input.
func WithMaxEvents(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxEvents = n
		}
	}
}

// WithWorkers sets the number of goroutines analyzing events.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithProgress logs progress every n events.
func WithProgress(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.progress = n
		}
	}
}

// WithLogger sets the run logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records per-event metrics into m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(o *options) {
		o.metrics = m
	}
}
