// Package metrics exposes run-level counters of the event loop through
// Prometheus collectors. A batch run has no scrape endpoint, so the metrics
// are written once, at the end, in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Default namespace of every metric.
const defaultNamespace = "ttbar"

// Recorder owns a private registry and the analysis collectors.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	events      prometheus.Counter
	particles   *prometheus.CounterVec
	jets        *prometheus.CounterVec
	wCandidates prometheus.Counter
	duration    prometheus.Histogram
}

// Option configures a Recorder.
type Option func(*options)

type options struct {
	namespace   string
	buckets     []float64
	constLabels prometheus.Labels
}

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(o *options) {
		if ns != "" {
			o.namespace = ns
		}
	}
}

// WithHistogramBuckets sets the buckets, in seconds, of the per-event
// analysis duration histogram.
func WithHistogramBuckets(buckets []float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// WithRunID labels every metric with run=id.
func WithRunID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.constLabels["run"] = id
		}
	}
}

// New creates a Recorder with its own registry.
func New(opts ...Option) *Recorder {
	o := options{
		namespace:   defaultNamespace,
		buckets:     prometheus.ExponentialBuckets(1e-5, 4, 10),
		constLabels: prometheus.Labels{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "events_processed_total",
			Help:        "Number of events analyzed.",
			ConstLabels: o.constLabels,
		}),
		particles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "particles_total",
			Help:        "Number of selected particles, by kind.",
			ConstLabels: o.constLabels,
		}, []string{"kind"}),
		jets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "jets_total",
			Help:        "Number of selected jets, by radius.",
			ConstLabels: o.constLabels,
		}, []string{"radius"}),
		wCandidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "w_candidates_total",
			Help:        "Number of leptonic W candidate masses filled.",
			ConstLabels: o.constLabels,
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "event_analysis_seconds",
			Help:        "Time spent analyzing a single event.",
			Buckets:     o.buckets,
			ConstLabels: o.constLabels,
		}),
	}
	r.registry.MustRegister(r.events, r.particles, r.jets, r.wCandidates, r.duration)
	return r
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// EventProcessed counts one analyzed event that took d.
func (r *Recorder) EventProcessed(d time.Duration) {
	if r == nil {
		return
	}
	r.events.Inc()
	r.duration.Observe(d.Seconds())
}

// Particles adds n selected particles of the given kind.
func (r *Recorder) Particles(kind string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.particles.WithLabelValues(kind).Add(float64(n))
}

// Jets adds n selected jets found with the given radius label.
func (r *Recorder) Jets(radius string, n int) {
	if r == nil {
		return
	}
	// touch the series so radii without jets still show up.
	c := r.jets.WithLabelValues(radius)
	if n > 0 {
		c.Add(float64(n))
	}
}

// WCandidates adds n filled W candidate masses.
func (r *Recorder) WCandidates(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.wCandidates.Add(float64(n))
}

// WriteTextfile writes every metric to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}
