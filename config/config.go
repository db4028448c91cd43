// Package config defines the analysis configuration and its loading.
//
// The four analysis keys (min_track_pt, jetR, min_jet_pt, n_event_max) are
// required and have no defaults. Everything else falls back to New.
package config

import (
	"fmt"
)

// Config is the run configuration. It is loaded once before the first event
// and never modified afterwards.
type Config struct {
	// MinTrackPt is the strict lower pt cut applied to hadrons and leptons.
	MinTrackPt float64 `koanf:"min_track_pt"`

	// JetR lists the jet radii, in the order histograms are booked.
	JetR []float64 `koanf:"jetR"`

	// MinJetPt is the strict lower pt cut of the jet selector.
	MinJetPt float64 `koanf:"min_jet_pt"`

	// MaxEvents bounds the number of events read. It also normalizes the
	// per-event pt spectra.
	MaxEvents int `koanf:"n_event_max"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Workers is the number of goroutines analyzing events.
	Workers int `koanf:"workers"`

	// DebugLevel > 0 logs the jet definition and selector of every event.
	DebugLevel int `koanf:"debug_level"`
}

// Required analysis keys.
const (
	KeyMinTrackPt = "min_track_pt"
	KeyJetR       = "jetR"
	KeyMinJetPt   = "min_jet_pt"
	KeyMaxEvents  = "n_event_max"
)

// RequiredKeys lists the keys every configuration source must provide.
var RequiredKeys = []string{KeyMinTrackPt, KeyJetR, KeyMinJetPt, KeyMaxEvents}

// New returns a Config holding the defaults of the optional keys.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Workers:  1,
	}
}

// JetRadii returns a copy of the configured jet radii.
func (c *Config) JetRadii() []float64 {
	out := make([]float64, len(c.JetR))
	copy(out, c.JetR)
	return out
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxEvents <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, KeyMaxEvents, c.MaxEvents)
	}
	if c.MinTrackPt < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, KeyMinTrackPt, c.MinTrackPt)
	}
	if c.MinJetPt < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, KeyMinJetPt, c.MinJetPt)
	}
	if len(c.JetR) == 0 {
		return fmt.Errorf("%w: %s must list at least one radius", ErrInvalidConfig, KeyJetR)
	}
	seen := make(map[float64]bool, len(c.JetR))
	for _, r := range c.JetR {
		if !(r > 0) {
			return fmt.Errorf("%w: jet radius must be positive, got %v", ErrInvalidConfig, r)
		}
		if seen[r] {
			return fmt.Errorf("%w: duplicate jet radius %v", ErrInvalidConfig, r)
		}
		seen[r] = true
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("min_track_pt=%v jetR=%v min_jet_pt=%v n_event_max=%d workers=%d",
		c.MinTrackPt, c.JetR, c.MinJetPt, c.MaxEvents, c.Workers)
}
