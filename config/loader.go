package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. TTBAR_MIN_JET_PT.
const EnvPrefix = "TTBAR_"

// Load builds a Config by layering defaults, the YAML file and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) at path, or at $TTBAR_CONFIG when path is empty
//  3. env (prefix TTBAR_)
func Load(ctx context.Context, path string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// TTBAR_MIN_JET_PT -> min_jet_pt, TTBAR_JETR=0.2,0.4 -> jetR: [0.2, 0.4].
	envProvider := env.ProviderWithValue(EnvPrefix, ".", envKeyValue)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	if err := checkRequired(k); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKeyValue maps an environment variable to its config key. List keys
// are split on commas.
func envKeyValue(key, value string) (string, interface{}) {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, strings.ToLower(EnvPrefix))
	key = canonicalKey(key)
	if key == KeyJetR {
		var parts []string
		for _, v := range strings.Split(value, ",") {
			if v = strings.TrimSpace(v); v != "" {
				parts = append(parts, v)
			}
		}
		return key, parts
	}
	return key, value
}

// canonicalKey restores the case of known keys so env values override file
// values instead of shadowing them.
func canonicalKey(s string) string {
	for _, key := range RequiredKeys {
		if strings.EqualFold(key, s) {
			return key
		}
	}
	return s
}

// checkRequired reports the required keys absent from k, matched
// case-insensitively.
func checkRequired(k *koanf.Koanf) error {
	present := make(map[string]bool)
	for _, key := range k.Keys() {
		present[strings.ToLower(key)] = true
	}
	var missing []string
	for _, key := range RequiredKeys {
		if !present[strings.ToLower(key)] {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingKey, strings.Join(missing, ", "))
	}
	return nil
}
