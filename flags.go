// Package ttbarplot holds the helpers shared by the ttbar commands:
// command-line flag types and plot axis markers.
package ttbarplot

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatArrayFlags is a repeatable float flag. Each occurrence may hold a
// comma-separated list. The first occurrence replaces any default values.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	var values []float64
	for _, s := range strings.Split(valueStr, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		value, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", s, err)
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return fmt.Errorf("no value in %q", valueStr)
	}

	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	f.Array = append(f.Array, values...)
	return nil
}

func (f *FloatArrayFlags) String() string {
	return fmt.Sprint(f.Array)
}

// IsSet reports whether the flag appeared on the command line.
func (f *FloatArrayFlags) IsSet() bool { return f.beenSet }
