// Package config provides loading, defaults and validation for bugfind
// configuration files.
package config

import "time"

// Config represents a bugfind.yaml / bugfind.json file, overlaid with flags.
// Pointer fields distinguish "unset" from a meaningful zero value.
type Config struct {
	Candidate     string            `json:"candidate,omitempty"`
	Reference     string            `json:"reference,omitempty"`
	Iterations    int               `json:"iterations,omitempty"`
	MinPoints     int               `json:"min_points,omitempty"`
	MaxPoints     int               `json:"max_points,omitempty"`
	Bounds        *BoundsConfig     `json:"bounds,omitempty"`
	Comparison    *ComparisonConfig `json:"comparison,omitempty"`
	Seed          *uint64           `json:"seed,omitempty"`
	Timeout       string            `json:"timeout,omitempty"`
	ProgressEvery *int              `json:"progress_every,omitempty"`
	Notify        bool              `json:"notify,omitempty"`
}

// BoundsConfig is the coordinate range used on both axes.
type BoundsConfig struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// ComparisonConfig defines how the two distances are compared.
type ComparisonConfig struct {
	Tolerance    *float64 `json:"tolerance,omitempty"`
	Mode         string   `json:"mode,omitempty"` // "exact", "absolute", "relative", or "ulp"
	NaNEqualsNaN bool     `json:"nan_equals_nan,omitempty"`
}

// TimeoutDuration returns the parsed per-run timeout.
// It must only be called on a validated config.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := parseTimeout(c.Timeout)
	return d
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
