package config

import (
	"github.com/AndreyAkinshin/bugfind/internal/compare"
	"github.com/AndreyAkinshin/bugfind/internal/testcase"
)

// Default configuration values.
const (
	DefaultCandidate     = "./our-solution"
	DefaultReference     = "./known-solution"
	DefaultIterations    = 1000
	DefaultTimeout       = "10s"
	DefaultProgressEvery = 50
)

// DefaultConfigFiles are the file names looked up in the working directory,
// in order of preference.
var DefaultConfigFiles = []string{"bugfind.yaml", "bugfind.yml", "bugfind.json"}

// ApplyDefaults fills in default values for unset configuration fields.
func ApplyDefaults(cfg *Config) {
	applyProgramDefaults(cfg)
	applyGeneratorDefaults(cfg)
	applyComparisonDefaults(cfg)
	applyRunDefaults(cfg)
}

func applyProgramDefaults(cfg *Config) {
	if cfg.Candidate == "" {
		cfg.Candidate = DefaultCandidate
	}
	if cfg.Reference == "" {
		cfg.Reference = DefaultReference
	}
}

func applyGeneratorDefaults(cfg *Config) {
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultIterations
	}
	if cfg.MinPoints == 0 {
		cfg.MinPoints = testcase.DefaultMinPoints
	}
	if cfg.MaxPoints == 0 {
		cfg.MaxPoints = testcase.DefaultMaxPoints
	}
	if cfg.Bounds == nil {
		cfg.Bounds = &BoundsConfig{}
	}
	if cfg.Bounds.Min == nil {
		v := testcase.DefaultMinCoord
		cfg.Bounds.Min = &v
	}
	if cfg.Bounds.Max == nil {
		v := testcase.DefaultMaxCoord
		cfg.Bounds.Max = &v
	}
}

func applyComparisonDefaults(cfg *Config) {
	if cfg.Comparison == nil {
		cfg.Comparison = &ComparisonConfig{}
	}
	if cfg.Comparison.Mode == "" {
		cfg.Comparison.Mode = string(compare.DefaultToleranceMode)
	}
	if cfg.Comparison.Tolerance == nil {
		v := compare.DefaultToleranceValue
		if cfg.Comparison.Mode == string(compare.ToleranceModeULP) {
			v = 4
		}
		cfg.Comparison.Tolerance = &v
	}
}

func applyRunDefaults(cfg *Config) {
	if cfg.Timeout == "" {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ProgressEvery == nil {
		v := DefaultProgressEvery
		cfg.ProgressEvery = &v
	}
}
