package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/AndreyAkinshin/bugfind/internal/compare"
	"github.com/AndreyAkinshin/bugfind/internal/testcase"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration with defaults applied.
func Validate(cfg *Config) error {
	if err := validatePrograms(cfg); err != nil {
		return err
	}
	if err := validateGenerator(cfg); err != nil {
		return err
	}
	if err := validateComparison(cfg); err != nil {
		return err
	}
	return validateRun(cfg)
}

func validatePrograms(cfg *Config) error {
	if strings.TrimSpace(cfg.Candidate) == "" {
		return &ValidationError{Field: "candidate", Message: "is required"}
	}
	if strings.TrimSpace(cfg.Reference) == "" {
		return &ValidationError{Field: "reference", Message: "is required"}
	}
	return nil
}

func validateGenerator(cfg *Config) error {
	if cfg.Iterations < 1 {
		return &ValidationError{Field: "iterations", Message: "must be at least 1"}
	}
	if cfg.MinPoints < 2 {
		return &ValidationError{Field: "min_points", Message: "must be at least 2"}
	}
	if cfg.MaxPoints < cfg.MinPoints {
		return &ValidationError{
			Field:   "max_points",
			Message: fmt.Sprintf("must be at least min_points (%d)", cfg.MinPoints),
		}
	}

	lo, hi := *cfg.Bounds.Min, *cfg.Bounds.Max
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return &ValidationError{Field: "bounds", Message: "must be finite"}
	}
	if !testcase.InRange(lo) || !testcase.InRange(hi) {
		return &ValidationError{
			Field:   "bounds",
			Message: fmt.Sprintf("must lie within [%g, %g]", -testcase.MaxAbsCoord, testcase.MaxAbsCoord),
		}
	}
	if lo > hi {
		return &ValidationError{
			Field:   "bounds",
			Message: fmt.Sprintf("min (%v) must not exceed max (%v)", lo, hi),
		}
	}
	if gridLo, gridHi := testcase.GridRange(testcase.Bounds(lo, hi).X); gridLo > gridHi {
		return &ValidationError{
			Field:   "bounds",
			Message: fmt.Sprintf("[%v, %v] contains no two-decimal coordinate", lo, hi),
		}
	}
	return nil
}

func validateComparison(cfg *Config) error {
	if _, ok := compare.ParseToleranceMode(cfg.Comparison.Mode); !ok {
		return &ValidationError{
			Field:   "comparison.mode",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(compare.ValidToleranceModes(), ", ")),
		}
	}
	tol := *cfg.Comparison.Tolerance
	if math.IsNaN(tol) || tol < 0 {
		return &ValidationError{Field: "comparison.tolerance", Message: "must be a non-negative number"}
	}
	return nil
}

func validateRun(cfg *Config) error {
	d, err := parseTimeout(cfg.Timeout)
	if err != nil {
		return &ValidationError{Field: "timeout", Message: fmt.Sprintf("invalid duration %q", cfg.Timeout)}
	}
	if d < 0 {
		return &ValidationError{Field: "timeout", Message: "must not be negative"}
	}
	if *cfg.ProgressEvery < 0 {
		return &ValidationError{Field: "progress_every", Message: "must not be negative"}
	}
	return nil
}
