package compare

import (
	"fmt"
	"math"
)

// ToleranceMode represents how the tolerance threshold is applied.
type ToleranceMode string

const (
	// ToleranceModeExact requires bit-for-bit equal distances.
	ToleranceModeExact ToleranceMode = "exact"
	// ToleranceModeAbsolute bounds |a-b|.
	ToleranceModeAbsolute ToleranceMode = "absolute"
	// ToleranceModeRelative bounds |a-b| / |reference|.
	ToleranceModeRelative ToleranceMode = "relative"
	// ToleranceModeULP bounds the number of representable doubles between a and b.
	ToleranceModeULP ToleranceMode = "ulp"
)

// Default tolerance settings.
const (
	DefaultToleranceMode  = ToleranceModeRelative
	DefaultToleranceValue = 1e-9
)

// ValidToleranceModes lists the accepted mode names.
func ValidToleranceModes() []string {
	return []string{
		string(ToleranceModeExact),
		string(ToleranceModeAbsolute),
		string(ToleranceModeRelative),
		string(ToleranceModeULP),
	}
}

// ParseToleranceMode converts a mode name; the empty string maps to the default.
func ParseToleranceMode(s string) (ToleranceMode, bool) {
	switch ToleranceMode(s) {
	case "":
		return DefaultToleranceMode, true
	case ToleranceModeExact, ToleranceModeAbsolute, ToleranceModeRelative, ToleranceModeULP:
		return ToleranceMode(s), true
	default:
		return "", false
	}
}

// Tolerance configures how two distances are compared.
type Tolerance struct {
	// Value is the threshold. In ulp mode it is truncated to an integer,
	// so 1.9 allows a difference of 1 ULP.
	Value        float64
	Mode         ToleranceMode
	NaNEqualsNaN bool
}

// DefaultTolerance returns relative 1e-9 comparison.
func DefaultTolerance() Tolerance {
	return Tolerance{
		Value: DefaultToleranceValue,
		Mode:  DefaultToleranceMode,
	}
}

func (t Tolerance) String() string {
	if t.Mode == ToleranceModeExact {
		return string(t.Mode)
	}
	return fmt.Sprintf("%v %s", t.Value, t.Mode)
}

// Equal reports whether candidate agrees with reference. When it does not,
// the returned string describes the difference.
func Equal(candidate, reference float64, tol Tolerance) (bool, string) {
	if math.IsNaN(candidate) && math.IsNaN(reference) {
		if tol.NaNEqualsNaN {
			return true, ""
		}
		return false, "NaN != NaN (set nan_equals_nan to allow)"
	}
	if math.IsInf(candidate, 1) && math.IsInf(reference, 1) {
		return true, ""
	}
	if math.IsInf(candidate, -1) && math.IsInf(reference, -1) {
		return true, ""
	}
	if math.IsNaN(candidate) || math.IsNaN(reference) ||
		math.IsInf(candidate, 0) || math.IsInf(reference, 0) {
		return false, fmt.Sprintf("candidate %v, reference %v", candidate, reference)
	}

	var within bool
	switch tol.Mode {
	case ToleranceModeExact:
		within = candidate == reference
	case ToleranceModeAbsolute:
		within = math.Abs(candidate-reference) <= tol.Value
	case ToleranceModeULP:
		// float64(math.MaxInt64) is 2^63, so the conversion below cannot overflow.
		within = tol.Value >= math.MaxInt64 || ULPDiff(candidate, reference) <= int64(tol.Value)
	default:
		within = isWithinRelativeTolerance(reference, candidate, tol.Value)
	}

	if within {
		return true, ""
	}
	return false, fmt.Sprintf("candidate %v, reference %v (diff %g, tolerance: %s)",
		candidate, reference, math.Abs(candidate-reference), tol)
}

// isWithinRelativeTolerance checks if actual is within relative tolerance of expected.
// For expected == 0, uses absolute comparison to avoid division by zero.
func isWithinRelativeTolerance(expected, actual, tolerance float64) bool {
	if expected == 0 {
		return math.Abs(actual) <= tolerance
	}
	return math.Abs((expected-actual)/expected) <= tolerance
}

// ULPDiff returns the number of representable doubles between a and b,
// saturating at math.MaxInt64. +0 and -0 are treated as equal.
func ULPDiff(a, b float64) int64 {
	ai := int64(math.Float64bits(a))
	bi := int64(math.Float64bits(b))
	if ai < 0 {
		ai = math.MinInt64 - ai
	}
	if bi < 0 {
		bi = math.MinInt64 - bi
	}
	if ai < bi {
		ai, bi = bi, ai
	}
	if bi < 0 && ai > math.MaxInt64+bi {
		return math.MaxInt64
	}
	return ai - bi
}
