package config

// Merge overlays the fields set in over onto base. It is used to apply
// command-line flags on top of a config file, so over wins wherever it sets
// a value. Boolean switches can only be turned on.
func Merge(base, over *Config) {
	if over.Candidate != "" {
		base.Candidate = over.Candidate
	}
	if over.Reference != "" {
		base.Reference = over.Reference
	}
	if over.Iterations != 0 {
		base.Iterations = over.Iterations
	}
	if over.MinPoints != 0 {
		base.MinPoints = over.MinPoints
	}
	if over.MaxPoints != 0 {
		base.MaxPoints = over.MaxPoints
	}
	if over.Bounds != nil {
		if base.Bounds == nil {
			base.Bounds = &BoundsConfig{}
		}
		if over.Bounds.Min != nil {
			base.Bounds.Min = over.Bounds.Min
		}
		if over.Bounds.Max != nil {
			base.Bounds.Max = over.Bounds.Max
		}
	}
	if over.Comparison != nil {
		if base.Comparison == nil {
			base.Comparison = &ComparisonConfig{}
		}
		if over.Comparison.Tolerance != nil {
			base.Comparison.Tolerance = over.Comparison.Tolerance
		}
		if over.Comparison.Mode != "" {
			base.Comparison.Mode = over.Comparison.Mode
		}
		base.Comparison.NaNEqualsNaN = base.Comparison.NaNEqualsNaN || over.Comparison.NaNEqualsNaN
	}
	if over.Seed != nil {
		base.Seed = over.Seed
	}
	if over.Timeout != "" {
		base.Timeout = over.Timeout
	}
	if over.ProgressEvery != nil {
		base.ProgressEvery = over.ProgressEvery
	}
	base.Notify = base.Notify || over.Notify
}
