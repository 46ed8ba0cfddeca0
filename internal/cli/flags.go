package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AndreyAkinshin/bugfind/internal/config"
	"github.com/AndreyAkinshin/bugfind/internal/errors"
)

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet      bool
	Verbose    bool
	ConfigPath string
	// Overrides holds the config fields set on the command line.
	Overrides config.Config
}

// valueFlags maps flags that take a value to their setters.
var valueFlags = map[string]func(o *GlobalOptions, v string) error{
	"--config": func(o *GlobalOptions, v string) error {
		o.ConfigPath = v
		return nil
	},
	"--candidate": func(o *GlobalOptions, v string) error {
		o.Overrides.Candidate = v
		return nil
	},
	"--reference": func(o *GlobalOptions, v string) error {
		o.Overrides.Reference = v
		return nil
	},
	"--iterations": func(o *GlobalOptions, v string) error {
		return parseMinInt(v, 1, &o.Overrides.Iterations)
	},
	"--min-points": func(o *GlobalOptions, v string) error {
		return parseMinInt(v, 2, &o.Overrides.MinPoints)
	},
	"--max-points": func(o *GlobalOptions, v string) error {
		return parseMinInt(v, 2, &o.Overrides.MaxPoints)
	},
	"--min-coord": func(o *GlobalOptions, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("not a number")
		}
		o.bounds().Min = &f
		return nil
	},
	"--max-coord": func(o *GlobalOptions, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("not a number")
		}
		o.bounds().Max = &f
		return nil
	},
	"--tolerance": func(o *GlobalOptions, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("not a number")
		}
		o.comparison().Tolerance = &f
		return nil
	},
	"--tolerance-mode": func(o *GlobalOptions, v string) error {
		o.comparison().Mode = v
		return nil
	},
	"--seed": func(o *GlobalOptions, v string) error {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("must be a non-negative integer")
		}
		o.Overrides.Seed = &seed
		return nil
	},
	"--timeout": func(o *GlobalOptions, v string) error {
		if v != "0" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("must be a duration such as 10s or 500ms, or 0 to disable")
			}
			if d < 0 {
				return fmt.Errorf("must not be negative")
			}
		}
		o.Overrides.Timeout = v
		return nil
	},
	"--progress-every": func(o *GlobalOptions, v string) error {
		var n int
		if err := parseMinInt(v, 0, &n); err != nil {
			return err
		}
		o.Overrides.ProgressEvery = &n
		return nil
	},
}

func (o *GlobalOptions) bounds() *config.BoundsConfig {
	if o.Overrides.Bounds == nil {
		o.Overrides.Bounds = &config.BoundsConfig{}
	}
	return o.Overrides.Bounds
}

func (o *GlobalOptions) comparison() *config.ComparisonConfig {
	if o.Overrides.Comparison == nil {
		o.Overrides.Comparison = &config.ComparisonConfig{}
	}
	return o.Overrides.Comparison
}

func parseMinInt(v string, minimum int, dst *int) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("not an integer")
	}
	if n < minimum {
		return fmt.Errorf("must be at least %d", minimum)
	}
	*dst = n
	return nil
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Flags may appear before or after the command. Both "--flag=value" and
// "--flag value" forms are accepted. Help flags are left in the remaining
// arguments so that commands can print their own usage.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "--notify":
			opts.Overrides.Notify = true
			i++
		case arg == "--nan-equals-nan":
			opts.comparison().NaNEqualsNaN = true
			i++
		case arg == "-h" || arg == "--help":
			remaining = append(remaining, arg)
			i++
		case strings.HasPrefix(arg, "-") && arg != "-":
			name, value, hasValue := strings.Cut(arg, "=")
			set, ok := valueFlags[name]
			if !ok {
				return nil, nil, errors.Configf("unknown flag %q\n  run 'bugfind help' for the list of flags", name)
			}
			if !hasValue {
				if i+1 >= len(args) {
					return nil, nil, errors.Configf("%s requires a value", name)
				}
				value = args[i+1]
				i++
			}
			if err := set(opts, value); err != nil {
				return nil, nil, errors.ConfigWrap(err, fmt.Sprintf("invalid %s value %q", name, value))
			}
			i++
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	applyVerbosityToOutput(opts)

	return opts, remaining, nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Quiet && opts.Verbose {
		return errors.Config("--quiet and --verbose are mutually exclusive")
	}
	return nil
}
