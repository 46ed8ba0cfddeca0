package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/AndreyAkinshin/bugfind/internal/config"
	"github.com/AndreyAkinshin/bugfind/internal/errors"
	"github.com/AndreyAkinshin/bugfind/internal/hunter"
	"github.com/AndreyAkinshin/bugfind/internal/logging"
	"github.com/AndreyAkinshin/bugfind/internal/runner"
	"github.com/AndreyAkinshin/bugfind/internal/testcase"
)

// resolveConfig builds the effective configuration: defaults, then the config
// file (explicit --config or one discovered in the working directory), then
// command-line flags.
func resolveConfig(opts *GlobalOptions) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		if found, ok := config.Discover("."); ok {
			path = found
		}
	}

	cfg := &config.Config{}
	if path != "" {
		loaded, warnings, err := config.Load(path)
		for _, w := range warnings {
			out.Warning("%s: %s", path, w)
		}
		if err != nil {
			return nil, configError(err, "load %s", path)
		}
		cfg = loaded
	}

	config.Merge(cfg, &opts.Overrides)
	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, configError(err, "invalid configuration")
	}
	return cfg, nil
}

// programs returns the candidate and reference of cfg.
func programs(cfg *config.Config) (candidate, reference runner.Program) {
	return runner.Program{Name: "candidate", Command: cfg.Candidate},
		runner.Program{Name: "reference", Command: cfg.Reference}
}

// checkPrograms fails fast when either executable is missing.
func checkPrograms(candidate, reference runner.Program) error {
	if err := runner.CheckAvailable(candidate, ""); err != nil {
		return err
	}
	return runner.CheckAvailable(reference, "")
}

// seedOf returns the configured seed or a fresh one.
func seedOf(cfg *config.Config) uint64 {
	if cfg.Seed != nil {
		return *cfg.Seed
	}
	return hunter.NewSeed()
}

func hunterConfig(cfg *config.Config, seed uint64) hunter.Config {
	candidate, reference := programs(cfg)
	return hunter.Config{
		Candidate:     candidate,
		Reference:     reference,
		Iterations:    cfg.Iterations,
		MinPoints:     cfg.MinPoints,
		MaxPoints:     cfg.MaxPoints,
		Bounds:        testcase.Bounds(*cfg.Bounds.Min, *cfg.Bounds.Max),
		Tolerance:     cfg.Tolerance(),
		Seed:          seed,
		ProgressEvery: *cfg.ProgressEvery,
	}
}

// signalContext returns a context cancelled on Ctrl-C.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// cmdHunt runs the differential loop.
func cmdHunt(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printHuntUsage()
		return errors.ExitSuccess
	}
	if len(args) > 0 {
		out.ErrorPrefix("hunt: unexpected argument %q", args[0])
		return errors.ExitConfigError
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return reportError(err)
	}

	hcfg := hunterConfig(cfg, seedOf(cfg))
	if err := checkPrograms(hcfg.Candidate, hcfg.Reference); err != nil {
		return reportError(err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	h := hunter.New(hcfg, runner.New(cfg.TimeoutDuration()))
	h.OnProgress(out.Progress)

	out.Info("hunting: %s vs %s, %d iterations, seed %d", hcfg.Candidate.Command, hcfg.Reference.Command, hcfg.Iterations, hcfg.Seed)

	res, err := h.Hunt(ctx)
	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			return reportError(errors.Newf("interrupted after %d iterations (seed %d)", res.Iterations, res.Seed))
		}
		code := reportError(err)
		out.Hint("replay with --seed=%d", res.Seed)
		return code
	}

	if !res.Found() {
		out.FinalSuccess("no bugs found after %d iterations (seed %d)", res.Iterations, res.Seed)
		return errors.ExitSuccess
	}

	printMismatch(res, hcfg)
	if cfg.Notify {
		sendMismatchNotification(res)
	}
	return errors.ExitMismatch
}

// cmdCheck runs both programs once on a saved case.
func cmdCheck(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printCheckUsage()
		return errors.ExitSuccess
	}
	if len(args) != 1 {
		out.ErrorPrefix("check: exactly one input file required")
		out.Hint("usage: bugfind check <file>")
		return errors.ExitConfigError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return reportError(configError(err, "check: read input"))
	}
	tc, err := testcase.Parse(string(data))
	if err != nil {
		return reportError(configError(err, "check: %s", args[0]))
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return reportError(err)
	}
	candidate, reference := programs(cfg)
	if err := checkPrograms(candidate, reference); err != nil {
		return reportError(err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	outcome, err := hunter.Check(ctx, runner.New(cfg.TimeoutDuration()), candidate, reference, tc, cfg.Tolerance())
	if err != nil {
		return reportError(err)
	}

	if outcome.Equal {
		out.Success("programs agree: distance %v", outcome.CandidateDistance)
		return errors.ExitSuccess
	}
	out.SummaryHeader("Mismatch Found")
	printOutcome(outcome)
	out.FinalFailure("candidate and reference disagree on %s", args[0])
	return errors.ExitMismatch
}

// cmdGen prints one generated case.
func cmdGen(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printGenUsage()
		return errors.ExitSuccess
	}
	if len(args) > 0 {
		out.ErrorPrefix("gen: unexpected argument %q", args[0])
		return errors.ExitConfigError
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return reportError(err)
	}

	seed := seedOf(cfg)
	logging.Logger().Debug("generating case", "seed", seed)

	gen := testcase.NewGenerator(testcase.NewRand(seed), testcase.Bounds(*cfg.Bounds.Min, *cfg.Bounds.Max), cfg.MinPoints, cfg.MaxPoints)
	out.Print("%s", gen.Generate().String())
	return errors.ExitSuccess
}

// cmdConfig handles config subcommands.
func cmdConfig(args []string, opts *GlobalOptions) int {
	if len(args) == 0 {
		out.ErrorPrefix("config: subcommand required (validate)")
		return errors.ExitConfigError
	}

	switch args[0] {
	case "validate":
		return cmdConfigValidate(args[1:], opts)
	case "-h", "--help":
		printConfigUsage()
		return errors.ExitSuccess
	default:
		out.ErrorPrefix("config: unknown subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printConfigUsage()
		return errors.ExitSuccess
	}
	if len(args) > 1 {
		out.ErrorPrefix("config validate: at most one file expected")
		return errors.ExitConfigError
	}

	path := opts.ConfigPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		found, ok := config.Discover(".")
		if !ok {
			out.ErrorPrefix("no config file found (looked for %s)", strings.Join(config.DefaultConfigFiles, ", "))
			return errors.ExitConfigError
		}
		path = found
	}

	cfg, warnings, err := config.LoadAndValidate(path)
	for _, w := range warnings {
		out.Warning("%s: %s", path, w)
	}
	if err != nil {
		return reportError(configError(err, "%s", path))
	}

	out.ValidationSuccess("Configuration is valid.")
	out.SummaryItem("file", path)
	out.SummaryItem("candidate", cfg.Candidate)
	out.SummaryItem("reference", cfg.Reference)
	out.SummaryItem("iterations", fmt.Sprintf("%d", cfg.Iterations))
	out.SummaryItem("points", fmt.Sprintf("%d..%d", cfg.MinPoints, cfg.MaxPoints))
	out.SummaryItem("bounds", fmt.Sprintf("[%v, %v]", *cfg.Bounds.Min, *cfg.Bounds.Max))
	out.SummaryItem("comparison", cfg.Tolerance().String())
	if len(warnings) > 0 {
		out.SummaryItem("warnings", fmt.Sprintf("%d", len(warnings)))
	}
	return errors.ExitSuccess
}
