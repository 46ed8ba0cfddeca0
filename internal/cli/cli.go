// Package cli provides command-line interface functionality for bugfind.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/AndreyAkinshin/bugfind/internal/config"
	"github.com/AndreyAkinshin/bugfind/internal/errors"
	"github.com/AndreyAkinshin/bugfind/internal/logging"
	"github.com/AndreyAkinshin/bugfind/internal/output"
)

// Version is set at build time.
var Version = "dev"

var out = output.New()

// wantsHelp returns true if args contain -h or --help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
// Without a command it hunts, so a bare "bugfind" compares ./our-solution
// against ./known-solution.
func Run(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help":
			printUsage()
			return errors.ExitSuccess
		case "--version", "version":
			out.Println("bugfind %s", Version)
			return errors.ExitSuccess
		}
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		return reportError(err)
	}

	cmd := "hunt"
	var cmdArgs []string
	if len(remaining) > 0 {
		cmd = remaining[0]
		cmdArgs = remaining[1:]
		if cmd == "-h" || cmd == "--help" {
			printUsage()
			return errors.ExitSuccess
		}
	}

	switch cmd {
	case "hunt":
		return cmdHunt(cmdArgs, opts)
	case "check":
		return cmdCheck(cmdArgs, opts)
	case "gen":
		return cmdGen(cmdArgs, opts)
	case "config":
		return cmdConfig(cmdArgs, opts)
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Hint("run 'bugfind help' for usage")
		return errors.ExitConfigError
	}
}

// applyVerbosityToOutput configures the output writer and debug logger.
func applyVerbosityToOutput(opts *GlobalOptions) {
	out.SetQuiet(opts.Quiet)
	if opts.Verbose {
		logging.SetLogger(logging.NewTextLogger(os.Stderr))
	} else {
		logging.SetLogger(nil)
	}
}

// reportError prints err and returns its exit code.
func reportError(err error) int {
	out.ErrorPrefix("%v", err)
	return errors.GetExitCode(err)
}

// configError marks err as a configuration problem. Failed checks on a
// loaded configuration are reported as validation errors.
func configError(err error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	var ve *config.ValidationError
	if stderrors.As(err, &ve) {
		return errors.Validation(err, msg)
	}
	return errors.ConfigWrap(err, msg)
}
