// Package bugfind provides public constants for scripts and CI jobs that
// drive the bugfind CLI.
package bugfind

// Exit codes returned by the bugfind CLI.
const (
	// ExitSuccess indicates the budget was exhausted without a mismatch.
	ExitSuccess = 0

	// ExitMismatch indicates the candidate and reference disagreed on some input.
	ExitMismatch = 1

	// ExitConfigError indicates invalid flags or an invalid config file.
	ExitConfigError = 2

	// ExitEnvError indicates a program executable could not be found.
	ExitEnvError = 3

	// ExitRuntimeError indicates a program crashed, timed out, or printed malformed output.
	ExitRuntimeError = 4
)
