package cli

import (
	"strings"

	"github.com/AndreyAkinshin/bugfind/internal/config"
)

// Help text alignment widths for consistent formatting.
const (
	widthCommand = 24
	widthFlag    = 24
)

func printUsage() {
	w := out

	w.HelpTitle("bugfind - differential fuzz tester for closest-pair solutions")

	w.HelpSection("Usage:")
	w.HelpUsage("bugfind [flags]                 Hunt for a mismatch (same as 'bugfind hunt')")
	w.HelpUsage("bugfind <command> [flags]")

	w.HelpSection("Commands:")
	w.HelpCommand("hunt", "Compare candidate and reference on random cases", widthCommand)
	w.HelpCommand("check <file>", "Run both programs once on a saved case", widthCommand)
	w.HelpCommand("gen", "Print one generated case", widthCommand)
	w.HelpCommand("config validate [file]", "Validate a configuration file", widthCommand)
	w.HelpCommand("version", "Show version information", widthCommand)
	w.HelpCommand("help", "Show this help", widthCommand)

	printHuntFlags()
	printGlobalFlags()

	w.HelpSection("Configuration:")
	w.HelpUsage("Settings are read from the first of: " + joinFiles())
	w.HelpUsage("Flags override the file; the file overrides the defaults.")

	w.HelpSection("Exit Codes:")
	w.HelpCommand("0", "No mismatch found", 4)
	w.HelpCommand("1", "Mismatch found", 4)
	w.HelpCommand("2", "Invalid flags or configuration", 4)
	w.HelpCommand("3", "Program not found", 4)
	w.HelpCommand("4", "Program crashed, timed out or printed malformed output", 4)

	w.HelpSection("Examples:")
	w.HelpExample("bugfind", "Compare ./our-solution against ./known-solution")
	w.HelpExample("bugfind --candidate='closestpair' --reference='closestpair -brute'", "Compare two commands")
	w.HelpExample("bugfind --seed=42 --max-points=10", "Reproducible hunt on small cases")
	w.HelpExample("bugfind gen --seed=42 > case.txt && bugfind check case.txt", "Save and re-run a case")
	w.Println("")
}

func printHuntFlags() {
	w := out
	w.HelpSection("Hunt Flags:")
	w.HelpFlag("--candidate=<cmd>", "Program under test (default "+config.DefaultCandidate+")", widthFlag)
	w.HelpFlag("--reference=<cmd>", "Trusted program (default "+config.DefaultReference+")", widthFlag)
	w.HelpFlag("--iterations=<n>", "Number of cases (default 1000)", widthFlag)
	w.HelpFlag("--min-points=<n>", "Fewest points per case (default 2)", widthFlag)
	w.HelpFlag("--max-points=<n>", "Most points per case (default 100)", widthFlag)
	w.HelpFlag("--min-coord=<x>", "Lowest coordinate (default -100)", widthFlag)
	w.HelpFlag("--max-coord=<x>", "Highest coordinate (default 100)", widthFlag)
	w.HelpFlag("--tolerance=<x>", "Allowed distance difference (default 1e-9)", widthFlag)
	w.HelpFlag("--tolerance-mode=<mode>", "exact, absolute, relative or ulp (default relative)", widthFlag)
	w.HelpFlag("--nan-equals-nan", "Treat two NaN distances as equal", widthFlag)
	w.HelpFlag("--seed=<n>", "Random seed for a reproducible hunt", widthFlag)
	w.HelpFlag("--timeout=<d>", "Per-run timeout, 0 disables (default "+config.DefaultTimeout+")", widthFlag)
	w.HelpFlag("--progress-every=<n>", "Progress interval, 0 disables (default 50)", widthFlag)
	w.HelpFlag("--notify", "Desktop notification when a mismatch is found", widthFlag)
}

func printGlobalFlags() {
	w := out
	w.HelpSection("Global Flags:")
	w.HelpFlag("--config=<file>", "Configuration file", widthFlag)
	w.HelpFlag("-q, --quiet", "Minimal output (no progress)", widthFlag)
	w.HelpFlag("-v, --verbose", "Debug logging on stderr", widthFlag)
	w.HelpFlag("-h, --help", "Show this help", widthFlag)
	w.HelpFlag("--version", "Show version", widthFlag)
}

func joinFiles() string {
	return strings.Join(config.DefaultConfigFiles, ", ")
}

func printHuntUsage() {
	w := out
	w.HelpTitle("bugfind hunt - compare candidate and reference on random cases")
	w.HelpSection("Usage:")
	w.HelpUsage("bugfind hunt [flags]")
	printHuntFlags()
	printGlobalFlags()
	w.Println("")
}

func printCheckUsage() {
	w := out
	w.HelpTitle("bugfind check - run both programs once on a saved case")
	w.HelpSection("Usage:")
	w.HelpUsage("bugfind check <file> [flags]")
	w.HelpSection("Description:")
	w.HelpUsage("The file holds one case: n, n lines \"x y\", then a line with 0.")
	w.HelpUsage("Generator flags are ignored; program, tolerance and timeout flags apply.")
	printGlobalFlags()
	w.Println("")
}

func printGenUsage() {
	w := out
	w.HelpTitle("bugfind gen - print one generated case")
	w.HelpSection("Usage:")
	w.HelpUsage("bugfind gen [--seed=<n>] [--min-points=<n>] [--max-points=<n>] [--min-coord=<x>] [--max-coord=<x>]")
	w.HelpSection("Examples:")
	w.HelpExample("bugfind gen --seed=7 > case.txt", "Same seed, same case as the first iteration of a hunt")
	w.Println("")
}

func printConfigUsage() {
	w := out
	w.HelpTitle("bugfind config - configuration utilities")
	w.HelpSection("Usage:")
	w.HelpUsage("bugfind config validate [file]")
	w.HelpSection("Description:")
	w.HelpUsage("Validates a configuration file against the schema and the semantic rules.")
	w.HelpUsage("Without a file, --config or the first of " + joinFiles() + " is used.")
	w.Println("")
}
