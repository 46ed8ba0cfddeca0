package cli

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/bugfind/internal/config"
	"github.com/AndreyAkinshin/bugfind/internal/errors"
	"github.com/AndreyAkinshin/bugfind/internal/output"
	"github.com/AndreyAkinshin/bugfind/internal/testcase"
)

const (
	answer34  = "cat >/dev/null; echo 0 0 3 4"
	answer10  = "cat >/dev/null; echo 0 0 1 0"
	answer02  = "cat >/dev/null; echo 0 0 0 2"
	truncated = "cat >/dev/null; echo 0 0 3"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-based tests require sh")
	}
}

// captureOutput redirects the package writer into buffers for the test.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	prev := out
	out = output.NewWithWriters(stdout, stderr, false)
	t.Cleanup(func() { out = prev })
	return stdout, stderr
}

// withWorkingDir runs fn with dir as the working directory.
func withWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Chdir(originalWd)
	})
	fn()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantRemaining []string
		check         func(t *testing.T, o *GlobalOptions)
		wantErr       string
	}{
		{
			name:          "no flags",
			args:          []string{"hunt"},
			wantRemaining: []string{"hunt"},
		},
		{
			name:          "empty args",
			args:          []string{},
			wantRemaining: nil,
		},
		{
			name:          "equals and space forms",
			args:          []string{"--candidate=./a", "--reference", "./b", "hunt"},
			wantRemaining: []string{"hunt"},
			check: func(t *testing.T, o *GlobalOptions) {
				if o.Overrides.Candidate != "./a" || o.Overrides.Reference != "./b" {
					t.Errorf("programs = (%q, %q)", o.Overrides.Candidate, o.Overrides.Reference)
				}
			},
		},
		{
			name:          "flags after command",
			args:          []string{"gen", "--seed=12", "--max-points", "5"},
			wantRemaining: []string{"gen"},
			check: func(t *testing.T, o *GlobalOptions) {
				if o.Overrides.Seed == nil || *o.Overrides.Seed != 12 || o.Overrides.MaxPoints != 5 {
					t.Errorf("Overrides = %+v", o.Overrides)
				}
			},
		},
		{
			name: "negative coordinate as separate value",
			args: []string{"--min-coord", "-5", "--max-coord=5.5"},
			check: func(t *testing.T, o *GlobalOptions) {
				if *o.Overrides.Bounds.Min != -5 || *o.Overrides.Bounds.Max != 5.5 {
					t.Errorf("Bounds = %+v", o.Overrides.Bounds)
				}
			},
		},
		{
			name: "comparison flags",
			args: []string{"--tolerance=0.01", "--tolerance-mode=absolute", "--nan-equals-nan"},
			check: func(t *testing.T, o *GlobalOptions) {
				c := o.Overrides.Comparison
				if *c.Tolerance != 0.01 || c.Mode != "absolute" || !c.NaNEqualsNaN {
					t.Errorf("Comparison = %+v", c)
				}
			},
		},
		{
			name: "switches",
			args: []string{"-q", "--notify", "--config=x.yaml", "--timeout=0", "--progress-every=0"},
			check: func(t *testing.T, o *GlobalOptions) {
				if !o.Quiet || !o.Overrides.Notify || o.ConfigPath != "x.yaml" {
					t.Errorf("options = %+v", o)
				}
				if o.Overrides.Timeout != "0" || *o.Overrides.ProgressEvery != 0 {
					t.Errorf("Overrides = %+v", o.Overrides)
				}
			},
		},
		{
			name:          "help kept for command",
			args:          []string{"check", "--help"},
			wantRemaining: []string{"check", "--help"},
		},
		{name: "unknown flag", args: []string{"--docker"}, wantErr: "unknown flag"},
		{name: "missing value", args: []string{"--seed"}, wantErr: "requires a value"},
		{name: "bad integer", args: []string{"--iterations=ten"}, wantErr: "not an integer"},
		{name: "zero iterations", args: []string{"--iterations=0"}, wantErr: "must be at least 1"},
		{name: "one point", args: []string{"--min-points=1"}, wantErr: "must be at least 2"},
		{name: "negative seed", args: []string{"--seed=-1"}, wantErr: "non-negative"},
		{name: "bad float", args: []string{"--tolerance=tight"}, wantErr: "not a number"},
		{name: "bad timeout", args: []string{"--timeout=soon"}, wantErr: "duration"},
		{name: "negative timeout", args: []string{"--timeout=-1s"}, wantErr: "negative"},
		{name: "quiet and verbose", args: []string{"-q", "-v"}, wantErr: "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)
			opts, remaining, err := parseGlobalFlags(tt.args)

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("parseGlobalFlags() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if strings.Join(remaining, " ") != strings.Join(tt.wantRemaining, " ") {
				t.Errorf("remaining = %v, want %v", remaining, tt.wantRemaining)
			}
			if tt.check != nil {
				tt.check(t, opts)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	for _, args := range [][]string{{"help"}, {"-h"}, {"--help"}, {"-q", "--help"}} {
		stdout, _ := captureOutput(t)
		if code := Run(args); code != errors.ExitSuccess {
			t.Errorf("Run(%v) = %d, want 0", args, code)
		}
		if !strings.Contains(stdout.String(), "check <file>") {
			t.Errorf("Run(%v) help missing commands:\n%s", args, stdout.String())
		}
	}
}

func TestRun_CommandHelp(t *testing.T) {
	for _, args := range [][]string{{"hunt", "-h"}, {"check", "--help"}, {"gen", "-h"}, {"config", "--help"}, {"config", "validate", "-h"}} {
		stdout, _ := captureOutput(t)
		if code := Run(args); code != errors.ExitSuccess {
			t.Errorf("Run(%v) = %d, want 0", args, code)
		}
		if !strings.Contains(stdout.String(), "Usage:") {
			t.Errorf("Run(%v) printed no usage", args)
		}
	}
}

func TestRun_Version(t *testing.T) {
	stdout, _ := captureOutput(t)
	if code := Run([]string{"version"}); code != errors.ExitSuccess {
		t.Errorf("Run(version) = %d, want 0", code)
	}
	if got := stdout.String(); got != "bugfind dev\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"shrink"}},
		{"unknown flag", []string{"--parallel=4"}},
		{"hunt extra arg", []string{"hunt", "now"}},
		{"gen extra arg", []string{"gen", "3"}},
		{"check without file", []string{"check"}},
		{"config without subcommand", []string{"config"}},
		{"config unknown subcommand", []string{"config", "show"}},
		{"invalid tolerance mode", []string{"gen", "--tolerance-mode=fuzzy"}},
		{"inverted bounds", []string{"gen", "--min-coord=5", "--max-coord=-5"}},
		{"huge bounds", []string{"gen", "--min-coord=-5e16", "--max-coord=5e16"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withWorkingDir(t, t.TempDir(), func() {
				_, stderr := captureOutput(t)
				if code := Run(tt.args); code != errors.ExitConfigError {
					t.Errorf("Run(%v) = %d, want %d", tt.args, code, errors.ExitConfigError)
				}
				if !strings.HasPrefix(stderr.String(), "bugfind: ") {
					t.Errorf("stderr = %q, want bugfind: prefix", stderr.String())
				}
			})
		})
	}
}

func TestRun_HuntNoBugs(t *testing.T) {
	skipOnWindows(t)
	withWorkingDir(t, t.TempDir(), func() {
		stdout, _ := captureOutput(t)

		code := Run([]string{"--candidate", answer34, "--reference", answer34, "--iterations=60", "--max-points=5", "--seed=1"})
		if code != errors.ExitSuccess {
			t.Fatalf("Run() = %d, want 0", code)
		}

		got := stdout.String()
		for _, want := range []string{"iteration 50/60\n", "no bugs found after 60 iterations (seed 1)"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
		if strings.Contains(got, "iteration 100/") {
			t.Errorf("unexpected progress beyond budget:\n%s", got)
		}
	})
}

func TestRun_HuntMismatch(t *testing.T) {
	skipOnWindows(t)
	withWorkingDir(t, t.TempDir(), func() {
		stdout, _ := captureOutput(t)

		code := Run([]string{"hunt", "--candidate", answer10, "--reference", answer02, "--seed=3"})
		if code != errors.ExitMismatch {
			t.Fatalf("Run() = %d, want %d", code, errors.ExitMismatch)
		}

		got := stdout.String()
		for _, want := range []string{
			"=== Mismatch Found ===",
			"Seed: 3\n",
			"Iteration: 1/1000\n",
			"Input:\n",
			"Candidate Output: 0 0 1 0\n",
			"Reference Output: 0 0 0 2\n",
			"Candidate Distance: 1\n",
			"Reference Distance: 2\n",
			"replay with: bugfind --seed=3 --iterations=1",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("report missing %q:\n%s", want, got)
			}
		}
	})
}

func TestRun_HuntMismatchReportsFirstCase(t *testing.T) {
	skipOnWindows(t)
	withWorkingDir(t, t.TempDir(), func() {
		stdout, _ := captureOutput(t)
		if code := Run([]string{"--candidate", answer10, "--reference", answer02, "--seed=8", "--max-points=4"}); code != errors.ExitMismatch {
			t.Fatalf("Run() = %d, want %d", code, errors.ExitMismatch)
		}
		report := stdout.String()

		genOut, _ := captureOutput(t)
		if code := Run([]string{"gen", "--seed=8", "--max-points=4"}); code != errors.ExitSuccess {
			t.Fatalf("gen = %d", code)
		}
		for _, line := range strings.Split(strings.TrimSpace(genOut.String()), "\n") {
			if !strings.Contains(report, "    "+line+"\n") {
				t.Errorf("report input missing line %q:\n%s", line, report)
			}
		}
	})
}

func TestRun_HuntNotify(t *testing.T) {
	skipOnWindows(t)
	withWorkingDir(t, t.TempDir(), func() {
		captureOutput(t)
		var messages []string
		prev := notify
		notify = func(title, message string) error {
			messages = append(messages, title+": "+message)
			return nil
		}
		t.Cleanup(func() { notify = prev })

		Run([]string{"--candidate", answer34, "--reference", answer34, "--iterations=2", "--notify"})
		if len(messages) != 0 {
			t.Errorf("notified without mismatch: %v", messages)
		}

		Run([]string{"--candidate", answer10, "--reference", answer02, "--seed=4", "--notify"})
		if len(messages) != 1 || messages[0] != "bugfind: mismatch at iteration 1 (seed 4)" {
			t.Errorf("notifications = %v", messages)
		}
	})
}

func TestRun_HuntMissingProgram(t *testing.T) {
	withWorkingDir(t, t.TempDir(), func() {
		_, stderr := captureOutput(t)

		code := Run([]string{"--iterations=1"})
		if code != errors.ExitEnvironmentError {
			t.Fatalf("Run() = %d, want %d", code, errors.ExitEnvironmentError)
		}
		if !strings.Contains(stderr.String(), `"./our-solution" not found`) {
			t.Errorf("stderr = %q", stderr.String())
		}
	})
}

func TestRun_HuntMalformedOutput(t *testing.T) {
	skipOnWindows(t)
	withWorkingDir(t, t.TempDir(), func() {
		stdout, stderr := captureOutput(t)

		code := Run([]string{"--candidate", answer34, "--reference", truncated, "--seed=2"})
		if code != errors.ExitRuntimeError {
			t.Fatalf("Run() = %d, want %d", code, errors.ExitRuntimeError)
		}
		if !strings.Contains(stderr.String(), `[reference] malformed output "0 0 3"`) {
			t.Errorf("stderr = %q", stderr.String())
		}
		if !strings.Contains(stdout.String(), "replay with --seed=2") {
			t.Errorf("stdout = %q, want replay hint", stdout.String())
		}
	})
}

func TestRun_HuntProgramFails(t *testing.T) {
	skipOnWindows(t)
	withWorkingDir(t, t.TempDir(), func() {
		_, stderr := captureOutput(t)

		code := Run([]string{"--candidate", "cat >/dev/null; echo boom >&2; exit 3", "--reference", answer34})
		if code != errors.ExitRuntimeError {
			t.Fatalf("Run() = %d, want %d", code, errors.ExitRuntimeError)
		}
		if !strings.Contains(stderr.String(), "[candidate]") || !strings.Contains(stderr.String(), "boom") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})
}

func TestRun_ConfigFile(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	writeFile(t, dir, "bugfind.yaml", "candidate: \""+answer34+"\"\nreference: \""+answer34+"\"\niterations: 3\nmystery: true\n")

	withWorkingDir(t, dir, func() {
		stdout, stderr := captureOutput(t)
		if code := Run(nil); code != errors.ExitSuccess {
			t.Fatalf("Run() = %d, want 0 (stderr %q)", code, stderr.String())
		}
		if !strings.Contains(stdout.String(), "no bugs found after 3 iterations") {
			t.Errorf("stdout = %q", stdout.String())
		}
		if !strings.Contains(stderr.String(), `unknown field "mystery"`) {
			t.Errorf("stderr = %q, want unknown field warning", stderr.String())
		}

		stdout, _ = captureOutput(t)
		if code := Run([]string{"--iterations=2"}); code != errors.ExitSuccess {
			t.Fatalf("Run(--iterations=2) = %d, want 0", code)
		}
		if !strings.Contains(stdout.String(), "no bugs found after 2 iterations") {
			t.Errorf("flag should override the file, stdout = %q", stdout.String())
		}
	})
}

func TestRun_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bugfind.json", `{"iterations": 0}`)

	withWorkingDir(t, dir, func() {
		_, stderr := captureOutput(t)
		if code := Run(nil); code != errors.ExitConfigError {
			t.Errorf("Run() = %d, want %d", code, errors.ExitConfigError)
		}
		if !strings.Contains(stderr.String(), "bugfind.json") {
			t.Errorf("stderr = %q, want file name", stderr.String())
		}
	})
}

func TestConfigError_Kind(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want errors.ErrorKind
	}{
		{"load failure", os.ErrNotExist, errors.KindConfig},
		{"failed check", &config.ValidationError{Field: "iterations", Message: "must be at least 1"}, errors.KindValidation},
		{"wrapped check", fmt.Errorf("outer: %w", &config.ValidationError{Field: "bounds"}), errors.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := configError(tt.err, "load %s", "bugfind.yaml")

			var be *errors.BugfindError
			if !stderrors.As(err, &be) {
				t.Fatalf("configError() = %T, want *errors.BugfindError", err)
			}
			if be.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", be.Kind, tt.want)
			}
			if !strings.HasPrefix(err.Error(), "load bugfind.yaml: ") {
				t.Errorf("Error() = %q", err.Error())
			}
			if errors.GetExitCode(err) != errors.ExitConfigError {
				t.Errorf("GetExitCode() = %d, want %d", errors.GetExitCode(err), errors.ExitConfigError)
			}
		})
	}
}

func TestRun_Gen(t *testing.T) {
	withWorkingDir(t, t.TempDir(), func() {
		first, _ := captureOutput(t)
		if code := Run([]string{"gen", "--seed=11", "--min-points=3", "--max-points=6", "--min-coord=-1", "--max-coord=1"}); code != errors.ExitSuccess {
			t.Fatalf("Run(gen) = %d, want 0", code)
		}
		second, _ := captureOutput(t)
		Run([]string{"gen", "--seed=11", "--min-points=3", "--max-points=6", "--min-coord=-1", "--max-coord=1"})

		if first.String() != second.String() {
			t.Errorf("same seed produced different cases:\n%s\n%s", first, second)
		}

		tc, err := testcase.Parse(first.String())
		if err != nil {
			t.Fatalf("generated case does not parse: %v", err)
		}
		if tc.N() < 3 || tc.N() > 6 {
			t.Errorf("N() = %d, want within [3, 6]", tc.N())
		}
		for _, p := range tc.Points {
			if p.X < -1 || p.X > 1 || p.Y < -1 || p.Y > 1 {
				t.Errorf("point %v outside [-1, 1]", p)
			}
		}
	})
}

func TestRun_Check(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "case.txt", "2\n0.00 0.00\n3.00 4.00\n0\n")
	garbage := writeFile(t, dir, "garbage.txt", "two points\n")

	tests := []struct {
		name      string
		args      []string
		wantCode  int
		wantInOut string
	}{
		{"agree", []string{"check", input, "--candidate", answer34, "--reference", answer34}, errors.ExitSuccess, "programs agree: distance 5"},
		{"disagree", []string{"check", input, "--candidate", answer10, "--reference", answer02}, errors.ExitMismatch, "Candidate Distance: 1"},
		{"malformed case", []string{"check", garbage, "--candidate", answer34, "--reference", answer34}, errors.ExitConfigError, ""},
		{"missing file", []string{"check", filepath.Join(dir, "nope.txt")}, errors.ExitConfigError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withWorkingDir(t, dir, func() {
				stdout, stderr := captureOutput(t)
				if code := Run(tt.args); code != tt.wantCode {
					t.Fatalf("Run(%v) = %d, want %d (stderr %q)", tt.args, code, tt.wantCode, stderr.String())
				}
				if !strings.Contains(stdout.String(), tt.wantInOut) {
					t.Errorf("stdout = %q, want containing %q", stdout.String(), tt.wantInOut)
				}
			})
		})
	}
}

func TestRun_ConfigValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "iterations: 10\ncomparison:\n  mode: ulp\n")
	bad := writeFile(t, dir, "bad.yaml", "min_points: 50\nmax_points: 10\n")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"explicit file", []string{"config", "validate", good}, errors.ExitSuccess, "Comparison: 4 ulp"},
		{"via --config", []string{"config", "validate", "--config=" + good}, errors.ExitSuccess, "Configuration is valid."},
		{"semantic error", []string{"config", "validate", bad}, errors.ExitConfigError, ""},
		{"no file", []string{"config", "validate"}, errors.ExitConfigError, ""},
		{"too many files", []string{"config", "validate", good, bad}, errors.ExitConfigError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withWorkingDir(t, dir, func() {
				stdout, _ := captureOutput(t)
				if code := Run(tt.args); code != tt.wantCode {
					t.Fatalf("Run(%v) = %d, want %d", tt.args, code, tt.wantCode)
				}
				if !strings.Contains(stdout.String(), tt.wantOut) {
					t.Errorf("stdout = %q, want containing %q", stdout.String(), tt.wantOut)
				}
			})
		})
	}
}

func TestRun_ConfigValidateDiscovers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bugfind.yml", "seed: 5\n")

	withWorkingDir(t, dir, func() {
		stdout, _ := captureOutput(t)
		if code := Run([]string{"config", "validate"}); code != errors.ExitSuccess {
			t.Fatalf("Run() = %d, want 0", code)
		}
		if !strings.Contains(stdout.String(), "File: bugfind.yml") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})
}
