// Package runner executes the compared programs as subprocesses.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	bferrors "github.com/AndreyAkinshin/bugfind/internal/errors"
	"github.com/AndreyAkinshin/bugfind/internal/logging"
)

// waitDelay bounds how long Run waits for output pipes after the process is
// killed, since sh -c may leave grandchildren holding them open.
const waitDelay = time.Second

// Program is an external command taking a test case on stdin.
type Program struct {
	Name    string // Role label used in messages ("candidate", "reference")
	Command string // Shell command line
}

// Runner executes programs one at a time.
type Runner struct {
	timeout time.Duration
	dir     string
}

// New creates a runner. A zero timeout disables the per-run deadline.
func New(timeout time.Duration) *Runner {
	return &Runner{timeout: timeout}
}

// SetDir sets the working directory for subsequent runs.
// The empty string means the current directory.
func (r *Runner) SetDir(dir string) {
	r.dir = dir
}

// Run executes p with input on stdin and returns stdout with surrounding
// whitespace trimmed.
// Any failure (spawn error, non-zero exit, timeout) is returned as a
// *errors.BugfindError naming the program; stderr is included when present.
func (r *Runner) Run(ctx context.Context, p Program, input string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := buildShellCommand(ctx, p.Command)
	cmd.Dir = r.dir
	cmd.WaitDelay = waitDelay
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	logging.Logger().Debug("program finished",
		slog.String("program", p.Name),
		slog.String("command", p.Command),
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("stdout_bytes", stdout.Len()),
		slog.Any("err", err),
	)

	if err != nil {
		return "", runError(ctx, p, err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

func runError(ctx context.Context, p Program, err error, stderr string) error {
	msg := fmt.Sprintf("command %q failed", p.Command)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		msg = fmt.Sprintf("command %q timed out", p.Command)
		err = ctx.Err()
	}
	if s := strings.TrimSpace(stderr); s != "" {
		msg = fmt.Sprintf("%s (stderr: %s)", msg, s)
	}
	return bferrors.ProgramError(p.Name, msg, err)
}

// CheckAvailable verifies that the executable a program starts with can be
// resolved, so a typo fails before the first iteration rather than on it.
// Relative and absolute paths are resolved against dir.
func CheckAvailable(p Program, dir string) error {
	if strings.TrimSpace(p.Command) == "" {
		return bferrors.Environmentf("%s: command is empty", p.Name)
	}
	name := extractCommandName(p.Command)
	if name == "" || isShellBuiltin(name) {
		return nil
	}
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		path := name
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return bferrors.Environmentf("%s: executable %q not found", p.Name, name)
		}
		if info.IsDir() {
			return bferrors.Environmentf("%s: %q is a directory", p.Name, name)
		}
		return nil
	}
	if _, err := exec.LookPath(name); err != nil {
		return bferrors.Environmentf("%s: executable %q not found in PATH", p.Name, name)
	}
	return nil
}

// extractCommandName extracts the executable name (first word) from a shell command string.
// Returns empty string for commands that start with a quote.
func extractCommandName(cmdStr string) string {
	trimmed := strings.TrimSpace(cmdStr)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '"' || trimmed[0] == '\'' {
		return ""
	}
	return strings.Fields(trimmed)[0]
}

// shellBuiltins is the set of common shell builtins that don't exist as
// external commands in PATH but are always available via sh -c.
var shellBuiltins = map[string]struct{}{
	"exit":    {},
	"test":    {},
	"[":       {},
	"echo":    {},
	"cd":      {},
	"export":  {},
	"set":     {},
	"true":    {},
	"false":   {},
	"read":    {},
	"eval":    {},
	"exec":    {},
	".":       {},
	"command": {},
}

func isShellBuiltin(cmdName string) bool {
	_, ok := shellBuiltins[cmdName]
	return ok
}

// buildShellCommand creates a cross-platform shell command.
// On Windows, uses PowerShell by full path; on Unix, uses sh -c.
func buildShellCommand(ctx context.Context, cmdStr string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		systemRoot := os.Getenv("SYSTEMROOT")
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}
		powershellPath := filepath.Join(systemRoot, "System32", "WindowsPowerShell", "v1.0", "powershell.exe")
		return exec.CommandContext(ctx, powershellPath, "-NoProfile", "-NonInteractive", "-Command", cmdStr)
	}
	return exec.CommandContext(ctx, "sh", "-c", cmdStr)
}
