// Package integration contains end-to-end tests that build the bugfind and
// closestpair binaries and run them as a user would.
package integration

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string

	buildOnce sync.Once
	binDir    string
	buildErr  error
)

// fixturesDir returns the path to the test fixtures directory.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

func repoRoot() string {
	return filepath.Join(fixturesDir(), "..", "..")
}

// buildBinaries compiles both commands once per test run.
func buildBinaries(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("integration tests drive programs through sh")
	}
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	buildOnce.Do(func() {
		binDir, buildErr = os.MkdirTemp("", "bugfind-integration-")
		if buildErr != nil {
			return
		}
		for _, pkg := range []string{"bugfind", "closestpair"} {
			cmd := exec.Command("go", "build",
				"-ldflags", "-X github.com/AndreyAkinshin/bugfind/internal/cli.Version=0.0.0-test",
				"-o", filepath.Join(binDir, pkg), "./cmd/"+pkg)
			cmd.Dir = repoRoot()
			if out, err := cmd.CombinedOutput(); err != nil {
				buildErr = errors.New(string(out))
				return
			}
		}
	})
	if buildErr != nil {
		t.Fatalf("failed to build binaries: %v", buildErr)
	}
	return binDir
}

type result struct {
	code   int
	stdout string
	stderr string
}

// runBugfind runs the bugfind binary in an empty working directory.
func runBugfind(t *testing.T, args ...string) result {
	t.Helper()
	bin := buildBinaries(t)

	cmd := exec.Command(filepath.Join(bin, "bugfind"), args...)
	cmd.Dir = t.TempDir()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("failed to run bugfind: %v", err)
	}
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// solverCommands returns the fast and brute-force closestpair commands.
func solverCommands(t *testing.T) (fast, brute string) {
	t.Helper()
	bin := buildBinaries(t)
	solver := filepath.Join(bin, "closestpair")
	return solver, solver + " -brute"
}
