// Package hunter drives the differential loop: generate a case, run both
// programs on it, compare their distances, stop at the first disagreement.
package hunter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"

	"github.com/AndreyAkinshin/bugfind/internal/compare"
	bferrors "github.com/AndreyAkinshin/bugfind/internal/errors"
	"github.com/AndreyAkinshin/bugfind/internal/logging"
	"github.com/AndreyAkinshin/bugfind/internal/runner"
	"github.com/AndreyAkinshin/bugfind/internal/testcase"
)

// Executor runs one program on one input.
// *runner.Runner is the production implementation.
type Executor interface {
	Run(ctx context.Context, p runner.Program, input string) (string, error)
}

// Config holds everything a hunt needs.
type Config struct {
	Candidate     runner.Program
	Reference     runner.Program
	Iterations    int
	MinPoints     int
	MaxPoints     int
	Bounds        r2.Rect
	Tolerance     compare.Tolerance
	Seed          uint64
	ProgressEvery int // 0 disables progress callbacks
}

// ProgressFunc is called after every Config.ProgressEvery iterations.
type ProgressFunc func(iteration, total int)

// Result summarizes a finished hunt.
type Result struct {
	RunID      string
	Seed       uint64
	Iterations int       // Iterations completed, including the mismatching one
	Mismatch   *Mismatch // nil when the programs agreed on every case
}

// Found reports whether a mismatch was found.
func (r *Result) Found() bool {
	return r.Mismatch != nil
}

// Mismatch is the first case on which the programs disagreed.
type Mismatch struct {
	Iteration int
	Outcome
}

// Hunter runs the loop.
type Hunter struct {
	cfg      Config
	exec     Executor
	gen      *testcase.Generator
	progress ProgressFunc
	runID    string
}

// New creates a hunter. The config is expected to be validated.
func New(cfg Config, exec Executor) *Hunter {
	rng := testcase.NewRand(cfg.Seed)
	return &Hunter{
		cfg:   cfg,
		exec:  exec,
		gen:   testcase.NewGenerator(rng, cfg.Bounds, cfg.MinPoints, cfg.MaxPoints),
		runID: uuid.NewString(),
	}
}

// OnProgress registers the progress callback.
func (h *Hunter) OnProgress(fn ProgressFunc) {
	h.progress = fn
}

// RunID returns the identifier attached to this hunt's logs and report.
func (h *Hunter) RunID() string {
	return h.runID
}

// Hunt runs up to Config.Iterations cases.
// It returns as soon as a mismatch is found. Execution and parse errors abort
// the hunt; the partial Result is returned alongside the error.
func (h *Hunter) Hunt(ctx context.Context) (*Result, error) {
	log := logging.Logger().With(slog.String("run_id", h.runID))
	log.Debug("hunt started",
		slog.Uint64("seed", h.cfg.Seed),
		slog.Int("iterations", h.cfg.Iterations),
		slog.String("tolerance", h.cfg.Tolerance.String()),
	)

	res := &Result{RunID: h.runID, Seed: h.cfg.Seed}
	start := time.Now()

	for i := 1; i <= h.cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		tc := h.gen.Generate()
		outcome, err := Check(ctx, h.exec, h.cfg.Candidate, h.cfg.Reference, tc, h.cfg.Tolerance)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			log.Debug("hunt aborted", slog.Int("iteration", i), slog.Any("err", err))
			return res, bferrors.Wrap(err, fmt.Sprintf("iteration %d", i))
		}
		res.Iterations = i

		if !outcome.Equal {
			res.Mismatch = &Mismatch{Iteration: i, Outcome: *outcome}
			log.Debug("mismatch found",
				slog.Int("iteration", i),
				slog.Int("points", tc.N()),
				slog.Float64("candidate", outcome.CandidateDistance),
				slog.Float64("reference", outcome.ReferenceDistance),
			)
			return res, nil
		}

		if h.progress != nil && h.cfg.ProgressEvery > 0 && i%h.cfg.ProgressEvery == 0 {
			h.progress(i, h.cfg.Iterations)
		}
	}

	log.Debug("hunt finished", slog.Int("iterations", res.Iterations), slog.Duration("elapsed", time.Since(start)))
	return res, nil
}

// NewSeed returns a seed derived from the clock, for runs without --seed.
func NewSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
