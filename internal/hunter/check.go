package hunter

import (
	"context"

	"github.com/AndreyAkinshin/bugfind/internal/compare"
	"github.com/AndreyAkinshin/bugfind/internal/runner"
	"github.com/AndreyAkinshin/bugfind/internal/testcase"
)

// Outcome is the result of running both programs on one case.
type Outcome struct {
	Input             testcase.TestCase
	CandidateOutput   string
	ReferenceOutput   string
	CandidateDistance float64
	ReferenceDistance float64
	Equal             bool
	Diff              string // Empty when Equal
}

// Check runs the candidate and then the reference on tc and compares the
// distances they report.
func Check(ctx context.Context, exec Executor, candidate, reference runner.Program, tc testcase.TestCase, tol compare.Tolerance) (*Outcome, error) {
	input := tc.String()

	candOut, candDist, err := distance(ctx, exec, candidate, input)
	if err != nil {
		return nil, err
	}
	refOut, refDist, err := distance(ctx, exec, reference, input)
	if err != nil {
		return nil, err
	}

	equal, diff := compare.Equal(candDist, refDist, tol)
	return &Outcome{
		Input:             tc,
		CandidateOutput:   candOut,
		ReferenceOutput:   refOut,
		CandidateDistance: candDist,
		ReferenceDistance: refDist,
		Equal:             equal,
		Diff:              diff,
	}, nil
}

func distance(ctx context.Context, exec Executor, p runner.Program, input string) (string, float64, error) {
	out, err := exec.Run(ctx, p, input)
	if err != nil {
		return "", 0, err
	}
	answer, err := compare.ParseAnswer(p.Name, out)
	if err != nil {
		return out, 0, err
	}
	return out, answer.Distance(), nil
}
