package cli

import (
	"fmt"
	"strconv"

	"github.com/gen2brain/beeep"

	"github.com/AndreyAkinshin/bugfind/internal/hunter"
)

// printMismatch prints the report of a hunt that found a disagreement.
func printMismatch(res *hunter.Result, cfg hunter.Config) {
	out.SummaryHeader("Mismatch Found")
	out.SummaryItem("run ID", res.RunID)
	out.SummaryItem("seed", strconv.FormatUint(res.Seed, 10))
	out.SummaryItem("iteration", fmt.Sprintf("%d/%d", res.Mismatch.Iteration, cfg.Iterations))
	out.SummaryItem("comparison", cfg.Tolerance.String())
	printOutcome(&res.Mismatch.Outcome)

	out.FinalFailure("mismatch found at iteration %d", res.Mismatch.Iteration)
	out.Hint("replay with: bugfind --seed=%d --iterations=%d", res.Seed, res.Mismatch.Iteration)
}

// printOutcome prints the input, both outputs and both distances.
func printOutcome(o *hunter.Outcome) {
	out.SummaryItem("points", strconv.Itoa(o.Input.N()))
	out.SummaryBlock("input", o.Input.String())
	out.SummaryItem("candidate output", o.CandidateOutput)
	out.SummaryItem("reference output", o.ReferenceOutput)
	out.SummaryFailed("candidate distance", formatDistance(o.CandidateDistance))
	out.SummaryPassed("reference distance", formatDistance(o.ReferenceDistance))
	if o.Diff != "" {
		out.SummaryItem("difference", o.Diff)
	}
}

func formatDistance(d float64) string {
	return strconv.FormatFloat(d, 'g', -1, 64)
}

// notify raises a desktop notification. It is a variable so tests can
// observe notifications without a desktop session.
var notify = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

func sendMismatchNotification(res *hunter.Result) {
	msg := fmt.Sprintf("mismatch at iteration %d (seed %d)", res.Mismatch.Iteration, res.Seed)
	if err := notify("bugfind", msg); err != nil {
		out.Warning("desktop notification failed: %v", err)
	}
}
