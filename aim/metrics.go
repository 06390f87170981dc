// Tracks per-run search statistics for final reporting and debugging.

package aim

import "fmt"

// RunMetrics aggregates statistics about one optimization run. Useful for
// judging how much of the sampling budget the adaptive stopping rule
// actually saved, and how aggressive the feasibility filter was.
type RunMetrics struct {
	IterationsRun       int // CEM rounds completed
	CandidatesDrawn     int // total candidates generated
	SkippedOverCarry    int // filtered: radius beyond max carry
	SkippedInfeasible   int // filtered: external feasibility predicate
	CandidatesEvaluated int // candidates that reached the evaluator
	SamplesConsumed     int // Monte-Carlo samples folded across all evaluations
	EarlyStops          int // evaluations that stopped before MaxSamples
}

// Print displays aggregated metrics at the end of a run.
func (m *RunMetrics) Print() {
	fmt.Println("=== Search Metrics ===")
	fmt.Printf("Iterations           : %d\n", m.IterationsRun)
	fmt.Printf("Candidates Drawn     : %d\n", m.CandidatesDrawn)
	fmt.Printf("Skipped (carry)      : %d\n", m.SkippedOverCarry)
	fmt.Printf("Skipped (infeasible) : %d\n", m.SkippedInfeasible)
	fmt.Printf("Evaluated            : %d\n", m.CandidatesEvaluated)
	if m.CandidatesEvaluated > 0 {
		fmt.Printf("MC Samples           : %d (%.1f per evaluation)\n",
			m.SamplesConsumed, float64(m.SamplesConsumed)/float64(m.CandidatesEvaluated))
		fmt.Printf("Early Stops          : %d (%.0f%%)\n",
			m.EarlyStops, 100*float64(m.EarlyStops)/float64(m.CandidatesEvaluated))
	}
}
