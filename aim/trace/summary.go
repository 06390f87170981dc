package trace

// TraceSummary aggregates statistics from a SearchTrace.
type TraceSummary struct {
	TotalIterations    int
	TotalCandidates    int
	FilteredOut        int     // candidates that never reached an evaluation
	MeanSamplesPerEval float64 // Monte-Carlo samples consumed per evaluated candidate
	FinalSigmaRadius   float64
	FinalSigmaTheta    float64
	FirstBestES        float64 // best-ever ES after the first recorded iteration
	FinalBestES        float64 // best-ever ES after the last recorded iteration
}

// Summarize computes aggregate statistics from a SearchTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SearchTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.TotalIterations = len(st.Iterations)
	if n := len(st.Iterations); n > 0 {
		summary.FirstBestES = st.Iterations[0].BestES
		last := st.Iterations[n-1]
		summary.FinalBestES = last.BestES
		summary.FinalSigmaRadius = last.SigmaRadius
		summary.FinalSigmaTheta = last.SigmaTheta
	}

	summary.TotalCandidates = len(st.Candidates)
	evaluated := 0
	totalSamples := 0
	for _, c := range st.Candidates {
		if !c.Feasible {
			summary.FilteredOut++
			continue
		}
		evaluated++
		totalSamples += c.Samples
	}
	if evaluated > 0 {
		summary.MeanSamplesPerEval = float64(totalSamples) / float64(evaluated)
	}

	return summary
}
