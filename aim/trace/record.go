package trace

// CandidateRecord captures one drawn candidate's fate: filtered out, or
// evaluated with the given expected-strokes estimate.
type CandidateRecord struct {
	Iteration  int
	RadiusYds  float64
	BearingRad float64
	Feasible   bool
	MeanES     float64 // 0 when the candidate was filtered before evaluation
	CI95       float64
	Samples    int
}

// IterationRecord captures the state of the search after one CEM round.
type IterationRecord struct {
	Iteration   int
	Drawn       int // candidates generated this round
	Survived    int // candidates that passed carry + feasibility filters
	Elites      int
	MeanRadius  float64 // distribution state after the elite update
	MeanTheta   float64
	SigmaRadius float64
	SigmaTheta  float64
	BestES      float64 // best-ever mean expected strokes so far
}
