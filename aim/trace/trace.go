// Package trace records what an aim-point search decided and why, so a
// run can be inspected after the fact without re-optimizing. Recording is
// off by default; the optimizer writes into a SearchTrace when given one.
package trace

// TraceLevel controls the verbosity of search tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelIterations captures one record per CEM iteration.
	TraceLevelIterations TraceLevel = "iterations"
	// TraceLevelCandidates additionally captures every drawn candidate.
	TraceLevelCandidates TraceLevel = "candidates"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:       true,
	TraceLevelIterations: true,
	TraceLevelCandidates: true,
	"":                   true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SearchTrace collects decision records during one optimization run.
type SearchTrace struct {
	Config     TraceConfig
	Iterations []IterationRecord
	Candidates []CandidateRecord
}

// NewSearchTrace creates a SearchTrace ready for recording.
func NewSearchTrace(config TraceConfig) *SearchTrace {
	return &SearchTrace{
		Config:     config,
		Iterations: make([]IterationRecord, 0),
		Candidates: make([]CandidateRecord, 0),
	}
}

// RecordIteration appends an iteration record when the level admits it.
func (st *SearchTrace) RecordIteration(record IterationRecord) {
	if st.Config.Level == TraceLevelNone || st.Config.Level == "" {
		return
	}
	st.Iterations = append(st.Iterations, record)
}

// RecordCandidate appends a candidate record at TraceLevelCandidates.
func (st *SearchTrace) RecordCandidate(record CandidateRecord) {
	if st.Config.Level != TraceLevelCandidates {
		return
	}
	st.Candidates = append(st.Candidates, record)
}
