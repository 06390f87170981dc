package trace

import "testing"

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"iterations", true},
		{"candidates", true},
		{"", true},
		{"verbose", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSearchTrace_LevelNone_RecordsNothing(t *testing.T) {
	// GIVEN a disabled trace
	st := NewSearchTrace(TraceConfig{Level: TraceLevelNone})

	// WHEN recording
	st.RecordIteration(IterationRecord{Iteration: 0})
	st.RecordCandidate(CandidateRecord{Iteration: 0})

	// THEN nothing is kept
	if len(st.Iterations) != 0 || len(st.Candidates) != 0 {
		t.Errorf("disabled trace recorded %d iterations, %d candidates",
			len(st.Iterations), len(st.Candidates))
	}
}

func TestSearchTrace_LevelIterations_SkipsCandidates(t *testing.T) {
	st := NewSearchTrace(TraceConfig{Level: TraceLevelIterations})

	st.RecordIteration(IterationRecord{Iteration: 0})
	st.RecordCandidate(CandidateRecord{Iteration: 0})

	if len(st.Iterations) != 1 {
		t.Errorf("expected 1 iteration record, got %d", len(st.Iterations))
	}
	if len(st.Candidates) != 0 {
		t.Errorf("expected no candidate records at iteration level, got %d", len(st.Candidates))
	}
}

func TestSearchTrace_LevelCandidates_RecordsBoth(t *testing.T) {
	st := NewSearchTrace(TraceConfig{Level: TraceLevelCandidates})

	st.RecordIteration(IterationRecord{Iteration: 0})
	st.RecordCandidate(CandidateRecord{Iteration: 0, Feasible: true, Samples: 40})
	st.RecordCandidate(CandidateRecord{Iteration: 0})

	if len(st.Iterations) != 1 || len(st.Candidates) != 2 {
		t.Errorf("got %d iterations, %d candidates, want 1 and 2",
			len(st.Iterations), len(st.Candidates))
	}
}
