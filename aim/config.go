package aim

import "fmt"

// SigmaFloor is the lower bound on the CEM sampling distribution's spread,
// preventing premature collapse onto a single candidate.
type SigmaFloor struct {
	RadiusYds float64 `yaml:"radius_yds"`
	ThetaDeg  float64 `yaml:"theta_deg"`
}

// SearchConfig groups every knob of one optimization run. Wall-clock cost
// is bounded by Iterations x BatchSize x MaxSamples; no internal timeouts.
type SearchConfig struct {
	MaxCarryYds float64    `yaml:"max_carry_yds"` // longest feasible carry for this player
	Iterations  int        `yaml:"iterations"`    // CEM rounds
	BatchSize   int        `yaml:"batch_size"`    // candidates drawn per round
	ElitePct    float64    `yaml:"elite_pct"`     // fraction of survivors kept as elites
	SigmaFloor  SigmaFloor `yaml:"sigma_floor"`

	// Monte-Carlo budget per candidate evaluation.
	CloudSize  int     `yaml:"cloud_size"`  // dispersion points generated per candidate
	MinSamples int     `yaml:"min_samples"` // samples before early stop may fire
	MaxSamples int     `yaml:"max_samples"` // hard sample cap
	Epsilon    float64 `yaml:"epsilon"`     // target CI95 half-width (strokes)

	// Parallelism bounds concurrent candidate evaluations within one
	// batch; 1 (the default) keeps the reference sequential behavior.
	Parallelism int `yaml:"parallelism"`
}

// DefaultSearchConfig returns the tuning used by the interactive planner.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxCarryYds: 250,
		Iterations:  8,
		BatchSize:   24,
		ElitePct:    0.25,
		SigmaFloor:  SigmaFloor{RadiusYds: 4, ThetaDeg: 1.5},
		CloudSize:   400,
		MinSamples:  60,
		MaxSamples:  400,
		Epsilon:     0.02,
		Parallelism: 1,
	}
}

// Validate rejects configurations the search cannot run under.
func (c SearchConfig) Validate() error {
	if c.MaxCarryYds <= 0 {
		return fmt.Errorf("search config: max carry must be positive, got %g", c.MaxCarryYds)
	}
	if c.Iterations <= 0 || c.BatchSize <= 0 {
		return fmt.Errorf("search config: iterations=%d batch=%d must be positive", c.Iterations, c.BatchSize)
	}
	if c.ElitePct <= 0 || c.ElitePct > 1 {
		return fmt.Errorf("search config: elite pct %g outside (0, 1]", c.ElitePct)
	}
	if c.SigmaFloor.RadiusYds < 0 || c.SigmaFloor.ThetaDeg < 0 {
		return fmt.Errorf("search config: negative sigma floor %+v", c.SigmaFloor)
	}
	if c.CloudSize <= 0 {
		return fmt.Errorf("search config: cloud size must be positive, got %d", c.CloudSize)
	}
	if c.MinSamples <= 0 || c.MaxSamples < c.MinSamples {
		return fmt.Errorf("search config: bad sample budget min=%d max=%d", c.MinSamples, c.MaxSamples)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("search config: negative epsilon %g", c.Epsilon)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("search config: negative parallelism %d", c.Parallelism)
	}
	return nil
}
