package aim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ESResult is the outcome of one expected-strokes evaluation. Immutable
// once produced.
type ESResult struct {
	Mean      float64                // estimated expected strokes-to-hole-out
	CI95      float64                // half-width of the 95% CI on Mean
	N         int                    // samples actually consumed
	Histogram [NumTerrainClasses]int // per-class sample hit counts
}

// EvalRequest carries everything one evaluation needs: the pin, a
// pre-generated low-discrepancy dispersion cloud, the parallel class
// sequence for it, and the sampling budget. Points and Classes must be
// index-aligned; the evaluator consumes them strictly in order, which is
// why the cloud must be low-discrepancy (deterministic prefixes must
// already be representative for the early-stop rule to be sound).
type EvalRequest struct {
	Pin        GeoPoint
	Points     []GeoPoint
	Classes    []TerrainClass
	MinSamples int
	MaxSamples int
	Epsilon    float64 // target CI95 half-width for early stopping
}

func (r EvalRequest) validate() error {
	if len(r.Points) != len(r.Classes) {
		return fmt.Errorf("evaluate: %d points but %d classes", len(r.Points), len(r.Classes))
	}
	if len(r.Points) == 0 {
		return fmt.Errorf("evaluate: empty dispersion cloud")
	}
	if r.MinSamples <= 0 || r.MaxSamples < r.MinSamples {
		return fmt.Errorf("evaluate: bad sample budget min=%d max=%d", r.MinSamples, r.MaxSamples)
	}
	return nil
}

// ExpectedStrokesEvaluator estimates expected strokes for an aim point by
// adaptive Monte-Carlo integration over a dispersion cloud. A single
// deterministic pass per invocation: identical inputs give an identical
// stop index and result.
type ExpectedStrokesEvaluator struct {
	model *StrokesModel
}

// NewExpectedStrokesEvaluator builds an evaluator over the given cost
// model (nil selects the default scratch-golfer model).
func NewExpectedStrokesEvaluator(model *StrokesModel) *ExpectedStrokesEvaluator {
	if model == nil {
		model = NewStrokesModel()
	}
	return &ExpectedStrokesEvaluator{model: model}
}

// Evaluate folds dispersion samples into an OnlineStats accumulator in
// order, stopping at the first zero-based index i with i+1 >= MinSamples
// and running CI95 <= Epsilon. If MaxSamples (or the cloud) is exhausted
// first, the result reports whatever confidence was achieved. The i+1
// boundary makes N == MinSamples reachable exactly.
func (e *ExpectedStrokesEvaluator) Evaluate(req EvalRequest) (ESResult, error) {
	if err := req.validate(); err != nil {
		return ESResult{}, err
	}

	limit := req.MaxSamples
	if len(req.Points) < limit {
		limit = len(req.Points)
	}

	var stats OnlineStats
	var hist [NumTerrainClasses]int
	for i := 0; i < limit; i++ {
		class := req.Classes[i]
		if !class.Valid() {
			class = ClassRough
		}
		hist[class]++

		yards := YardsBetween(req.Points[i], req.Pin)
		stats.Add(e.model.Strokes(class, yards))

		if i+1 >= req.MinSamples && stats.CI95() <= req.Epsilon {
			break
		}
	}

	res := ESResult{
		Mean:      stats.Mean(),
		CI95:      stats.CI95(),
		N:         int(stats.N()),
		Histogram: hist,
	}
	logrus.Debugf("expected strokes %.3f +/- %.3f after %d samples", res.Mean, res.CI95, res.N)
	return res, nil
}
