package aim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/caddie-sim/caddie-sim/aim/trace"
)

// ErrNoFeasibleAim reports that no candidate ever passed the feasibility
// filter across all iterations. A user-visible "no safe aim point found"
// condition, not a crash.
var ErrNoFeasibleAim = errors.New("no feasible aim point found")

// Feeds are the external collaborators one search consumes. All five are
// pure functions with no hidden globals, so the optimizer stays testable
// without any map or rendering environment.
type Feeds struct {
	// Feasible applies the hazard-inflation / forward-progress rule.
	Feasible func(radiusYds, bearingRad float64) bool
	// ToLatLon converts a polar offset from the shot start point.
	ToLatLon func(radiusYds, bearingRad float64) GeoPoint
	// AxesFor returns dispersion-ellipse semi-axes (yards) at a carry distance.
	AxesFor func(distanceYds float64) (a, b float64)
	// MakeEllipsePoints generates a deterministic low-discrepancy cloud of n points.
	MakeEllipsePoints func(center GeoPoint, a, b float64, n int) []GeoPoint
	// SampleClasses is the batch terrain lookup for a cloud.
	SampleClasses func(points []GeoPoint) []TerrainClass
}

func (f Feeds) validate() error {
	if f.Feasible == nil || f.ToLatLon == nil || f.AxesFor == nil ||
		f.MakeEllipsePoints == nil || f.SampleClasses == nil {
		return errors.New("feeds: all five collaborator functions must be set")
	}
	return nil
}

// AimCandidate is one evaluated aim point: its polar offset from the shot
// start, the converted geographic point, and the expected-strokes result.
// Owned by a single run; never shared across runs.
type AimCandidate struct {
	RadiusYds  float64
	BearingRad float64
	Aim        GeoPoint
	Result     ESResult
}

// SearchDistribution is the CEM sampling distribution: an independent
// Gaussian per axis over (radius, bearing). Replaced wholesale once per
// iteration; never shared between iterations by reference.
type SearchDistribution struct {
	MeanRadius  float64
	MeanTheta   float64
	SigmaRadius float64
	SigmaTheta  float64
}

// AimPointOptimizer runs a Cross-Entropy-Method search over aim-point
// candidates, repeatedly invoking the expected-strokes evaluator. The
// evolving distribution is only a search heuristic; the output is the
// single best-ever candidate by lowest mean expected strokes.
type AimPointOptimizer struct {
	pin   GeoPoint
	feeds Feeds
	cfg   SearchConfig
	eval  *ExpectedStrokesEvaluator
	rng   *PartitionedRNG

	dist    SearchDistribution
	best    *AimCandidate
	metrics RunMetrics

	// Trace, when non-nil, records iteration and candidate decisions.
	Trace *trace.SearchTrace
}

// NewAimPointOptimizer validates the configuration and feeds and seeds
// the initial search distribution. Same key, same config, same feeds:
// bit-identical search.
func NewAimPointOptimizer(pin GeoPoint, feeds Feeds, cfg SearchConfig, key SearchKey) (*AimPointOptimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := feeds.validate(); err != nil {
		return nil, err
	}
	return &AimPointOptimizer{
		pin:   pin,
		feeds: feeds,
		cfg:   cfg,
		eval:  NewExpectedStrokesEvaluator(nil),
		rng:   NewPartitionedRNG(key),
		dist: SearchDistribution{
			MeanRadius:  0.7 * cfg.MaxCarryYds,
			MeanTheta:   0,
			SigmaRadius: 0.25 * cfg.MaxCarryYds,
			SigmaTheta:  20 * math.Pi / 180,
		},
	}, nil
}

// Distribution returns the current sampling distribution (by value).
func (o *AimPointOptimizer) Distribution() SearchDistribution {
	return o.dist
}

// Metrics returns the run metrics accumulated so far.
func (o *AimPointOptimizer) Metrics() RunMetrics {
	return o.metrics
}

// Run executes the configured number of CEM iterations and returns the
// best-ever candidate. Returns ErrNoFeasibleAim if every drawn candidate
// was filtered out in every iteration. Cancelling ctx abandons the run;
// partial results are discarded and carry no side effects.
func (o *AimPointOptimizer) Run(ctx context.Context) (*AimCandidate, error) {
	for iter := 0; iter < o.cfg.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pool, err := o.runIteration(ctx, iter)
		if err != nil {
			return nil, err
		}
		o.metrics.IterationsRun++
		o.updateDistribution(iter, pool)
	}
	if o.best == nil {
		return nil, ErrNoFeasibleAim
	}
	return o.best, nil
}

// runIteration draws one batch, filters it, and evaluates the survivors.
// All of an iteration's evaluations complete before it returns, which is
// the only ordering the elite update needs.
func (o *AimPointOptimizer) runIteration(ctx context.Context, iter int) ([]*AimCandidate, error) {
	rng := o.rng.ForSubsystem(SubsystemSearch)

	// Draws are sequential on the search RNG stream; evaluation below may
	// fan out, so all randomness is consumed before any evaluation starts.
	pool := make([]*AimCandidate, 0, o.cfg.BatchSize)
	for i := 0; i < o.cfg.BatchSize; i++ {
		radius := rng.NormFloat64()*math.Max(o.dist.SigmaRadius, o.cfg.SigmaFloor.RadiusYds) + o.dist.MeanRadius
		theta := rng.NormFloat64()*math.Max(o.dist.SigmaTheta, o.cfg.SigmaFloor.ThetaDeg*math.Pi/180) + o.dist.MeanTheta
		o.metrics.CandidatesDrawn++

		if radius > o.cfg.MaxCarryYds {
			o.metrics.SkippedOverCarry++
			o.recordCandidate(trace.CandidateRecord{Iteration: iter, RadiusYds: radius, BearingRad: theta})
			continue
		}
		if !o.feeds.Feasible(radius, theta) {
			o.metrics.SkippedInfeasible++
			o.recordCandidate(trace.CandidateRecord{Iteration: iter, RadiusYds: radius, BearingRad: theta})
			continue
		}
		pool = append(pool, &AimCandidate{
			RadiusYds:  radius,
			BearingRad: theta,
			Aim:        o.feeds.ToLatLon(radius, theta),
		})
	}

	if err := o.evaluatePool(ctx, pool); err != nil {
		return nil, err
	}

	// Scan in generation order so ties keep the first-encountered
	// candidate (comparisons are strict-less-than).
	for _, c := range pool {
		o.metrics.CandidatesEvaluated++
		o.metrics.SamplesConsumed += c.Result.N
		if c.Result.N < o.cfg.MaxSamples && c.Result.N < o.cfg.CloudSize {
			o.metrics.EarlyStops++
		}
		o.recordCandidate(trace.CandidateRecord{
			Iteration:  iter,
			RadiusYds:  c.RadiusYds,
			BearingRad: c.BearingRad,
			Feasible:   true,
			MeanES:     c.Result.Mean,
			CI95:       c.Result.CI95,
			Samples:    c.Result.N,
		})
		if o.best == nil || c.Result.Mean < o.best.Result.Mean {
			o.best = c
		}
	}
	return pool, nil
}

// evaluatePool runs the expected-strokes evaluation for every surviving
// candidate. Candidates are read-only with respect to each other, so a
// Parallelism above 1 fans the batch out over an errgroup; each candidate
// still writes only its own Result.
func (o *AimPointOptimizer) evaluatePool(ctx context.Context, pool []*AimCandidate) error {
	if o.cfg.Parallelism <= 1 {
		for _, c := range pool {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := o.evaluateCandidate(c); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Parallelism)
	for _, c := range pool {
		c := c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return o.evaluateCandidate(c)
		})
	}
	return g.Wait()
}

// evaluateCandidate generates the candidate's dispersion cloud, resolves
// terrain classes for it, and runs the adaptive evaluator.
func (o *AimPointOptimizer) evaluateCandidate(c *AimCandidate) error {
	a, b := o.feeds.AxesFor(c.RadiusYds)
	points := o.feeds.MakeEllipsePoints(c.Aim, a, b, o.cfg.CloudSize)
	classes := o.feeds.SampleClasses(points)

	res, err := o.eval.Evaluate(EvalRequest{
		Pin:        o.pin,
		Points:     points,
		Classes:    classes,
		MinSamples: o.cfg.MinSamples,
		MaxSamples: o.cfg.MaxSamples,
		Epsilon:    o.cfg.Epsilon,
	})
	if err != nil {
		return fmt.Errorf("candidate (r=%.1f, th=%.3f): %w", c.RadiusYds, c.BearingRad, err)
	}
	c.Result = res
	return nil
}

// updateDistribution refits the sampling distribution to the iteration's
// elite set. An empty pool leaves the distribution as-is so the next
// iteration re-draws from the same region.
func (o *AimPointOptimizer) updateDistribution(iter int, pool []*AimCandidate) {
	if len(pool) > 0 {
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].Result.Mean < pool[j].Result.Mean
		})

		eliteCount := int(math.Ceil(o.cfg.ElitePct * float64(len(pool))))
		if eliteCount < 2 {
			eliteCount = 2
		}
		if eliteCount > len(pool) {
			eliteCount = len(pool)
		}

		radii := make([]float64, eliteCount)
		thetas := make([]float64, eliteCount)
		for i := 0; i < eliteCount; i++ {
			radii[i] = pool[i].RadiusYds
			thetas[i] = pool[i].BearingRad
		}

		// Population (not Bessel-corrected) standard deviation over the
		// elites, matching the reference numbers for small elite sets.
		o.dist = SearchDistribution{
			MeanRadius:  stat.Mean(radii, nil),
			MeanTheta:   stat.Mean(thetas, nil),
			SigmaRadius: stat.PopStdDev(radii, nil),
			SigmaTheta:  stat.PopStdDev(thetas, nil),
		}

		o.recordIteration(iter, len(pool), eliteCount)
		logrus.Infof("iteration %d: %d/%d survived, elite %d, dist r=%.1f+/-%.1f th=%.3f+/-%.3f best=%.3f",
			iter, len(pool), o.cfg.BatchSize, eliteCount,
			o.dist.MeanRadius, o.dist.SigmaRadius, o.dist.MeanTheta, o.dist.SigmaTheta, o.bestES())
		return
	}

	o.recordIteration(iter, 0, 0)
	logrus.Infof("iteration %d: no candidate survived the feasibility filter", iter)
}

func (o *AimPointOptimizer) bestES() float64 {
	if o.best == nil {
		return math.Inf(1)
	}
	return o.best.Result.Mean
}

func (o *AimPointOptimizer) recordCandidate(record trace.CandidateRecord) {
	if o.Trace != nil {
		o.Trace.RecordCandidate(record)
	}
}

func (o *AimPointOptimizer) recordIteration(iter, survived, elites int) {
	if o.Trace == nil {
		return
	}
	o.Trace.RecordIteration(trace.IterationRecord{
		Iteration:   iter,
		Drawn:       o.cfg.BatchSize,
		Survived:    survived,
		Elites:      elites,
		MeanRadius:  o.dist.MeanRadius,
		MeanTheta:   o.dist.MeanTheta,
		SigmaRadius: o.dist.SigmaRadius,
		SigmaTheta:  o.dist.SigmaTheta,
		BestES:      o.bestES(),
	})
}
