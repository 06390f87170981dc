package aim

import "math"

// OnlineStats is a numerically stable incremental mean/variance estimator
// (Welford's algorithm). Each Add is O(1) time and memory regardless of
// how many samples have been folded in, and the M2 formulation avoids the
// catastrophic cancellation a naive sum-of-squares accumulator suffers
// over thousands of samples.
//
// Thread-safety: NOT thread-safe. One accumulator per evaluation.
type OnlineStats struct {
	n    int64
	mean float64
	m2   float64 // sum of squared deviations from the running mean
}

// Add folds one observation into the accumulator.
func (s *OnlineStats) Add(x float64) {
	s.n++
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (x - s.mean)
}

// N returns the number of observations added so far.
func (s *OnlineStats) N() int64 { return s.n }

// Mean returns the running arithmetic mean (0 before any observation).
func (s *OnlineStats) Mean() float64 { return s.mean }

// Variance returns the Bessel-corrected sample variance, 0 for n <= 1.
func (s *OnlineStats) Variance() float64 {
	if s.n <= 1 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

// StdDev returns the sample standard deviation, 0 for n <= 1.
func (s *OnlineStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// CI95 returns the half-width of the 95% confidence interval on the mean,
// 1.96*sd/sqrt(n). For n <= 1 it returns +Inf ("not enough data to stop"),
// so an adaptive-stopping rule can never fire on a single sample.
func (s *OnlineStats) CI95() float64 {
	if s.n <= 1 {
		return math.Inf(1)
	}
	return 1.96 * s.StdDev() / math.Sqrt(float64(s.n))
}
