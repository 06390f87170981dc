// Package dispersion generates the low-discrepancy landing-point clouds
// the expected-strokes evaluator integrates over, and wires the default
// collaborator Feeds for a shot. Cloud generation is fully deterministic:
// the same center, axes, and count always produce the same points, which
// the evaluator's adaptive stopping rule depends on (every prefix of a
// Halton-ordered cloud is already representative of the whole ellipse).
package dispersion

import (
	"math"

	"github.com/caddie-sim/caddie-sim/aim"
)

// Halton returns element i (zero-based) of the Halton sequence in the
// given prime base, in [0, 1).
func Halton(i, base int) float64 {
	f := 1.0
	r := 0.0
	for n := i + 1; n > 0; n /= base {
		f /= float64(base)
		r += f * float64(n%base)
	}
	return r
}

// EllipsePoints generates n points filling an ellipse of semi-axes a
// (down-range, along bearingRad) and b (cross-range) yards around center.
// Points follow a Halton(2,3) disk mapping, so any prefix covers the
// ellipse approximately uniformly.
func EllipsePoints(center aim.GeoPoint, a, b float64, n int, bearingRad float64) []aim.GeoPoint {
	sinB, cosB := math.Sin(bearingRad), math.Cos(bearingRad)
	points := make([]aim.GeoPoint, n)
	for i := 0; i < n; i++ {
		// Uniform disk sample from the (i)th Halton pair, stretched to
		// the ellipse axes.
		r := math.Sqrt(Halton(i, 2))
		phi := 2 * math.Pi * Halton(i, 3)
		down := a * r * math.Cos(phi) // along the shot line
		cross := b * r * math.Sin(phi)

		// Rotate the (down, cross) frame into (north, east).
		north := down*cosB - cross*sinB
		east := down*sinB + cross*cosB
		dist := math.Hypot(north, east)
		if dist == 0 {
			points[i] = center
			continue
		}
		points[i] = aim.Offset(center, dist, math.Atan2(east, north))
	}
	return points
}

// Model parameterizes dispersion-ellipse size by player skill: semi-axes
// grow linearly with carry distance, floored so short shots still scatter.
type Model struct {
	DepthPct   float64 // down-range semi-axis as a fraction of distance
	WidthPct   float64 // cross-range semi-axis as a fraction of distance
	MinAxisYds float64
}

// ScratchModel approximates a scratch golfer's dispersion.
func ScratchModel() Model {
	return Model{DepthPct: 0.05, WidthPct: 0.035, MinAxisYds: 2}
}

// AmateurModel approximates a mid-handicap golfer's dispersion.
func AmateurModel() Model {
	return Model{DepthPct: 0.09, WidthPct: 0.065, MinAxisYds: 3}
}

// Axes returns the (down-range, cross-range) semi-axes in yards for a
// carry of distanceYds.
func (m Model) Axes(distanceYds float64) (a, b float64) {
	a = math.Max(distanceYds*m.DepthPct, m.MinAxisYds)
	b = math.Max(distanceYds*m.WidthPct, m.MinAxisYds)
	return a, b
}
