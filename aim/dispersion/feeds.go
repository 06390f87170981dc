package dispersion

import (
	"math"

	"github.com/caddie-sim/caddie-sim/aim"
)

// ClassSampler is the one method the default feeds need from a terrain
// source. *aim.TerrainSampler satisfies it; tests substitute fixtures.
type ClassSampler interface {
	SampleClasses(points []aim.GeoPoint) []aim.TerrainClass
}

// NewFeeds wires the default collaborator set for a shot from start
// toward pin. Bearings are measured relative to the start->pin line, so
// the optimizer's initial zero-bearing guess aims straight at the pin.
//
// The default feasibility rule is forward progress only: the shot must
// move toward the pin (|bearing| < 90 degrees) with a positive carry.
// Callers layer hazard-inflation rules on top by replacing Feasible.
func NewFeeds(start, pin aim.GeoPoint, model Model, sampler ClassSampler) aim.Feeds {
	base := aim.BearingBetween(start, pin)
	return aim.Feeds{
		Feasible: func(radiusYds, bearingRad float64) bool {
			return radiusYds > 0 && math.Abs(bearingRad) < math.Pi/2
		},
		ToLatLon: func(radiusYds, bearingRad float64) aim.GeoPoint {
			return aim.Offset(start, radiusYds, base+bearingRad)
		},
		AxesFor: model.Axes,
		MakeEllipsePoints: func(center aim.GeoPoint, a, b float64, n int) []aim.GeoPoint {
			return EllipsePoints(center, a, b, n, base)
		},
		SampleClasses: sampler.SampleClasses,
	}
}
