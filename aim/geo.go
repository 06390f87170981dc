package aim

import "math"

// Geometric constants shared by the projection helpers.
const (
	earthRadiusMeters = 6371000.0
	metersPerYard     = 0.9144
)

// GeoPoint is an immutable (longitude, latitude) pair in degrees.
// All distance math projects to local equirectangular meters near the
// region of interest before comparing points.
type GeoPoint struct {
	Lon float64
	Lat float64
}

// YardsBetween returns the great-circle distance between two points in
// yards, using a spherical Earth of radius 6,371,000 m. The haversine
// form is stable for the short (sub-kilometer) distances a hole spans.
func YardsBetween(a, b GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	meters := 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
	return meters / metersPerYard
}

// Offset displaces p by radiusYards along bearingRad (0 = due north,
// clockwise positive) using a local equirectangular approximation.
// Accurate to well under a yard at hole scale; not intended for
// trans-continental offsets.
func Offset(p GeoPoint, radiusYards, bearingRad float64) GeoPoint {
	meters := radiusYards * metersPerYard
	dNorth := meters * math.Cos(bearingRad)
	dEast := meters * math.Sin(bearingRad)

	dLat := dNorth / earthRadiusMeters * 180 / math.Pi
	dLon := dEast / (earthRadiusMeters * math.Cos(p.Lat*math.Pi/180)) * 180 / math.Pi
	return GeoPoint{Lon: p.Lon + dLon, Lat: p.Lat + dLat}
}

// BearingBetween returns the initial bearing in radians from a to b
// (0 = north, clockwise positive), using the same local equirectangular
// frame as Offset so the two functions round-trip.
func BearingBetween(a, b GeoPoint) float64 {
	dNorth := (b.Lat - a.Lat) * math.Pi / 180 * earthRadiusMeters
	dEast := (b.Lon - a.Lon) * math.Pi / 180 * earthRadiusMeters * math.Cos(a.Lat*math.Pi/180)
	return math.Atan2(dEast, dNorth)
}
