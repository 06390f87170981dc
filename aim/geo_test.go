package aim

import (
	"math"
	"testing"
)

func TestYardsBetween_KnownLatitudeStep(t *testing.T) {
	// GIVEN two points 0.001 degrees of latitude apart (~111.2 m)
	a := GeoPoint{Lon: 0, Lat: 0}
	b := GeoPoint{Lon: 0, Lat: 0.001}

	// WHEN measuring the great-circle distance
	got := YardsBetween(a, b)

	// THEN it is ~121.6 yards
	want := earthRadiusMeters * 0.001 * math.Pi / 180 / metersPerYard
	if math.Abs(got-want) > 0.01 {
		t.Errorf("YardsBetween: got %v, want %v", got, want)
	}
}

func TestYardsBetween_Symmetric(t *testing.T) {
	a := GeoPoint{Lon: -121.9436, Lat: 36.5684} // mid-fairway somewhere coastal
	b := GeoPoint{Lon: -121.9411, Lat: 36.5702}
	if d1, d2 := YardsBetween(a, b), YardsBetween(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("asymmetric distance: %v vs %v", d1, d2)
	}
}

func TestOffset_RoundTripsWithDistanceAndBearing(t *testing.T) {
	// GIVEN a start point and a polar offset
	start := GeoPoint{Lon: -121.9436, Lat: 36.5684}
	const radius = 185.0
	const bearing = 0.61

	// WHEN displacing and measuring back
	p := Offset(start, radius, bearing)

	// THEN distance and bearing both round-trip within tolerance
	if d := YardsBetween(start, p); math.Abs(d-radius) > 0.1 {
		t.Errorf("round-trip distance: got %v, want %v", d, radius)
	}
	if th := BearingBetween(start, p); math.Abs(th-bearing) > 1e-3 {
		t.Errorf("round-trip bearing: got %v, want %v", th, bearing)
	}
}

func TestOffset_ZeroRadius_Identity(t *testing.T) {
	p := GeoPoint{Lon: 2.5, Lat: 41.2}
	if got := Offset(p, 0, 1.234); got != p {
		t.Errorf("zero offset moved the point: %+v", got)
	}
}

func TestBearingBetween_CardinalDirections(t *testing.T) {
	origin := GeoPoint{}
	tests := []struct {
		name string
		to   GeoPoint
		want float64
	}{
		{"north", GeoPoint{Lon: 0, Lat: 0.001}, 0},
		{"east", GeoPoint{Lon: 0.001, Lat: 0}, math.Pi / 2},
		{"south", GeoPoint{Lon: 0, Lat: -0.001}, math.Pi},
		{"west", GeoPoint{Lon: -0.001, Lat: 0}, -math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BearingBetween(origin, tt.to)
			if math.Abs(math.Abs(got)-math.Abs(tt.want)) > 1e-9 {
				t.Errorf("bearing to %s: got %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
