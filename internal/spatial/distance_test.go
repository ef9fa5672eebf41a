package spatial

import (
	"math"
	"testing"
)

func TestHaversineDistanceKnownPair(t *testing.T) {
	// Johannesburg Park Station to Pretoria Bosman, roughly 51 km
	d := HaversineDistance(-26.1952, 28.0416, -25.7545, 28.1798)
	if d < 50000 || d > 56000 {
		t.Errorf("distance = %.0f m, want ~51 km", d)
	}
}

func TestDistanceKmZero(t *testing.T) {
	p := Point{Lat: -33.9249, Lon: 18.4241}
	if d := DistanceKm(p, p); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestLegLengthsKm(t *testing.T) {
	points := []Point{{0, 0}, {0, 1}, {0, 3}}
	legs := LegLengthsKm(points)
	if len(legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(legs))
	}
	if math.Abs(legs[1]-2*legs[0]) > 1e-6 {
		t.Errorf("second leg %.6f should be twice the first %.6f on the equator", legs[1], legs[0])
	}
	if LegLengthsKm(points[:1]) != nil {
		t.Error("single point should have no legs")
	}
}

func TestPointValid(t *testing.T) {
	if !(Point{Lat: 45, Lon: 90}).Valid() {
		t.Error("expected valid point")
	}
	if (Point{Lat: 91, Lon: 0}).Valid() {
		t.Error("latitude 91 should be invalid")
	}
}
