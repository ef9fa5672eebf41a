package spatial

import (
	"github.com/golang/geo/s2"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DistanceKm returns the great-circle distance between two points in kilometers
func DistanceKm(a, b Point) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) / 1000.0
}

// LegLengthsKm returns the length of every consecutive leg of a polyline.
// The result has len(points)-1 entries.
func LegLengthsKm(points []Point) []float64 {
	if len(points) < 2 {
		return nil
	}
	legs := make([]float64, len(points)-1)
	for i := 1; i < len(points); i++ {
		legs[i-1] = DistanceKm(points[i-1], points[i])
	}
	return legs
}

// Valid reports whether the point lies within geographic bounds
func (p Point) Valid() bool {
	return s2.LatLngFromDegrees(p.Lat, p.Lon).IsValid()
}

// EarthRadiusMeters is Earth's mean radius
const EarthRadiusMeters = 6371000.0
