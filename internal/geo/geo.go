// Package geo provides great-circle distance helpers on WGS-84 coordinates.
// A planar road network is not modeled; the haversine approximation is what
// the route heuristic orders by.
package geo

import "math"

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(a, b Point) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// RouteDistanceKm returns the total distance of an ordered route in
// kilometers, summing consecutive legs.
func RouteDistanceKm(route []Point) float64 {
	total := 0.0
	for i := 0; i < len(route)-1; i++ {
		total += HaversineKm(route[i], route[i+1])
	}
	return total
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
