// Package route orders a day's pending visits into a single travel sequence.
package route

import (
	"rutero/internal/geo"
	"rutero/internal/models"
)

// Order reorders occurrences by nearest-neighbor construction from the depot:
// repeatedly pick the closest remaining occurrence to the current position.
// Ties keep the earlier input occurrence (strict less-than comparison), so
// the result is deterministic for a given input order. O(n²); no 2-opt pass.
func Order(occurrences []models.VisitOccurrence, depot geo.Point) []models.VisitOccurrence {
	remaining := make([]models.VisitOccurrence, len(occurrences))
	copy(remaining, occurrences)

	ordered := make([]models.VisitOccurrence, 0, len(remaining))
	position := depot

	for len(remaining) > 0 {
		best := 0
		bestDist := geo.HaversineKm(position, pointOf(remaining[0]))
		for i := 1; i < len(remaining); i++ {
			if d := geo.HaversineKm(position, pointOf(remaining[i])); d < bestDist {
				best = i
				bestDist = d
			}
		}

		next := remaining[best]
		ordered = append(ordered, next)
		position = pointOf(next)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return ordered
}

// TotalDistanceKm sums the consecutive legs of an ordered sequence, including
// the depot-to-first leg.
func TotalDistanceKm(ordered []models.VisitOccurrence, depot geo.Point) float64 {
	points := make([]geo.Point, 0, len(ordered)+1)
	points = append(points, depot)
	for _, occ := range ordered {
		points = append(points, pointOf(occ))
	}
	return geo.RouteDistanceKm(points)
}

// Legs returns the per-stop leg distances of an ordered sequence, the first
// leg measured from the depot.
func Legs(ordered []models.VisitOccurrence, depot geo.Point) []float64 {
	legs := make([]float64, len(ordered))
	position := depot
	for i, occ := range ordered {
		legs[i] = geo.HaversineKm(position, pointOf(occ))
		position = pointOf(occ)
	}
	return legs
}

func pointOf(occ models.VisitOccurrence) geo.Point {
	return geo.Point{Lat: occ.Client.Lat, Lng: occ.Client.Lng}
}
