// Package geo holds the spherical-earth distance helpers used by the unsafe
// area registry and the route-safety filter.
package geo

import "math"

const EarthRadius = 6371e3 // meters

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the haversine distance in meters between a and b.
func Distance(a, b Point) float64 {
	phi1 := toRadians(a.Lat)
	phi2 := toRadians(b.Lat)
	dPhi := toRadians(b.Lat - a.Lat)
	dLambda := toRadians(b.Lng - a.Lng)

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return EarthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Within reports whether p lies within radius meters of any of the centers.
func Within(p Point, centers []Point, radius float64) bool {
	for _, c := range centers {
		if Distance(p, c) <= radius {
			return true
		}
	}
	return false
}

func ValidCoordinates(p Point) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
