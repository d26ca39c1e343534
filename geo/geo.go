// Package geo holds geographic coordinates and great-circle distances.
package geo

import (
	"fmt"
	"math"
)

// EarthRadius is the mean Earth radius in metres.
const EarthRadius = 6371000.0

// Coordinates is a point in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%g, %g", c.Lat, c.Lng)
}

// Valid reports whether c lies within the latitude and longitude ranges.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Distance returns the haversine distance between a and b in metres.
func Distance(a, b Coordinates) float64 {
	if a == b {
		return 0
	}
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceKM is Distance in kilometres.
func DistanceKM(a, b Coordinates) float64 {
	return Distance(a, b) / 1000
}
