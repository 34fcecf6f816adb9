// Package geo measures distances between coordinates.
package geo

import (
	"fmt"
	"math"
	"strings"
)

const earthRadiusKm = 6371.0

type Point struct {
	Lat float64
	Lon float64
}

// Strategy computes a distance between two points. Units depend on the
// strategy; only the ordering matters to callers that pick a minimum.
type Strategy interface {
	Distance(a, b Point) float64
	Name() string
}

// Euclidean is planar distance on raw degrees.
type Euclidean struct{}

func (Euclidean) Distance(a, b Point) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lon-b.Lon)
}

func (Euclidean) Name() string { return "euclidean" }

// Haversine is great-circle distance in kilometres.
type Haversine struct{}

func (Haversine) Distance(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := lat2 - lat1
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func (Haversine) Name() string { return "haversine" }

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// FromName returns the strategy registered under name. Empty selects Euclidean.
func FromName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean":
		return Euclidean{}, nil
	case "haversine":
		return Haversine{}, nil
	default:
		return nil, fmt.Errorf("unknown distance strategy %q", name)
	}
}
