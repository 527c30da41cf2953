// Package geo implements the proximity engine: great-circle distance,
// hub drive-time lookup, and the ad-hoc drive-time heuristic used when
// the origin has no logistics table.
package geo

import (
	"fmt"
	"math"

	"github.com/northeast-trails/service-trip/internal/domain/catalog"
)

const earthRadiusKm = 6371.0

// RadiusThresholdKm is the fixed "near me" radius for map emphasis.
const RadiusThresholdKm = 50.0

// Road indirection factor and assumed average speed for the ad-hoc
// drive-time estimate. Roads in the region rarely run straight.
const (
	roadFactor  = 1.4
	avgSpeedKmh = 35.0
)

// Distance returns the great-circle distance between two points in
// kilometers using the haversine formula.
func Distance(a, b catalog.Coordinates) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	latA := degreesToRadians(a.Lat)
	latB := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(latA)*math.Cos(latB)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// DriveTimeFromHub looks up the drive time in minutes from the named hub.
// The second return value is false when the logistics table has no entry
// for that hub; callers must treat that as missing data, never as zero.
func DriveTimeFromHub(logistics []catalog.LogisticsEntry, hubName string) (int, bool) {
	for _, entry := range logistics {
		if entry.Hub == hubName {
			return entry.DriveMinutes, true
		}
	}
	return 0, false
}

// EstimateDriveTime approximates drive minutes for an origin with no
// logistics table (e.g. a device location), scaling straight-line
// distance by the road factor at the assumed average speed.
func EstimateDriveTime(distanceKm float64) int {
	return int(math.Round(distanceKm * roadFactor / avgSpeedKmh * 60))
}

// FormatDuration renders minutes as "45 min", "2h" or "2h 15m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
