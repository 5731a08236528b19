package utils

import "math"

// CalculatePlanarDistance approximates the distance between two coordinates
// in meters using a flat-earth projection. Accurate enough at geofence
// scale (hundreds of meters) and intentionally kept as the punch-validation
// formula; do not swap in Haversine without recalibrating outlet radii.
func CalculatePlanarDistance(lat1, lng1, lat2, lng2 float64) float64 {
	const metersPerDegree = 111320

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	return math.Sqrt(dLat*dLat+dLng*dLng) * metersPerDegree
}
