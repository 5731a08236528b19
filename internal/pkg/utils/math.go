package utils

import "math"

// RoundTo2 rounds to two decimal places; worked hours are stored this way.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
