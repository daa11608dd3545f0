// Package astro provides astronomical constants and time conversions used by
// the catalog engine. Times are continuous Julian day numbers (TDB); distances
// are kilometers unless a function says otherwise.
package astro

import "math"

// Physical and calendrical constants.
const (
	// KmPerAU is the length of one astronomical unit in kilometers.
	KmPerAU = 149597870.7

	// J2000 is the J2000.0 epoch as a Julian day number
	// (2000 January 1, 12:00 TT).
	J2000 = 2451545.0

	// DaysPerYear is the length of a Julian year in days.
	DaysPerYear = 365.25

	// SolRadius is the radius of the Sun in kilometers, used as the default
	// radius for stars that do not specify one.
	SolRadius = 695700.0
)

// DegToRad converts degrees to radians.
func DegToRad(d float64) float64 {
	return d * math.Pi / 180.0
}

// RadToDeg converts radians to degrees.
func RadToDeg(r float64) float64 {
	return r * 180.0 / math.Pi
}

// AUToKm converts astronomical units to kilometers.
func AUToKm(au float64) float64 {
	return au * KmPerAU
}

// YearsToDays converts Julian years to days.
func YearsToDays(y float64) float64 {
	return y * DaysPerYear
}
