package service

import "math"

// RoundingPrecision is the multiplier used to round monetary values to two
// decimal places in API responses.
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
// Monetary values are rounded at the response edge only; the valuation math
// itself runs unrounded so the share-percentage invariant holds exactly.
//
// Example:
//
//	round(123.456789)  // returns 123.46
//	round(0.005)       // returns 0.01
//	round(1.994)       // returns 1.99
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// Round exposes the two-decimal rounding used by the service layer to the
// response mappers.
func Round(value float64) float64 {
	return round(value)
}
