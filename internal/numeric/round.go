// Package numeric holds the rounding rules shared by the simulation engine.
package numeric

import "github.com/shopspring/decimal"

// Round rounds x to the given number of decimal places. The value is first
// converted to its shortest decimal representation and then rounded half away
// from zero, so 2.675 becomes 2.68 and -0.125 becomes -0.13.
func Round(x float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(x).Round(places).Float64()
	return f
}

// Price rounds to cents.
func Price(x float64) float64 { return Round(x, 2) }

// Coordinate rounds a latitude or longitude to 4 decimal places.
func Coordinate(x float64) float64 { return Round(x, 4) }
