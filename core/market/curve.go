package market

import "time"

type anchor struct {
	hour  float64
	price float64
}

// dailyCurve lists the anchor prices in cents/kWh. Values between two anchors
// are linearly interpolated; the 24h anchor closes the day on the midnight value.
var dailyCurve = []anchor{
	{0, -2},
	{5, 8},
	{6, 15},
	{9, 35},
	{10, 40},
	{16, 65},
	{17, 20},
	{23, 35},
	{24, -2},
}

// BasePrice returns the noise-free spot price for an hour of day in [0,24).
func BasePrice(hour float64) float64 {
	last := len(dailyCurve) - 2
	for i := 0; i < last; i++ {
		if hour < dailyCurve[i+1].hour {
			return interpolate(dailyCurve[i], dailyCurve[i+1], hour)
		}
	}
	return interpolate(dailyCurve[last], dailyCurve[last+1], hour)
}

func interpolate(a, b anchor, hour float64) float64 {
	return a.price + (b.price-a.price)*((hour-a.hour)/(b.hour-a.hour))
}

// HourOfDay converts t to a fractional UTC hour, keeping second resolution.
func HourOfDay(t time.Time) float64 {
	t = t.UTC()
	minute := float64(t.Minute()) + float64(t.Second())/60.0
	return float64(t.Hour()) + minute/60.0
}
