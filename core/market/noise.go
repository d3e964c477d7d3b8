package market

import (
	"math"
	"time"
)

// Seed packs the UTC calendar minute of t into a single integer
// (YYYYMMDDhhmm with month and day weights spread apart), so every minute
// maps to its own noise draw.
func Seed(t time.Time) int64 {
	t = t.UTC()
	return int64(t.Year())*100000000 +
		int64(t.Month())*1000000 +
		int64(t.Day())*10000 +
		int64(t.Hour())*100 +
		int64(t.Minute())
}

// Noise maps a seed to a pseudo-normal deviate with a Box-Muller transform
// over two linear congruential draws. It keeps no state: equal seeds give
// bit-identical results. The output is bounded by about ±4.3 because u1 never
// drops below 1e-4.
func Noise(seed int64) float64 {
	x := (uint64(seed)*1103515245 + 12345) & 0x7FFFFFFF
	u1 := float64(x%10000) / 10000.0
	if u1 <= 0 {
		u1 = 0.0001
	}
	m := seed % 10000
	if m < 0 {
		m += 10000
	}
	u2 := float64((m*48271)%10000) / 10000.0
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
