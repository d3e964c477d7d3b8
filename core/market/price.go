package market

import (
	"time"

	"github.com/kilianp07/fleetcompute/core/model"
	"github.com/kilianp07/fleetcompute/internal/numeric"
)

const (
	// NoiseScale converts a unit deviate into cents/kWh.
	NoiseScale = 1.5
	// TrendBand is the hysteresis, in cents/kWh, before a move counts as a trend.
	TrendBand = 0.5
	// TrendLookback is how far back the trend comparison looks.
	TrendLookback = 5 * time.Minute

	MinHistoryMinutes     = 1
	MaxHistoryMinutes     = 120
	DefaultHistoryMinutes = 30
)

// rawPrice is the unrounded simulated price at t.
func rawPrice(t time.Time) float64 {
	return BasePrice(HourOfDay(t)) + Noise(Seed(t))*NoiseScale
}

// PriceAt returns the simulated price at t rounded to cents.
func PriceAt(t time.Time) model.PricePoint {
	t = t.UTC()
	return model.PricePoint{Price: numeric.Price(rawPrice(t)), Timestamp: t}
}

// Current returns the price at now and its trend against the unrounded
// price TrendLookback earlier.
func Current(now time.Time) model.PriceReading {
	p := PriceAt(now)
	prev := rawPrice(now.Add(-TrendLookback))
	return model.PriceReading{PricePoint: p, Trend: classify(p.Price, prev)}
}

func classify(price, prev float64) model.Trend {
	switch {
	case price > prev+TrendBand:
		return model.TrendRising
	case price < prev-TrendBand:
		return model.TrendFalling
	default:
		return model.TrendStable
	}
}

// History returns one point per whole minute from now-minutes up to
// now-1m, oldest first. minutes is clamped to [1,120].
func History(now time.Time, minutes int) []model.PricePoint {
	minutes = ClampMinutes(minutes)
	out := make([]model.PricePoint, 0, minutes)
	for i := minutes; i > 0; i-- {
		out = append(out, PriceAt(now.Add(-time.Duration(i)*time.Minute)))
	}
	return out
}

// ClampMinutes bounds a requested history window.
func ClampMinutes(n int) int {
	if n < MinHistoryMinutes {
		return MinHistoryMinutes
	}
	if n > MaxHistoryMinutes {
		return MaxHistoryMinutes
	}
	return n
}
