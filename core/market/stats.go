package market

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/fleetcompute/core/model"
	"github.com/kilianp07/fleetcompute/internal/numeric"
)

// Summarize computes descriptive statistics over a price window.
func Summarize(points []model.PricePoint) model.PriceStats {
	if len(points) == 0 {
		return model.PriceStats{}
	}
	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.Price
	}
	mean, std := stat.MeanStdDev(prices, nil)
	if len(prices) < 2 {
		std = 0
	}
	return model.PriceStats{
		Samples: len(points),
		Min:     floats.Min(prices),
		Max:     floats.Max(prices),
		Mean:    numeric.Price(mean),
		StdDev:  numeric.Price(std),
		From:    points[0].Timestamp,
		To:      points[len(points)-1].Timestamp,
	}
}
