package model

import "time"

// Trend classifies the direction of the spot price over the last few minutes.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// PricePoint is a simulated spot price in cents/kWh at a given instant.
type PricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// PriceReading is the current price along with its short-term trend.
type PriceReading struct {
	PricePoint
	Trend Trend `json:"trend"`
}

// PriceStats summarises a window of price points.
type PriceStats struct {
	Samples int       `json:"samples"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Mean    float64   `json:"mean"`
	StdDev  float64   `json:"stddev"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}
