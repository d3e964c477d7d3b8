package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/fleetcompute/internal/numeric"
)

func TestBasePrice_Anchors(t *testing.T) {
	for _, a := range dailyCurve[:len(dailyCurve)-1] {
		assert.Equal(t, a.price, BasePrice(a.hour), "anchor at %vh", a.hour)
	}
}

func TestBasePrice_Continuity(t *testing.T) {
	const eps = 1e-9
	for _, a := range dailyCurve[1:] {
		left := BasePrice(a.hour - eps)
		assert.InDelta(t, a.price, left, 1e-6, "left limit at %vh", a.hour)
		if a.hour < 24 {
			right := BasePrice(a.hour + eps)
			assert.InDelta(t, a.price, right, 1e-6, "right limit at %vh", a.hour)
		}
	}
}

func TestBasePrice_Shape(t *testing.T) {
	assert.Equal(t, 8.0, BasePrice(5))
	assert.Equal(t, 40.0, BasePrice(10))
	assert.Equal(t, 20.0, BasePrice(17))
	assert.InDelta(t, 48.3333, BasePrice(12), 1e-4)
	assert.Equal(t, 48.33, numeric.Price(BasePrice(12)))
	assert.InDelta(t, 3.0, BasePrice(2.5), 1e-9)
	assert.InDelta(t, 16.5, BasePrice(23.5), 1e-9)
	// midday plateau is above the night trough
	assert.Greater(t, BasePrice(15), BasePrice(3))
}

func TestHourOfDay(t *testing.T) {
	ts := time.Date(2024, 6, 15, 12, 30, 30, 0, time.UTC)
	assert.InDelta(t, 12.5083333, HourOfDay(ts), 1e-6)
	local := ts.In(time.FixedZone("CEST", 2*3600))
	assert.Equal(t, HourOfDay(ts), HourOfDay(local))
}
