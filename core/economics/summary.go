// Package economics derives the marketplace headline numbers from the time of day.
package economics

import (
	"math"
	"time"

	"github.com/kilianp07/fleetcompute/core/fleet"
	"github.com/kilianp07/fleetcompute/core/model"
	"github.com/kilianp07/fleetcompute/internal/numeric"
)

const baseActiveVehicles = 22

// Summary returns the economics snapshot for now. Ride revenue follows a
// rush-hour shaped sine clipped at zero; compute revenue grows linearly
// through the day.
func Summary(now time.Time) model.EconomicsSnapshot {
	now = now.UTC()
	minute := float64(now.Minute())
	hour := float64(now.Hour()) + minute/60.0

	rideFactor := 0.5 + 0.5*math.Sin((hour-7)*math.Pi/6)
	jobs := int(math.Floor(12 + 8*math.Sin((hour-10)*0.3)))

	return model.EconomicsSnapshot{
		RideRevenue:    numeric.Price(12000 + 8000*math.Max(0, rideFactor) + minute*2),
		ComputeRevenue: numeric.Price(25000 + (hour-8)*500 + minute*3),
		GridArbitrage:  numeric.Price(1200 + 400*math.Sin(hour*0.4) + minute),
		JobsPerHour:    max(5, jobs),
		ActiveVehicles: min(baseActiveVehicles+now.Minute()%5, fleet.TotalVehicles),
		TotalFleet:     fleet.TotalVehicles,
	}
}
