// Package fleet simulates the vehicle fleet: hub-resident vehicles charging or
// computing at their depot, and roaming vehicles drifting around Austin.
package fleet

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kilianp07/fleetcompute/core/model"
)

const (
	// TotalVehicles is the size of the simulated fleet.
	TotalVehicles = 30
	// HubResidentVehicles are stationed at hubs; the rest roam.
	HubResidentVehicles = 25
	// RoamingVehicles drift around the city center.
	RoamingVehicles = TotalVehicles - HubResidentVehicles
)

// ErrTopology reports an inconsistent hub table.
var ErrTopology = errors.New("invalid fleet topology")

// Hubs is the static depot table around Austin.
var Hubs = []model.Hub{
	{ID: "hub_0", Name: "Austin Airport area", Lat: 30.1975, Lng: -97.6664},
	{ID: "hub_1", Name: "Round Rock", Lat: 30.5083, Lng: -97.6789},
	{ID: "hub_2", Name: "Cedar Park", Lat: 30.5052, Lng: -97.8203},
	{ID: "hub_3", Name: "South Austin/Slaughter", Lat: 30.1688, Lng: -97.7831},
	{ID: "hub_4", Name: "East Austin/183", Lat: 30.3072, Lng: -97.6603},
}

// HubResidentCounts is the number of vehicles stationed at each hub, in Hubs order.
var HubResidentCounts = []int{5, 6, 5, 5, 4}

// Center is the point roaming vehicles drift around.
var Center = struct{ Lat, Lng float64 }{Lat: 30.27, Lng: -97.74}

// ValidateTopology checks that the resident counts cover every hub and add
// up to HubResidentVehicles.
func ValidateTopology() error {
	return validate(Hubs, HubResidentCounts)
}

func validate(hubs []model.Hub, counts []int) error {
	if len(counts) != len(hubs) {
		return fmt.Errorf("%w: %d resident counts for %d hubs", ErrTopology, len(counts), len(hubs))
	}
	sum := 0
	for i, n := range counts {
		if n < 0 {
			return fmt.Errorf("%w: negative count at %s", ErrTopology, hubs[i].ID)
		}
		sum += n
	}
	if sum != HubResidentVehicles {
		return fmt.Errorf("%w: resident counts sum to %d, want %d", ErrTopology, sum, HubResidentVehicles)
	}
	return nil
}

// Drift returns the latitude/longitude offset of a roaming vehicle at t.
// The offset is a sum of two periodic terms per axis with a per-vehicle phase,
// evaluated on UTC minutes since midnight; it stays within ±0.007 degrees.
func Drift(vehicleIndex int, t time.Time) (dLat, dLng float64) {
	t = t.UTC()
	m := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60.0
	phase := float64(vehicleIndex) * 0.7
	dLat = 0.004*math.Sin(m*0.02+phase) + 0.003*math.Sin(m*0.03+phase*1.3)
	dLng = 0.004*math.Cos(m*0.025+phase*0.9) + 0.003*math.Cos(m*0.035+phase*1.1)
	return dLat, dLng
}
