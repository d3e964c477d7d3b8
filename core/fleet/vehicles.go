package fleet

import (
	"strconv"
	"time"

	"github.com/kilianp07/fleetcompute/core/model"
	"github.com/kilianp07/fleetcompute/internal/numeric"
)

var companies = [3]string{model.CompanyWaymo, model.CompanyZoox, model.CompanyFleetCompute}

// VehicleID formats the identifier of the vehicle with the given global index.
func VehicleID(index int) string { return "vehicle_" + strconv.Itoa(index) }

// CompanyFor returns the operator of the vehicle with the given global index.
func CompanyFor(index int) string { return companies[index%len(companies)] }

// List returns the full fleet at now. Indices are assigned hub-major (hub 0's
// residents first) and the roaming vehicles take the last RoamingVehicles slots.
func List(now time.Time) []model.Vehicle {
	out := make([]model.Vehicle, 0, TotalVehicles)
	idx := 0
	for h, hub := range Hubs {
		for n := 0; n < HubResidentCounts[h]; n++ {
			out = append(out, resident(idx, h, hub))
			idx++
		}
	}
	for i := 0; i < RoamingVehicles; i++ {
		out = append(out, roaming(idx, i, now))
		idx++
	}
	return out
}

func resident(idx, hubIndex int, hub model.Hub) model.Vehicle {
	v := model.Vehicle{
		ID:      VehicleID(idx),
		Status:  model.StatusCharging,
		Lat:     numeric.Coordinate(hub.Lat),
		Lng:     numeric.Coordinate(hub.Lng),
		HubID:   hub.ID,
		Company: CompanyFor(idx),
	}
	if (idx+hubIndex)%2 == 0 {
		v.Status = model.StatusComputeActive
		v.ComputeLoad = 0.7 + float64(idx%30)*0.01
		v.CurrentJobID = strconv.Itoa(idx * 11 % 100)
	}
	return v
}

func roaming(idx, i int, now time.Time) model.Vehicle {
	dLat, dLng := Drift(idx, now)
	status := model.StatusInService
	if i%2 == 1 {
		status = model.StatusIdle
	}
	return model.Vehicle{
		ID:      VehicleID(idx),
		Status:  status,
		Lat:     numeric.Coordinate(Center.Lat + dLat),
		Lng:     numeric.Coordinate(Center.Lng + dLng),
		Company: CompanyFor(idx),
	}
}
