package model

import "fmt"

// VehicleStatus is the operating state of a simulated vehicle.
type VehicleStatus string

const (
	StatusComputeActive VehicleStatus = "compute_active"
	StatusCharging      VehicleStatus = "charging"
	StatusInService     VehicleStatus = "in_service"
	StatusIdle          VehicleStatus = "idle"
)

// Companies operating vehicles on the marketplace, in rotation order.
const (
	CompanyWaymo        = "Waymo"
	CompanyZoox         = "Zoox"
	CompanyFleetCompute = "FleetCompute"
)

// Hub is a depot where part of the fleet is stationed.
type Hub struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Vehicle is a snapshot of a fleet vehicle at a given instant.
type Vehicle struct {
	ID           string        `json:"id"`
	Status       VehicleStatus `json:"status"`
	Lat          float64       `json:"lat"`
	Lng          float64       `json:"lng"`
	HubID        string        `json:"hub_id,omitempty"`
	Company      string        `json:"company"`
	ComputeLoad  float64       `json:"compute_load"`
	CurrentJobID string        `json:"current_job_id,omitempty"`
}

// Validate checks the per-vehicle snapshot invariants: the compute load is a
// fraction and a job is attached if and only if the vehicle is computing.
func (v Vehicle) Validate() error {
	if v.ComputeLoad < 0 || v.ComputeLoad > 1 {
		return fmt.Errorf("vehicle %s: compute load %v out of range", v.ID, v.ComputeLoad)
	}
	active := v.Status == StatusComputeActive
	if active != (v.CurrentJobID != "") {
		return fmt.Errorf("vehicle %s: job %q inconsistent with status %s", v.ID, v.CurrentJobID, v.Status)
	}
	if !active && v.ComputeLoad != 0 {
		return fmt.Errorf("vehicle %s: load %v without compute", v.ID, v.ComputeLoad)
	}
	return nil
}

// Roaming reports whether the vehicle is away from any hub.
func (v Vehicle) Roaming() bool { return v.HubID == "" }
