package model

import "testing"

func TestVehicleValidate(t *testing.T) {
	ok := []Vehicle{
		{ID: "a", Status: StatusComputeActive, ComputeLoad: 0.7, CurrentJobID: "0", HubID: "hub_0"},
		{ID: "b", Status: StatusCharging, HubID: "hub_0"},
		{ID: "c", Status: StatusIdle},
	}
	for _, v := range ok {
		if err := v.Validate(); err != nil {
			t.Fatalf("unexpected error for %s: %v", v.ID, err)
		}
	}
	bad := []Vehicle{
		{ID: "d", Status: StatusComputeActive, ComputeLoad: 0.7},
		{ID: "e", Status: StatusCharging, CurrentJobID: "3"},
		{ID: "f", Status: StatusComputeActive, ComputeLoad: 1.2, CurrentJobID: "1"},
		{ID: "g", Status: StatusIdle, ComputeLoad: 0.3},
	}
	for _, v := range bad {
		if err := v.Validate(); err == nil {
			t.Fatalf("expected error for %s", v.ID)
		}
	}
}

func TestVehicleRoaming(t *testing.T) {
	if (Vehicle{HubID: "hub_1"}).Roaming() {
		t.Fatal("hub vehicle reported roaming")
	}
	if !(Vehicle{}).Roaming() {
		t.Fatal("vehicle without hub should be roaming")
	}
}
