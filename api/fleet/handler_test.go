package fleet

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	corefleet "github.com/kilianp07/fleetcompute/core/fleet"
	"github.com/kilianp07/fleetcompute/core/model"
)

func clock() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

func TestVehiclesHandler_Basic(t *testing.T) {
	rr := httptest.NewRecorder()
	NewVehiclesHandler(clock).ServeHTTP(rr, httptest.NewRequest("GET", "/fleet/vehicles", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []model.Vehicle
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != corefleet.TotalVehicles {
		t.Fatalf("expected %d vehicles, got %d", corefleet.TotalVehicles, len(out))
	}
	if out[0].ID != "vehicle_0" {
		t.Fatalf("unexpected first vehicle %#v", out[0])
	}
}

func TestVehiclesHandler_RoamingOmitsHub(t *testing.T) {
	rr := httptest.NewRecorder()
	NewVehiclesHandler(clock).ServeHTTP(rr, httptest.NewRequest("GET", "/fleet/vehicles", nil))
	var raw []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	last := raw[len(raw)-1]
	if _, ok := last["hub_id"]; ok {
		t.Fatalf("roaming vehicle should not carry hub_id: %v", last)
	}
	if _, ok := raw[0]["hub_id"]; !ok {
		t.Fatalf("resident vehicle should carry hub_id")
	}
}

func TestVehiclesHandler_Filter(t *testing.T) {
	rr := httptest.NewRecorder()
	NewVehiclesHandler(clock).ServeHTTP(rr, httptest.NewRequest("GET", "/fleet/vehicles?company=Zoox", nil))
	var out []model.Vehicle
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 10 {
		t.Fatalf("expected 10 Zoox vehicles, got %d", len(out))
	}
	for _, v := range out {
		if v.Company != model.CompanyZoox {
			t.Fatalf("unexpected company %s", v.Company)
		}
	}
}

func TestHubsHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHubsHandler().ServeHTTP(rr, httptest.NewRequest("GET", "/fleet/hubs", nil))
	var out []model.Hub
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(corefleet.Hubs) {
		t.Fatalf("unexpected hubs %#v", out)
	}
}
