// Package fleet serves the simulated vehicle fleet.
package fleet

import (
	"net/http"

	"github.com/kilianp07/fleetcompute/api/respond"
	corefleet "github.com/kilianp07/fleetcompute/core/fleet"
	"github.com/kilianp07/fleetcompute/core/model"
)

// NewVehiclesHandler exposes every vehicle via GET /fleet/vehicles. The
// optional status and company query parameters filter the list.
func NewVehiclesHandler(now respond.Clock) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		company := r.URL.Query().Get("company")
		vs := corefleet.List(now())
		if status != "" || company != "" {
			filtered := make([]model.Vehicle, 0, len(vs))
			for _, v := range vs {
				if status != "" && string(v.Status) != status {
					continue
				}
				if company != "" && v.Company != company {
					continue
				}
				filtered = append(filtered, v)
			}
			vs = filtered
		}
		respond.JSON(w, http.StatusOK, vs)
	})
}

// NewHubsHandler exposes the static hub table via GET /fleet/hubs.
func NewHubsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, corefleet.Hubs)
	})
}
