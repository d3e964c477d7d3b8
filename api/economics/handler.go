// Package economics serves the marketplace headline numbers.
package economics

import (
	"net/http"

	"github.com/kilianp07/fleetcompute/api/respond"
	coreeco "github.com/kilianp07/fleetcompute/core/economics"
)

// NewSummaryHandler exposes the economics snapshot via GET /economics/summary.
func NewSummaryHandler(now respond.Clock) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, coreeco.Summary(now()))
	})
}
