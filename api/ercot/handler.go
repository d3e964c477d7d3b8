// Package ercot serves the simulated ERCOT spot price.
package ercot

import (
	"net/http"
	"strconv"

	"github.com/kilianp07/fleetcompute/api/respond"
	"github.com/kilianp07/fleetcompute/core/market"
)

// NewCurrentHandler exposes the current price and trend via GET /ercot/current.
func NewCurrentHandler(now respond.Clock) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, market.Current(now()))
	})
}

// NewHistoryHandler exposes one price per minute via GET /ercot/history?minutes=N.
func NewHistoryHandler(now respond.Clock) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, market.History(now(), Minutes(r)))
	})
}

// NewStatsHandler summarises the same window as the history endpoint via
// GET /ercot/stats?minutes=N.
func NewStatsHandler(now respond.Clock) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, market.Summarize(market.History(now(), Minutes(r))))
	})
}

// Minutes reads the minutes query parameter. Missing or malformed values
// fall back to the default window; the result is clamped to [1,120].
func Minutes(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("minutes"))
	if err != nil {
		n = market.DefaultHistoryMinutes
	}
	return market.ClampMinutes(n)
}
