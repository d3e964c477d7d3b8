package model

// EconomicsSnapshot aggregates the marketplace business metrics.
type EconomicsSnapshot struct {
	RideRevenue    float64 `json:"ride_revenue"`
	ComputeRevenue float64 `json:"compute_revenue"`
	GridArbitrage  float64 `json:"grid_arbitrage"`
	JobsPerHour    int     `json:"jobs_per_hour"`
	ActiveVehicles int     `json:"active_vehicles"`
	TotalFleet     int     `json:"total_fleet"`
}
