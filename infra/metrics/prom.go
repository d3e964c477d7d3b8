package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/fleetcompute/core/metrics"
)

// PromSink exposes job submissions, the latest simulated price and the fleet
// composition as Prometheus metrics.
type PromSink struct {
	jobs  *prometheus.CounterVec
	cost  *prometheus.HistogramVec
	price prometheus.Gauge
	fleet *prometheus.GaugeVec
}

// NewPromSink registers the marketplace metrics on the default Prometheus registerer.
// The /metrics endpoint should be served separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	jobs, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleetcompute_jobs_created_total",
		Help: "Total number of compute jobs submitted",
	}, []string{"company", "priority"}))
	if err != nil {
		return nil, err
	}
	cost, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fleetcompute_job_cost_usd",
		Help:    "Quoted cost of submitted jobs",
		Buckets: []float64{1, 2, 4, 8, 16, 32},
	}, []string{"priority"}))
	if err != nil {
		return nil, err
	}
	price, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleetcompute_ercot_price_cents_per_kwh",
		Help: "Latest simulated ERCOT spot price",
	}))
	if err != nil {
		return nil, err
	}
	fleet, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fleetcompute_fleet_vehicles",
		Help: "Simulated vehicles per status",
	}, []string{"status"}))
	if err != nil {
		return nil, err
	}
	return &PromSink{jobs: jobs, cost: cost, price: price, fleet: fleet}, nil
}

// register adds c to reg, reusing an identical collector registered earlier.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordJobCreated counts the job and observes its cost.
func (s *PromSink) RecordJobCreated(ev coremetrics.JobEvent) error {
	s.jobs.WithLabelValues(ev.Company, ev.Priority).Inc()
	s.cost.WithLabelValues(ev.Priority).Observe(ev.CostUSD)
	return nil
}

// RecordPrice sets the price gauge.
func (s *PromSink) RecordPrice(ev coremetrics.PriceObservation) error {
	s.price.Set(ev.Price)
	return nil
}

// RecordFleetSnapshot sets the per-status vehicle gauges.
func (s *PromSink) RecordFleetSnapshot(ev coremetrics.FleetSnapshotEvent) error {
	for status, n := range ev.ByStatus {
		s.fleet.WithLabelValues(status).Set(float64(n))
	}
	return nil
}
