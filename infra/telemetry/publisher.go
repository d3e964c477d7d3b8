// Package telemetry publishes simulated marketplace snapshots over MQTT.
package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/fleetcompute/config"
	"github.com/kilianp07/fleetcompute/core/economics"
	"github.com/kilianp07/fleetcompute/core/fleet"
	"github.com/kilianp07/fleetcompute/core/market"
	coremetrics "github.com/kilianp07/fleetcompute/core/metrics"
	coremqtt "github.com/kilianp07/fleetcompute/core/mqtt"
	"github.com/kilianp07/fleetcompute/infra/logger"
)

// Topic suffixes below the configured prefix.
const (
	TopicPrice     = "ercot/current"
	TopicVehicles  = "fleet/vehicles"
	TopicEconomics = "economics/summary"
	TopicJobs      = "jobs/created"
)

// Recorder receives the sampled price and fleet composition.
type Recorder interface {
	coremetrics.PriceRecorder
	coremetrics.FleetRecorder
}

// Publisher periodically evaluates the simulation and publishes the results.
// Values are computed for a single clock read per tick and never stored.
type Publisher struct {
	cfg config.PublisherConfig
	pub coremqtt.Publisher
	rec Recorder
	log logger.Logger
	now func() time.Time

	published   *prometheus.CounterVec
	failures    *prometheus.CounterVec
	lastPublish prometheus.Gauge
}

// NewPublisher builds a Publisher. pub may be nil to only feed rec; rec may be
// nil when no metrics are recorded. reg defaults to the global registerer.
func NewPublisher(cfg config.PublisherConfig, pub coremqtt.Publisher, rec Recorder, reg prometheus.Registerer) (*Publisher, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &Publisher{
		cfg: cfg,
		pub: pub,
		rec: rec,
		log: logger.New("telemetry"),
		now: func() time.Time { return time.Now().UTC() },
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetcompute_snapshot_published_total",
			Help: "Number of snapshot messages published",
		}, []string{"topic"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetcompute_snapshot_failures_total",
			Help: "Number of snapshot messages that failed to publish",
		}, []string{"topic"}),
		lastPublish: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fleetcompute_snapshot_last_timestamp_seconds",
			Help: "Unix timestamp of the last snapshot",
		}),
	}
	for _, c := range []prometheus.Collector{p.published, p.failures, p.lastPublish} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, err
			}
		}
	}
	return p, nil
}

// Topic returns the full topic for suffix.
func (p *Publisher) Topic(suffix string) string {
	return p.cfg.TopicPrefix + "/" + suffix
}

// Run publishes a snapshot immediately and then every configured interval
// until ctx is done.
func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.Interval())
	defer ticker.Stop()
	p.PublishOnce(p.now())
	for {
		select {
		case <-ticker.C:
			p.PublishOnce(p.now())
		case <-ctx.Done():
			return
		}
	}
}

// PublishOnce evaluates price, fleet and economics at now and publishes them.
// It returns the first publish error, after attempting every topic.
func (p *Publisher) PublishOnce(now time.Time) error {
	price := market.Current(now)
	vehicles := fleet.List(now)
	summary := economics.Summary(now)

	if p.rec != nil {
		if err := p.rec.RecordPrice(coremetrics.PriceObservation{Price: price.Price, Trend: string(price.Trend), Time: now}); err != nil {
			p.log.Warnf("record price: %v", err)
		}
		byStatus := map[string]int{}
		for _, v := range vehicles {
			byStatus[string(v.Status)]++
		}
		if err := p.rec.RecordFleetSnapshot(coremetrics.FleetSnapshotEvent{ByStatus: byStatus, Time: now}); err != nil {
			p.log.Warnf("record fleet: %v", err)
		}
	}
	p.lastPublish.Set(float64(now.Unix()))
	if p.pub == nil {
		return nil
	}

	var firstErr error
	for _, m := range []struct {
		suffix  string
		payload any
	}{
		{TopicPrice, price},
		{TopicVehicles, vehicles},
		{TopicEconomics, summary},
	} {
		if err := p.pub.Publish(p.Topic(m.suffix), m.payload); err != nil {
			p.failures.WithLabelValues(m.suffix).Inc()
			p.log.Errorf("publish %s: %v", m.suffix, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		p.published.WithLabelValues(m.suffix).Inc()
	}
	return firstErr
}
