package telemetry

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fleetcompute/config"
	"github.com/kilianp07/fleetcompute/core/fleet"
	"github.com/kilianp07/fleetcompute/core/jobs"
	"github.com/kilianp07/fleetcompute/core/market"
	coremetrics "github.com/kilianp07/fleetcompute/core/metrics"
	"github.com/kilianp07/fleetcompute/core/model"
	infmqtt "github.com/kilianp07/fleetcompute/infra/mqtt"
	"github.com/kilianp07/fleetcompute/internal/eventbus"
)

type mockRecorder struct {
	price coremetrics.PriceObservation
	fleet coremetrics.FleetSnapshotEvent
}

func (m *mockRecorder) RecordPrice(ev coremetrics.PriceObservation) error {
	m.price = ev
	return nil
}

func (m *mockRecorder) RecordFleetSnapshot(ev coremetrics.FleetSnapshotEvent) error {
	m.fleet = ev
	return nil
}

func newTestPublisher(t *testing.T, pub *infmqtt.MockPublisher, rec Recorder) (*Publisher, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	cfg := config.PublisherConfig{Enabled: true, IntervalSeconds: 1, TopicPrefix: "fc"}
	p, err := NewPublisher(cfg, nil, rec, reg)
	require.NoError(t, err)
	if pub != nil {
		p.pub = pub
	}
	return p, reg
}

func TestPublishOnce(t *testing.T) {
	mp := infmqtt.NewMockPublisher()
	rec := &mockRecorder{}
	p, _ := newTestPublisher(t, mp, rec)
	now := time.Date(2024, 6, 1, 17, 30, 0, 0, time.UTC)

	require.NoError(t, p.PublishOnce(now))

	prices := mp.Topic("fc/ercot/current")
	require.Len(t, prices, 1)
	var reading model.PriceReading
	require.NoError(t, json.Unmarshal(prices[0], &reading))
	assert.Equal(t, market.Current(now).Price, reading.Price)
	assert.True(t, reading.Timestamp.Equal(now))

	vehicles := mp.Topic("fc/fleet/vehicles")
	require.Len(t, vehicles, 1)
	var vs []model.Vehicle
	require.NoError(t, json.Unmarshal(vehicles[0], &vs))
	assert.Len(t, vs, fleet.TotalVehicles)

	require.Len(t, mp.Topic("fc/economics/summary"), 1)

	assert.Equal(t, market.Current(now).Price, rec.price.Price)
	total := 0
	for _, n := range rec.fleet.ByStatus {
		total += n
	}
	assert.Equal(t, fleet.TotalVehicles, total)
	assert.Equal(t, float64(1), testutil.ToFloat64(p.published.WithLabelValues(TopicPrice)))
}

func TestPublishOnceFailure(t *testing.T) {
	mp := infmqtt.NewMockPublisher()
	mp.FailTopic["fc/fleet/vehicles"] = true
	p, _ := newTestPublisher(t, mp, nil)

	err := p.PublishOnce(time.Now())
	assert.Error(t, err)
	assert.Len(t, mp.Topic("fc/ercot/current"), 1)
	assert.Len(t, mp.Topic("fc/economics/summary"), 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(p.failures.WithLabelValues(TopicVehicles)))
}

func TestPublishOnceWithoutBroker(t *testing.T) {
	rec := &mockRecorder{}
	p, _ := newTestPublisher(t, nil, rec)
	now := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)
	require.NoError(t, p.PublishOnce(now))
	assert.True(t, rec.price.Time.Equal(now))
}

func TestRunStopsOnCancel(t *testing.T) {
	mp := infmqtt.NewMockPublisher()
	p, _ := newTestPublisher(t, mp, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	require.Eventually(t, func() bool { return len(mp.Topic("fc/ercot/current")) >= 1 }, time.Second, 10*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
}

func TestJobAnnouncer(t *testing.T) {
	mp := infmqtt.NewMockPublisher()
	p, _ := newTestPublisher(t, mp, nil)
	bus := eventbus.NewTyped[jobs.Event]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.StartJobAnnouncer(ctx, bus)
	require.Eventually(t, func() bool { return bus.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	bus.Publish(jobs.Event{Job: model.Job{ID: 7, Name: "x", Company: "Zoox", EstimatedDurationMinutes: 120, CreatedAt: created}, Time: created})

	require.Eventually(t, func() bool { return len(mp.Topic("fc/jobs/created")) == 1 }, time.Second, 5*time.Millisecond)
	var v model.JobView
	require.NoError(t, json.Unmarshal(mp.Topic("fc/jobs/created")[0], &v))
	assert.Equal(t, int64(7), v.ID)
	assert.True(t, v.EstimatedCompletion.Equal(created.Add(2*time.Hour)))
}
