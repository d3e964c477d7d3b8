package metrics

import "time"

// JobEvent describes a job submission.
type JobEvent struct {
	JobID           int64
	Company         string
	Priority        string
	ModelType       string
	VehicleID       string
	CostUSD         float64
	DurationMinutes int
	Time            time.Time
}

// MetricsSink records job submissions for observability purposes.
type MetricsSink interface {
	RecordJobCreated(ev JobEvent) error
}

// PriceObservation is the simulated price seen at a point in time.
type PriceObservation struct {
	Price float64
	Trend string
	Time  time.Time
}

// PriceRecorder records the latest simulated price.
type PriceRecorder interface {
	RecordPrice(ev PriceObservation) error
}

// FleetSnapshotEvent summarises the fleet composition.
type FleetSnapshotEvent struct {
	ByStatus map[string]int
	Time     time.Time
}

// FleetRecorder records fleet composition snapshots.
type FleetRecorder interface {
	RecordFleetSnapshot(ev FleetSnapshotEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordJobCreated(JobEvent) error              { return nil }
func (NopSink) RecordPrice(PriceObservation) error           { return nil }
func (NopSink) RecordFleetSnapshot(FleetSnapshotEvent) error { return nil }
