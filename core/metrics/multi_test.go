package metrics

import (
	"errors"
	"testing"
)

type recordSink struct {
	jobs, prices, fleets int
	err                  error
}

func (r *recordSink) RecordJobCreated(JobEvent) error {
	r.jobs++
	return r.err
}

func (r *recordSink) RecordPrice(PriceObservation) error {
	r.prices++
	return nil
}

type jobsOnly struct{ count int }

func (j *jobsOnly) RecordJobCreated(JobEvent) error {
	j.count++
	return nil
}

// TestMultiSink ensures events are forwarded to all sinks.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &jobsOnly{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordJobCreated(JobEvent{JobID: 1}); err != nil {
		t.Fatalf("record job: %v", err)
	}
	if err := m.RecordPrice(PriceObservation{Price: 12}); err != nil {
		t.Fatalf("record price: %v", err)
	}
	if err := m.RecordFleetSnapshot(FleetSnapshotEvent{}); err != nil {
		t.Fatalf("record fleet: %v", err)
	}
	if s1.jobs != 1 || s2.count != 1 {
		t.Fatalf("job events not forwarded")
	}
	if s1.prices != 1 {
		t.Fatalf("price not forwarded")
	}
}

func TestMultiSink_Error(t *testing.T) {
	boom := errors.New("boom")
	s2 := &jobsOnly{}
	m := NewMultiSink(&recordSink{err: boom}, s2)
	if err := m.RecordJobCreated(JobEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s2.count != 0 {
		t.Fatalf("sink after failure should not be called")
	}
}
