package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordJobCreated forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordJobCreated(ev JobEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordJobCreated(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordPrice forwards price observations to sinks supporting them.
func (m *MultiSink) RecordPrice(ev PriceObservation) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(PriceRecorder); ok {
			if err := rec.RecordPrice(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordFleetSnapshot forwards fleet snapshots to sinks supporting them.
func (m *MultiSink) RecordFleetSnapshot(ev FleetSnapshotEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(FleetRecorder); ok {
			if err := rec.RecordFleetSnapshot(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink holding resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
