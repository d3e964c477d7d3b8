package metrics

import (
	"context"

	"github.com/kilianp07/fleetcompute/core/jobs"
	coremetrics "github.com/kilianp07/fleetcompute/core/metrics"
	"github.com/kilianp07/fleetcompute/infra/logger"
	"github.com/kilianp07/fleetcompute/internal/eventbus"
)

// StartJobCollector subscribes to job events and records them in sink.
// It stops when the context is canceled or the bus is closed.
func StartJobCollector(ctx context.Context, bus *eventbus.TypedBus[jobs.Event], sink coremetrics.MetricsSink, log logger.Logger) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := sink.RecordJobCreated(JobEventFrom(ev)); err != nil {
					log.Errorf("record job %d: %v", ev.Job.ID, err)
				}
			}
		}
	}()
}

// JobEventFrom converts a jobs event into a metrics event.
func JobEventFrom(ev jobs.Event) coremetrics.JobEvent {
	j := ev.Job
	return coremetrics.JobEvent{
		JobID:           j.ID,
		Company:         j.Company,
		Priority:        string(j.Priority),
		ModelType:       j.ModelType,
		VehicleID:       j.VehicleID,
		CostUSD:         j.CostUSD,
		DurationMinutes: j.EstimatedDurationMinutes,
		Time:            ev.Time,
	}
}
