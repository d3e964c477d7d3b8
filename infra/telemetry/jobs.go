package telemetry

import (
	"context"

	"github.com/kilianp07/fleetcompute/core/jobs"
	"github.com/kilianp07/fleetcompute/internal/eventbus"
)

// StartJobAnnouncer publishes every created job to <prefix>/jobs/created.
// It stops when ctx is done or the bus is closed.
func (p *Publisher) StartJobAnnouncer(ctx context.Context, bus *eventbus.TypedBus[jobs.Event]) {
	if bus == nil || p.pub == nil {
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
				p.announce(ev)
			}
		}
	}()
}

func (p *Publisher) announce(ev jobs.Event) {
	if err := p.pub.Publish(p.Topic(TopicJobs), jobs.View(ev.Job, ev.Time)); err != nil {
		p.failures.WithLabelValues(TopicJobs).Inc()
		p.log.Errorf("announce job %d: %v", ev.Job.ID, err)
		return
	}
	p.published.WithLabelValues(TopicJobs).Inc()
}
