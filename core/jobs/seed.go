package jobs

import (
	"context"
	"fmt"

	"github.com/kilianp07/fleetcompute/core/model"
)

type demoJob struct {
	name      string
	modelType string
	size      int
	unit      string
	priority  model.Priority
}

var demoJobs = []demoJob{
	{"Lidar calibration batch", "PointCloud", 200000, "points", model.PriorityNormal},
	{"Route optimization", "Transformer", 50000, "tokens", model.PriorityHigh},
	{"Night vision model", "CNN", 10000, "images", model.PriorityLow},
	{"Trajectory prediction", "LSTM", 80000, "tokens", model.PriorityNormal},
	{"Object detection fine-tune", "YOLO", 5000, "images", model.PriorityHigh},
}

var demoCompanies = []string{model.CompanyWaymo, model.CompanyZoox, model.CompanyFleetCompute}

// SeedDemo inserts the demo catalogue for every company when the store is
// empty. It returns the number of jobs inserted.
func (s *Service) SeedDemo(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	now := s.now()
	inserted := 0
	for _, company := range demoCompanies {
		for _, d := range demoJobs {
			j := model.Job{
				Name:                     d.name,
				ModelType:                d.modelType,
				SizeDescription:          fmt.Sprintf("%dk %s", d.size/1000, d.unit),
				Status:                   model.JobRunning,
				VehicleID:                AssignVehicle(company),
				Company:                  company,
				Priority:                 d.priority,
				EstimatedDurationMinutes: DurationMinutes(d.priority),
				CostUSD:                  Cost(d.size, d.priority),
				CreatedAt:                now,
			}
			if _, err := s.store.Insert(ctx, j); err != nil {
				return inserted, fmt.Errorf("seed job: %w", err)
			}
			inserted++
		}
	}
	s.log.Infof("seeded %d demo jobs", inserted)
	return inserted, nil
}
