package jobs

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/kilianp07/fleetcompute/core/fleet"
	"github.com/kilianp07/fleetcompute/core/logger"
	"github.com/kilianp07/fleetcompute/core/model"
)

// Request describes a job submission.
type Request struct {
	Name      string         `json:"name"`
	ModelType string         `json:"model_type"`
	Size      int            `json:"size_tokens_or_images"`
	Priority  model.Priority `json:"priority"`
}

// Scope identifies who is looking at jobs. Admins see every company.
type Scope struct {
	Company string
	Admin   bool
}

func (s Scope) allows(j model.Job) bool { return s.Admin || j.Company == s.Company }

// Event is published when a job is created.
type Event struct {
	Job  model.Job
	Time time.Time
}

// Publisher receives job events.
type Publisher interface {
	Publish(Event)
}

// Service implements the job use cases on top of a Store.
type Service struct {
	store Store
	pub   Publisher
	log   logger.Logger
	now   func() time.Time
}

// NewService creates a Service. pub may be nil.
func NewService(store Store, pub Publisher, log logger.Logger) *Service {
	return &Service{store: store, pub: pub, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Create validates req and stores a running job for company.
func (s *Service) Create(ctx context.Context, company string, req Request) (model.JobView, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.ModelType = strings.TrimSpace(req.ModelType)
	if req.Name == "" || req.ModelType == "" {
		return model.JobView{}, fmt.Errorf("%w: name and model_type required", ErrInvalidJob)
	}
	if req.Size <= 0 {
		req.Size = DefaultSize
	}
	now := s.now()
	p := NormalizePriority(req.Priority)
	j := model.Job{
		Name:                     req.Name,
		ModelType:                req.ModelType,
		SizeDescription:          SizeDescription(req.Size),
		Status:                   model.JobRunning,
		VehicleID:                AssignVehicle(req.Name + strconv.FormatInt(now.UnixNano(), 10)),
		Company:                  company,
		Priority:                 p,
		EstimatedDurationMinutes: DurationMinutes(p),
		CostUSD:                  Cost(req.Size, p),
		CreatedAt:                now,
	}
	j, err := s.store.Insert(ctx, j)
	if err != nil {
		return model.JobView{}, fmt.Errorf("insert job: %w", err)
	}
	s.log.Infof("job %d created for %s on %s", j.ID, company, j.VehicleID)
	if s.pub != nil {
		s.pub.Publish(Event{Job: j, Time: now})
	}
	return View(j, now), nil
}

// List returns the jobs visible to scope, newest first.
func (s *Service) List(ctx context.Context, scope Scope) ([]model.JobView, error) {
	company := scope.Company
	if scope.Admin {
		company = ""
	}
	js, err := s.store.List(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	now := s.now()
	out := make([]model.JobView, len(js))
	for i, j := range js {
		out[i] = View(j, now)
	}
	return out, nil
}

// Get returns a job visible to scope. Jobs of other companies are reported
// as not found.
func (s *Service) Get(ctx context.Context, id int64, scope Scope) (model.JobView, error) {
	j, err := s.store.Get(ctx, id)
	if err != nil {
		return model.JobView{}, err
	}
	if !scope.allows(j) {
		return model.JobView{}, ErrNotFound
	}
	return View(j, s.now()), nil
}

// AssignVehicle picks a hub-resident vehicle for a job key.
func AssignVehicle(key string) string {
	return fleet.VehicleID(int(xxhash.Sum64String(key) % fleet.HubResidentVehicles))
}
