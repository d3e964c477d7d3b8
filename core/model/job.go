package model

import "time"

// JobStatus is the lifecycle state of a compute job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
)

// Priority of a compute job.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
)

// Job is a compute workload submitted by a fleet operator.
type Job struct {
	ID                       int64     `json:"id"`
	Name                     string    `json:"name"`
	ModelType                string    `json:"model_type"`
	SizeDescription          string    `json:"size_description"`
	Status                   JobStatus `json:"status"`
	VehicleID                string    `json:"vehicle_id"`
	Company                  string    `json:"company"`
	Priority                 Priority  `json:"priority"`
	EstimatedDurationMinutes int       `json:"estimated_duration_minutes"`
	CostUSD                  float64   `json:"cost_usd"`
	CreatedAt                time.Time `json:"created_at"`
}

// JobView is a Job enriched with its projected completion and progress.
type JobView struct {
	Job
	EstimatedCompletion time.Time `json:"estimated_completion"`
	Progress            float64   `json:"progress"`
}
