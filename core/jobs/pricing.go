package jobs

import (
	"fmt"
	"math"
	"time"

	"github.com/kilianp07/fleetcompute/core/model"
	"github.com/kilianp07/fleetcompute/internal/numeric"
)

// DefaultSize is the job size assumed when none is given.
const DefaultSize = 50000

var durationMinutes = map[model.Priority]int{
	model.PriorityLow:    240,
	model.PriorityNormal: 120,
	model.PriorityHigh:   45,
}

var costMultiplier = map[model.Priority]float64{
	model.PriorityLow:    0.8,
	model.PriorityNormal: 1.0,
	model.PriorityHigh:   1.4,
}

// NormalizePriority maps unknown priorities to Normal.
func NormalizePriority(p model.Priority) model.Priority {
	if _, ok := durationMinutes[p]; ok {
		return p
	}
	return model.PriorityNormal
}

// DurationMinutes is the estimated run time for a priority.
func DurationMinutes(p model.Priority) int {
	return durationMinutes[NormalizePriority(p)]
}

// Cost returns the job price in USD for a size expressed in tokens or images.
func Cost(size int, p model.Priority) float64 {
	base := 2.0 + (float64(size)/50000)*1.5
	return numeric.Price(base * costMultiplier[NormalizePriority(p)])
}

// SizeDescription renders a size like "50k tokens".
func SizeDescription(size int) string {
	if size >= 1000 {
		return fmt.Sprintf("%dk tokens", size/1000)
	}
	return fmt.Sprintf("%d tokens", size)
}

// View projects completion time and progress for j at now.
func View(j model.Job, now time.Time) model.JobView {
	total := time.Duration(j.EstimatedDurationMinutes) * time.Minute
	v := model.JobView{Job: j, EstimatedCompletion: j.CreatedAt.Add(total)}
	switch {
	case j.Status == model.JobCompleted:
		v.Progress = 100
	case total > 0:
		p := now.Sub(j.CreatedAt).Seconds() / total.Seconds() * 100
		v.Progress = math.Min(99, numeric.Round(p, 1))
	}
	return v
}
