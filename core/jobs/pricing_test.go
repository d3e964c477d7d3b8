package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/fleetcompute/core/model"
)

func TestCost(t *testing.T) {
	assert.Equal(t, 3.5, Cost(50000, model.PriorityNormal))
	assert.Equal(t, 4.9, Cost(50000, model.PriorityHigh))
	assert.Equal(t, 6.4, Cost(200000, model.PriorityLow))
	assert.Equal(t, 1.84, Cost(10000, model.PriorityLow))
	assert.Equal(t, 3.5, Cost(50000, "Urgent"))
}

func TestDurationAndPriority(t *testing.T) {
	assert.Equal(t, 240, DurationMinutes(model.PriorityLow))
	assert.Equal(t, 120, DurationMinutes(model.PriorityNormal))
	assert.Equal(t, 45, DurationMinutes(model.PriorityHigh))
	assert.Equal(t, model.PriorityNormal, NormalizePriority("bogus"))
	assert.Equal(t, 120, DurationMinutes(""))
}

func TestSizeDescription(t *testing.T) {
	assert.Equal(t, "50k tokens", SizeDescription(50000))
	assert.Equal(t, "1k tokens", SizeDescription(1999))
	assert.Equal(t, "999 tokens", SizeDescription(999))
}

func TestView(t *testing.T) {
	created := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	j := model.Job{Status: model.JobRunning, EstimatedDurationMinutes: 120, CreatedAt: created}

	v := View(j, created.Add(time.Hour))
	assert.Equal(t, created.Add(2*time.Hour), v.EstimatedCompletion)
	assert.Equal(t, 50.0, v.Progress)

	assert.Equal(t, 12.5, View(j, created.Add(15*time.Minute)).Progress)
	assert.Equal(t, 99.0, View(j, created.Add(5*time.Hour)).Progress)

	j.Status = model.JobCompleted
	assert.Equal(t, 100.0, View(j, created).Progress)
}
