package jobs

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/kilianp07/fleetcompute/core/model"
)

var (
	// ErrNotFound is returned when a job does not exist or is not visible.
	ErrNotFound = errors.New("job not found")
	// ErrInvalidJob is returned for incomplete job requests.
	ErrInvalidJob = errors.New("invalid job")
)

// Store persists job records.
type Store interface {
	// Insert stores j and returns it with its assigned id.
	Insert(ctx context.Context, j model.Job) (model.Job, error)
	Get(ctx context.Context, id int64) (model.Job, error)
	// List returns jobs newest first; an empty company lists every job.
	List(ctx context.Context, company string) ([]model.Job, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// MemoryStore keeps jobs in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	seq  int64
	data map[int64]model.Job
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[int64]model.Job{}}
}

func (s *MemoryStore) Insert(_ context.Context, j model.Job) (model.Job, error) {
	s.mu.Lock()
	s.seq++
	j.ID = s.seq
	s.data[j.ID] = j
	s.mu.Unlock()
	return j, nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.data[id]
	if !ok {
		return model.Job{}, ErrNotFound
	}
	return j, nil
}

func (s *MemoryStore) List(_ context.Context, company string) ([]model.Job, error) {
	s.mu.RLock()
	res := make([]model.Job, 0, len(s.data))
	for _, j := range s.data {
		if company != "" && j.Company != company {
			continue
		}
		res = append(res, j)
	}
	s.mu.RUnlock()
	SortNewestFirst(res)
	return res, nil
}

func (s *MemoryStore) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

func (s *MemoryStore) Close() error { return nil }

// SortNewestFirst orders jobs by creation time descending, breaking ties on id.
func SortNewestFirst(js []model.Job) {
	sort.Slice(js, func(i, k int) bool {
		if !js[i].CreatedAt.Equal(js[k].CreatedAt) {
			return js[i].CreatedAt.After(js[k].CreatedAt)
		}
		return js[i].ID > js[k].ID
	})
}
