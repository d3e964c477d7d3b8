package jobstore

import (
	"context"
	"fmt"

	"github.com/kilianp07/fleetcompute/core/jobs"
)

// New returns the store for backend: "memory", "sqlite" or "postgres".
func New(ctx context.Context, backend, dsn string) (jobs.Store, error) {
	switch backend {
	case "", "memory":
		return jobs.NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(ctx, dsn)
	case "postgres":
		return NewPostgresStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown job store backend %q", backend)
	}
}
