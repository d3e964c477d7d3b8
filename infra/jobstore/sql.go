// Package jobstore persists compute job records in SQL databases.
package jobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/kilianp07/fleetcompute/core/jobs"
	"github.com/kilianp07/fleetcompute/core/model"
)

// Dialect captures the differences between the supported databases.
type Dialect struct {
	Driver string
	schema string
	// numbered placeholders ($1, $2) instead of ?
	numbered bool
}

var (
	SQLite = Dialect{Driver: "sqlite", schema: `CREATE TABLE IF NOT EXISTS jobs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        model_type TEXT NOT NULL,
        size_description TEXT NOT NULL,
        status TEXT NOT NULL,
        vehicle_id TEXT NOT NULL,
        company TEXT NOT NULL,
        priority TEXT NOT NULL,
        duration_minutes INTEGER NOT NULL,
        cost_usd REAL NOT NULL,
        created_at INTEGER NOT NULL
    );
    CREATE INDEX IF NOT EXISTS jobs_company_idx ON jobs(company);`}
	Postgres = Dialect{Driver: "postgres", numbered: true, schema: `CREATE TABLE IF NOT EXISTS jobs (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        model_type TEXT NOT NULL,
        size_description TEXT NOT NULL,
        status TEXT NOT NULL,
        vehicle_id TEXT NOT NULL,
        company TEXT NOT NULL,
        priority TEXT NOT NULL,
        duration_minutes INTEGER NOT NULL,
        cost_usd DOUBLE PRECISION NOT NULL,
        created_at BIGINT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS jobs_company_idx ON jobs(company);`}
)

// bind rewrites ? placeholders for dialects using numbered parameters.
func (d Dialect) bind(q string) string {
	if !d.numbered {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const columns = `id, name, model_type, size_description, status, vehicle_id, company,
        priority, duration_minutes, cost_usd, created_at`

// SQLStore implements jobs.Store on database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

var _ jobs.Store = (*SQLStore)(nil)

// Open connects to the database and ensures the schema exists.
func Open(ctx context.Context, d Dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, err
	}
	if d.Driver == "sqlite" {
		// a single connection serialises writers on the same file
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect %s: %w", d.Driver, err)
	}
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLStore{db: db, dialect: d}, nil
}

// NewSQLiteStore opens or creates the sqlite database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLStore, error) {
	return Open(ctx, SQLite, path)
}

// NewPostgresStore connects to postgres using a lib/pq connection string.
func NewPostgresStore(ctx context.Context, dsn string) (*SQLStore, error) {
	return Open(ctx, Postgres, dsn)
}

// Insert stores j and returns it with the id assigned by the database.
func (s *SQLStore) Insert(ctx context.Context, j model.Job) (model.Job, error) {
	q := s.dialect.bind(`INSERT INTO jobs (name, model_type, size_description, status, vehicle_id,
        company, priority, duration_minutes, cost_usd, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	err := s.db.QueryRowContext(ctx, q,
		j.Name, j.ModelType, j.SizeDescription, string(j.Status), j.VehicleID,
		j.Company, string(j.Priority), j.EstimatedDurationMinutes, j.CostUSD,
		j.CreatedAt.UTC().UnixNano()).Scan(&j.ID)
	if err != nil {
		return model.Job{}, fmt.Errorf("insert job: %w", err)
	}
	return j, nil
}

// Get returns the job with the given id.
func (s *SQLStore) Get(ctx context.Context, id int64) (model.Job, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.bind(`SELECT `+columns+` FROM jobs WHERE id = ?`), id)
	j, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Job{}, jobs.ErrNotFound
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("get job %d: %w", id, err)
	}
	return j, nil
}

// List returns jobs newest first; an empty company lists every job.
func (s *SQLStore) List(ctx context.Context, company string) ([]model.Job, error) {
	q := `SELECT ` + columns + ` FROM jobs`
	var args []any
	if company != "" {
		q += ` WHERE company = ?`
		args = append(args, company)
	}
	q += ` ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, s.dialect.bind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()
	res := []model.Job{}
	for rows.Next() {
		j, err := scan(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Count returns the number of stored jobs.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(r scanner) (model.Job, error) {
	var (
		j        model.Job
		status   string
		priority string
		created  int64
	)
	if err := r.Scan(&j.ID, &j.Name, &j.ModelType, &j.SizeDescription, &status, &j.VehicleID,
		&j.Company, &priority, &j.EstimatedDurationMinutes, &j.CostUSD, &created); err != nil {
		return model.Job{}, err
	}
	j.Status = model.JobStatus(status)
	j.Priority = model.Priority(priority)
	j.CreatedAt = time.Unix(0, created).UTC()
	return j, nil
}
