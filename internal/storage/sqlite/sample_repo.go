package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vitals/internal/domain"

	"github.com/google/uuid"
)

type SampleRepository struct {
	db *sql.DB
}

func NewSampleRepository(db *sql.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

func (r *SampleRepository) Append(ctx context.Context, s *domain.Sample) error {
	query := `
		INSERT INTO samples (session_id, timestamp, cpu_percent, ram_percent, gpu_percent, disk_read_bps, disk_write_bps)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var gpu sql.NullFloat64
	if s.GPUPercent != nil {
		gpu = sql.NullFloat64{Float64: *s.GPUPercent, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query,
		s.SessionID.String(),
		s.Timestamp.UTC(),
		s.CPUPercent,
		s.RAMPercent,
		gpu,
		s.DiskReadBPS,
		s.DiskWriteBPS,
	)
	if err != nil {
		return fmt.Errorf("%w: insert sample: %v", domain.ErrStoreIO, err)
	}

	if id, err := res.LastInsertId(); err == nil {
		s.ID = id
	}

	return nil
}

// QueryRange returns all samples with start <= timestamp <= end in
// ascending timestamp order. An empty range yields an empty slice.
func (r *SampleRepository) QueryRange(ctx context.Context, start, end time.Time) ([]domain.Sample, error) {
	query := `
		SELECT id, session_id, timestamp, cpu_percent, ram_percent, gpu_percent, disk_read_bps, disk_write_bps
		FROM samples
		WHERE timestamp >= ? AND timestamp <= ?
		ORDER BY timestamp ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	samples := []domain.Sample{}
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}

	return samples, nil
}

// QueryWindow resolves a named relative window against now and delegates
// to QueryRange. WindowAll spans the whole table.
func (r *SampleRepository) QueryWindow(ctx context.Context, w domain.Window, now time.Time) ([]domain.Sample, error) {
	start := time.Time{}
	if d := w.Duration(); d > 0 {
		start = now.Add(-d)
	}
	return r.QueryRange(ctx, start, now)
}

func (r *SampleRepository) Latest(ctx context.Context) (*domain.Sample, error) {
	query := `
		SELECT id, session_id, timestamp, cpu_percent, ram_percent, gpu_percent, disk_read_bps, disk_write_bps
		FROM samples
		ORDER BY timestamp DESC
		LIMIT 1
	`

	row := r.db.QueryRowContext(ctx, query)

	s, err := scanSample(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoSamples
		}
		return nil, err
	}

	return &s, nil
}

func (r *SampleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSample(row rowScanner) (domain.Sample, error) {
	var (
		s         domain.Sample
		sessionID string
		gpu       sql.NullFloat64
	)

	err := row.Scan(
		&s.ID,
		&sessionID,
		&s.Timestamp,
		&s.CPUPercent,
		&s.RAMPercent,
		&gpu,
		&s.DiskReadBPS,
		&s.DiskWriteBPS,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("scan sample: %w", err)
	}

	if parsed, err := uuid.Parse(sessionID); err == nil {
		s.SessionID = parsed
	}

	if gpu.Valid {
		v := gpu.Float64
		s.GPUPercent = &v
	}

	s.Timestamp = s.Timestamp.UTC()

	return s, nil
}
