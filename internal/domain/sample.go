package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSensorUnavailable marks a single sensor that could not be read
	// this cycle. The corresponding field is recorded as absent.
	ErrSensorUnavailable = errors.New("sensor unavailable")

	// ErrSensorSubsystem marks a whole acquisition call that failed.
	// The cycle is skipped, nothing is written.
	ErrSensorSubsystem = errors.New("sensor subsystem failure")

	// ErrStoreIO marks a filesystem or database failure during append.
	ErrStoreIO = errors.New("store i/o failure")

	ErrNoSamples = errors.New("no samples recorded")
)

// Sample is one point-in-time measurement of host resource usage.
// It is immutable once persisted.
type Sample struct {
	ID           int64     `json:"id,omitempty"`
	SessionID    uuid.UUID `json:"session_id"`
	Timestamp    time.Time `json:"timestamp"`
	CPUPercent   float64   `json:"cpu_percent"`
	RAMPercent   float64   `json:"ram_percent"`
	GPUPercent   *float64  `json:"gpu_percent"`
	DiskReadBPS  float64   `json:"disk_read_bps"`
	DiskWriteBPS float64   `json:"disk_write_bps"`

	// FirstCycle is true when the disk rates carry the zero sentinel
	// because no prior byte counters existed. Not persisted.
	FirstCycle bool `json:"-"`
}

// HasGPU reports whether a GPU sensor produced a reading for this sample.
func (s *Sample) HasGPU() bool {
	return s.GPUPercent != nil
}

type SampleRepository interface {
	Append(ctx context.Context, s *Sample) error
	QueryRange(ctx context.Context, start, end time.Time) ([]Sample, error)
	QueryWindow(ctx context.Context, w Window, now time.Time) ([]Sample, error)
	Latest(ctx context.Context) (*Sample, error)
	Count(ctx context.Context) (int64, error)
}

// SampleSource acquires one sample per call. Implementations retain the
// previous raw disk byte counters between calls; that state is instance
// local and lost on restart.
type SampleSource interface {
	Acquire(ctx context.Context) (Sample, error)
}

// SamplePublisher delivers samples to live subscribers. Delivery is
// best-effort and must never block the caller.
type SamplePublisher interface {
	Publish(s Sample)
}
