package collector

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitals/internal/domain"
	"vitals/internal/logger"
)

type fakeSource struct {
	mu    sync.Mutex
	calls int
	err   error
	gpu   *float64
}

func (f *fakeSource) Acquire(ctx context.Context) (domain.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return domain.Sample{}, f.err
	}

	return domain.Sample{
		CPUPercent:   25,
		RAMPercent:   50,
		GPUPercent:   f.gpu,
		DiskReadBPS:  1024,
		DiskWriteBPS: 2048,
	}, nil
}

type fakeStore struct {
	mu      sync.Mutex
	samples []domain.Sample
	failN   int // fail the first failN Append calls
	calls   int
	onWrite func(stored int)
}

func (f *fakeStore) Append(ctx context.Context, s *domain.Sample) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.calls <= f.failN {
		return fmt.Errorf("%w: disk full", domain.ErrStoreIO)
	}

	f.samples = append(f.samples, *s)
	if f.onWrite != nil {
		f.onWrite(len(f.samples))
	}
	return nil
}

func (f *fakeStore) stored() []domain.Sample {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Sample, len(f.samples))
	copy(out, f.samples)
	return out
}

type fakePublisher struct {
	mu      sync.Mutex
	samples []domain.Sample
}

func (f *fakePublisher) Publish(s domain.Sample) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples = append(f.samples, s)
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.samples)
}

func TestLoopPersistsStrictlyIncreasingTimestamps(t *testing.T) {
	source := &fakeSource{}
	publisher := &fakePublisher{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &fakeStore{}
	store.onWrite = func(stored int) {
		if stored == 5 {
			cancel()
		}
	}

	loop := NewLoop(source, store, publisher, 5*time.Millisecond, logger.Discard())

	err := loop.Start(ctx)
	require.ErrorIs(t, err, context.Canceled)

	samples := store.stored()
	require.Len(t, samples, 5)

	for i := 1; i < len(samples); i++ {
		assert.True(t, samples[i].Timestamp.After(samples[i-1].Timestamp),
			"timestamp %d (%v) must be after %d (%v)",
			i, samples[i].Timestamp, i-1, samples[i-1].Timestamp)
	}

	for _, s := range samples {
		assert.Equal(t, loop.SessionID(), s.SessionID)
	}

	assert.Equal(t, PhaseStopped, loop.Phase())
	assert.Equal(t, uint64(5), loop.Stats().Collected)
}

func TestLoopRetriesOnceThenDropsSample(t *testing.T) {
	source := &fakeSource{}
	publisher := &fakePublisher{}

	// First two Append calls fail: the first cycle's write and its
	// retry. The second cycle succeeds on its first attempt.
	store := &fakeStore{failN: 2}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.onWrite = func(stored int) {
		if stored == 1 {
			cancel()
		}
	}

	loop := NewLoop(source, store, publisher, 5*time.Millisecond, logger.Discard())
	_ = loop.Start(ctx)

	stats := loop.Stats()
	assert.Equal(t, uint64(1), stats.Dropped, "exactly one sample dropped")
	assert.Equal(t, uint64(1), stats.Collected)

	// Dropped samples are still published to the live view.
	assert.Equal(t, 2, publisher.count())
}

func TestLoopTransientAppendFailureRecoversOnRetry(t *testing.T) {
	source := &fakeSource{}
	publisher := &fakePublisher{}

	// Only the first attempt fails; the retry lands the sample.
	store := &fakeStore{failN: 1}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.onWrite = func(stored int) {
		if stored == 1 {
			cancel()
		}
	}

	loop := NewLoop(source, store, publisher, 5*time.Millisecond, logger.Discard())
	_ = loop.Start(ctx)

	assert.Equal(t, uint64(0), loop.Stats().Dropped)
	assert.Equal(t, uint64(1), loop.Stats().Collected)
}

func TestLoopSkipsCycleOnSubsystemFailure(t *testing.T) {
	source := &fakeSource{err: domain.ErrSensorSubsystem}
	store := &fakeStore{}
	publisher := &fakePublisher{}

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	loop := NewLoop(source, store, publisher, 5*time.Millisecond, logger.Discard())
	_ = loop.Start(ctx)

	assert.Empty(t, store.stored(), "no partial writes on subsystem failure")
	assert.Zero(t, publisher.count())
	assert.NotZero(t, loop.Stats().Skipped)

	// The loop stayed available the whole time.
	source.mu.Lock()
	assert.Greater(t, source.calls, 1)
	source.mu.Unlock()
}

func TestLoopPublishesAbsentGPU(t *testing.T) {
	source := &fakeSource{}
	store := &fakeStore{}
	publisher := &fakePublisher{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.onWrite = func(stored int) {
		if stored == 1 {
			cancel()
		}
	}

	loop := NewLoop(source, store, publisher, 5*time.Millisecond, logger.Discard())
	_ = loop.Start(ctx)

	samples := store.stored()
	require.NotEmpty(t, samples)

	// GPU absent must not block the other fields.
	assert.Nil(t, samples[0].GPUPercent)
	assert.Equal(t, 25.0, samples[0].CPUPercent)
	assert.Equal(t, 50.0, samples[0].RAMPercent)
}

func TestNextTimestampNudgesStalledClock(t *testing.T) {
	loop := NewLoop(&fakeSource{}, &fakeStore{}, &fakePublisher{}, time.Second, logger.Discard())

	frozen := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	loop.now = func() time.Time { return frozen }

	first := loop.nextTimestamp()
	second := loop.nextTimestamp()
	third := loop.nextTimestamp()

	assert.True(t, second.After(first))
	assert.True(t, third.After(second))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "stopped", PhaseStopped.String())
}
