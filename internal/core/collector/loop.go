// Package collector runs the periodic sampling loop: acquire a sample,
// persist it, publish it to live subscribers, sleep until the next tick.
package collector

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"vitals/internal/domain"
	"vitals/internal/logger"

	"github.com/google/uuid"
)

// Phase is the loop's current position in its cycle. Exposed so failure
// handling at each step is testable in isolation.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseSampling
	PhasePersisting
	PhasePublishing
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSampling:
		return "sampling"
	case PhasePersisting:
		return "persisting"
	case PhasePublishing:
		return "publishing"
	case PhaseStopped:
		return "stopped"
	}
	return "unknown"
}

// SampleStore is the slice of the repository the loop needs.
type SampleStore interface {
	Append(ctx context.Context, s *domain.Sample) error
}

// Stats counts what happened over the life of one loop.
type Stats struct {
	Collected uint64
	Dropped   uint64
	Skipped   uint64
}

type Loop struct {
	source    domain.SampleSource
	store     SampleStore
	publisher domain.SamplePublisher
	log       logger.Logger

	interval  time.Duration
	sessionID uuid.UUID

	phase atomic.Int32

	mu     sync.Mutex
	latest *domain.Sample
	stats  Stats

	lastTimestamp time.Time

	now func() time.Time
}

func NewLoop(source domain.SampleSource, store SampleStore, publisher domain.SamplePublisher, interval time.Duration, log logger.Logger) *Loop {
	return &Loop{
		source:    source,
		store:     store,
		publisher: publisher,
		log:       log,
		interval:  interval,
		sessionID: uuid.New(),
		now:       time.Now,
	}
}

func (l *Loop) SessionID() uuid.UUID {
	return l.sessionID
}

func (l *Loop) Phase() Phase {
	return Phase(l.phase.Load())
}

// Latest returns the most recently collected sample, or nil before the
// first cycle completes.
func (l *Loop) Latest() *domain.Sample {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.latest == nil {
		return nil
	}

	s := *l.latest
	return &s
}

func (l *Loop) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Start runs the loop until ctx is cancelled. Cancellation is checked at
// the idle boundary only; an in-flight persist always completes, so no
// torn writes. Always returns ctx.Err().
func (l *Loop) Start(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.log.Info("collector loop started", "session_id", l.sessionID, "interval", l.interval)

	for {
		l.phase.Store(int32(PhaseIdle))

		select {
		case <-ctx.Done():
			l.phase.Store(int32(PhaseStopped))
			stats := l.Stats()
			l.log.Info("collector loop stopped",
				"collected", stats.Collected,
				"dropped", stats.Dropped,
				"skipped", stats.Skipped,
			)
			return ctx.Err()
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			l.cycle(ctx)
		}
	}
}

func (l *Loop) cycle(ctx context.Context) {
	l.phase.Store(int32(PhaseSampling))

	sample, err := l.source.Acquire(ctx)
	if err != nil {
		// Total acquisition failure. Skip the cycle, stay available
		// for the next one.
		l.log.Error("sampling failed, skipping cycle", "error", err)
		l.mu.Lock()
		l.stats.Skipped++
		l.mu.Unlock()
		return
	}

	sample.SessionID = l.sessionID
	sample.Timestamp = l.nextTimestamp()

	if sample.FirstCycle {
		l.log.Debug("first cycle, disk rates carry the zero sentinel")
	}

	l.phase.Store(int32(PhasePersisting))
	persisted := l.persist(&sample)

	l.phase.Store(int32(PhasePublishing))
	l.publisher.Publish(sample)

	l.mu.Lock()
	l.latest = &sample
	if persisted {
		l.stats.Collected++
	} else {
		l.stats.Dropped++
	}
	l.mu.Unlock()
}

// persist writes the sample, retrying a failed append exactly once.
// After the retry the sample is dropped; collection outlives a transient
// storage hiccup.
func (l *Loop) persist(sample *domain.Sample) bool {
	err := l.store.Append(context.Background(), sample)
	if err == nil {
		return true
	}

	l.log.Warn("sample append failed, retrying once", "error", err)

	if err := l.store.Append(context.Background(), sample); err != nil {
		l.log.Error("sample dropped after retry", "error", err, "timestamp", sample.Timestamp)
		return false
	}

	return true
}

// nextTimestamp assigns the acquisition timestamp, nudging it forward
// when the wall clock has not advanced past the previous sample.
func (l *Loop) nextTimestamp() time.Time {
	ts := l.now().UTC()

	if !ts.After(l.lastTimestamp) {
		ts = l.lastTimestamp.Add(time.Millisecond)
	}
	l.lastTimestamp = ts

	return ts
}
