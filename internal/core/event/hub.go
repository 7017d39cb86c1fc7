// Package event
package event

import (
	"sync"

	"vitals/internal/domain"
	"vitals/internal/logger"
)

// Hub fans the latest sample out to any number of subscribers. Publish
// never blocks: a subscriber whose buffer is full loses the sample and a
// drop counter ticks instead. A slow dashboard must never slow the
// collection loop.
type Hub struct {
	mu      sync.Mutex
	subs    map[string]chan domain.Sample
	dropped map[string]uint64

	log logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		subs:    make(map[string]chan domain.Sample),
		dropped: make(map[string]uint64),
		log:     log,
	}
}

// Subscribe registers a named subscriber and returns its receive channel.
// A second Subscribe with the same name replaces the first; the old
// channel is closed.
func (h *Hub) Subscribe(name string, buffer int) <-chan domain.Sample {
	if buffer < 1 {
		buffer = 1
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.subs[name]; ok {
		close(old)
	}

	ch := make(chan domain.Sample, buffer)
	h.subs[name] = ch

	h.log.Debug("hub: subscriber registered", "name", name, "buffer", buffer)

	return ch
}

func (h *Hub) Unsubscribe(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[name]; ok {
		close(ch)
		delete(h.subs, name)
		h.log.Debug("hub: subscriber removed", "name", name)
	}
}

// Publish delivers s to every subscriber, best-effort.
func (h *Hub) Publish(s domain.Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for name, ch := range h.subs {
		select {
		case ch <- s:
		default:
			h.dropped[name]++
			h.log.Warn("hub: subscriber buffer full, sample dropped", "name", name, "dropped", h.dropped[name])
		}
	}
}

// Dropped returns how many samples a subscriber has missed.
func (h *Hub) Dropped(name string) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped[name]
}

// Close closes every subscriber channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for name, ch := range h.subs {
		close(ch)
		delete(h.subs, name)
	}
}
