package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

const defaultSubscriberBuffer = 64

// EventBus fans sync events out to subscribers. Delivery is at-most-once:
// an event is dropped for a subscriber whose buffer is full.
type EventBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan models.SyncEvent
	buffer int

	logger *logger.Logger
}

func NewEventBus(buffer int, logger *logger.Logger) *EventBus {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &EventBus{
		subs:   make(map[int]chan models.SyncEvent),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe registers a subscriber. The returned function unsubscribes and
// closes the channel; calling it more than once is safe.
func (b *EventBus) Subscribe() (<-chan models.SyncEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan models.SyncEvent, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

// Publish implements [EventPublisher].
func (b *EventBus) Publish(event models.SyncEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn().Str("func", "*EventBus.Publish").
				Int("subscriber", id).
				Str("event", string(event.Type)).
				Msg("subscriber buffer is full, event dropped")
		}
	}
}
