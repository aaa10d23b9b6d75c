package collab

import (
	"sync"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

const defaultOutboundBuffer = 64

// Outbox is the buffered outbound queue of one realtime connection. The
// connection writer drains C until Done is closed.
type Outbox struct {
	C chan models.SessionMessage

	done chan struct{}
	once sync.Once
}

func NewOutbox(size int) *Outbox {
	if size <= 0 {
		size = defaultOutboundBuffer
	}
	return &Outbox{
		C:    make(chan models.SessionMessage, size),
		done: make(chan struct{}),
	}
}

// Send queues msg without blocking and reports whether it was queued.
func (o *Outbox) Send(msg models.SessionMessage) bool {
	select {
	case <-o.done:
		return false
	default:
	}

	select {
	case o.C <- msg:
		return true
	default:
		return false
	}
}

// Close marks the outbox as finished. The connection owning it is expected
// to shut down. Safe to call more than once.
func (o *Outbox) Close() {
	o.once.Do(func() { close(o.done) })
}

func (o *Outbox) Done() <-chan struct{} {
	return o.done
}

// Hub routes session messages to the outboxes subscribed to a document.
// A user holds at most one subscription per document; subscribing again
// replaces the previous outbox.
//
// A full outbox drops cursor messages. Any other message closes it, since a
// client that missed an operation must rejoin to get a consistent snapshot.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[int64]*Outbox

	logger *logger.Logger
}

func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[int64]*Outbox),
		logger: logger,
	}
}

func (h *Hub) Subscribe(documentID string, userID int64, out *Outbox) {
	h.mu.Lock()
	defer h.mu.Unlock()

	users, ok := h.subs[documentID]
	if !ok {
		users = make(map[int64]*Outbox)
		h.subs[documentID] = users
	}
	users[userID] = out
}

// Unsubscribe removes the subscription of userID if it still points to out
// and reports whether it did. False means a newer connection of the same
// user owns the subscription now.
func (h *Hub) Unsubscribe(documentID string, userID int64, out *Outbox) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	users, ok := h.subs[documentID]
	if !ok || users[userID] != out {
		return false
	}
	delete(users, userID)
	if len(users) == 0 {
		delete(h.subs, documentID)
	}
	return true
}

// Subscribers returns the number of subscriptions of documentID.
func (h *Hub) Subscribers(documentID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[documentID])
}

// Broadcast implements [Broadcaster].
func (h *Hub) Broadcast(documentID string, msg models.SessionMessage, exclude int64) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for userID, out := range h.subs[documentID] {
		if userID == exclude {
			continue
		}
		if out.Send(msg) {
			continue
		}

		if msg.Type == models.MessageCursor {
			h.logger.Debug().
				Str("func", "Hub.Broadcast").
				Str("document_id", documentID).
				Int64("user_id", userID).
				Msg("outbox full, cursor update dropped")
			continue
		}

		h.logger.Warn().
			Str("func", "Hub.Broadcast").
			Str("document_id", documentID).
			Int64("user_id", userID).
			Str("type", string(msg.Type)).
			Msg("outbox full, closing slow connection")
		out.Close()
	}
}
