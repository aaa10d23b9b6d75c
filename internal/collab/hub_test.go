package collab

import (
	"testing"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastSkipsSender(t *testing.T) {
	hub := NewHub(logger.Nop())
	a, b := NewOutbox(4), NewOutbox(4)
	hub.Subscribe("doc", 1, a)
	hub.Subscribe("doc", 2, b)
	hub.Subscribe("other", 3, NewOutbox(4))

	hub.Broadcast("doc", NewMessage(models.MessageOperation, "doc", 1, nil), 1)

	assert.Empty(t, drain(a))
	got := drain(b)
	require.Len(t, got, 1)
	assert.Equal(t, models.MessageOperation, got[0].Type)
}

func TestHub_FullOutbox(t *testing.T) {
	t.Run("cursor updates are dropped", func(t *testing.T) {
		hub := NewHub(logger.Nop())
		out := NewOutbox(1)
		hub.Subscribe("doc", 2, out)

		hub.Broadcast("doc", NewMessage(models.MessageCursor, "doc", 1, models.CursorPosition{Position: 1}), 1)
		hub.Broadcast("doc", NewMessage(models.MessageCursor, "doc", 1, models.CursorPosition{Position: 2}), 1)

		select {
		case <-out.Done():
			t.Fatal("outbox must stay open")
		default:
		}
		assert.Len(t, drain(out), 1)
	})

	t.Run("operations close the slow connection", func(t *testing.T) {
		hub := NewHub(logger.Nop())
		out := NewOutbox(1)
		hub.Subscribe("doc", 2, out)

		hub.Broadcast("doc", NewMessage(models.MessageOperation, "doc", 1, nil), 1)
		hub.Broadcast("doc", NewMessage(models.MessageOperation, "doc", 1, nil), 1)

		select {
		case <-out.Done():
		default:
			t.Fatal("outbox must be closed")
		}
		assert.False(t, out.Send(models.SessionMessage{Type: models.MessageAck}))
	})
}

func TestHub_UnsubscribeKeepsNewerOutbox(t *testing.T) {
	hub := NewHub(logger.Nop())
	old, fresh := NewOutbox(1), NewOutbox(1)

	hub.Subscribe("doc", 1, old)
	hub.Subscribe("doc", 1, fresh)
	assert.False(t, hub.Unsubscribe("doc", 1, old))
	assert.Equal(t, 1, hub.Subscribers("doc"))

	assert.True(t, hub.Unsubscribe("doc", 1, fresh))
	assert.Equal(t, 0, hub.Subscribers("doc"))
	assert.False(t, hub.Unsubscribe("doc", 1, fresh))
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage(models.MessageError, "doc", 4, ErrorPayload{Message: "bad"})

	assert.Equal(t, models.MessageError, msg.Type)
	assert.Equal(t, int64(4), msg.UserID)
	assert.JSONEq(t, `{"message":"bad"}`, string(msg.Payload))

	assert.Nil(t, NewMessage(models.MessageLeave, "doc", 4, nil).Payload)
}
