package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func version(payload string) models.EntityVersion {
	return models.EntityVersion{EntityType: "scene", EntityID: "s-1", ProjectID: 1, Payload: json.RawMessage(payload)}
}

// ── Resolve ──────────────────────────────────────────────────────────────────

func TestConflictResolver_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		local      string
		remote     string
		wantWinner models.ConflictSide
		wantStrat  models.ResolutionStrategy
		wantReason string
		wantReview bool
	}{
		{
			name:       "remote timestamp is newer",
			local:      `{"title":"A","updatedAt":"2026-01-01T10:00:00Z"}`,
			remote:     `{"title":"B","updatedAt":"2026-01-01T11:00:00Z"}`,
			wantWinner: models.SideRemote,
			wantStrat:  models.StrategyOverwrite,
			wantReason: ReasonRemoteNewer,
		},
		{
			name:       "local timestamp is newer",
			local:      `{"title":"A","updatedAt":1767265200000}`,
			remote:     `{"title":"B","updatedAt":1767261600000}`,
			wantWinner: models.SideLocal,
			wantStrat:  models.StrategyOverwrite,
			wantReason: ReasonLocalNewer,
		},
		{
			name:       "epoch millis as string",
			local:      `{"updatedAt":"1767261600000"}`,
			remote:     `{"updatedAt":"1767265200000"}`,
			wantWinner: models.SideRemote,
			wantStrat:  models.StrategyOverwrite,
			wantReason: ReasonRemoteNewer,
		},
		{
			name:       "equal timestamps fall through to content",
			local:      `{"content":"same","updatedAt":"2026-01-01T10:00:00Z"}`,
			remote:     `{"content":"same","updatedAt":"2026-01-01T10:00:00Z"}`,
			wantWinner: models.SideLocal,
			wantStrat:  models.StrategyMerge,
			wantReason: ReasonIdentical,
		},
		{
			name:       "local text includes remote text",
			local:      `{"content":"Hello world"}`,
			remote:     `{"content":"Hello"}`,
			wantWinner: models.SideLocal,
			wantStrat:  models.StrategyMerge,
			wantReason: ReasonLocalSuperset,
		},
		{
			name:       "remote text includes local text",
			local:      `{"notes":"draft"}`,
			remote:     `{"notes":"draft, revised"}`,
			wantWinner: models.SideRemote,
			wantStrat:  models.StrategyMerge,
			wantReason: ReasonRemoteSuperset,
		},
		{
			name:       "diverged text is merged with markers",
			local:      `{"content":"Hello","title":"T"}`,
			remote:     `{"content":"World"}`,
			wantWinner: models.SideMerged,
			wantStrat:  models.StrategyMerge,
			wantReason: ReasonMergedWithMarker,
			wantReview: true,
		},
		{
			name:       "no timestamps and no text fields",
			local:      `{"title":"A","order":1}`,
			remote:     `{"title":"B","order":2}`,
			wantWinner: models.SideLocal,
			wantStrat:  models.StrategyManual,
			wantReason: ReasonManual,
			wantReview: true,
		},
		{
			name:       "only one side has a timestamp",
			local:      `{"title":"A","updatedAt":"2026-01-01T10:00:00Z"}`,
			remote:     `{"title":"B"}`,
			wantWinner: models.SideLocal,
			wantStrat:  models.StrategyManual,
			wantReason: ReasonManual,
			wantReview: true,
		},
		{
			name:       "payload is not an object",
			local:      `"text"`,
			remote:     `[1,2]`,
			wantWinner: models.SideLocal,
			wantStrat:  models.StrategyManual,
			wantReason: ReasonManual,
			wantReview: true,
		},
	}

	resolver := NewConflictResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolver.Resolve(version(tt.local), version(tt.remote))

			assert.Equal(t, tt.wantWinner, res.Winner)
			assert.Equal(t, tt.wantStrat, res.Strategy)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.Equal(t, tt.wantReview, res.RequiresReview)
			if tt.wantWinner != models.SideMerged {
				assert.Empty(t, res.MergedPayload)
			}
		})
	}
}

func TestConflictResolver_MergedPayload(t *testing.T) {
	res := NewConflictResolver().Resolve(
		version(`{"content":"Hello","title":"T"}`),
		version(`{"content":"World","title":"R"}`),
	)
	require.Equal(t, models.SideMerged, res.Winner)
	// маркеры хранятся как есть, без \u003c
	assert.Contains(t, string(res.MergedPayload), "<<<<<<< LOCAL")
	assert.Contains(t, string(res.MergedPayload), ">>>>>>> REMOTE")
	assert.NotContains(t, string(res.MergedPayload), `\u003c`)

	var merged map[string]string
	require.NoError(t, json.Unmarshal(res.MergedPayload, &merged))

	assert.Equal(t, "<<<<<<< LOCAL\nHello\n=======\nWorld\n>>>>>>> REMOTE", merged["content"])
	assert.Equal(t, "T", merged["title"], "non-text fields keep the local value")
}

// free-text fields are tried in a fixed order
func TestConflictResolver_FieldPrecedence(t *testing.T) {
	res := NewConflictResolver().Resolve(
		version(`{"summary":"a","content":"same"}`),
		version(`{"summary":"b","content":"same"}`),
	)
	assert.Equal(t, ReasonIdentical, res.Reason)
}

// ── EventBus ─────────────────────────────────────────────────────────────────

func TestEventBus_DeliversToEverySubscriber(t *testing.T) {
	bus := NewEventBus(4, logger.Nop())

	first, unsubFirst := bus.Subscribe()
	defer unsubFirst()
	second, unsubSecond := bus.Subscribe()
	defer unsubSecond()

	bus.Publish(models.SyncEvent{Type: models.EventSyncStarted})

	for _, ch := range []<-chan models.SyncEvent{first, second} {
		select {
		case ev := <-ch:
			assert.Equal(t, models.EventSyncStarted, ev.Type)
			assert.False(t, ev.At.IsZero(), "publish stamps the event time")
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestEventBus_DropsWhenBufferIsFull(t *testing.T) {
	bus := NewEventBus(1, logger.Nop())
	ch, unsub := bus.Subscribe()
	defer unsub()

	bus.Publish(models.SyncEvent{Type: models.EventSyncStarted})
	// второе событие не помещается в буфер и отбрасывается, Publish не блокируется
	bus.Publish(models.SyncEvent{Type: models.EventSyncCompleted})

	ev := <-ch
	assert.Equal(t, models.EventSyncStarted, ev.Type)
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %s", ev.Type)
	default:
	}
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(0, logger.Nop())
	ch, unsub := bus.Subscribe()

	unsub()
	assert.NotPanics(t, unsub, "unsubscribe is idempotent")

	_, open := <-ch
	assert.False(t, open, "channel is closed on unsubscribe")

	assert.NotPanics(t, func() { bus.Publish(models.SyncEvent{Type: models.EventSyncError}) })
}
