package collab

import (
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

// session is the in-memory state of one co-edited document. Every field is
// guarded by mu.
type session struct {
	mu sync.Mutex

	id         string
	documentID string
	projectID  int64
	kind       models.DocumentKind

	content string
	version int64

	// loadedVersion is the version the session started from. The log holds
	// every operation accepted after it.
	loadedVersion int64
	log           []models.TextOperation

	// acks maps submitted operations to their acknowledgement. Ids are
	// chosen by clients, so they are only unique per author.
	acks map[ackKey]models.OperationAck

	participants map[int64]*models.Participant
	cursors      map[int64]models.CursorPosition

	loaded bool
	dirty  bool

	// closed is set once the session is removed from the service. A caller
	// that raced with the removal starts over.
	closed bool
}

type ackKey struct {
	userID      int64
	operationID string
}

func newSession(id, documentID string, projectID int64, kind models.DocumentKind) *session {
	return &session{
		id:           id,
		documentID:   documentID,
		projectID:    projectID,
		kind:         kind,
		acks:         make(map[ackKey]models.OperationAck),
		participants: make(map[int64]*models.Participant),
		cursors:      make(map[int64]models.CursorPosition),
	}
}

func (s *session) active(userID int64) bool {
	p, ok := s.participants[userID]
	return ok && p.Active
}

func (s *session) activeCount() int {
	n := 0
	for _, p := range s.participants {
		if p.Active {
			n++
		}
	}
	return n
}

// activeParticipants returns copies ordered by join time.
func (s *session) activeParticipants() []models.Participant {
	out := make([]models.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		if p.Active {
			out = append(out, *p)
		}
	}
	slices.SortFunc(out, func(a, b models.Participant) int {
		if c := a.JoinedAt.Compare(b.JoinedAt); c != 0 {
			return c
		}
		switch {
		case a.UserID < b.UserID:
			return -1
		case a.UserID > b.UserID:
			return 1
		}
		return 0
	})
	return out
}

func (s *session) touch(userID int64, now time.Time) {
	if p, ok := s.participants[userID]; ok {
		p.LastActivity = now
	}
}

func (s *session) document(now time.Time) models.Document {
	return models.Document{
		ID:        s.documentID,
		ProjectID: s.projectID,
		Kind:      s.kind,
		Content:   s.content,
		Version:   s.version,
		UpdatedAt: now,
	}
}
