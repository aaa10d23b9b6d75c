package collab

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/ot"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/internal/validators"
	"github.com/MKhiriev/go-story-sync/models"
)

const defaultInactiveGrace = 5 * time.Minute

type service struct {
	mu       sync.Mutex
	sessions map[string]*session

	documents   store.DocumentRepository
	projects    store.ProjectRepository
	broadcaster Broadcaster
	validator   validators.Validator
	ids         *utils.UUIDGenerator

	grace time.Duration
	now   func() time.Time

	logger *logger.Logger
}

// NewService creates the session engine. Sessions are created lazily on
// the first join of a document.
func NewService(
	documents store.DocumentRepository,
	projects store.ProjectRepository,
	broadcaster Broadcaster,
	cfg config.Collaboration,
	logger *logger.Logger,
) Service {
	grace := cfg.InactiveGrace
	if grace <= 0 {
		grace = defaultInactiveGrace
	}

	return &service{
		sessions:    make(map[string]*session),
		documents:   documents,
		projects:    projects,
		broadcaster: broadcaster,
		validator:   validators.NewCollaborationValidator(),
		ids:         utils.NewUUIDGenerator(),
		grace:       grace,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *service) JoinDocument(
	ctx context.Context,
	userID int64,
	displayName string,
	projectID int64,
	documentID string,
	kind models.DocumentKind,
) (models.JoinResult, error) {
	log := logger.FromContext(ctx)

	req := models.JoinRequest{ProjectID: projectID, DocumentID: documentID, DocumentKind: kind, DisplayName: displayName}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.JoinResult{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	ok, err := s.projects.HasAccess(ctx, userID, projectID)
	if err != nil {
		return models.JoinResult{}, fmt.Errorf("check project access: %w", err)
	}
	if !ok {
		log.Warn().
			Str("func", "service.JoinDocument").
			Int64("user_id", userID).
			Int64("project_id", projectID).
			Msg("join rejected")
		return models.JoinResult{}, ErrAccessDenied
	}

	for {
		sess := s.getOrCreate(documentID, projectID, kind)

		sess.mu.Lock()
		if sess.closed {
			sess.mu.Unlock()
			continue
		}

		result, joined, err := s.join(ctx, sess, userID, displayName, projectID)
		sess.mu.Unlock()
		if err != nil {
			return models.JoinResult{}, err
		}

		s.broadcaster.Broadcast(documentID, NewMessage(models.MessageParticipantJoined, documentID, userID, joined), userID)

		log.Info().
			Str("func", "service.JoinDocument").
			Str("document_id", documentID).
			Int64("user_id", userID).
			Int64("version", result.Version).
			Msg("participant joined")
		return result, nil
	}
}

// join runs with sess.mu held.
func (s *service) join(ctx context.Context, sess *session, userID int64, displayName string, projectID int64) (models.JoinResult, models.Participant, error) {
	if !sess.loaded {
		if err := s.load(ctx, sess); err != nil {
			s.remove(sess)
			return models.JoinResult{}, models.Participant{}, err
		}
	}
	if sess.projectID != projectID {
		return models.JoinResult{}, models.Participant{}, ErrProjectMismatch
	}

	now := s.now().UTC()
	p, ok := sess.participants[userID]
	if !ok {
		p = &models.Participant{UserID: userID, JoinedAt: now}
		sess.participants[userID] = p
	}
	p.Active = true
	p.LastActivity = now
	if displayName != "" {
		p.DisplayName = displayName
	}

	cursors := make(map[int64]models.CursorPosition, len(sess.cursors))
	for id, c := range sess.cursors {
		cursors[id] = c
	}

	result := models.JoinResult{
		SessionID:    sess.id,
		DocumentID:   sess.documentID,
		Participants: sess.activeParticipants(),
		Cursors:      cursors,
		Version:      sess.version,
		Content:      sess.content,
	}
	return result, *p, nil
}

// load reads the persisted content of the document. A document that was
// never persisted starts empty at version zero.
func (s *service) load(ctx context.Context, sess *session) error {
	doc, err := s.documents.GetDocument(ctx, sess.documentID)
	switch {
	case errors.Is(err, store.ErrDocumentNotFound):
		doc = models.Document{ID: sess.documentID, ProjectID: sess.projectID, Kind: sess.kind}
	case err != nil:
		return fmt.Errorf("load document: %w", err)
	}

	if doc.ProjectID != sess.projectID {
		return ErrProjectMismatch
	}
	if doc.Kind != "" {
		sess.kind = doc.Kind
	}

	sess.content = doc.Content
	sess.version = doc.Version
	sess.loadedVersion = doc.Version
	sess.loaded = true

	s.logger.Debug().
		Str("func", "service.load").
		Str("document_id", sess.documentID).
		Int64("version", doc.Version).
		Msg("session started")
	return nil
}

func (s *service) getOrCreate(documentID string, projectID int64, kind models.DocumentKind) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[documentID]
	if !ok {
		sess = newSession(s.ids.Generate(), documentID, projectID, kind)
		s.sessions[documentID] = sess
	}
	return sess
}

func (s *service) get(documentID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[documentID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// lock returns the live session of documentID with its mutex held.
func (s *service) lock(documentID string) (*session, error) {
	sess, err := s.get(documentID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	if sess.closed || !sess.loaded {
		sess.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// remove runs with sess.mu held.
func (s *service) remove(sess *session) {
	sess.closed = true

	s.mu.Lock()
	if s.sessions[sess.documentID] == sess {
		delete(s.sessions, sess.documentID)
	}
	s.mu.Unlock()
}

func (s *service) UpdateCursor(ctx context.Context, userID int64, documentID string, cursor models.CursorPosition) error {
	if err := s.validator.Validate(ctx, cursor); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	sess, err := s.lock(documentID)
	if err != nil {
		return err
	}
	if !sess.active(userID) {
		sess.mu.Unlock()
		return ErrNotParticipant
	}
	sess.cursors[userID] = cursor
	sess.touch(userID, s.now().UTC())
	sess.mu.Unlock()

	s.broadcaster.Broadcast(documentID, NewMessage(models.MessageCursor, documentID, userID, cursor), userID)
	return nil
}

func (s *service) SubmitTextOperation(ctx context.Context, userID int64, documentID string, op models.TextOperation) (models.OperationAck, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, op); err != nil {
		return models.OperationAck{}, fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	}

	sess, err := s.lock(documentID)
	if err != nil {
		return models.OperationAck{}, err
	}

	ack, fresh, err := s.submit(sess, userID, op)
	sess.mu.Unlock()
	if err != nil {
		log.Warn().Err(err).
			Str("func", "service.SubmitTextOperation").
			Str("document_id", documentID).
			Int64("user_id", userID).
			Int64("base_version", op.BaseVersion).
			Msg("operation rejected")
		return models.OperationAck{}, err
	}

	if fresh {
		s.broadcaster.Broadcast(documentID, NewMessage(models.MessageOperation, documentID, userID, ack.Applied), userID)
	}
	return ack, nil
}

// submit runs with sess.mu held. fresh is false for a resubmitted id.
func (s *service) submit(sess *session, userID int64, op models.TextOperation) (models.OperationAck, bool, error) {
	if !sess.active(userID) {
		return models.OperationAck{}, false, ErrNotParticipant
	}
	key := ackKey{userID: userID, operationID: op.ID}
	if ack, ok := sess.acks[key]; ok {
		return ack, false, nil
	}
	if op.BaseVersion > sess.version || op.BaseVersion < sess.loadedVersion {
		return models.OperationAck{}, false, fmt.Errorf("%w: base %d, current %d", ErrVersionConflict, op.BaseVersion, sess.version)
	}

	now := s.now().UTC()
	op.AuthorID = userID

	applied := ot.TransformAll(op, sess.log)
	applied.ID = s.ids.Generate()
	applied.Timestamp = now
	applied.BaseVersion = sess.version
	applied.Version = sess.version + 1

	content, err := ot.Apply(sess.content, applied)
	if err != nil {
		return models.OperationAck{}, false, fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	}

	sess.content = content
	sess.version = applied.Version
	sess.log = append(sess.log, applied)
	sess.dirty = true
	sess.touch(userID, now)

	ack := models.OperationAck{OperationID: op.ID, Applied: applied, Version: applied.Version}
	sess.acks[key] = ack
	return ack, true, nil
}

func (s *service) LeaveDocument(ctx context.Context, userID int64, documentID string) error {
	sess, err := s.lock(documentID)
	if err != nil {
		return err
	}
	defer sess.mu.Unlock()

	p, ok := sess.participants[userID]
	if !ok || !p.Active {
		return nil
	}
	p.Active = false
	p.LastActivity = s.now().UTC()
	delete(sess.cursors, userID)

	s.broadcaster.Broadcast(documentID, NewMessage(models.MessageParticipantLeft, documentID, userID, *p), userID)

	logger.FromContext(ctx).Info().
		Str("func", "service.LeaveDocument").
		Str("document_id", documentID).
		Int64("user_id", userID).
		Msg("participant left")

	if sess.activeCount() > 0 {
		return nil
	}
	return s.end(ctx, sess)
}

// end persists the content and removes the session. It runs with sess.mu
// held. A failed save keeps the session alive so the next flush retries.
func (s *service) end(ctx context.Context, sess *session) error {
	if err := s.persist(ctx, sess); err != nil {
		return err
	}
	s.remove(sess)

	s.logger.Debug().
		Str("func", "service.end").
		Str("document_id", sess.documentID).
		Int64("version", sess.version).
		Msg("session ended")
	return nil
}

// persist runs with sess.mu held.
func (s *service) persist(ctx context.Context, sess *session) error {
	if !sess.dirty {
		return nil
	}
	if err := s.documents.SaveDocument(ctx, sess.document(s.now().UTC())); err != nil {
		return fmt.Errorf("save document %s: %w", sess.documentID, err)
	}
	sess.dirty = false
	return nil
}

func (s *service) GetActiveCollaborators(ctx context.Context, documentID string) ([]models.Participant, error) {
	sess, err := s.lock(documentID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	return sess.activeParticipants(), nil
}

func (s *service) ProjectOf(ctx context.Context, documentID string) (int64, error) {
	sess, err := s.lock(documentID)
	if err != nil {
		return 0, err
	}
	defer sess.mu.Unlock()

	return sess.projectID, nil
}

func (s *service) snapshot() []*session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

func (s *service) Flush(ctx context.Context) error {
	var (
		errs    []error
		flushed int
	)

	for _, sess := range s.snapshot() {
		sess.mu.Lock()
		if !sess.closed && sess.loaded && sess.dirty {
			if err := s.persist(ctx, sess); err != nil {
				errs = append(errs, err)
			} else {
				flushed++
			}
		}
		sess.mu.Unlock()
	}

	if flushed > 0 {
		s.logger.Debug().Str("func", "service.Flush").Int("documents", flushed).Msg("sessions flushed")
	}
	return errors.Join(errs...)
}

func (s *service) ReapInactive(ctx context.Context, now time.Time) error {
	var (
		errs   []error
		purged int
		ended  int
	)

	for _, sess := range s.snapshot() {
		sess.mu.Lock()
		if sess.closed || !sess.loaded {
			sess.mu.Unlock()
			continue
		}

		for id, p := range sess.participants {
			if !p.Active && now.Sub(p.LastActivity) > s.grace {
				delete(sess.participants, id)
				purged++
			}
		}

		if sess.activeCount() == 0 {
			if err := s.end(ctx, sess); err != nil {
				errs = append(errs, err)
			} else {
				ended++
			}
		}
		sess.mu.Unlock()
	}

	if purged > 0 || ended > 0 {
		s.logger.Info().
			Str("func", "service.ReapInactive").
			Int("participants", purged).
			Int("sessions", ended).
			Msg("inactive state reaped")
	}
	return errors.Join(errs...)
}
