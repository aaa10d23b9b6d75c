// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/collab"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsReadLimit    = 1 << 20
)

// participants lists the active collaborators of a live document session.
func (h *Handler) participants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentID := chi.URLParam(r, "documentID")

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		logger.FromRequest(r).Error().Str("func", "*Handler.participants").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	projectID, err := h.collab.ProjectOf(ctx, documentID)
	if err != nil {
		writeError(w, r, err, "*Handler.participants")
		return
	}
	allowed, err := h.services.ProjectService.HasAccess(ctx, userID, projectID)
	if err != nil {
		writeError(w, r, err, "*Handler.participants")
		return
	}
	if !allowed {
		http.Error(w, app.MsgAccessDenied, http.StatusForbidden)
		return
	}

	participants, err := h.collab.GetActiveCollaborators(ctx, documentID)
	if err != nil {
		writeError(w, r, err, "*Handler.participants")
		return
	}

	utils.WriteJSON(w, participants, http.StatusOK)
}

// collaborate upgrades the request to a websocket and serves one realtime
// connection. A connection may join several documents; leaving or
// disconnecting marks the user inactive in each of them.
func (h *Handler) collaborate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		log.Error().Str("func", "*Handler.collaborate").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "*Handler.collaborate").Msg("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(wsReadLimit)

	c := &collabConn{
		userID: userID,
		conn:   conn,
		out:    collab.NewOutbox(h.outboundBuffer),
		docs:   make(map[string]struct{}),
		collab: h.collab,
		hub:    h.hub,
		logger: log,
	}
	c.serve(r.Context())
}

// collabConn is one realtime connection. Reads run on the serving goroutine,
// writes drain the outbox on their own goroutine.
type collabConn struct {
	userID int64
	conn   *websocket.Conn
	out    *collab.Outbox

	// docs is touched by the read loop only.
	docs map[string]struct{}

	collab collab.Service
	hub    *collab.Hub
	logger *logger.Logger
}

func (c *collabConn) serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writeLoop(ctx)
		cancel()
	}()

	c.logger.Info().Str("func", "collabConn.serve").Int64("user_id", c.userID).Msg("collaboration connection opened")

	for {
		var msg models.SessionMessage
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				c.logger.Warn().Err(err).Str("func", "collabConn.serve").Int64("user_id", c.userID).Msg("read failed")
			}
			break
		}
		c.handle(ctx, msg)
	}

	c.leaveAll(context.WithoutCancel(ctx))
	c.out.Close()
	cancel()
	<-writerDone
	c.conn.CloseNow()

	c.logger.Info().Str("func", "collabConn.serve").Int64("user_id", c.userID).Msg("collaboration connection closed")
}

func (c *collabConn) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.out.Done():
			// the hub gave up on this connection; the client rejoins
			c.conn.Close(websocket.StatusTryAgainLater, "outbound queue overflow")
			return
		case msg := <-c.out.C:
			writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := wsjson.Write(writeCtx, c.conn, msg)
			cancel()
			if err != nil {
				c.logger.Warn().Err(err).Str("func", "collabConn.writeLoop").Int64("user_id", c.userID).Msg("write failed")
				return
			}
		}
	}
}

func (c *collabConn) handle(ctx context.Context, msg models.SessionMessage) {
	switch msg.Type {
	case models.MessageJoin:
		c.join(ctx, msg)

	case models.MessageLeave:
		if _, ok := c.docs[msg.DocumentID]; !ok {
			c.fail(msg.DocumentID, "", collab.ErrNotParticipant)
			return
		}
		c.leave(ctx, msg.DocumentID)

	case models.MessageCursor:
		var cursor models.CursorPosition
		if err := json.Unmarshal(msg.Payload, &cursor); err != nil {
			c.fail(msg.DocumentID, "", collab.ErrInvalidRequest)
			return
		}
		if err := c.collab.UpdateCursor(ctx, c.userID, msg.DocumentID, cursor); err != nil {
			c.fail(msg.DocumentID, "", err)
		}

	case models.MessageOperation:
		var op models.TextOperation
		if err := json.Unmarshal(msg.Payload, &op); err != nil {
			c.fail(msg.DocumentID, "", collab.ErrInvalidOperation)
			return
		}
		ack, err := c.collab.SubmitTextOperation(ctx, c.userID, msg.DocumentID, op)
		if err != nil {
			c.fail(msg.DocumentID, op.ID, err)
			return
		}
		c.send(collab.NewMessage(models.MessageAck, msg.DocumentID, c.userID, ack))

	default:
		c.fail(msg.DocumentID, "", collab.ErrInvalidRequest)
	}
}

// join subscribes before joining, so no operation accepted after the
// snapshot is missed. Operations at or below the snapshot version may arrive
// twice and are dropped by the client.
func (c *collabConn) join(ctx context.Context, msg models.SessionMessage) {
	var req models.JoinRequest
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			c.fail(msg.DocumentID, "", collab.ErrInvalidRequest)
			return
		}
	}
	if req.DocumentID == "" {
		req.DocumentID = msg.DocumentID
	}

	c.hub.Subscribe(req.DocumentID, c.userID, c.out)

	result, err := c.collab.JoinDocument(ctx, c.userID, req.DisplayName, req.ProjectID, req.DocumentID, req.DocumentKind)
	if err != nil {
		if _, joined := c.docs[req.DocumentID]; !joined {
			c.hub.Unsubscribe(req.DocumentID, c.userID, c.out)
		}
		c.fail(req.DocumentID, "", err)
		return
	}

	c.docs[req.DocumentID] = struct{}{}
	c.send(collab.NewMessage(models.MessageJoined, req.DocumentID, c.userID, result))
}

// leave marks the user inactive unless a newer connection of the same user
// took over the subscription; that connection keeps the session alive.
func (c *collabConn) leave(ctx context.Context, documentID string) {
	delete(c.docs, documentID)
	if !c.hub.Unsubscribe(documentID, c.userID, c.out) {
		c.logger.Debug().
			Str("func", "collabConn.leave").
			Int64("user_id", c.userID).
			Str("document_id", documentID).
			Msg("superseded by a newer connection")
		return
	}

	if err := c.collab.LeaveDocument(ctx, c.userID, documentID); err != nil && !errors.Is(err, collab.ErrSessionNotFound) {
		c.logger.Err(err).
			Str("func", "collabConn.leave").
			Int64("user_id", c.userID).
			Str("document_id", documentID).
			Msg("leave failed")
	}
}

func (c *collabConn) leaveAll(ctx context.Context) {
	for documentID := range c.docs {
		c.leave(ctx, documentID)
	}
}

func (c *collabConn) send(msg models.SessionMessage) {
	if !c.out.Send(msg) {
		c.logger.Warn().Str("func", "collabConn.send").Int64("user_id", c.userID).Str("type", string(msg.Type)).Msg("outbox full, closing connection")
		c.out.Close()
	}
}

// fail reports err to the sender. A version conflict gets its own message
// type: the client rejoins to continue from a fresh snapshot.
func (c *collabConn) fail(documentID, operationID string, err error) {
	msgType := models.MessageError
	status := statusFromError(err)
	payload := collab.ErrorPayload{Message: messageFromError(err, status), OperationID: operationID}

	if errors.Is(err, collab.ErrVersionConflict) {
		msgType = models.MessageVersionConflict
	}
	if status >= http.StatusInternalServerError {
		c.logger.Err(err).Str("func", "collabConn.fail").Int64("user_id", c.userID).Str("document_id", documentID).Msg("collaboration request failed")
	}

	c.send(collab.NewMessage(msgType, documentID, c.userID, payload))
}
