package collab

import (
	"encoding/json"

	"github.com/MKhiriev/go-story-sync/models"
)

// NewMessage builds a session message with payload encoded as JSON. A
// payload that cannot be encoded is left out.
func NewMessage(msgType models.SessionMessageType, documentID string, userID int64, payload any) models.SessionMessage {
	msg := models.SessionMessage{Type: msgType, DocumentID: documentID, UserID: userID}
	if payload == nil {
		return msg
	}
	if raw, err := json.Marshal(payload); err == nil {
		msg.Payload = raw
	}
	return msg
}

// ErrorPayload is the payload of error and version-conflict messages.
type ErrorPayload struct {
	Message     string `json:"message"`
	OperationID string `json:"operation_id,omitempty"`
}
