package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-story-sync/models"
)

const (
	FieldPosition     = "position"
	FieldContent      = "content"
	FieldLength       = "length"
	FieldDocumentID   = "document_id"
	FieldDocumentKind = "document_kind"
	FieldSelection    = "selection"
)

// CollaborationValidator validates realtime session input.
type CollaborationValidator struct{}

func NewCollaborationValidator() Validator {
	return &CollaborationValidator{}
}

func (v *CollaborationValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.TextOperation:
		return v.validateTextOperation(value, fields...)
	case *models.TextOperation:
		return v.validateTextOperation(*value, fields...)

	case models.JoinRequest:
		return v.validateJoinRequest(value, fields...)
	case *models.JoinRequest:
		return v.validateJoinRequest(*value, fields...)

	case models.CursorPosition:
		return v.validateCursor(value, fields...)
	case *models.CursorPosition:
		return v.validateCursor(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *CollaborationValidator) validateTextOperation(op models.TextOperation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldKind, FieldPosition, FieldContent, FieldLength, FieldBaseVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if op.ID == "" {
				return ErrInvalidOperationID
			}
		case FieldKind:
			switch op.Kind {
			case models.TextInsert, models.TextDelete, models.TextRetain:
			default:
				return fmt.Errorf("%w: %q", ErrInvalidKind, op.Kind)
			}
		case FieldPosition:
			if op.Position < 0 {
				return ErrInvalidPosition
			}
		case FieldContent:
			if op.Kind == models.TextInsert && op.Content == "" {
				return ErrEmptyContent
			}
		case FieldLength:
			if op.Kind == models.TextDelete && op.Length <= 0 {
				return ErrInvalidLength
			}
		case FieldBaseVersion:
			if op.BaseVersion < 0 {
				return ErrInvalidBaseVersion
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *CollaborationValidator) validateJoinRequest(req models.JoinRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProjectID, FieldDocumentID, FieldDocumentKind}
	}

	for _, f := range fields {
		switch f {
		case FieldProjectID:
			if req.ProjectID <= 0 {
				return ErrInvalidProjectID
			}
		case FieldDocumentID:
			if req.DocumentID == "" {
				return ErrInvalidDocumentID
			}
		case FieldDocumentKind:
			if !req.DocumentKind.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidDocumentKind, req.DocumentKind)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *CollaborationValidator) validateCursor(cursor models.CursorPosition, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPosition, FieldSelection}
	}

	for _, f := range fields {
		switch f {
		case FieldPosition:
			if cursor.Position < 0 {
				return ErrInvalidPosition
			}
		case FieldSelection:
			if cursor.SelectionStart < 0 || cursor.SelectionEnd < cursor.SelectionStart {
				return ErrInvalidSelection
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}
