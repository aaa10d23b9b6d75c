package validators

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-story-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldID           = "id"
	FieldKind         = "kind"
	FieldEntityType   = "entity_type"
	FieldEntityID     = "entity_id"
	FieldProjectID    = "project_id"
	FieldPriority     = "priority"
	FieldPayload      = "payload"
	FieldBaseVersion  = "base_version"
	FieldDependencies = "dependencies"
	FieldDeviceID     = "device_id"
	FieldUserID       = "user_id"
	FieldDevice       = "device"
	FieldOperations   = "operations"
)

// MaxBatchSize bounds the number of operations a single push may carry.
const MaxBatchSize = 100

// SyncValidator validates the sync engine models: queued operations, enqueue
// requests and push batches.
//
// It supports both value and pointer receivers for every model type and
// allows optional field-level scoping via variadic field name arguments.
type SyncValidator struct{}

func NewSyncValidator() Validator {
	return &SyncValidator{}
}

func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncOperation:
		return v.validateOperation(ctx, value, fields...)
	case *models.SyncOperation:
		return v.validateOperation(ctx, *value, fields...)

	case models.EnqueueRequest:
		return v.validateEnqueueRequest(ctx, value, fields...)
	case *models.EnqueueRequest:
		return v.validateEnqueueRequest(ctx, *value, fields...)

	case models.PushRequest:
		return v.validatePushRequest(ctx, value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncValidator) validateOperation(_ context.Context, op models.SyncOperation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{
			FieldID, FieldKind, FieldEntityType, FieldEntityID, FieldProjectID,
			FieldPriority, FieldPayload, FieldBaseVersion, FieldDependencies, FieldDeviceID,
		}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if op.ID == "" {
				return ErrInvalidOperationID
			}
		case FieldKind:
			if !op.Kind.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidKind, op.Kind)
			}
		case FieldEntityType:
			if op.EntityType == "" {
				return ErrInvalidEntityType
			}
		case FieldEntityID:
			if op.EntityID == "" {
				return ErrInvalidEntityID
			}
		case FieldProjectID:
			if op.ProjectID <= 0 {
				return ErrInvalidProjectID
			}
		case FieldPriority:
			if !op.Priority.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidPriority, op.Priority)
			}
		case FieldPayload:
			if err := validatePayload(op.Kind, op.Payload); err != nil {
				return err
			}
		case FieldBaseVersion:
			if op.BaseVersion < 0 {
				return ErrInvalidBaseVersion
			}
		case FieldDependencies:
			if err := validateDependencies(op.ID, op.Dependencies); err != nil {
				return err
			}
		case FieldDeviceID:
			if op.DeviceID == "" {
				return ErrInvalidDeviceID
			}
		case FieldUserID:
			if op.UserID <= 0 {
				return ErrInvalidUserID
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *SyncValidator) validateEnqueueRequest(_ context.Context, req models.EnqueueRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKind, FieldEntityType, FieldEntityID, FieldProjectID, FieldPriority, FieldPayload, FieldDependencies}
	}

	for _, f := range fields {
		switch f {
		case FieldKind:
			if !req.Kind.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidKind, req.Kind)
			}
		case FieldEntityType:
			if req.EntityType == "" {
				return ErrInvalidEntityType
			}
		case FieldEntityID:
			if req.EntityID == "" {
				return ErrInvalidEntityID
			}
		case FieldProjectID:
			if req.ProjectID <= 0 {
				return ErrInvalidProjectID
			}
		case FieldPriority:
			// empty means the queue default
			if req.Priority != "" && !req.Priority.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidPriority, req.Priority)
			}
		case FieldPayload:
			if err := validatePayload(req.Kind, req.Payload); err != nil {
				return err
			}
		case FieldDependencies:
			if err := validateDependencies("", req.Dependencies); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *SyncValidator) validatePushRequest(ctx context.Context, req models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDevice, FieldOperations}
	}

	for _, f := range fields {
		switch f {
		case FieldDevice:
			if req.Device.ID == "" {
				return ErrInvalidDeviceID
			}
			if req.Device.ProtocolVersion != models.ProtocolVersion {
				return fmt.Errorf("%w: %d", ErrUnsupportedProtocol, req.Device.ProtocolVersion)
			}
		case FieldOperations:
			if len(req.Operations) == 0 {
				return ErrEmptyOperations
			}
			if len(req.Operations) > MaxBatchSize {
				return fmt.Errorf("%w: %d > %d", ErrTooManyOperations, len(req.Operations), MaxBatchSize)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// validatePayload requires a JSON object for create and update. A delete may
// carry no payload at all.
func validatePayload(kind models.OperationKind, payload json.RawMessage) error {
	if len(payload) == 0 {
		if kind == models.OperationDelete {
			return nil
		}
		return ErrInvalidPayload
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil || obj == nil {
		return ErrInvalidPayload
	}
	return nil
}

func validateDependencies(selfID string, deps []string) error {
	seen := make(map[string]struct{}, len(deps))
	for _, dep := range deps {
		if dep == "" {
			return fmt.Errorf("%w: empty id", ErrInvalidDependencies)
		}
		if selfID != "" && dep == selfID {
			return fmt.Errorf("%w: operation depends on itself", ErrInvalidDependencies)
		}
		if _, dup := seen[dep]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidDependencies, dep)
		}
		seen[dep] = struct{}{}
	}
	return nil
}
