package config

import "errors"

// Validation error kinds. validate wraps them with the failing setting.
var (
	ErrInvalidAdapterConfigs       = errors.New("invalid adapter configuration")
	ErrInvalidStorageConfigs       = errors.New("invalid storage configuration")
	ErrInvalidAppConfigs           = errors.New("invalid app configuration")
	ErrInvalidWorkerConfigs        = errors.New("invalid worker configuration")
	ErrInvalidServerConfigs        = errors.New("invalid server configuration")
	ErrInvalidCollaborationConfigs = errors.New("invalid collaboration configuration")
)
