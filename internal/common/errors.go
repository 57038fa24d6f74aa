// Package common defines shared constants and sentinel errors used across
// the storage, registry and service layers of AcadMate. Callers should use
// errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Input shape errors.
	ErrValidation = errors.New("validation error")

	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Name/key collisions.
	ErrDuplicate = errors.New("duplicate")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Storage errors.
	ErrStorageQuotaExceeded = errors.New("storage quota exceeded")

	// External collaborator errors (chat client, PDF renderer, object storage).
	ErrExternalServiceUnavailable = errors.New("external service unavailable")
	ErrExternalOperationFailed    = errors.New("external operation failed")
)

var (
	ErrInvalidEmail     = fmt.Errorf("%w: please enter a valid email address", ErrValidation)
	ErrWeakPassword     = fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, MinPasswordLength)
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrNotPDF           = fmt.Errorf("%w: only PDF files are accepted", ErrValidation)

	ErrAlreadyExists   = fmt.Errorf("%w: an account with this email already exists", ErrDuplicate)
	ErrDuplicateFolder = fmt.Errorf("%w: folder already exists", ErrDuplicate)
	ErrDuplicateFile   = fmt.Errorf("%w: file already exists in folder", ErrDuplicate)

	ErrFolderNotFound = fmt.Errorf("%w: folder", ErrNotFound)
)
