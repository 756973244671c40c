package service

import "errors"

// Centralized service layer errors.
// Handlers map them to HTTP statuses in handler.MapServiceError.

// ===== Set Errors =====
var (
	ErrSetNotFound = errors.New("set not found")
	// ErrCorruptSet wraps the validation error of a stored document that no
	// longer satisfies the set invariants.
	ErrCorruptSet = errors.New("stored set is invalid")
)
