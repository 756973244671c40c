package handler

import (
	"errors"

	"github.com/forgo/smartwords/internal/model"
	"github.com/forgo/smartwords/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Every set handler goes through it, so statuses stay consistent across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var verr *model.ValidationError
	switch {
	// ===== Corrupt stored data → 500 =====
	// Checked first: it also wraps ValidationErrors, but the caller did
	// nothing wrong.
	case errors.Is(err, service.ErrCorruptSet):
		return model.NewInternalError("a stored set is invalid")

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrSetNotFound):
		return model.NewNotFoundError("set")

	// ===== Validation Errors → 422 =====
	case errors.As(err, &verr):
		return model.NewValidationError(model.FieldErrors(err))

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": " + pd.Detail
	}
	return pd
}
