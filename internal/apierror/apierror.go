// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "errors"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries the ordered list of field-rule violations produced
// by the validation module. Callers only construct this when at least one
// rule failed, so the list is never empty on the wire.
type ValidationError struct {
	Detail     string   `json:"detail"`
	Violations []string `json:"violations"`
}

func NewValidation(violations []string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Violations: violations}
}

func (e *ValidationError) Error() string { return e.Detail }

// ── Domain error taxonomy ────────────────────────────────────────────────────
// Services return these typed errors; handlers map them to status codes.
// Purge failures are deliberately absent from the taxonomy: they are logged
// per reference, never returned as a save failure.

var (
	// ErrNotFound — referenced record id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate — uniqueness constraint violated at creation.
	ErrDuplicate = errors.New("duplicate record")

	// ErrUpload — the media host rejected or failed an upload. Aborts the
	// save sequence before persistence; edits stay with the caller.
	ErrUpload = errors.New("media upload failed")

	// ErrTransport — generic backend/network failure, surfaced as-is.
	ErrTransport = errors.New("backend unavailable")
)
