package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared across services. Handlers translate these to
// HTTP status codes; the reason string is returned to the client
// verbatim in the response body.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	ErrTitleRequired = errors.New("title is required")
	ErrEmptyContent  = errors.New("content is empty")
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a field-scoped validation error.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ParseError reports a stored document that cannot be decoded.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse document: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnknownNodeTypeError reports a node type tag that is not in the
// registry. Decoding fails hard rather than dropping the node.
type UnknownNodeTypeError struct {
	Type string
}

func (e *UnknownNodeTypeError) Error() string {
	return fmt.Sprintf("unknown node type %q", e.Type)
}

// UpstreamError reports a collaborator failure (email, upload).
type UpstreamError struct {
	Upstream string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream failed: %v", e.Upstream, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// HTTPStatus maps a service error onto the HTTP status the REST layer
// should respond with.
func HTTPStatus(err error) int {
	var ve *ValidationError
	var pe *ParseError
	var ue *UnknownNodeTypeError
	var up *UpstreamError

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrEmptyContent):
		return http.StatusBadRequest
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &pe), errors.As(err, &ue):
		// Stored document failed to load; surfaced, not auto-repaired.
		return http.StatusUnprocessableEntity
	case errors.As(err, &up):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
