// Package server provides the HTTP API of the resume editor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/export"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/schemas"
)

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrSessionNotFound indicates the token refers to an ended or expired session
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return "session not found or expired"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrDirectoryUnavailable wraps a failure of the user directory backend.
type ErrDirectoryUnavailable struct {
	Err error
}

func (e *ErrDirectoryUnavailable) Error() string {
	return "user directory unavailable"
}

func (e *ErrDirectoryUnavailable) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalidCreds *ErrInvalidCredentials
		noSession    *ErrSessionNotFound
		validation   *ErrValidation
		directory    *ErrDirectoryUnavailable
		schemaErr    *schemas.ValidationError
		renderErr    *rendering.RenderError
	)
	switch {
	case errors.As(err, &invalidCreds), errors.As(err, &noSession):
		return http.StatusUnauthorized
	case errors.As(err, &validation), errors.As(err, &renderErr):
		return http.StatusBadRequest
	case errors.As(err, &directory):
		return http.StatusBadGateway
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, editing.ErrContentMismatch), errors.Is(err, editing.ErrInvalidDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, editing.ErrUnknownSectionType),
		errors.Is(err, editing.ErrUnknownField),
		errors.Is(err, editing.ErrInvalidDirection),
		errors.Is(err, export.ErrEmptyPage):
		return http.StatusBadRequest
	case errors.Is(err, export.ErrExportFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
