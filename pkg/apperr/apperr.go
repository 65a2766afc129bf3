// Package apperr defines the application error taxonomy with HTTP status
// mapping. Handlers branch on the sentinels; the structured AppError carries
// the client-facing code and message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("validation failed")
	ErrNoChannelSelected = errors.New("no channel selected")
	ErrGeneration        = errors.New("description generation failed")
	ErrAnalysis          = errors.New("price analysis failed")
	ErrAnalysisInFlight  = errors.New("analysis already in flight")
	ErrInternal          = errors.New("internal error")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %q not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// AlreadyExists creates a 409 error.
func AlreadyExists(resource, id string) *AppError {
	return &AppError{
		Code:    "ALREADY_EXISTS",
		Message: fmt.Sprintf("%s %q already exists", resource, id),
		Status:  http.StatusConflict,
		Err:     ErrAlreadyExists,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Validation creates a 400 error for a failed domain precondition.
func Validation(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrValidation,
	}
}

// NoChannelSelected creates a 422 error for a confirm with nothing chosen.
func NoChannelSelected() *AppError {
	return &AppError{
		Code:    "NO_CHANNEL_SELECTED",
		Message: "select at least one channel before confirming",
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrNoChannelSelected,
	}
}

// Generation creates a 502 error wrapping a description generation failure.
func Generation(err error) *AppError {
	return &AppError{
		Code:    "GENERATION_FAILED",
		Message: "description generation failed",
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%w: %w", ErrGeneration, err),
	}
}

// Analysis creates a 502 error wrapping a price analysis failure.
func Analysis(err error) *AppError {
	return &AppError{
		Code:    "ANALYSIS_FAILED",
		Message: "price analysis failed",
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%w: %w", ErrAnalysis, err),
	}
}

// AnalysisInFlight creates a 409 error for a re-entrant enrichment trigger.
func AnalysisInFlight() *AppError {
	return &AppError{
		Code:    "ANALYSIS_IN_FLIGHT",
		Message: "an analysis is already running for this draft",
		Status:  http.StatusConflict,
		Err:     ErrAnalysisInFlight,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     errors.Join(ErrInternal, err),
	}
}

// Wrap attaches context to an error while keeping its identity for
// errors.Is checks.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrAnalysisInFlight):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNoChannelSelected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrGeneration), errors.Is(err, ErrAnalysis):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
