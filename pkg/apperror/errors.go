package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrBadRequest           = errors.New("bad request")
	ErrInternal             = errors.New("internal server error")
	ErrInvalidInput         = errors.New("invalid input")
	ErrConflict             = errors.New("conflict")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrDuplicateSubmission  = errors.New("duplicate submission in progress")
	ErrHistoricalMode       = errors.New("read-only: a past academic year is selected")
	ErrUpstream             = errors.New("backend unavailable")
)

// AppError is a custom error type that can hold an HTTP status code and,
// for validation failures, the offending fields.
type AppError struct {
	Code    int
	Message string
	Err     error
	Fields  map[string]string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation wraps a field-keyed error map as an invalid input error.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "validation failed",
		Err:     ErrInvalidInput,
		Fields:  fields,
	}
}

// FieldsOf returns the field errors carried by err, if any.
func FieldsOf(err error) (map[string]string, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		return appErr.Fields, true
	}
	return nil, false
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) || errors.Is(err, ErrHistoricalMode) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrConfirmationRequired) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrDuplicateSubmission) {
		return http.StatusTooManyRequests
	}
	if errors.Is(err, ErrUpstream) {
		return http.StatusBadGateway
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
