package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when input is missing or malformed before any write occurs.
	ErrValidation = errors.New("invalid input")
	// ErrUserExists is returned when the chosen username or email is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a referenced account does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrDoctorNotFound is returned when an account has no doctor record.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrMissingCredential is returned when booking is attempted without a calendar access token.
	ErrMissingCredential = errors.New("no access token found, please log in via Google")
	// ErrExternalAuth is returned when the authorization code exchange fails.
	ErrExternalAuth = errors.New("external authorization failed")
	// ErrCalendarSync is returned when the appointment was persisted but the calendar event was not.
	ErrCalendarSync = errors.New("appointment created but calendar sync failed")
	// ErrInvalidTimeRange is returned when end time precedes start time.
	ErrInvalidTimeRange = errors.New("end time must not precede start time")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped causes stay in the
// message so the client can tell a form fix from a degraded booking, but no
// internal stack detail is exposed.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidTimeRange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_EXISTS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrDoctorNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DOCTOR_NOT_FOUND")
	case errors.Is(err, ErrMissingCredential):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_CREDENTIAL")
	case errors.Is(err, ErrExternalAuth):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EXTERNAL_AUTH_FAILED")
	case errors.Is(err, ErrCalendarSync):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CALENDAR_SYNC_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
