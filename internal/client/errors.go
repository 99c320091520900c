package client

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Every error returned by SearchClient
// matches exactly one of them with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrConnection     = errors.New("connection error")
	ErrAuthentication = errors.New("authentication error")
	ErrAPI            = errors.New("api error")

	// ErrMalformedResponse is wrapped by APIError when the body is not a valid payload.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is returned for non-success statuses and unparseable bodies.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API Error (Status %d): %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("API Error (Status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is makes every APIError match ErrAPI.
func (e *APIError) Is(target error) bool { return target == ErrAPI }

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// KindOf returns "validation", "authentication", "connection", "api" or "internal".
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrAuthentication):
		return "authentication"
	case errors.Is(err, ErrConnection):
		return "connection"
	case errors.Is(err, ErrAPI):
		return "api"
	default:
		return "internal"
	}
}
