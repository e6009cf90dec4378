package forecast

import (
	"errors"
	"fmt"
)

// ErrForecastUnavailable is the user-facing error for any failed forecast request
var ErrForecastUnavailable = errors.New("Could not generate surf forecast. Please try a different location.")

// APIError represents an error returned by the forecast backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// ValidationError represents an invalid request or response field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NetworkError represents a transport failure while talking to the backend
type NetworkError struct {
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// unavailable keeps the cause reachable through errors.As while presenting
// ErrForecastUnavailable to the user
type unavailable struct {
	cause error
}

func (e *unavailable) Error() string {
	return ErrForecastUnavailable.Error()
}

func (e *unavailable) Is(target error) bool {
	return target == ErrForecastUnavailable
}

func (e *unavailable) Unwrap() error {
	return e.cause
}

func wrapUnavailable(cause error) error {
	if cause == nil {
		return nil
	}
	return &unavailable{cause: cause}
}
