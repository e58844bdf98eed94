package tmdb

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrUnauthorized indicates the API key was rejected
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
)

// Status classes reported by NetworkError
const (
	ClassTransport = "transport"
	ClassClient    = "4xx"
	ClassServer    = "5xx"
)

// NetworkError reports a request that failed in transit or came back
// with an unexpected HTTP status
type NetworkError struct {
	StatusCode int // 0 when the request never produced a response
	Status     string
	Err        error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("tmdb request failed: %v", e.Err)
	}
	return fmt.Sprintf("tmdb request failed: status %d: %s", e.StatusCode, e.Status)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Class returns transport, 4xx or 5xx
func (e *NetworkError) Class() string {
	switch {
	case e.StatusCode >= 500:
		return ClassServer
	case e.StatusCode >= 400:
		return ClassClient
	default:
		return ClassTransport
	}
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *NetworkError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// NotFoundError reports a well-formed request for content that does not exist
type NotFoundError struct {
	Kind MediaKind
	ID   string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if !e.Kind.Valid() {
		return fmt.Sprintf("tmdb: no such media kind %q", string(e.Kind))
	}
	return fmt.Sprintf("tmdb: %s %q not found", e.Kind, e.ID)
}

// MalformedResponseError reports a response body that could not be decoded
type MalformedResponseError struct {
	Reason string
	Err    error
}

// Error implements the error interface
func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tmdb: malformed response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("tmdb: malformed response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
