package forge

import (
	"errors"
	"fmt"
	"net/http"
)

// Forge errors. APIError unwraps to one of these.
var (
	ErrRepositoryExists = errors.New("repository already exists or name is invalid")
	ErrAuthentication   = errors.New("authentication failed")
	ErrRequestFailed    = errors.New("request failed")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrUnsupportedForge = errors.New("unsupported forge")
	ErrInvalidRemoteURL = errors.New("invalid remote URL")
)

// APIError represents a non-success response from a hosting platform.
type APIError struct {
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int

	// Message is the remote error message, if any.
	Message string

	// Kind is the sentinel describing the failure class.
	Kind error

	// RateLimited is set when the platform reported an exhausted rate limit.
	RateLimited bool
}

// Error returns the error message
func (e *APIError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%v (status %d): %s", e.Kind, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%v (status %d)", e.Kind, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	default:
		return fmt.Sprint(e.Kind)
	}
}

// Unwrap returns the failure class.
func (e *APIError) Unwrap() error {
	return e.Kind
}

// NewAPIError builds an APIError, picking Kind from status for repository
// creation semantics: 422 means the repository exists, 401 means the token
// was rejected, any other status is a generic request failure.
func NewAPIError(statusCode int, message string) *APIError {
	kind := ErrRequestFailed
	switch statusCode {
	case http.StatusUnprocessableEntity:
		kind = ErrRepositoryExists
	case http.StatusUnauthorized:
		kind = ErrAuthentication
	}
	return &APIError{StatusCode: statusCode, Message: message, Kind: kind}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// RemoteMessage returns the remote message carried by err, or "".
func RemoteMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsRateLimitError returns true if the error is a rate limit error
func IsRateLimitError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests ||
		(apiErr.StatusCode == http.StatusForbidden && apiErr.RateLimited)
}

// IsAuthenticationError returns true if the error is an authentication error
func IsAuthenticationError(err error) bool {
	if IsRateLimitError(err) {
		return false
	}
	return errors.Is(err, ErrAuthentication)
}

// IsRepositoryExistsError returns true if repository creation was rejected
// because the name is taken or invalid.
func IsRepositoryExistsError(err error) bool {
	return errors.Is(err, ErrRepositoryExists)
}
