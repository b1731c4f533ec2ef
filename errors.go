package goPortal

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken is an exported constant or variable used by the portal client.
	ErrNoToken = errors.New("no token to refresh")
	// ErrNotAuthenticated is an exported constant or variable used by the portal client.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired is an exported constant or variable used by the portal client.
	ErrSessionExpired = errors.New("session expired")
	// ErrClientNotReady is an exported constant or variable used by the portal client.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrRefreshFailed is an exported constant or variable used by the portal client.
	ErrRefreshFailed = errors.New("token refresh failed")
	// ErrRetryNotPossible is an exported constant or variable used by the portal client.
	ErrRetryNotPossible = errors.New("request body cannot be replayed")
	// ErrInvalidResponse is an exported constant or variable used by the portal client.
	ErrInvalidResponse = errors.New("invalid backend response")
)

// APIError is a backend rejection decoded from an error response body. Login and
// registration failures reach the caller as *APIError with the server's message
// untouched.
type APIError struct {
	Status  int
	Message string
	Path    string
}

// Error describes the error operation and its observable behavior.
//
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d on %s", e.Status, e.Path)
	}
	return fmt.Sprintf("api error: status %d on %s: %s", e.Status, e.Path, e.Message)
}

// IsStatus describes the isstatus operation and its observable behavior.
//
// IsStatus does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}
	return false
}
