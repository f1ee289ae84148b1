package confluence

import (
	"fmt"
	"net/http"
)

// AuthError means the instance rejected our credentials (401) or the
// token lacks permission for the requested content (403).
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	if e.Status == http.StatusForbidden {
		return fmt.Sprintf("access denied (status %d): token lacks permission", e.Status)
	}
	return fmt.Sprintf("authentication failed (status %d): check your credentials", e.Status)
}

// NotFoundError means the requested page does not exist or is not
// visible to the authenticated user.
type NotFoundError struct {
	PageID string
}

func (e *NotFoundError) Error() string {
	if e.PageID == "" {
		return "resource not found (status 404)"
	}
	return fmt.Sprintf("page %s not found", e.PageID)
}

// APIError covers every other unexpected response from the instance,
// including responses whose body could not be decoded.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api error: %s", e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// ConnectionError means the request never produced an HTTP response:
// DNS failure, refused connection, TLS problem, timeout, or a cancelled
// context. These are never retried.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// statusError is the raw carrier for a non-2xx response inside the
// client. The retry loop inspects it for retryable statuses and the
// Retry-After header; mapError translates it into the public taxonomy
// before it leaves the package.
type statusError struct {
	status     int
	retryAfter string
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.status)
}
