package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrSecretNotFound  = errors.New("secret not found")

	// ErrAuthenticationFailed means the platform rejected the account's
	// token during login. Fatal for the account, never retried.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrForbidden is the platform's permission-denied signal. During
	// verification it resolves to a negative result rather than an error.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited marks a request the platform asked us to retry later.
	ErrRateLimited = errors.New("rate limited")

	// ErrReadyTimeout means a session never reached the ready state within
	// the configured window.
	ErrReadyTimeout = errors.New("session ready wait timed out")

	// ErrRetriesExhausted wraps the last transient failure once the bounded
	// retry budget for an operation is spent.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// HTTPError carries a non-2xx platform response that is not one of the
// dedicated sentinels above. The classifier treats it as transient, the
// same way the platform's generic HTTP failures are treated.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("platform returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("platform returned status %d: %s", e.StatusCode, e.Body)
}
