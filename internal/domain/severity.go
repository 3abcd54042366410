package domain

import (
	"context"
	"errors"
)

// Severity drives what an operation does with a failed remote call:
// retry after a delay, record a negative outcome, or abort the account.
type Severity int

const (
	// SeverityNone means the call succeeded.
	SeverityNone Severity = iota

	// SeverityForbidden is non-retryable; the caller decides the fallback
	// (verification treats it as "not in good standing").
	SeverityForbidden

	// SeverityTransient is retryable with a fixed delay, or skippable when
	// the operation iterates over many targets.
	SeverityTransient

	// SeverityFatal propagates and aborts the account's remaining work.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityForbidden:
		return "forbidden"
	case SeverityTransient:
		return "transient"
	default:
		return "fatal"
	}
}

// Classify maps a remote-call failure onto a Severity. It is the single
// policy point for the whole codebase; call sites never inspect platform
// errors themselves.
func Classify(err error) Severity {
	if err == nil {
		return SeverityNone
	}

	// Cancellation is never something to retry or skip past, even when it
	// arrives wrapped in a rate-limit or HTTP error.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return SeverityFatal
	}

	if errors.Is(err, ErrForbidden) {
		return SeverityForbidden
	}

	var httpErr *HTTPError
	if errors.Is(err, ErrRateLimited) || errors.As(err, &httpErr) {
		return SeverityTransient
	}

	return SeverityFatal
}
