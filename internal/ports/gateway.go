package ports

import (
	"context"

	"chatpool/internal/domain"
)

// SessionGateway constructs sessions against the chat platform. The
// returned session is unauthenticated; the application layer owns the
// login/connect/ready/close lifecycle.
type SessionGateway interface {
	NewSession(account domain.Account) Session
}

// Session is one live connection for one account, valid for exactly one
// operation invocation. A session must never be shared across concurrent
// operations for the same account.
//
// Identity, Guilds and Users are only valid once WaitUntilReady has
// returned. Close is idempotent.
type Session interface {
	// Login authenticates with the account token. Fails with
	// domain.ErrAuthenticationFailed when the platform rejects it.
	Login(ctx context.Context, token string) error

	// Connect runs the session's background connection processing. It
	// blocks until ctx is cancelled or the session is closed, and is meant
	// to run in its own goroutine for the session's lifetime.
	Connect(ctx context.Context) error

	// WaitUntilReady blocks until identity and initial state are populated.
	WaitUntilReady(ctx context.Context) error

	Close() error
	Closed() bool

	// Identity reports the authenticated user. Valid after ready.
	Identity() domain.UserRef

	// Guilds enumerates the communities the account has joined.
	Guilds(ctx context.Context) ([]Guild, error)

	// Users enumerates the users known to the session, including the
	// account's own identity.
	Users(ctx context.Context) ([]User, error)

	// FetchProfile performs the rate-limited self-lookup used for
	// verification. Fails with domain.ErrForbidden, domain.ErrRateLimited,
	// a *domain.HTTPError, or an unclassified error.
	FetchProfile(ctx context.Context, userID string) (domain.Profile, error)
}

// Guild is a session-bound community target. Leave fails with the same
// taxonomy as FetchProfile.
type Guild interface {
	ID() string
	Name() string
	Leave(ctx context.Context) error
}

// User is a session-bound user relation target.
type User interface {
	Ref() domain.UserRef
	Blocked() bool
	Unblock(ctx context.Context) error
}
