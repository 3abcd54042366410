package application

import "time"

const (
	// DefaultPaceDelay separates consecutive remote actions within one
	// account's operation so the platform's rate limiter is never provoked.
	DefaultPaceDelay = 10 * time.Second

	// DefaultRetryDelay is how long verification backs off after the
	// platform reports a rate limit.
	DefaultRetryDelay = 90 * time.Second

	// DefaultMaxRetries bounds the verification retry loop.
	DefaultMaxRetries = 5

	// DefaultReadyTimeout bounds the wait for a session to become ready.
	DefaultReadyTimeout = time.Minute
)

// Config carries the operation knobs. The zero value is usable; missing
// fields fall back to the defaults above.
type Config struct {
	PaceDelay    time.Duration
	RetryDelay   time.Duration
	MaxRetries   int
	ReadyTimeout time.Duration

	// MaxConcurrent caps the number of accounts operated on at once.
	// Zero means no cap.
	MaxConcurrent int

	// FailFast makes a batch cancel its remaining accounts on the first
	// fatal per-account failure. The default is to run every account to
	// completion and report failures per account.
	FailFast bool
}

func (c Config) withDefaults() Config {
	if c.PaceDelay <= 0 {
		c.PaceDelay = DefaultPaceDelay
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.ReadyTimeout <= 0 {
		c.ReadyTimeout = DefaultReadyTimeout
	}

	return c
}
