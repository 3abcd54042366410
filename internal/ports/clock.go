package ports

import (
	"context"
	"time"
)

// Clock abstracts time for pacing and retry delays so tests never sleep.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is cancelled, returning the context
	// error in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type SystemClock struct{}

var _ Clock = SystemClock{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
