package server

import (
	"context"
	"time"
)

// Clock supplies wall-clock time and timer-based suspension to the handlers
type Clock interface {
	Now() time.Time
	// Sleep blocks the calling goroutine for d, returning early with the
	// context's error if ctx is done first.
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// SystemClock returns a Clock backed by the time package
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
