package platform

import (
	"context"
	"time"
)

// Sleep pauses for d or until ctx is done, whichever happens first.
// It returns context error if ctx was done before d elapsed.
func Sleep(ctx context.Context, d time.Duration) error {
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
