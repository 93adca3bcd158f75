package util

import (
	"context"
	"math/rand/v2"
	"time"
)

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Between picks a uniformly random duration in [min, max].
func Between(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + rand.N(max-min+1)
}

// SleepBetween sleeps for a random duration in [min, max].
func SleepBetween(ctx context.Context, min, max time.Duration) error {
	return Sleep(ctx, Between(min, max))
}
