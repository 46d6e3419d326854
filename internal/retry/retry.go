package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy describes how a failing call is retried. A zero Multiplier means a
// constant delay; tests inject {MaxAttempts: n, Delay: 0} for instant runs.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Multiplier  float64 // exponential backoff factor, e.g. 2.0
}

// Do runs fn until it succeeds, the attempts are exhausted, or ctx is
// cancelled. The delay before attempt n is Delay * Multiplier^(n-1).
func Do(ctx context.Context, policy Policy, fn func() error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := policy.Delay
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err

			if attempt == attempts {
				return fmt.Errorf("failed after %d attempts: %w", attempts, err)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}

			if policy.Multiplier > 1 {
				delay = time.Duration(float64(delay) * policy.Multiplier)
			}
			continue
		}
		return nil
	}

	return lastErr
}
