package uidriver

import (
	"context"
	"fmt"
	"time"
)

// Poll calls check until it reports true, returns an error, or timeout
// elapses. check runs once immediately and then every interval; the last
// call happens at the deadline. A timeout yields an error wrapping
// ErrWaitTimeout, a cancelled ctx yields ctx.Err().
func Poll(ctx context.Context, interval, timeout time.Duration, check func() (bool, error)) error {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	deadline := time.Now().Add(timeout)

	for {
		done, err := check()
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%w after %v", ErrWaitTimeout, timeout)
		}

		wait := interval
		if remaining < wait {
			wait = remaining
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
