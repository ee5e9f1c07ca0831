package messaging

import "time"

// RetryPolicy bounds reconnect attempts on a dropped subscription. Delays
// grow exponentially from BaseDelay up to the MaxDelay ceiling; once
// MaxAttempts consecutive failures occur the subscriber gives up.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Delay returns the wait before retry number attempt (zero-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// Exhausted reports whether the attempt counter has run out of budget.
func (p RetryPolicy) Exhausted(attempt int) bool {
	return attempt >= p.MaxAttempts
}
