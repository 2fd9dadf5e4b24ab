package stream

import "time"

// maxBackoff caps the delay between reconnection attempts.
const maxBackoff = 30 * time.Second

// backoffDelay returns the wait before reconnect attempt n (1-based):
// base doubled per attempt, capped at maxBackoff. Attempt 1 waits base.
func backoffDelay(attempt int, base time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if base <= 0 {
		base = 5 * time.Second
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
