package input

import "time"

// Forever is the timeout value meaning "wait until something happens".
const Forever time.Duration = -1

// Timeout tracks a deadline shared by nested waits. Leftover is computed
// from the clock on every call, so repeated waits do not drift.
type Timeout struct {
	deadline time.Time
	bounded  bool
	now      func() time.Time
}

// NewTimeout starts a timeout of d. A negative d never expires.
func NewTimeout(d time.Duration) Timeout {
	return newTimeout(d, time.Now)
}

func newTimeout(d time.Duration, now func() time.Time) Timeout {
	if d < 0 {
		return Timeout{now: now}
	}
	return Timeout{
		deadline: now().Add(d),
		bounded:  true,
		now:      now,
	}
}

// Bounded returns false for a timeout that never expires.
func (t Timeout) Bounded() bool {
	return t.bounded
}

// Leftover returns the time left before the deadline, never negative.
// Unbounded timeouts return Forever.
func (t Timeout) Leftover() time.Duration {
	if !t.bounded {
		return Forever
	}
	left := t.deadline.Sub(t.now())
	if left < 0 {
		return 0
	}
	return left
}

// Elapsed returns true once the deadline has passed.
func (t Timeout) Elapsed() bool {
	return t.bounded && t.Leftover() == 0
}
