package clock

import "time"

// Clock supplies the current instant. Eligibility rules never read the wall
// clock directly; they take a Clock (or a time.Time derived from one) so that
// deadline math is deterministic under test.
type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
