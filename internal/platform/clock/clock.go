package clock

import "time"

// Clock abstracts time to keep drafts and demo data deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local time, since trip dates are calendar days as the
// user sees them.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
