package timebase

import (
	"time"
)

// A MonotonicClock provides readings that are unaffected by steps of the
// system wall clock. Now values are only meaningful relative to each other.
type MonotonicClock interface {
	Now() time.Time
	Sleep(duration time.Duration)
}
