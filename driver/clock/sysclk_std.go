//go:build !linux

package clock

import (
	"time"

	"go.uber.org/zap"

	"example.com/rt-loop/base/timebase"
)

// SystemClock falls back to the Go runtime clock. time.Time values carry a
// monotonic reading, so arithmetic on them is step-free.
type SystemClock struct {
	Log *zap.Logger
}

var _ timebase.MonotonicClock = (*SystemClock)(nil)

func (c *SystemClock) Now() time.Time {
	return time.Now()
}

func (c *SystemClock) Sleep(duration time.Duration) {
	if duration < 0 {
		panic("invalid sleep duration")
	}
	time.Sleep(duration)
}
