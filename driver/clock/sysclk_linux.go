//go:build linux

package clock

import (
	"time"

	"go.uber.org/zap"

	"golang.org/x/sys/unix"

	"example.com/rt-loop/base/timebase"
)

// SystemClock reads CLOCK_MONOTONIC directly, bypassing the wall clock
// entirely. Readings are only meaningful relative to each other.
type SystemClock struct {
	Log *zap.Logger
}

var _ timebase.MonotonicClock = (*SystemClock)(nil)

func now(log *zap.Logger) time.Time {
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	if err != nil {
		log.Fatal("unix.ClockGettime failed", zap.Error(err))
	}
	return time.Unix(ts.Unix())
}

func (c *SystemClock) Now() time.Time {
	return now(c.Log)
}

func (c *SystemClock) Sleep(duration time.Duration) {
	if duration < 0 {
		panic("invalid sleep duration")
	}
	ts := unix.NsecToTimespec(duration.Nanoseconds())
	for {
		err := unix.ClockNanosleep(unix.CLOCK_MONOTONIC, 0, &ts, &ts)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			c.Log.Fatal("unix.ClockNanosleep failed", zap.Error(err))
		}
		return
	}
}
