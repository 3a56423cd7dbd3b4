package pacer

import (
	"time"

	"example.com/rt-loop/base/timebase"
)

// A WaitStrategy blocks until the clock reaches target.
type WaitStrategy interface {
	WaitUntil(clk timebase.MonotonicClock, target time.Time)
}

// SpinWait polls the clock in a tight loop. It occupies the core for the
// whole wait but reaches the target with sub-scheduler resolution; use it
// only on a dedicated core.
type SpinWait struct{}

func (SpinWait) WaitUntil(clk timebase.MonotonicClock, target time.Time) {
	for clk.Now().Before(target) {
	}
}

// HybridWait sleeps until Margin before the target and spins the rest.
// It gives up worst-case precision equal to one scheduler wakeup in exchange
// for a mostly idle core.
type HybridWait struct {
	// Margin is the interval before the target at which sleeping stops and
	// spinning starts. A zero Margin defaults to the scheduler tick length.
	Margin time.Duration
}

func (w HybridWait) WaitUntil(clk timebase.MonotonicClock, target time.Time) {
	margin := w.Margin
	if margin == 0 {
		margin = schedTick()
	}
	if d := target.Sub(clk.Now()) - margin; d > 0 {
		clk.Sleep(d)
	}
	for clk.Now().Before(target) {
	}
}
