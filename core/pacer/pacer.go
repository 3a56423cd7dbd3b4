// Package pacer provides drift-compensated pacing for a cyclic control loop,
// with deadline-violation detection and per-cycle latency statistics.
package pacer

import (
	"sync"
	"time"

	"example.com/rt-loop/base/timebase"
	"example.com/rt-loop/base/timemath"
)

// A Pacer blocks the loop thread until the next cycle boundary. Boundaries
// lie on an absolute grid anchored at the start reference taken from the
// clock at construction; waiting always targets a grid point rather than
// "now plus period", so rounding errors do not accumulate across cycles.
//
// A Pacer owns one statistics stream and is driven by one loop thread;
// Stats may be read from other goroutines.
type Pacer struct {
	clk      timebase.MonotonicClock
	period   time.Duration
	startRef time.Time
	wait     WaitStrategy

	mu    sync.Mutex
	stats Stats
}

// NewPacer returns a pacer with a period of 1/hz seconds, anchored at the
// clock's current reading. The wait strategy defaults to SpinWait.
func NewPacer(hz float64, clk timebase.MonotonicClock) *Pacer {
	if hz <= 0 {
		panic("invalid pacer frequency")
	}
	if clk == nil {
		panic("pacer clock must not be nil")
	}
	period := timemath.Duration(1.0 / hz)
	if period <= 0 {
		panic("invalid pacer period")
	}
	return &Pacer{
		clk:      clk,
		period:   period,
		startRef: clk.Now(),
		wait:     SpinWait{},
		stats:    newStats(),
	}
}

// SetWaitStrategy replaces the wait strategy. Call it before the loop
// starts; it is not synchronized with WaitNextCycle.
func (p *Pacer) SetWaitStrategy(w WaitStrategy) {
	if w == nil {
		panic("wait strategy must not be nil")
	}
	p.wait = w
}

// Period returns the fixed cycle period.
func (p *Pacer) Period() time.Duration {
	return p.period
}

// WaitNextCycle blocks until the next grid point and records the observed
// latency. It returns a *ViolationError if the just-completed wait overran
// the period; the statistics are updated before the error is returned, so a
// miss is never hidden. There is no cancellation inside the wait; it is
// bounded by one period.
func (p *Pacer) WaitNextCycle() error {
	cycleStart := p.clk.Now()
	elapsed := cycleStart.Sub(p.startRef)
	remainder := elapsed % p.period
	target := cycleStart.Add(p.period - remainder)

	p.wait.WaitUntil(p.clk, target)

	actualDelay := p.clk.Now().Sub(cycleStart)
	latency, deadline := actualDelay, p.period

	p.mu.Lock()
	p.stats.update(latency, deadline)
	p.mu.Unlock()

	if latency > deadline {
		return &ViolationError{Expected: deadline, Actual: latency}
	}
	return nil
}

// Stats returns a snapshot of the accumulated statistics. The snapshot is a
// copy and is immune to subsequent updates.
func (p *Pacer) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
