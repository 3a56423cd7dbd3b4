package pacer

import (
	"math"
	"time"
)

// Stats accumulates per-cycle latency observations. The zero value has no
// data: MinLatency carries the max representable sentinel until the first
// update.
type Stats struct {
	MinLatency     time.Duration
	MaxLatency     time.Duration
	AvgLatency     time.Duration
	Cycles         uint64
	DeadlineMisses uint64
}

func newStats() Stats {
	return Stats{MinLatency: math.MaxInt64}
}

// update folds one latency observation into the running aggregates. The
// average is the exact running mean in integer nanoseconds,
// avg' = (avg*n + latency) / (n+1); the division truncates toward zero, and
// that truncation is part of the contract so runs are reproducible.
func (s *Stats) update(latency, deadline time.Duration) {
	if latency < s.MinLatency {
		s.MinLatency = latency
	}
	if latency > s.MaxLatency {
		s.MaxLatency = latency
	}
	n := time.Duration(s.Cycles)
	s.AvgLatency = (s.AvgLatency*n + latency) / (n + 1)
	s.Cycles++
	if latency > deadline {
		s.DeadlineMisses++
	}
}
