package pacer

import (
	"math"
	"testing"
	"time"
)

func TestStatsEmpty(t *testing.T) {
	s := newStats()
	if s.MinLatency != math.MaxInt64 {
		t.Errorf("MinLatency = %v, want max sentinel", s.MinLatency)
	}
	if s.MaxLatency != 0 || s.AvgLatency != 0 || s.Cycles != 0 || s.DeadlineMisses != 0 {
		t.Errorf("empty stats not zeroed: %+v", s)
	}
}

func TestStatsScenario(t *testing.T) {
	s := newStats()
	s.update(100, 1000)
	s.update(2000, 1000)
	if s.Cycles != 2 {
		t.Errorf("Cycles = %d, want 2", s.Cycles)
	}
	if s.DeadlineMisses != 1 {
		t.Errorf("DeadlineMisses = %d, want 1", s.DeadlineMisses)
	}
	if s.MinLatency != 100 {
		t.Errorf("MinLatency = %v, want 100", s.MinLatency)
	}
	if s.MaxLatency != 2000 {
		t.Errorf("MaxLatency = %v, want 2000", s.MaxLatency)
	}
	if s.AvgLatency != 1050 {
		t.Errorf("AvgLatency = %v, want 1050", s.AvgLatency)
	}
}

func TestStatsInvariants(t *testing.T) {
	latencies := []time.Duration{500, 100, 900, 300, 1200, 1, 700}
	deadline := time.Duration(800)

	s := newStats()
	misses := uint64(0)
	for i, l := range latencies {
		s.update(l, deadline)
		if l > deadline {
			misses++
		}
		if s.Cycles != uint64(i+1) {
			t.Fatalf("Cycles = %d after %d updates", s.Cycles, i+1)
		}
		if s.DeadlineMisses != misses {
			t.Fatalf("DeadlineMisses = %d after %d updates, want %d",
				s.DeadlineMisses, i+1, misses)
		}
		if s.MinLatency > s.AvgLatency || s.AvgLatency > s.MaxLatency {
			t.Fatalf("min %v <= avg %v <= max %v violated after %d updates",
				s.MinLatency, s.AvgLatency, s.MaxLatency, i+1)
		}
		if s.DeadlineMisses > s.Cycles {
			t.Fatalf("DeadlineMisses %d > Cycles %d", s.DeadlineMisses, s.Cycles)
		}
	}
}

func TestStatsAvgTruncation(t *testing.T) {
	// (0*0 + 1) / 1 = 1, then (1*1 + 2) / 2 = 1 in integer arithmetic.
	s := newStats()
	s.update(1, 10)
	s.update(2, 10)
	if s.AvgLatency != 1 {
		t.Errorf("AvgLatency = %v, want 1 (truncated)", s.AvgLatency)
	}
}
