package benchmark

import (
	"log"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"example.com/rt-loop/base/timebase"
	"example.com/rt-loop/core/pacer"
)

// RunPacerBenchmark drives the pacer for the given number of cycles and
// prints a latency percentile distribution plus the pacer's own statistics.
// It occupies the calling thread; pin it to a core first for representative
// numbers.
func RunPacerBenchmark(hz float64, numCycles int, clk timebase.MonotonicClock) {
	p := pacer.NewPacer(hz, clk)
	hg := hdrhistogram.New(1, 10_000_000, 5)

	t0 := time.Now()
	for i := numCycles; i > 0; i-- {
		cycleStart := clk.Now()
		err := p.WaitNextCycle()
		if err != nil {
			log.Printf("Deadline violation: %v", err)
		}
		latency := clk.Now().Sub(cycleStart)

		err = hg.RecordValue(latency.Microseconds())
		if err != nil {
			log.Printf("Failed to record histogram value: %v", err)
			return
		}
	}
	hg.PercentilesPrint(os.Stdout, 1, 1.0)

	s := p.Stats()
	log.Printf("cycles: %d, misses: %d, min: %v, avg: %v, max: %v, elapsed: %v",
		s.Cycles, s.DeadlineMisses, s.MinLatency, s.AvgLatency, s.MaxLatency,
		time.Since(t0))
}
