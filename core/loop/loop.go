// Package loop drives one control cycle: wait for the next tick, read the
// latest sensor sample, evaluate the control law, apply the actuator output.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.uber.org/zap"

	"example.com/rt-loop/base/metrics"
	"example.com/rt-loop/base/timebase"
	"example.com/rt-loop/base/timemath"

	"example.com/rt-loop/core/pacer"
	"example.com/rt-loop/core/pid"
	"example.com/rt-loop/core/state"
)

// An Actuator receives the control output at the end of each cycle.
type Actuator interface {
	Apply(output float64) error
}

// A Sensor produces measurements of the controlled process. Sample is called
// from the sampling goroutine, never from the loop thread.
type Sensor interface {
	Sample() (float64, error)
}

var (
	promOnce          sync.Once
	promCycles        prometheus.Counter
	promMisses        prometheus.Counter
	promSkipped       prometheus.Counter
	promAvgLatency    prometheus.Gauge
	promControlOutput prometheus.Gauge
	promMeasured      prometheus.Gauge
)

func initMetrics() {
	promOnce.Do(func() {
		promCycles = promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.LoopCyclesN,
			Help: metrics.LoopCyclesH,
		})
		promMisses = promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.LoopDeadlineMissesN,
			Help: metrics.LoopDeadlineMissesH,
		})
		promSkipped = promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.LoopSkippedCyclesN,
			Help: metrics.LoopSkippedCyclesH,
		})
		promAvgLatency = promauto.NewGauge(prometheus.GaugeOpts{
			Name: metrics.LoopAvgLatencyN,
			Help: metrics.LoopAvgLatencyH,
		})
		promControlOutput = promauto.NewGauge(prometheus.GaugeOpts{
			Name: metrics.LoopControlOutputN,
			Help: metrics.LoopControlOutputH,
		})
		promMeasured = promauto.NewGauge(prometheus.GaugeOpts{
			Name: metrics.LoopMeasuredValueN,
			Help: metrics.LoopMeasuredValueH,
		})
	})
}

// A Loop composes the pacing, state exchange, and control law primitives.
// The caller owns all of them; the loop only drives the cycle.
type Loop struct {
	Log        *zap.Logger
	Clk        timebase.MonotonicClock
	Pacer      *pacer.Pacer
	Controller *pid.Controller
	Input      *state.Slot[float64]
	Actuator   Actuator
	Setpoint   float64

	// WarmupTimeout bounds the wait for the first sensor sample before the
	// paced loop starts. Zero means do not wait.
	WarmupTimeout time.Duration
}

func (l *Loop) warmup(ctx context.Context) error {
	if l.WarmupTimeout == 0 {
		return nil
	}
	deadline := l.Clk.Now().Add(l.WarmupTimeout)
	for !l.Input.IsValid() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.Clk.Now().Before(deadline) {
			return &ControlError{Op: "warmup", Err: ErrSensorDataUnavailable}
		}
		l.Clk.Sleep(l.Pacer.Period())
	}
	return nil
}

// Run drives the cycle until ctx is canceled. Deadline violations are logged
// and counted, never fatal; cycles without a sensor sample are skipped. A
// failing actuator ends the loop with a ControlError. Cancellation is
// observed between cycles only; a wait in progress runs to its boundary.
func (l *Loop) Run(ctx context.Context) error {
	initMetrics()

	if err := l.warmup(ctx); err != nil {
		return err
	}

	dt := timemath.Seconds(l.Pacer.Period())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := l.Pacer.WaitNextCycle()
		if err != nil {
			var v *pacer.ViolationError
			if !errors.As(err, &v) {
				return &ControlError{Op: "pace", Err: err}
			}
			promMisses.Inc()
			l.Log.Warn("deadline miss",
				zap.Duration("expected", v.Expected),
				zap.Duration("actual", v.Actual),
			)
		}
		promCycles.Inc()

		measured, _, ok := l.Input.Read()
		if !ok {
			promSkipped.Inc()
			l.Log.Debug("no sensor sample, skipping cycle")
			continue
		}

		output := l.Controller.Compute(l.Setpoint, measured, dt)
		if err := l.Actuator.Apply(output); err != nil {
			return &ControlError{Op: "apply", Err: err}
		}

		promMeasured.Set(measured)
		promControlOutput.Set(output)
		promAvgLatency.Set(timemath.Seconds(l.Pacer.Stats().AvgLatency))
	}
}

// RunSampler reads the sensor at the given frequency and publishes each
// sample to the slot, stamped with the clock's nanosecond reading. Sample
// errors are logged and the previous published value stays current. Intended
// to run on its own goroutine, the slot's one logical writer.
func RunSampler(ctx context.Context, log *zap.Logger, clk timebase.MonotonicClock,
	hz float64, sensor Sensor, slot *state.Slot[float64]) error {
	if hz <= 0 {
		panic("invalid sampler frequency")
	}
	period := timemath.Duration(1.0 / hz)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := sensor.Sample()
		if err != nil {
			log.Warn("sensor sample failed", zap.Error(err))
		} else {
			slot.Write(v, clk.Now().UnixNano())
		}
		clk.Sleep(period)
	}
}
