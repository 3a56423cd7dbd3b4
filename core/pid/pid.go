// Package pid implements a PID control law with output saturation and
// integral anti-windup.
package pid

import (
	"example.com/rt-loop/base/floats"
)

// A Controller computes a control output from a setpoint and a measured
// process value. Gains and the output limit are fixed at construction;
// Compute advances the integral and derivative state. A Controller is not
// safe for concurrent use; the driving loop owns it.
type Controller struct {
	kp, ki, kd  float64
	outputLimit float64
	integral    float64
	prevErr     float64
}

func NewController(kp, ki, kd, outputLimit float64) *Controller {
	if outputLimit <= 0 {
		panic("output limit must be positive")
	}
	return &Controller{kp: kp, ki: ki, kd: kd, outputLimit: outputLimit}
}

// Compute returns the control output for the given setpoint and measurement.
// dt is the cycle duration in seconds. The integral accumulator is clamped to
// the output limit before use, so a saturated output does not keep winding
// up. A zero dt contributes no derivative term but still advances the error
// state. The returned output is always within [-outputLimit, outputLimit].
func (c *Controller) Compute(setpoint, measured, dt float64) float64 {
	err := setpoint - measured

	c.integral += err * dt
	c.integral = floats.Clamp(c.integral, -c.outputLimit, c.outputLimit)

	var derivative float64
	if dt > 0 {
		derivative = (err - c.prevErr) / dt
	}
	c.prevErr = err

	output := c.kp*err + c.ki*c.integral + c.kd*derivative
	return floats.Clamp(output, -c.outputLimit, c.outputLimit)
}

// Reset clears the integral and derivative state. Gains and the output limit
// are untouched.
func (c *Controller) Reset() {
	c.integral = 0
	c.prevErr = 0
}
