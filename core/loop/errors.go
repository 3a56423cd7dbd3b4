package loop

import (
	"errors"
	"fmt"
)

// ErrSensorDataUnavailable signals that no valid sensor sample exists yet.
// The state slot itself reports absence via its comma-ok return; this
// sentinel is for promoting absence to a hard error where the caller needs
// one.
var ErrSensorDataUnavailable = errors.New("no sensor data available")

// A HardwareInitError wraps a failure while setting up an underlying
// hardware resource. It is raised by collaborators and propagated unchanged.
type HardwareInitError struct {
	Device string
	Err    error
}

func (e *HardwareInitError) Error() string {
	return fmt.Sprintf("hardware init failed: %s: %v", e.Device, e.Err)
}

func (e *HardwareInitError) Unwrap() error {
	return e.Err
}

// A ControlError reports a failure of a control loop operation outside the
// pacing, state exchange, and control law primitives themselves.
type ControlError struct {
	Op  string
	Err error
}

func (e *ControlError) Error() string {
	return fmt.Sprintf("control loop error: %s: %v", e.Op, e.Err)
}

func (e *ControlError) Unwrap() error {
	return e.Err
}
