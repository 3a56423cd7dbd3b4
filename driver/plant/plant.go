// Package plant provides a simulated first-order process. It stands in for
// real sensor and actuator hardware in the demo service and in tests.
package plant

import (
	"errors"
	"sync"
)

// Simulated integrates value' = (drive - value) / tau. Apply sets the drive
// and advances the state by one step; Sample reads the current value. Both
// are safe to call from different goroutines, matching the loop-thread /
// sampler-thread split.
type Simulated struct {
	mu          sync.Mutex
	value       float64
	drive       float64
	tau         float64
	step        float64
	initialized bool
}

// NewSimulated returns a plant with the given time constant and integration
// step, both in seconds. Init must be called before use.
func NewSimulated(tau, step float64) *Simulated {
	return &Simulated{tau: tau, step: step}
}

func (p *Simulated) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tau <= 0 {
		return errors.New("time constant must be positive")
	}
	if p.step <= 0 {
		return errors.New("integration step must be positive")
	}
	if p.initialized {
		return errors.New("already initialized")
	}
	p.initialized = true
	return nil
}

// Sample returns the current process value.
func (p *Simulated) Sample() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return 0, errors.New("not initialized")
	}
	return p.value, nil
}

// Apply sets the drive and advances the simulation by one step.
func (p *Simulated) Apply(output float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return errors.New("not initialized")
	}
	p.drive = output
	p.value += (p.drive - p.value) * p.step / p.tau
	return nil
}

// Value returns the current state without the Sensor error contract.
func (p *Simulated) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}
