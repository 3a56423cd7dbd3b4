package pid_test

import (
	"math"
	"testing"

	"example.com/rt-loop/core/pid"
)

func TestComputeProportional(t *testing.T) {
	c := pid.NewController(1.0, 0.0, 0.0, 10.0)
	got := c.Compute(5.0, 0.0, 0.01)
	if got != 5.0 {
		t.Errorf("Compute(5.0, 0.0, 0.01) = %v, want 5.0", got)
	}
}

func TestComputeClamped(t *testing.T) {
	c := pid.NewController(1.0, 0.0, 0.0, 3.0)
	got := c.Compute(5.0, 0.0, 0.01)
	if got != 3.0 {
		t.Errorf("Compute(5.0, 0.0, 0.01) = %v, want 3.0 (clamped)", got)
	}
	got = c.Compute(-5.0, 0.0, 0.01)
	if got != -3.0 {
		t.Errorf("Compute(-5.0, 0.0, 0.01) = %v, want -3.0 (clamped)", got)
	}
}

func TestComputeZeroDt(t *testing.T) {
	c := pid.NewController(1.0, 1.0, 1.0, 10.0)
	got := c.Compute(5.0, 0.0, 0.0)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("Compute with dt = 0 returned %v", got)
	}
	// No integral or derivative contribution: output is the P term only.
	if got != 5.0 {
		t.Errorf("Compute(5.0, 0.0, 0.0) = %v, want 5.0", got)
	}
}

func TestAntiWindup(t *testing.T) {
	c := pid.NewController(0.0, 1.0, 0.0, 2.0)
	// Large persistent error; the accumulator must stay within the limit.
	for i := 0; i != 1000; i++ {
		out := c.Compute(100.0, 0.0, 1.0)
		if out < -2.0 || out > 2.0 {
			t.Fatalf("output %v outside [-2, 2] on iteration %d", out, i)
		}
	}
	// One opposing cycle must pull the output back immediately; an unbounded
	// accumulator would keep it pinned at the limit.
	out := c.Compute(-100.0, 0.0, 1.0)
	if out != -2.0 {
		t.Errorf("output after reversal = %v, want -2.0", out)
	}
}

func TestOutputAlwaysWithinLimit(t *testing.T) {
	tests := []struct {
		setpoint, measured, dt float64
	}{
		{1e9, 0, 0.001},
		{-1e9, 0, 0.001},
		{0, 1e9, 1000},
		{1e-9, 0, 1e-9},
		{5, -5, 0},
	}
	c := pid.NewController(2.0, 0.5, 0.1, 7.5)
	for _, tt := range tests {
		got := c.Compute(tt.setpoint, tt.measured, tt.dt)
		if got < -7.5 || got > 7.5 {
			t.Errorf("Compute(%v, %v, %v) = %v, outside [-7.5, 7.5]",
				tt.setpoint, tt.measured, tt.dt, got)
		}
	}
}

func TestReset(t *testing.T) {
	a := pid.NewController(1.0, 0.5, 0.25, 10.0)
	b := pid.NewController(1.0, 0.5, 0.25, 10.0)

	a.Compute(3.0, 1.0, 0.01)
	a.Compute(2.0, 1.5, 0.01)
	a.Reset()

	got, want := a.Compute(4.0, 1.0, 0.01), b.Compute(4.0, 1.0, 0.01)
	if got != want {
		t.Errorf("Compute after Reset = %v, fresh controller = %v", got, want)
	}
}

func TestNewControllerInvalidLimit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for non-positive output limit")
		}
	}()
	pid.NewController(1.0, 0.0, 0.0, 0.0)
}
