package pacer

import (
	"fmt"
	"time"
)

// A ViolationError reports a cycle whose measured latency exceeded its
// period. It is non-fatal: the pacer's statistics were already updated when
// it is returned, and the caller decides whether to abort, log, or continue.
type ViolationError struct {
	Expected time.Duration
	Actual   time.Duration
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("real-time violation: expected %v, actual %v", e.Expected, e.Actual)
}
