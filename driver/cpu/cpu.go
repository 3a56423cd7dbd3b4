// Package cpu pins the calling goroutine's OS thread to a dedicated core.
// Busy-wait pacing is only viable when the loop thread owns its core.
package cpu

import (
	"runtime"
)

// Pin locks the calling goroutine to its OS thread and restricts that thread
// to the given logical CPU. The caller must keep running on the same
// goroutine for the pin to remain effective.
func Pin(core int) error {
	runtime.LockOSThread()
	return setAffinity(core)
}
