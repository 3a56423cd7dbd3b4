//go:build linux

package cpu

import (
	"golang.org/x/sys/unix"
)

func setAffinity(core int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	// Pid 0 targets the calling thread, which LockOSThread has made ours.
	return unix.SchedSetaffinity(0, &set)
}
