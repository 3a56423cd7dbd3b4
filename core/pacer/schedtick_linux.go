//go:build linux

package pacer

import (
	"time"

	"github.com/tklauser/go-sysconf"
)

func schedTick() time.Duration {
	ticksPerSecond, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || ticksPerSecond <= 0 {
		return time.Millisecond
	}
	return time.Second / time.Duration(ticksPerSecond)
}
