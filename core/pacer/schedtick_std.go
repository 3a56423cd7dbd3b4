//go:build !linux

package pacer

import (
	"time"
)

func schedTick() time.Duration {
	return time.Millisecond
}
