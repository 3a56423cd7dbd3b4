//go:build !linux

package cpu

import (
	"errors"
)

func setAffinity(core int) error {
	return errors.New("cpu: affinity not supported on this platform")
}
