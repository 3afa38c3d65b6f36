//go:build e2e && unix

package e2e

import (
	"errors"
	"syscall"
)

func processRunning(pid int) bool {
	return !errors.Is(syscall.Kill(pid, 0), syscall.ESRCH)
}
