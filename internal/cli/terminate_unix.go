//go:build !windows

package cli

import "syscall"

// terminate asks the server process to shut down gracefully.
func terminate(pid uint32) error {
	return syscall.Kill(int(pid), syscall.SIGTERM)
}
