//go:build windows

package cli

import (
	"fmt"
	"os"
)

// terminate kills the server process. Windows has no SIGTERM equivalent for
// unrelated processes, so this is a hard kill.
func terminate(pid uint32) error {
	proc, err := os.FindProcess(int(pid))
	if err != nil {
		return fmt.Errorf("finding process: %w", err)
	}
	return proc.Kill()
}
