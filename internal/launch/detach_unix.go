//go:build !windows

package launch

import (
	"os/exec"
	"syscall"
)

// detach places the child in its own session so it is not part of the
// caller's process group and survives the caller's exit or terminal closure.
func detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
}
