//go:build windows

package player

import (
	"os/exec"
	"syscall"
)

// sysProcAttr keeps the default attributes; mpv opens its own window on Windows.
func sysProcAttr() *syscall.SysProcAttr {
	return nil
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
