//go:build windows

package notify

import (
	"os/exec"
	"syscall"
)

const supported = true

func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
