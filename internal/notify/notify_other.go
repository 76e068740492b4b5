//go:build !windows

package notify

import "os/exec"

const supported = false

func hideWindow(cmd *exec.Cmd) {}
