//go:build !windows

package command

import (
	"os/exec"
	"syscall"
)

// configureProcess prepares cmd for launch. Killable processes get their own
// process group so the whole tree can be signalled on timeout.
func configureProcess(cmd *exec.Cmd, _ string, killable bool) {
	if killable {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	}
}

// killProcessTree sends SIGKILL to the process group led by cmd.
func killProcessTree(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
		return cmd.Process.Kill()
	}
	return nil
}
