//go:build windows

package command

import (
	"os/exec"
	"strconv"
	"syscall"
)

// configureProcess passes the raw argument string through as the command line
// so quoting chosen by the caller reaches the child untouched.
func configureProcess(cmd *exec.Cmd, rawArgs string, killable bool) {
	attr := &syscall.SysProcAttr{}
	cmdLine := syscall.EscapeArg(cmd.Path)
	if rawArgs != "" {
		cmdLine += " " + rawArgs
	}
	attr.CmdLine = cmdLine
	if killable {
		attr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
	}
	cmd.SysProcAttr = attr
}

// killProcessTree terminates cmd and its descendants with taskkill.
func killProcessTree(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	kill := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(cmd.Process.Pid))
	if err := kill.Run(); err != nil {
		return cmd.Process.Kill()
	}
	return nil
}
