//go:build windows

package vbox

import "syscall"

// CREATE_NEW_PROCESS_GROUP
const createNewProcessGroup = 0x00000200

func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: createNewProcessGroup}
}
