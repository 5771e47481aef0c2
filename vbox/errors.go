package vbox

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInstalled is returned when the manager executable cannot be found or launched.
var ErrNotInstalled = errors.New("virtualization manager not installed")

// CommandError is a manager invocation that exited non-zero.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
}
