package hypervisor

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolved is returned when a selector matches no managed device.
	ErrUnresolved = errors.New("vd not resolved")
	// ErrNotFound is returned when the named device is not registered.
	ErrNotFound = errors.New("vd does not exist")
	// ErrExists is returned when a device with the same name is already registered.
	ErrExists = errors.New("vd already exists")
	// ErrRunning is returned when an operation requires a stopped device.
	ErrRunning = errors.New("vd is running")
	// ErrNotRunning is returned when an operation requires a running device.
	ErrNotRunning = errors.New("vd is not running")
	// ErrInvalid marks a rejected user input.
	ErrInvalid = errors.New("invalid argument")
	// ErrLauncherMissing is returned when an SDK emulator launcher cannot be located.
	ErrLauncherMissing = errors.New("emulator launcher not found")
	// ErrImportAttach is returned by Import when the image attach step succeeds.
	// Import has always reported that case as a failure; callers rely on it.
	ErrImportAttach = errors.New("custom error")
)

// DetachError is returned when storage could not be detached from a device
// during removal. It wraps the underlying command failure.
type DetachError struct {
	Name string
	Err  error
}

func (e *DetachError) Error() string {
	return fmt.Sprintf("[%s] could not detach image: %v", e.Name, e.Err)
}

func (e *DetachError) Unwrap() error { return e.Err }
