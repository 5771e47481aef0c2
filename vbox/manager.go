package vbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/projecteru2/core/log"

	"github.com/webosose/webos-emulator/inventory"
)

// Manager invokes a located manager executable.
type Manager struct {
	// Path is the resolved executable.
	Path string
	// Version is the first line of "-version" output.
	Version string

	runner Runner
}

// NewManager returns a Manager for an already located executable.
func NewManager(path, version string, r Runner) *Manager {
	if r == nil {
		r = ExecRunner{}
	}
	return &Manager{Path: path, Version: version, runner: r}
}

// Runner exposes the underlying runner for non-manager commands (SDK launchers).
func (m *Manager) Runner() Runner { return m.runner }

// Run invokes the manager with args. A launch failure is reported as ErrNotInstalled.
func (m *Manager) Run(ctx context.Context, args ...string) (*Result, error) {
	res, err := m.runner.Run(ctx, Command{Name: m.Path, Args: args})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	if res.Stderr != "" {
		log.WithFunc("vbox.Run").Debugf(ctx, "%s: %s", strings.Join(args, " "), strings.TrimSpace(res.Stderr))
	}
	return res, nil
}

// Check invokes the manager and turns a non-zero exit into a *CommandError.
func (m *Manager) Check(ctx context.Context, args ...string) error {
	res, err := m.Run(ctx, args...)
	if err != nil {
		return err
	}
	if !res.OK() {
		return &CommandError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// Output invokes the manager and returns stdout, failing on a non-zero exit.
func (m *Manager) Output(ctx context.Context, args ...string) (string, error) {
	res, err := m.Run(ctx, args...)
	if err != nil {
		return "", err
	}
	if !res.OK() {
		return "", &CommandError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res.Stdout, nil
}

// ListVMs returns every registered device.
func (m *Manager) ListVMs(ctx context.Context) ([]inventory.Record, error) {
	out, err := m.Output(ctx, "list", "vms")
	if err != nil {
		return nil, err
	}
	return inventory.ParseList(out), nil
}

// ListRunningVMs returns the running devices in manager order.
func (m *Manager) ListRunningVMs(ctx context.Context) ([]inventory.Record, error) {
	out, err := m.Output(ctx, "list", "runningvms")
	if err != nil {
		return nil, err
	}
	return inventory.ParseList(out), nil
}

// ShowVMInfo returns the parsed detailed info for name.
func (m *Manager) ShowVMInfo(ctx context.Context, name string) (*inventory.Info, error) {
	out, err := m.Output(ctx, "showvminfo", name)
	if err != nil {
		return nil, err
	}
	return inventory.ParseInfo(out), nil
}
