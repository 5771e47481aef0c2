// Package vbox runs the external virtualization manager (VBoxManage) and
// reports exit status and captured output.
package vbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Command is one child-process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Detach starts the process in its own process group and returns
	// without waiting for it.
	Detach bool
}

// Result is the outcome of a finished command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK reports a zero exit status.
func (r *Result) OK() bool { return r != nil && r.ExitCode == 0 }

// Runner executes commands. A non-zero exit is not an error: it is returned
// in Result.ExitCode. Only a failure to launch the process returns an error.
type Runner interface {
	Run(ctx context.Context, c Command) (*Result, error)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// Run executes c with the null device as stdin.
func (ExecRunner) Run(ctx context.Context, c Command) (*Result, error) {
	if c.Detach {
		return startDetached(c)
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec // fixed manager vocabulary
	cmd.Dir = c.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("launch %s: %w", c.Name, err)
	}
	return res, nil
}

// startDetached launches c so it outlives this process, then releases it.
func startDetached(c Command) (*Result, error) {
	cmd := exec.Command(c.Name, c.Args...) //nolint:gosec // launcher path from SDK env
	cmd.Dir = c.Dir
	cmd.SysProcAttr = detachAttr()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch %s: %w", c.Name, err)
	}
	_ = cmd.Process.Release()
	return &Result{}, nil
}
