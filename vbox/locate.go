package vbox

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultManager is the manager executable looked up on PATH.
const DefaultManager = "VBoxManage"

// Locate finds the manager executable on PATH and queries its version.
// It returns ErrNotInstalled when the executable is missing or cannot run.
func Locate(ctx context.Context, name string, r Runner) (*Manager, error) {
	if name == "" {
		name = DefaultManager
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotInstalled, name, err)
	}
	m := NewManager(path, "", r)
	res, err := m.Run(ctx, "-version")
	if err != nil {
		return nil, err
	}
	m.Version = firstLine(res.Stdout)
	return m, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
