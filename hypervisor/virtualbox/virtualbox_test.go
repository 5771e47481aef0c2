package virtualbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/webosose/webos-emulator/config"
	"github.com/webosose/webos-emulator/vbox"
)

// fakeRunner scripts manager output by argument line. Responses queued for a
// line are consumed in order and the last one repeats. Lines matching a
// failing prefix exit 1. Everything else exits 0 with no output.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string][]*vbox.Result
	failing   []string
	launchErr error
	calls     []vbox.Command
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: map[string][]*vbox.Result{}}
}

func (f *fakeRunner) on(line string, stdout ...string) *fakeRunner {
	for _, out := range stdout {
		f.responses[line] = append(f.responses[line], &vbox.Result{Stdout: out})
	}
	return f
}

func (f *fakeRunner) fail(prefix string) *fakeRunner {
	f.failing = append(f.failing, prefix)
	return f
}

func (f *fakeRunner) Run(_ context.Context, c vbox.Command) (*vbox.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	if f.launchErr != nil {
		return nil, f.launchErr
	}
	line := strings.Join(c.Args, " ")
	for _, p := range f.failing {
		if strings.HasPrefix(line, p) {
			return &vbox.Result{ExitCode: 1, Stderr: "VBoxManage: error: " + p}, nil
		}
	}
	if queue := f.responses[line]; len(queue) > 0 {
		res := queue[0]
		if len(queue) > 1 {
			f.responses[line] = queue[1:]
		}
		return res, nil
	}
	return &vbox.Result{}, nil
}

// lines returns every recorded call as "arg arg ...".
func (f *fakeRunner) lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, strings.Join(c.Args, " "))
	}
	return out
}

var mutatingVerbs = map[string]struct{}{
	"createvm": {}, "storagectl": {}, "modifyvm": {}, "setextradata": {}, "storageattach": {},
	"startvm": {}, "controlvm": {}, "unregistervm": {}, "import": {},
}

// mutations returns the recorded calls that change manager state.
func (f *fakeRunner) mutations() []string {
	var out []string
	for _, l := range f.lines() {
		verb, _, _ := strings.Cut(l, " ")
		if _, ok := mutatingVerbs[verb]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (f *fakeRunner) called(line string) bool {
	for _, l := range f.lines() {
		if l == line {
			return true
		}
	}
	return false
}

func newTestVB(t *testing.T, r *fakeRunner) *VirtualBox {
	t.Helper()
	vb := New(config.DefaultConfig(), vbox.NewManager("VBoxManage", "7.0.14r161095", r))
	vb.goos = "linux"
	vb.lookupEnv = func(string) (string, bool) { return "", false }
	return vb
}

func listLine(name, id string) string {
	return fmt.Sprintf("%q {%s}\n", name, id)
}

func vmInfo(name, guest string) string {
	return fmt.Sprintf("Name:                        %s\n"+
		"Guest OS:                    %s\n"+
		"Memory size:                 4096MB\n"+
		"VRAM size:                   128MB\n"+
		"Number of CPUs:              2\n"+
		"Monitor count:               2\n"+
		"Storage Controller Name (0):            %s\n"+
		"%s (0, 0): /home/dev/ose.vmdk (UUID: 0d1c1f2b-4b8a-4f59-9d59-7f6fb3d7a001)\n"+
		"\n", name, guest, name, name)
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o600))
}
