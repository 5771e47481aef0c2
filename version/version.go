// Package version carries build metadata injected with -ldflags:
//
//	go build -ldflags "-X github.com/webosose/webos-emulator/version.Version=1.2.0 \
//	                   -X github.com/webosose/webos-emulator/version.Revision=$(git rev-parse --short HEAD) \
//	                   -X github.com/webosose/webos-emulator/version.BuiltAt=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version  = "unknown"
	Revision = "unknown"
	BuiltAt  = "unknown"
)

// String renders the version block printed by `webos-emulator version`.
func String() string {
	return fmt.Sprintf("Version:        %s\nGit hash:       %s\nBuilt:          %s\nGolang version: %s\nOS/Arch:        %s/%s\n",
		Version, Revision, BuiltAt, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
