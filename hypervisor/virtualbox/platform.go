package virtualbox

import (
	"path/filepath"

	"github.com/webosose/webos-emulator/types"
	"github.com/webosose/webos-emulator/vbox"
)

// platform holds the host-dependent manager arguments.
type platform struct {
	audio      string // --audio driver
	nullDevice string // serial port sink
}

var platforms = map[string]platform{
	"windows": {audio: "dsound", nullDevice: "null"},
	"darwin":  {audio: "coreaudio", nullDevice: "/dev/null"},
}

var defaultPlatform = platform{audio: "pulse", nullDevice: "/dev/null"}

func platformFor(goos string) platform {
	if p, ok := platforms[goos]; ok {
		return p
	}
	return defaultPlatform
}

type launchStyle int

const (
	launchScript launchStyle = iota // <stem>.sh, detached
	launchBatch                     // <stem>.bat through cmd /C
	launchBundle                    // <stem>_RCU.app through open
)

// launcher locates an SDK emulator launcher under
// $<env>/Emulator/v<version>/.
type launcher struct {
	env    string
	label  string
	stem   string
	styles map[string]launchStyle // by GOOS, default launchScript
}

var launchers = map[types.Product]launcher{
	types.ProductTV: {
		env:   "LG_WEBOS_TV_SDK_HOME",
		label: "TV Emulator",
		stem:  "LG_webOS_TV_Emulator",
		styles: map[string]launchStyle{
			"windows": launchBatch,
			"darwin":  launchBundle,
		},
	},
	types.ProductSignage: {
		env:   "LG_WEBOS_SIGNAGE_SDK_HOME",
		label: "SIGNAGE Emulator",
		stem:  "LG_webOS_SIGNAGE_Emulator",
	},
}

// command returns the launch command and the path that must exist for it.
func (l launcher) command(goos, home, version string) (vbox.Command, string) {
	dir := filepath.Join(home, "Emulator", "v"+version)
	switch l.styles[goos] {
	case launchBatch:
		script := l.stem + ".bat"
		return vbox.Command{Name: "cmd", Args: []string{"/C", script}, Dir: dir}, filepath.Join(dir, script)
	case launchBundle:
		app := filepath.Join(dir, l.stem+"_RCU.app")
		return vbox.Command{Name: "open", Args: []string{app}}, app
	default:
		script := filepath.Join(dir, l.stem+".sh")
		return vbox.Command{Name: script, Dir: dir, Detach: true}, script
	}
}
