package virtualbox

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"

	"github.com/webosose/webos-emulator/hypervisor"
	"github.com/webosose/webos-emulator/types"
	"github.com/webosose/webos-emulator/vbox"
)

// Start boots a stopped device. TV and Signage devices are launched through
// their SDK launcher, everything else through the manager. Starting a running
// device is a no-op.
func (v *VirtualBox) Start(ctx context.Context, vd *types.Device) error {
	logger := log.WithFunc("virtualbox.Start")
	exists, running, err := v.state(ctx, vd.Name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("start %s: %w", vd.Name, hypervisor.ErrNotFound)
	}
	if running {
		logger.Infof(ctx, "vd %s is already running", vd.Name)
		return nil
	}

	l, ok := launchers[vd.Product]
	if !ok {
		if err := v.mgr.Check(ctx, "startvm", vd.Name); err != nil {
			return fmt.Errorf("start %s: %w", vd.Name, err)
		}
		logger.Infof(ctx, "started %s", vd.Name)
		return nil
	}

	cmd, err := v.launchCommand(l, vd.Version)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "launching %s %s: %s", l.label, vd.Version, cmd.Name)
	res, err := v.mgr.Runner().Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("start %s: %w", vd.Name, err)
	}
	if !res.OK() {
		return fmt.Errorf("start %s: %w", vd.Name,
			&vbox.CommandError{Args: append([]string{cmd.Name}, cmd.Args...), ExitCode: res.ExitCode, Stderr: res.Stderr})
	}
	return nil
}

// launchCommand resolves the SDK launcher for version, failing when the SDK
// environment variable is unset or the launcher is absent.
func (v *VirtualBox) launchCommand(l launcher, version string) (vbox.Command, error) {
	home, ok := v.lookupEnv(l.env)
	if !ok || home == "" {
		return vbox.Command{}, fmt.Errorf("%w: %s is not set, please check installation of %s",
			hypervisor.ErrLauncherMissing, l.env, l.label)
	}
	cmd, path := l.command(v.goos, home, version)
	if _, err := v.stat(path); err != nil {
		return vbox.Command{}, fmt.Errorf("%w: %s, please check installation of %s",
			hypervisor.ErrLauncherMissing, path, l.label)
	}
	return cmd, nil
}
