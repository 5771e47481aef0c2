package virtualbox

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"

	"github.com/webosose/webos-emulator/hypervisor"
	"github.com/webosose/webos-emulator/types"
)

// RestoreDefaults re-applies the create-time configuration to a stopped device.
func (v *VirtualBox) RestoreDefaults(ctx context.Context, vd *types.Device) error {
	if err := v.requireStopped(ctx, vd.Name); err != nil {
		return fmt.Errorf("set default %s: %w", vd.Name, err)
	}
	log.WithFunc("virtualbox.RestoreDefaults").Infof(ctx, "set default %s", vd.Name)
	if err := v.configure(ctx, vd, true); err != nil {
		return fmt.Errorf("set default %s: %w", vd.Name, err)
	}
	return nil
}

// HiddenCreate recreates the storage controller and boot order of a stopped
// device, attaches vd.DiskFile if set, then applies the create-time
// configuration with vd's resource values.
func (v *VirtualBox) HiddenCreate(ctx context.Context, vd *types.Device) error {
	if err := v.requireStopped(ctx, vd.Name); err != nil {
		return fmt.Errorf("hidden create %s: %w", vd.Name, err)
	}
	log.WithFunc("virtualbox.HiddenCreate").Infof(ctx, "hidden create %s", vd.Name)
	steps := [][]string{controllerArgs(vd.Name), bootOrderArgs(vd.Name)}
	if vd.DiskFile != "" {
		steps = append(steps, attachArgs(vd.Name, vd.Name, vd.DiskFile))
	}
	if err := v.run(ctx, steps...); err != nil {
		return fmt.Errorf("hidden create %s: %w", vd.Name, err)
	}
	if err := v.configure(ctx, vd, true); err != nil {
		return fmt.Errorf("hidden create %s: %w", vd.Name, err)
	}
	return nil
}

// requireStopped fails unless name is registered and not running.
func (v *VirtualBox) requireStopped(ctx context.Context, name string) error {
	exists, running, err := v.state(ctx, name)
	switch {
	case err != nil:
		return err
	case !exists:
		return hypervisor.ErrNotFound
	case running:
		return hypervisor.ErrRunning
	}
	return nil
}
