package virtualbox

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"

	"github.com/webosose/webos-emulator/hypervisor"
	"github.com/webosose/webos-emulator/types"
)

// Delete detaches storage from a stopped device and unregisters it with its files.
// A running device is refused and nothing is unregistered.
func (v *VirtualBox) Delete(ctx context.Context, vd *types.Device) error {
	if err := v.requireStopped(ctx, vd.Name); err != nil {
		return fmt.Errorf("delete %s: %w", vd.Name, err)
	}
	if err := v.destroy(ctx, vd.Name); err != nil {
		return fmt.Errorf("delete %s: %w", vd.Name, err)
	}
	log.WithFunc("virtualbox.Delete").Infof(ctx, "deleted %s", vd.Name)
	return nil
}

// Remove detaches and unregisters name if it is registered.
// An unregistered name is not an error.
func (v *VirtualBox) Remove(ctx context.Context, name string) error {
	exists, err := v.Exists(ctx, name)
	if err != nil || !exists {
		return err
	}
	log.WithFunc("virtualbox.Remove").Infof(ctx, "removing %s", name)
	return v.destroy(ctx, name)
}

// destroy detaches storage and then unregisters. A detach failure returns
// a *hypervisor.DetachError and skips the unregister.
func (v *VirtualBox) destroy(ctx context.Context, name string) error {
	if err := v.Detach(ctx, name); err != nil {
		return &hypervisor.DetachError{Name: name, Err: err}
	}
	return v.mgr.Check(ctx, "unregistervm", name, "--delete")
}
