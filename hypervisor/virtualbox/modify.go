package virtualbox

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"

	"github.com/webosose/webos-emulator/hypervisor"
	"github.com/webosose/webos-emulator/types"
)

// settingKeys are the showvminfo keys reported after a modify.
var settingKeys = []string{"Memory size", "Monitor count", "Number of CPUs", "VRAM size", "Name", "Guest OS"}

// Modify applies mod to a stopped device in a single modifyvm call, reattaches
// mod.DiskFile if set, and returns the resulting settings. An empty mod only
// reads the settings.
func (v *VirtualBox) Modify(ctx context.Context, vd *types.Device, mod *types.Modification) ([]string, error) {
	if err := v.ready(); err != nil {
		return nil, err
	}
	running, err := v.Running(ctx, vd.Name)
	if err != nil {
		return nil, err
	}
	if running {
		return nil, fmt.Errorf("modify %s: %w, please stop vd before modify", vd.Name, hypervisor.ErrRunning)
	}

	ctl := v.storageController(ctx, vd.Name)
	target := vd.Name
	if mod != nil && mod.Name != "" {
		target = mod.Name
	}

	if !mod.Empty() {
		if args := mod.Args(); len(args) > 0 {
			if err := v.mgr.Check(ctx, append([]string{"modifyvm", vd.Name}, args...)...); err != nil {
				return nil, fmt.Errorf("modify %s: %w", vd.Name, err)
			}
		}
		if mod.DiskFile != "" {
			if err := v.mgr.Check(ctx, attachArgs(target, ctl, mod.DiskFile)...); err != nil {
				return nil, fmt.Errorf("modify %s: %w", vd.Name, err)
			}
		}
		log.WithFunc("virtualbox.Modify").Infof(ctx, "modified %s", vd.Name)
	}

	info, err := v.mgr.ShowVMInfo(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("read settings of %s: %w", target, err)
	}
	keys := append(append([]string(nil), settingKeys...), ctl+" (0, 0)")
	return info.Select(keys...), nil
}
