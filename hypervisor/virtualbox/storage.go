package virtualbox

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"
)

// Attach mounts image on port 0 / device 0 of the device's storage controller.
func (v *VirtualBox) Attach(ctx context.Context, name, image string) error {
	if err := v.ready(); err != nil {
		return err
	}
	ctl := v.controllerOrDefault(ctx, name)
	if err := v.mgr.Check(ctx, attachArgs(name, ctl, image)...); err != nil {
		return fmt.Errorf("attach %s to %s: %w", image, name, err)
	}
	log.WithFunc("virtualbox.Attach").Infof(ctx, "attached %s to %s (controller %s)", image, name, ctl)
	return nil
}

// Detach empties port 0 / device 0 of the device's storage controller.
func (v *VirtualBox) Detach(ctx context.Context, name string) error {
	if err := v.ready(); err != nil {
		return err
	}
	ctl := v.controllerOrDefault(ctx, name)
	return v.mgr.Check(ctx, "storageattach", name, "--storagectl", ctl,
		"--type", "hdd", "--medium", "emptydrive", "--port", "0", "--device", "0")
}

// storageController reads the first storage controller name, "" if unknown.
func (v *VirtualBox) storageController(ctx context.Context, name string) string {
	info, err := v.mgr.ShowVMInfo(ctx, name)
	if err != nil {
		log.WithFunc("virtualbox.storageController").Debugf(ctx, "showvminfo %s: %v", name, err)
		return ""
	}
	return info.StorageController()
}

// controllerOrDefault falls back to the device name, which is what create names its controller.
func (v *VirtualBox) controllerOrDefault(ctx context.Context, name string) string {
	if ctl := v.storageController(ctx, name); ctl != "" {
		return ctl
	}
	return name
}

func attachArgs(name, ctl, medium string) []string {
	return []string{"storageattach", name, "--storagectl", ctl,
		"--type", "hdd", "--port", "0", "--device", "0", "--medium", medium}
}
