package virtualbox

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"

	"github.com/webosose/webos-emulator/hypervisor"
	"github.com/webosose/webos-emulator/types"
)

// Stop pauses and then powers off a running device.
func (v *VirtualBox) Stop(ctx context.Context, vd *types.Device) error {
	exists, running, err := v.state(ctx, vd.Name)
	switch {
	case err != nil:
		return err
	case !exists:
		return fmt.Errorf("stop %s: %w", vd.Name, hypervisor.ErrNotFound)
	case !running:
		return fmt.Errorf("stop %s: %w", vd.Name, hypervisor.ErrNotRunning)
	}
	if err := v.run(ctx,
		[]string{"controlvm", vd.Name, "pause"},
		[]string{"controlvm", vd.Name, "poweroff"},
	); err != nil {
		return fmt.Errorf("stop %s: %w", vd.Name, err)
	}
	log.WithFunc("virtualbox.Stop").Infof(ctx, "stopped %s", vd.Name)
	return nil
}
