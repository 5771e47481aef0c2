package hypervisor

import (
	"context"

	"github.com/webosose/webos-emulator/types"
)

// Hypervisor manages the lifecycle of virtual devices registered with an
// external virtualization manager. Each backend implements this interface.
type Hypervisor interface {
	Type() string
	// Version is the backend manager's version string.
	Version() string

	List(ctx context.Context) ([]*types.DeviceInfo, error)
	Resolve(ctx context.Context, ref string) (*types.Resolution, error)

	Create(ctx context.Context, vd *types.Device) error
	Start(ctx context.Context, vd *types.Device) error
	Stop(ctx context.Context, vd *types.Device) error
	Delete(ctx context.Context, vd *types.Device) error
	// Modify applies mod and returns the device's resulting settings lines.
	// An empty mod only reads the settings back.
	Modify(ctx context.Context, vd *types.Device, mod *types.Modification) ([]string, error)
	RestoreDefaults(ctx context.Context, vd *types.Device) error
	HiddenCreate(ctx context.Context, vd *types.Device) error
	Import(ctx context.Context, vd *types.Device, archive string) error

	Attach(ctx context.Context, name, image string) error
	Detach(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error

	Exists(ctx context.Context, name string) (bool, error)
	Running(ctx context.Context, name string) (bool, error)
}
