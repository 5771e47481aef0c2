package virtualbox

import (
	"context"

	"github.com/google/uuid"
	"github.com/projecteru2/core/log"
	"golang.org/x/sync/errgroup"

	"github.com/webosose/webos-emulator/hypervisor"
	"github.com/webosose/webos-emulator/inventory"
	"github.com/webosose/webos-emulator/types"
)

// List returns the managed devices in registry order. Only Linux guests are
// managed: devices with any other guest type are omitted, whatever their name.
func (v *VirtualBox) List(ctx context.Context) ([]*types.DeviceInfo, error) {
	if err := v.ready(); err != nil {
		return nil, err
	}
	recs, err := v.mgr.ListVMs(ctx)
	if err != nil {
		return nil, err
	}
	running, err := v.mgr.ListRunningVMs(ctx)
	if err != nil {
		return nil, err
	}
	runningSet := make(map[string]struct{}, len(running))
	for _, r := range running {
		runningSet[r.Name] = struct{}{}
	}
	active := ""
	if len(running) > 0 {
		active = running[0].Name
	}

	infos := make([]*types.DeviceInfo, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(v.conf.PoolSize, 1))
	for i, rec := range recs {
		g.Go(func() error {
			res, err := v.mgr.Run(gctx, "showvminfo", rec.Name)
			if err != nil {
				return err
			}
			if !res.OK() {
				log.WithFunc("virtualbox.List").Debugf(gctx, "showvminfo %s: exit %d", rec.Name, res.ExitCode)
				return nil
			}
			info := inventory.ParseInfo(res.Stdout)
			if !info.IsLinux() {
				return nil
			}
			_, isRunning := runningSet[rec.Name]
			infos[i] = &types.DeviceInfo{
				Name:    rec.Name,
				ID:      rec.ID,
				GuestOS: info.GuestOS(),
				Running: isRunning,
				Active:  rec.Name == active,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*types.DeviceInfo
	for _, info := range infos {
		if info != nil {
			out = append(out, info)
		}
	}
	return out, nil
}

// Resolve finds the first managed device whose name or identifier equals ref
// and classifies it by name. Matching is exact and case-sensitive; an
// identifier also matches when both sides denote the same UUID.
func (v *VirtualBox) Resolve(ctx context.Context, ref string) (*types.Resolution, error) {
	devices, err := v.List(ctx)
	if err != nil {
		return nil, err
	}
	if ref == "" {
		return nil, hypervisor.ErrUnresolved
	}
	for _, d := range devices {
		if d.Name != ref && !sameID(d.ID, ref) {
			continue
		}
		product, version := types.ClassifyName(d.Name)
		return &types.Resolution{Name: d.Name, ID: d.ID, Product: product, Version: version}, nil
	}
	return nil, hypervisor.ErrUnresolved
}

func sameID(id, ref string) bool {
	if id == ref {
		return true
	}
	a, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	b, err := uuid.Parse(ref)
	if err != nil {
		return false
	}
	return a == b
}
