package virtualbox

import (
	"context"
	"os"
	"runtime"

	"github.com/webosose/webos-emulator/config"
	"github.com/webosose/webos-emulator/hypervisor"
	"github.com/webosose/webos-emulator/inventory"
	"github.com/webosose/webos-emulator/vbox"
)

const typ = "virtualbox"

// signature tags devices created by this tool.
const (
	signatureKey   = "wemul"
	signatureValue = "ose"
	scaleFactorKey = "GUI/ScaleFactor"
)

// compile-time interface check.
var _ hypervisor.Hypervisor = (*VirtualBox)(nil)

// VirtualBox implements hypervisor.Hypervisor on top of VBoxManage.
type VirtualBox struct {
	conf *config.Config
	mgr  *vbox.Manager

	goos      string
	lookupEnv func(string) (string, bool)
	stat      func(string) (os.FileInfo, error)
}

// New creates a VirtualBox backend for a located manager.
func New(conf *config.Config, mgr *vbox.Manager) *VirtualBox {
	return &VirtualBox{
		conf:      conf,
		mgr:       mgr,
		goos:      runtime.GOOS,
		lookupEnv: os.LookupEnv,
		stat:      os.Stat,
	}
}

func (v *VirtualBox) Type() string { return typ }

func (v *VirtualBox) Version() string {
	if v.mgr == nil {
		return ""
	}
	return v.mgr.Version
}

// Exists reports whether name is registered, regardless of guest type.
func (v *VirtualBox) Exists(ctx context.Context, name string) (bool, error) {
	if err := v.ready(); err != nil {
		return false, err
	}
	recs, err := v.mgr.ListVMs(ctx)
	if err != nil {
		return false, err
	}
	return containsName(recs, name), nil
}

// Running reports whether name is in the manager's running list.
func (v *VirtualBox) Running(ctx context.Context, name string) (bool, error) {
	if err := v.ready(); err != nil {
		return false, err
	}
	recs, err := v.mgr.ListRunningVMs(ctx)
	if err != nil {
		return false, err
	}
	return containsName(recs, name), nil
}

// state returns existence and running state in one call.
func (v *VirtualBox) state(ctx context.Context, name string) (exists, running bool, err error) {
	if exists, err = v.Exists(ctx, name); err != nil || !exists {
		return exists, false, err
	}
	running, err = v.Running(ctx, name)
	return exists, running, err
}

func (v *VirtualBox) ready() error {
	if v.mgr == nil {
		return vbox.ErrNotInstalled
	}
	return nil
}

// run executes steps in order and stops at the first failure.
func (v *VirtualBox) run(ctx context.Context, steps ...[]string) error {
	for _, args := range steps {
		if err := v.mgr.Check(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

func containsName(recs []inventory.Record, name string) bool {
	for _, r := range recs {
		if r.Name == name {
			return true
		}
	}
	return false
}
