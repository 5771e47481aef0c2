package virtualbox

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/projecteru2/core/log"

	"github.com/webosose/webos-emulator/hypervisor"
	"github.com/webosose/webos-emulator/types"
	"github.com/webosose/webos-emulator/vbox"
)

// Fixed inspector port forwards; the SSH host port comes from the Device.
const (
	sshGuestPort              = 22
	webInspectorPort          = 9998
	browserInspectorHostPort  = 9223
	browserInspectorGuestPort = 9999
)

type natRule struct {
	name        string
	host, guest int
}

func (r natRule) arg() string {
	return fmt.Sprintf("%s,tcp,,%d,,%d", r.name, r.host, r.guest)
}

func natRules(vd *types.Device) []natRule {
	return []natRule{
		{name: "ssh", host: vd.HostSSHPort, guest: sshGuestPort},
		{name: "web-inspector", host: webInspectorPort, guest: webInspectorPort},
		{name: "enact-browser-web-inspector", host: browserInspectorHostPort, guest: browserInspectorGuestPort},
	}
}

// Create registers and configures a new device, replacing a stopped device of
// the same name. A running device is refused before anything is changed.
func (v *VirtualBox) Create(ctx context.Context, vd *types.Device) error {
	logger := log.WithFunc("virtualbox.Create")
	exists, running, err := v.state(ctx, vd.Name)
	if err != nil {
		return err
	}
	if running {
		return fmt.Errorf("create %s: %w", vd.Name, hypervisor.ErrRunning)
	}
	if exists {
		logger.Infof(ctx, "removing existing vd %s", vd.Name)
		if err := v.Remove(ctx, vd.Name); err != nil {
			return fmt.Errorf("create %s: %w", vd.Name, err)
		}
	}

	logger.Infof(ctx, "creating vd %s", vd.Name)
	if err := v.run(ctx,
		[]string{"createvm", "--ostype", "Linux_64", "--register", "--name", vd.Name},
		controllerArgs(vd.Name),
		bootOrderArgs(vd.Name),
	); err != nil {
		return fmt.Errorf("create %s: %w", vd.Name, err)
	}
	if err := v.configure(ctx, vd, false); err != nil {
		return fmt.Errorf("create %s: %w", vd.Name, err)
	}

	if vd.Image == "" {
		return nil
	}
	if err := v.Attach(ctx, vd.Name, vd.Image); err != nil {
		if rmErr := v.Remove(ctx, vd.Name); rmErr != nil {
			logger.Warnf(ctx, "remove %s after failed attach: %v", vd.Name, rmErr)
		}
		return fmt.Errorf("the vmdk file may already be attached, please use a new vmdk: %w", err)
	}
	return nil
}

// configure applies resources, graphics, input, NAT, serial, display and
// signature settings. With resetNAT the NAT rules are deleted first so the
// sequence can be re-applied to an existing device.
func (v *VirtualBox) configure(ctx context.Context, vd *types.Device, resetNAT bool) error {
	name := vd.Name
	p := platformFor(v.goos)

	if err := v.run(ctx,
		[]string{"modifyvm", name, "--memory", strconv.Itoa(vd.RAM), "--vram", strconv.Itoa(vd.VRAM),
			"--ioapic", "on", "--cpus", strconv.Itoa(vd.CPUs)},
		[]string{"modifyvm", name, "--graphicscontroller", "vmsvga"},
		[]string{"modifyvm", name, "--accelerate3d", "on"},
		[]string{"modifyvm", name, "--mouse", "usbtablet", "--audio", p.audio, "--audioout", "on", "--audioin", "on"},
	); err != nil {
		return err
	}

	rules := natRules(vd)
	if resetNAT {
		for _, r := range rules {
			// Absent rules make the delete fail; that is expected.
			if err := v.mgr.Check(ctx, "modifyvm", name, "--nic1", "nat", "--natpf1", "delete", r.name); err != nil {
				if errors.Is(err, vbox.ErrNotInstalled) {
					return err
				}
				log.WithFunc("virtualbox.configure").Debugf(ctx, "delete nat rule %s: %v", r.name, err)
			}
		}
	}
	steps := [][]string{{"modifyvm", name, "--nic1", "nat", "--natpf1", rules[0].arg()}}
	for _, r := range rules[1:] {
		steps = append(steps, []string{"modifyvm", name, "--natpf1", r.arg()})
	}
	steps = append(steps,
		[]string{"modifyvm", name, "--uart1", "0x3f8", "4", "--uartmode1", "file", p.nullDevice},
		[]string{"modifyvm", name, "--monitorcount", strconv.Itoa(vd.MonitorCount)},
		[]string{"setextradata", name, scaleFactorKey, vd.ScaleFactorString()},
		[]string{"setextradata", name, signatureKey, signatureValue},
	)
	return v.run(ctx, steps...)
}

func controllerArgs(name string) []string {
	return []string{"storagectl", name, "--add", "ide", "--name", name}
}

func bootOrderArgs(name string) []string {
	return []string{"modifyvm", name, "--boot1", "disk", "--boot2", "none", "--boot3", "none", "--boot4", "none"}
}
