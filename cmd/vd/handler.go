package vd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"

	cmdcore "github.com/webosose/webos-emulator/cmd/core"
	"github.com/webosose/webos-emulator/config"
	"github.com/webosose/webos-emulator/hypervisor"
	"github.com/webosose/webos-emulator/types"
	"github.com/webosose/webos-emulator/utils"
)

// User-facing validation messages.
var (
	errNoSelector   = errors.New("Please specify a vd name with -vd <name>")                             //nolint:staticcheck
	errUnknownVD    = errors.New("Please check vd list via webos-emulator -l")                           //nolint:staticcheck
	errNoTarget     = errors.New("Please specify a existing vd name")                                    //nolint:staticcheck
	errSDKOnly      = errors.New("Only start and kill commands are permitted for TV/Signage Emulator.") //nolint:staticcheck
	errOSType       = errors.New("Please specify a correct ostype name: Linux or Linux_64")             //nolint:staticcheck
	errExpressUsage = errors.New(`Please specify a vmdk full path to make and launch emulator like below
   webos-emulator -x /path/to/abc.vmdk
If you have made the emulator, you can launch or kill the emulator as
   webos-emulator -x`) //nolint:staticcheck
)

const modifyUsage = `-m options:
  --memory <memory size in MB>
  --vram <video memory size in MB>
  --cpus <number>
  --monitorcount <number>
  --name <name>
  --ostype <Linux or Linux_64>
  --vmdk <vmdk file>
`

type Handler struct {
	cmdcore.BaseHandler
	// NewHypervisor builds the backend; nil means cmdcore.InitHypervisor.
	NewHypervisor func(ctx context.Context, conf *config.Config) (hypervisor.Hypervisor, error)
}

// options is the parsed flag set of one invocation.
type options struct {
	list, create, modify, start, kill, remove, defaults, hidden bool

	custom  string
	express string
	vd      string
	image   string

	memory, vram       string
	cpus, monitorCount int
	name, osType, vmdk string
	scaleFactor        string
}

func optionsFromFlags(cmd *cobra.Command, args []string) (*options, error) {
	f := cmd.Flags()
	o := &options{}
	o.list, _ = f.GetBool("list")
	o.create, _ = f.GetBool("create")
	o.modify, _ = f.GetBool("modify")
	o.start, _ = f.GetBool("start")
	o.kill, _ = f.GetBool("kill")
	o.remove, _ = f.GetBool("delete")
	o.defaults, _ = f.GetBool("default-settings")
	o.hidden, _ = f.GetBool("hidden-vce-create")
	o.custom, _ = f.GetString("create-with-custom")
	o.express, _ = f.GetString("express")
	o.vd, _ = f.GetString("vd")
	o.image, _ = f.GetString("image")
	o.memory, _ = f.GetString("memory")
	o.vram, _ = f.GetString("vram")
	o.cpus, _ = f.GetInt("cpus")
	o.monitorCount, _ = f.GetInt("monitorcount")
	o.name, _ = f.GetString("name")
	o.osType, _ = f.GetString("ostype")
	o.vmdk, _ = f.GetString("vmdk")
	o.scaleFactor, _ = f.GetString("scalefactor")

	if len(args) > 0 {
		if o.express != ExpressConfigured {
			return nil, fmt.Errorf("unexpected argument %q, a disk image is only accepted with -x", args[0])
		}
		o.express = args[0]
	}
	return o, nil
}

func (h Handler) Run(cmd *cobra.Command, args []string) error {
	ctx, conf, err := h.Init(cmd)
	if err != nil {
		return err
	}
	o, err := optionsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	newHyper := h.NewHypervisor
	if newHyper == nil {
		newHyper = cmdcore.InitHypervisor
	}
	hyper, err := newHyper(ctx, conf)
	if err != nil {
		return err
	}
	log.WithFunc("cmd.vd").Debugf(ctx, "%s manager %s", hyper.Type(), hyper.Version())
	return dispatch(ctx, conf, hyper, o, cmd.OutOrStdout(), cmd.Help)
}

// dispatch runs the operation selected by o. Express and list come first;
// every other operation resolves the device selector.
func dispatch(ctx context.Context, conf *config.Config, hyper hypervisor.Hypervisor, o *options, out io.Writer, help func() error) error {
	if o.express != "" {
		return express(ctx, conf, hyper, o.express, out)
	}
	if o.list {
		return list(ctx, hyper, out)
	}

	res, err := hyper.Resolve(ctx, o.vd)
	if err != nil && !errors.Is(err, hypervisor.ErrUnresolved) {
		return err
	}

	if o.vd != "" && res != nil && res.Device().IsSDKProduct() {
		if o.modify || o.hidden || o.remove || o.image != "" || o.defaults {
			return errSDKOnly
		}
	}

	if o.create || o.custom != "" {
		return create(ctx, conf, hyper, o)
	}

	if o.modify || o.hidden || o.start || o.kill || o.remove || o.defaults {
		if o.vd == "" {
			return errNoSelector
		}
		if res == nil {
			return errUnknownVD
		}
	}

	switch {
	case o.modify:
		return modify(ctx, hyper, res.Device(), o, out)
	case o.hidden:
		return hiddenCreate(ctx, hyper, res.Device(), o)
	case o.start:
		return hyper.Start(ctx, res.Device())
	case o.kill:
		return hyper.Stop(ctx, res.Device())
	case o.remove:
		return hyper.Delete(ctx, res.Device())
	case o.defaults:
		return hyper.RestoreDefaults(ctx, res.Device())
	case o.image != "":
		if err := checkFile(o.image); err != nil {
			return err
		}
		if res == nil {
			return errNoTarget
		}
		return hyper.Attach(ctx, res.Name, o.image)
	default:
		return help()
	}
}

func list(ctx context.Context, hyper hypervisor.Hypervisor, out io.Writer) error {
	devices, err := hyper.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range devices {
		if d.Active {
			fmt.Fprintf(out, "%s (running)\n", d.Name) //nolint:errcheck
			continue
		}
		fmt.Fprintln(out, d.Name) //nolint:errcheck
	}
	return nil
}

// create handles both -c and -cc: the selector is used as the raw device name.
func create(ctx context.Context, conf *config.Config, hyper hypervisor.Hypervisor, o *options) error {
	if o.vd == "" {
		return errNoSelector
	}
	device := types.NewDevice(o.vd)
	if o.image != "" {
		if err := checkFile(o.image); err != nil {
			return err
		}
		device.Image = o.image
	}
	if err := applyRAMOverride(conf, device); err != nil {
		return err
	}
	if o.custom == "" {
		return hyper.Create(ctx, device)
	}
	if !utils.ValidFile(o.custom) {
		return missingFile(o.custom)
	}
	return hyper.Import(ctx, device, o.custom)
}

// express creates the configured express device from vmdk when one is given,
// then toggles it: a running device is stopped, a stopped one started.
func express(ctx context.Context, conf *config.Config, hyper hypervisor.Hypervisor, vmdk string, out io.Writer) error {
	device := types.NewDevice(conf.ExpressName)
	if vmdk != ExpressConfigured {
		running, err := hyper.Running(ctx, device.Name)
		if err != nil {
			return err
		}
		if running {
			fmt.Fprintln(out, "If you want to launch emulator, please start emulator as below") //nolint:errcheck
			fmt.Fprintln(out, "webos-emulator -x")                                            //nolint:errcheck
		}
		if err := checkFile(vmdk); err != nil {
			return err
		}
		device.Image = vmdk
		if err := applyRAMOverride(conf, device); err != nil {
			return err
		}
		if err := hyper.Create(ctx, device); err != nil {
			return fmt.Errorf("webos-emulator : failed: %w", err)
		}
	}

	exists, err := hyper.Exists(ctx, device.Name)
	if err != nil {
		return err
	}
	if !exists {
		return errExpressUsage
	}
	running, err := hyper.Running(ctx, device.Name)
	if err != nil {
		return err
	}
	if running {
		return hyper.Stop(ctx, device)
	}
	return hyper.Start(ctx, device)
}

func modify(ctx context.Context, hyper hypervisor.Hypervisor, device *types.Device, o *options, out io.Writer) error {
	mod := &types.Modification{
		CPUs:         o.cpus,
		MonitorCount: o.monitorCount,
		Name:         o.name,
	}
	var err error
	if mod.RAM, err = optionalMB("memory", o.memory); err != nil {
		return err
	}
	if mod.VRAM, err = optionalMB("vram", o.vram); err != nil {
		return err
	}
	if o.osType != "" {
		if !types.ValidOSType(o.osType) {
			return errOSType
		}
		mod.OSType = o.osType
	}
	if o.vmdk != "" {
		if err := checkFile(o.vmdk); err != nil {
			return err
		}
		mod.DiskFile = o.vmdk
	}

	if mod.Empty() {
		fmt.Fprint(out, modifyUsage+"\n") //nolint:errcheck
	}
	settings, err := hyper.Modify(ctx, device, mod)
	if err != nil {
		return err
	}
	for _, line := range settings {
		fmt.Fprintln(out, line) //nolint:errcheck
	}
	return nil
}

// hiddenCreate re-applies the full configuration to an existing device with
// the hidden flags overriding the defaults. --ostype is validated only.
func hiddenCreate(ctx context.Context, hyper hypervisor.Hypervisor, device *types.Device, o *options) error {
	var err error
	if o.memory != "" {
		if device.RAM, err = utils.ParseMB(o.memory); err != nil {
			return fmt.Errorf("invalid --memory %q: %w", o.memory, err)
		}
	}
	if o.vram != "" {
		if device.VRAM, err = utils.ParseMB(o.vram); err != nil {
			return fmt.Errorf("invalid --vram %q: %w", o.vram, err)
		}
	}
	if o.cpus > 0 {
		device.CPUs = o.cpus
	}
	if o.monitorCount > 0 {
		device.MonitorCount = o.monitorCount
	}
	if o.scaleFactor != "" {
		sf, err := strconv.ParseFloat(o.scaleFactor, 64)
		if err != nil || sf <= 0 {
			return fmt.Errorf("invalid --scalefactor %q: %w", o.scaleFactor, hypervisor.ErrInvalid)
		}
		device.ScaleFactor = sf
	}
	if o.name != "" {
		device.Name = o.name
	}
	if o.osType != "" && !types.ValidOSType(o.osType) {
		return errOSType
	}
	if o.vmdk != "" {
		if err := checkFile(o.vmdk); err != nil {
			return err
		}
		device.DiskFile = o.vmdk
	}
	return hyper.HiddenCreate(ctx, device)
}

func applyRAMOverride(conf *config.Config, device *types.Device) error {
	mb, ok, err := conf.RAMOverride()
	if err != nil {
		return err
	}
	if ok {
		device.RAM = mb
	}
	return nil
}

func optionalMB(flag, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	mb, err := utils.ParseMB(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return mb, nil
}

func checkFile(path string) error {
	if !utils.IsFile(path) {
		return missingFile(path)
	}
	return nil
}

func missingFile(path string) error {
	return fmt.Errorf("webos-emulator : Please check %s exists.", path)
}
