package vd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExpressConfigured is the --express value when no disk image is given.
const ExpressConfigured = "configured"

// Actions defines the device command.
type Actions interface {
	Run(cmd *cobra.Command, args []string) error
}

// commandFlags are the mutually exclusive operation selectors.
var commandFlags = []string{
	"list", "create", "modify", "start", "kill", "delete",
	"default-settings", "create-with-custom", "express", "hidden-vce-create",
}

// hiddenFlags tune modify and hidden-create; they stay out of --help.
var hiddenFlags = []string{
	"memory", "vram", "cpus", "monitorcount", "name", "ostype", "vmdk", "scalefactor", "hidden-vce-create",
}

// Command builds the top-level device command. Flags select the operation;
// the optional positional argument is the disk image for --express.
func Command(h Actions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webos-emulator [flags] [vmdk]",
		Short: "webOS Emulator Launcher",
		Long: `webOS Emulator Launcher

Creates, configures, starts and removes webOS virtual devices through VBoxManage.
Multi-letter single-dash flags (-vd, -ds, -cc) are accepted as aliases of --vd,
--default-settings and --create-with-custom.`,
		Example: `  webos-emulator -l
  webos-emulator -c -vd ose_475 -i /path/to/webos-image.vmdk
  webos-emulator -s -vd ose_475
  webos-emulator -x /path/to/webos-image.vmdk`,
		Args: cobra.MaximumNArgs(1),
		RunE: h.Run,
	}

	flags := cmd.Flags()
	flags.BoolP("list", "l", false, "list all the vd names")
	flags.BoolP("create", "c", false, "create a webOS emulator")
	flags.BoolP("modify", "m", false, "modify a webOS emulator settings")
	flags.BoolP("start", "s", false, "start a webOS emulator")
	flags.BoolP("kill", "k", false, "kill a running webOS emulator")
	flags.BoolP("delete", "d", false, "delete a webOS emulator")
	flags.Bool("default-settings", false, "set to default settings (alias -ds)")
	flags.String("create-with-custom", "", "create an emulator with custom settings from an OVF 1.0 `<.ova>` archive (alias -cc)")
	flags.StringP("express", "x", "", "launch an emulator if `<.vmdk>` is given, otherwise launch or kill the express emulator")
	flags.Lookup("express").NoOptDefVal = ExpressConfigured
	flags.String("vd", "", "webOS emulator `<name> or <uuid>`, e.g. ose_475 (alias -vd)")
	flags.StringP("image", "i", "", "virtualbox image `<file>`")

	addTuningFlags(flags)

	cmd.MarkFlagsMutuallyExclusive(commandFlags...)
	return cmd
}

// addTuningFlags registers the hidden settings flags used by modify and
// hidden-create.
func addTuningFlags(flags *pflag.FlagSet) {
	flags.String("memory", "", "memory size in MB, or with a unit (4G)")
	flags.String("vram", "", "video memory size in MB")
	flags.Int("cpus", 0, "number of CPUs")
	flags.Int("monitorcount", 0, "number of monitors")
	flags.String("name", "", "new device name")
	flags.String("ostype", "", "guest OS type: Linux or Linux_64")
	flags.String("vmdk", "", "vmdk file to attach")
	flags.String("scalefactor", "", "UI scale factor")
	flags.Bool("hidden-vce-create", false, "")
	for _, name := range hiddenFlags {
		_ = flags.MarkHidden(name)
	}
}
