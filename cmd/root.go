package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"

	cmdcore "github.com/webosose/webos-emulator/cmd/core"
	cmdothers "github.com/webosose/webos-emulator/cmd/others"
	cmdvd "github.com/webosose/webos-emulator/cmd/vd"
	"github.com/webosose/webos-emulator/config"
	"github.com/webosose/webos-emulator/vbox"
	"github.com/webosose/webos-emulator/version"
)

const installHint = `webos-emulator : Please install virtualbox and set the PATH variable in the system envrionment.
On Windows, please refer to https://www.webosose.org/docs/tools/sdk/emulator/virtualbox-emulator/emulator-user-guide/#setting-the-path-on-windows`

var (
	cfgFile string
	debug   bool
	conf    *config.Config
)

var rootCmd = func() *cobra.Command {
	confProvider := func() *config.Config { return conf }

	cmd := cmdvd.Command(cmdvd.Handler{BaseHandler: cmdcore.BaseHandler{ConfProvider: confProvider}})
	cmd.Version = version.Version
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmdcore.CommandContext(cmd))
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path, merged over the bundled defaults")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "show debug info")

	for _, c := range cmdothers.Commands(cmdothers.Handler{ConfProvider: confProvider}) {
		cmd.AddCommand(c)
	}
	return cmd
}()

func initConfig(ctx context.Context) error {
	var err error
	if conf, err = config.Load(cfgFile); err != nil {
		return err
	}
	if debug {
		conf.Log.Level = "debug"
	}
	return log.SetupLog(ctx, &conf.Log, "")
}

// Execute is the main entry point called from main.go.
func Execute() error {
	ctx, cancel := newCommandContext()
	defer cancel()
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		report(os.Stderr, err)
	}
	return err
}

// report prints err for the user. A missing manager gets installation hints
// instead of the raw lookup failure.
func report(w io.Writer, err error) {
	if errors.Is(err, vbox.ErrNotInstalled) {
		fmt.Fprintln(w, installHint) //nolint:errcheck
		return
	}
	fmt.Fprintln(w, err) //nolint:errcheck
}
