package others

import (
	"fmt"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"

	cmdcore "github.com/webosose/webos-emulator/cmd/core"
	"github.com/webosose/webos-emulator/config"
	"github.com/webosose/webos-emulator/version"
)

type Handler struct {
	ConfProvider func() *config.Config
}

func (h Handler) conf() (*config.Config, error) {
	if h.ConfProvider == nil {
		return nil, fmt.Errorf("config provider is nil")
	}
	conf := h.ConfProvider()
	if conf == nil {
		return nil, fmt.Errorf("config not initialized")
	}
	return conf, nil
}

// Version prints build metadata and, when available, the manager version.
// A missing manager is not an error here.
func (h Handler) Version(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, version.String()) //nolint:errcheck

	conf, err := h.conf()
	if err != nil {
		return err
	}
	ctx := cmdcore.CommandContext(cmd)
	hyper, err := cmdcore.InitHypervisor(ctx, conf)
	if err != nil {
		log.WithFunc("cmd.version").Debugf(ctx, "manager unavailable: %v", err)
		return nil
	}
	fmt.Fprintf(out, "%-16s%s\n", hyper.Type()+":", hyper.Version()) //nolint:errcheck
	return nil
}
