package core

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webosose/webos-emulator/config"
	"github.com/webosose/webos-emulator/hypervisor"
	"github.com/webosose/webos-emulator/hypervisor/virtualbox"
	"github.com/webosose/webos-emulator/vbox"
)

// BaseHandler provides shared config access for all command handlers.
type BaseHandler struct {
	ConfProvider func() *config.Config
}

// Init returns the command context and validated config in one call.
func (h BaseHandler) Init(cmd *cobra.Command) (context.Context, *config.Config, error) {
	conf, err := h.Conf()
	if err != nil {
		return nil, nil, err
	}
	return CommandContext(cmd), conf, nil
}

// Conf validates and returns the config. All handlers call this first.
func (h BaseHandler) Conf() (*config.Config, error) {
	if h.ConfProvider == nil {
		return nil, fmt.Errorf("config provider is nil")
	}
	conf := h.ConfProvider()
	if conf == nil {
		return nil, fmt.Errorf("config not initialized")
	}
	return conf, nil
}

// CommandContext returns command context, falling back to Background.
func CommandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// InitHypervisor locates the manager executable and builds the backend.
// A missing executable surfaces as vbox.ErrNotInstalled.
func InitHypervisor(ctx context.Context, conf *config.Config) (hypervisor.Hypervisor, error) {
	mgr, err := vbox.Locate(ctx, conf.Manager, vbox.ExecRunner{})
	if err != nil {
		return nil, err
	}
	return virtualbox.New(conf, mgr), nil
}
