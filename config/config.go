package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	coretypes "github.com/projecteru2/core/types"
	"github.com/spf13/viper"

	"github.com/webosose/webos-emulator/utils"
)

// EnvPrefix prefixes environment overrides, e.g. WEBOS_EMULATOR_RAM.
const EnvPrefix = "WEBOS_EMULATOR"

//go:embed webos-emulator.json
var bundled []byte

// Config holds global webos-emulator configuration.
type Config struct {
	// Manager is the virtualization manager executable looked up on PATH.
	Manager string `json:"manager" mapstructure:"manager"`
	// RAM overrides the default RAM of created devices ("4096", "4G").
	// Empty means no override.
	RAM string `json:"ram" mapstructure:"ram"`
	// ExpressName is the device managed by express launch.
	ExpressName string `json:"express_name" mapstructure:"express_name"`
	// PoolSize bounds concurrent detail queries while classifying devices.
	// Values below 1 mean sequential.
	PoolSize int `json:"pool_size" mapstructure:"pool_size"`
	// Log configuration, uses eru core's ServerLogConfig.
	Log coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Manager:     "VBoxManage",
		ExpressName: "webos-imagex",
		PoolSize:    1,
		Log: coretypes.ServerLogConfig{
			Level: "info",
		},
	}
}

// Load reads the bundled defaults, merges the optional file at path on top,
// then applies WEBOS_EMULATOR_* environment overrides.
// A missing file at path is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(bundled)); err != nil {
		return nil, fmt.Errorf("read bundled config: %w", err)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := DefaultConfig()
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if conf.PoolSize < 1 {
		conf.PoolSize = 1
	}
	if conf.Manager == "" {
		conf.Manager = "VBoxManage"
	}
	return conf, nil
}

// RAMOverride returns the configured RAM override in MB.
// ok is false when no override is configured.
func (c *Config) RAMOverride() (mb int, ok bool, err error) {
	if strings.TrimSpace(c.RAM) == "" {
		return 0, false, nil
	}
	mb, err = utils.ParseMB(c.RAM)
	if err != nil {
		return 0, false, fmt.Errorf("config ram %q: %w", c.RAM, err)
	}
	return mb, true, nil
}
