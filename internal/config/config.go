// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config resolves the settings of the mma8451 command.
//
// Values are taken, by decreasing priority, from command line flags,
// MMA8451_* environment variables, a YAML file and the defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/GermanBionicSystems/mma8451/mma8451"
)

const (
	DefaultAppName    = "mma8451"
	DefaultConfigName = "config"
	DefaultInterval   = 100 * time.Millisecond
	DefaultSamples    = 100
	DefaultListen     = "127.0.0.1:9451"
	DefaultOutput     = "mma8451.png"
	EnvConfig         = "MMA8451_CONFIG"
)

// Config holds the command settings.
type Config struct {
	// Bus is the I²C bus name as understood by i2creg, empty for the first one.
	Bus      string `yaml:"bus" mapstructure:"bus"`
	Address  string `yaml:"address" mapstructure:"address"`
	Range    string `yaml:"range" mapstructure:"range"`
	DataRate string `yaml:"data_rate" mapstructure:"data_rate"`
	Interval string `yaml:"interval" mapstructure:"interval"`
	Samples  int    `yaml:"samples" mapstructure:"samples"`
	Listen   string `yaml:"listen" mapstructure:"listen"`
	Output   string `yaml:"output" mapstructure:"output"`
	Debug    bool   `yaml:"debug" mapstructure:"debug"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Address:  fmt.Sprintf("%#x", mma8451.DefaultAddress),
		Range:    mma8451.DefaultOpts.Range.String(),
		DataRate: "800Hz",
		Interval: DefaultInterval.String(),
		Samples:  DefaultSamples,
		Listen:   DefaultListen,
		Output:   DefaultOutput,
	}
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"bus":      "bus",
	"address":  "address",
	"range":    "range",
	"rate":     "data_rate",
	"interval": "interval",
	"samples":  "samples",
	"listen":   "listen",
	"output":   "output",
	"debug":    "debug",
}

// SearchPaths returns the directories searched for config.yaml.
func SearchPaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", DefaultAppName))
	}
	return append(paths, filepath.Join("/etc", DefaultAppName), ".")
}

// Load resolves the configuration. The file is taken from the "config" flag,
// then the MMA8451_CONFIG environment variable, then SearchPaths. A missing
// file in the search paths is not an error.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("bus", def.Bus)
	v.SetDefault("address", def.Address)
	v.SetDefault("range", def.Range)
	v.SetDefault("data_rate", def.DataRate)
	v.SetDefault("interval", def.Interval)
	v.SetDefault("samples", def.Samples)
	v.SetDefault("listen", def.Listen)
	v.SetDefault("output", def.Output)
	v.SetDefault("debug", def.Debug)

	explicit := ""
	if flags != nil {
		if s, err := flags.GetString("config"); err == nil {
			explicit = s
		}
	}
	if explicit == "" {
		explicit = os.Getenv(EnvConfig)
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		for _, p := range SearchPaths() {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(DefaultAppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("config: %w", err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// I2CAddress parses Address, decimal or 0x prefixed hexadecimal.
func (c *Config) I2CAddress() (uint16, error) {
	a, err := strconv.ParseUint(strings.TrimSpace(c.Address), 0, 16)
	if err != nil || a > 0x7f {
		return 0, fmt.Errorf("config: invalid I²C address %q", c.Address)
	}
	return uint16(a), nil
}

// DriverOpts returns the driver options for Range and DataRate.
func (c *Config) DriverOpts() (*mma8451.Opts, error) {
	opts := mma8451.DefaultOpts
	var err error
	if opts.Range, err = mma8451.ParseRange(c.Range); err != nil {
		return nil, err
	}
	if opts.DataRate, err = mma8451.ParseDataRate(c.DataRate); err != nil {
		return nil, err
	}
	return &opts, nil
}

// PollInterval parses Interval.
func (c *Config) PollInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: interval must be positive, got %s", d)
	}
	return d, nil
}

// Write encodes c as YAML.
func Write(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFile writes c to path. An existing file is only replaced when
// overwrite is set.
func WriteFile(path string, c Config, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
