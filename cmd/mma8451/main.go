// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// mma8451 reads a MMA8451 accelerometer connected to an I²C bus.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/mma8451/internal/config"
)

// cfg is resolved before any subcommand runs.
var cfg config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mma8451",
		Short: "read a MMA8451 3-axis accelerometer",
		Long: `mma8451 configures a MMA8451 accelerometer and reads it.
Settings are resolved in the following order:
1. command line flags
2. MMA8451_* environment variables
3. the file in --config, MMA8451_CONFIG, or config.yaml in
   $HOME/.config/mma8451, /etc/mma8451 or the current directory
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			cfg = c
			if cfg.Debug {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.InfoLevel)
			}
			return nil
		},
	}
	f := root.PersistentFlags()
	f.String("config", "", "configuration file path")
	f.String("bus", "", "I²C bus to use")
	f.StringP("address", "a", "", "I²C address, 0x1d or 0x1c")
	f.StringP("range", "r", "", "full scale range programmed at start: 2g, 4g or 8g")
	f.String("rate", "", "output data rate programmed at start, 800Hz to 1.56Hz")
	f.StringP("interval", "i", "", "polling interval, 100ms by default")
	f.IntP("samples", "n", 0, "number of samples to acquire, 100 by default")
	f.Bool("debug", false, "toggle debug logging")

	root.AddCommand(
		newReadCmd(),
		newWatchCmd(),
		newPlotCmd(),
		newServeCmd(),
		newRangeCmd(),
		newRateCmd(),
		newOrientationCmd(),
		newConfigCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Errorln(err)
		os.Exit(1)
	}
}
