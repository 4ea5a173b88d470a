// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/mma8451/exporter"
	"github.com/GermanBionicSystems/mma8451/internal/config"
	"github.com/GermanBionicSystems/mma8451/mma8451"
	"github.com/GermanBionicSystems/mma8451/plot"
	"github.com/GermanBionicSystems/mma8451/termgauge"
)

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "read",
		Short:   "print samples",
		Example: `  mma8451 read -n 10 -i 50ms`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDevice(&cfg)
			if err != nil {
				return err
			}
			defer d.Close()
			interval, err := cfg.PollInterval()
			if err != nil {
				return err
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for i := 0; i < cfg.Samples; i++ {
				s, err := d.Read()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				if i != cfg.Samples-1 {
					<-ticker.C
				}
			}
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "show live readings as bars until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDevice(&cfg)
			if err != nil {
				return err
			}
			defer d.Close()
			interval, err := cfg.PollInterval()
			if err != nil {
				return err
			}
			r, err := d.Range()
			if err != nil {
				return err
			}
			full := 4.0
			switch r {
			case mma8451.Range2G:
				full = 2
			case mma8451.Range8G:
				full = 8
			}
			g := termgauge.New(&termgauge.Opts{Full: full})
			defer g.Halt()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			ch, err := d.SenseContinuous(interval)
			if err != nil {
				return err
			}
			check := time.NewTicker(time.Second)
			defer check.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-check.C:
					if err := d.SenseErr(); err != nil {
						log.Warnf("read: %v", err)
					}
				case s, ok := <-ch:
					if !ok {
						return nil
					}
					o, err := d.Orientation()
					if err != nil {
						log.Debugf("orientation: %v", err)
					}
					if err := g.Show(s.Acceleration, o); err != nil {
						return err
					}
				}
			}
		},
	}
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plot",
		Short:   "capture samples and render them to a PNG file",
		Example: `  mma8451 plot -n 400 -i 10ms -o trace.png`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDevice(&cfg)
			if err != nil {
				return err
			}
			defer d.Close()
			interval, err := cfg.PollInterval()
			if err != nil {
				return err
			}
			samples := make([]mma8451.Sample, 0, cfg.Samples)
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for len(samples) < cfg.Samples {
				s, err := d.Read()
				if err != nil {
					return err
				}
				if samples = append(samples, s); len(samples) < cfg.Samples {
					<-ticker.C
				}
			}
			f, err := os.Create(cfg.Output)
			if err != nil {
				return err
			}
			opts := plot.DefaultOpts
			opts.Title = fmt.Sprintf("%s, %d samples every %s", filepath.Base(cfg.Output), len(samples), interval)
			if err := plot.WritePNG(f, samples, &opts); err != nil {
				_ = f.Close()
				return err
			}
			log.Infof("wrote %s", cfg.Output)
			return f.Close()
		},
	}
	cmd.Flags().StringP("output", "o", "", "PNG file to write")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "export readings as Prometheus metrics",
		Example: `  mma8451 serve --listen :9451`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDevice(&cfg)
			if err != nil {
				return err
			}
			defer d.Close()

			reg := prometheus.NewRegistry()
			labels := prometheus.Labels{"address": fmt.Sprintf("%#x", d.addr)}
			if err := reg.Register(exporter.New(d, labels)); err != nil {
				return err
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			srv := &http.Server{Addr: cfg.Listen, Handler: mux}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			go func() {
				<-ctx.Done()
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(sctx)
			}()
			log.Infof("serving metrics on http://%s/metrics", cfg.Listen)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("listen", "", "address to serve /metrics on")
	return cmd
}

func newRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "range [2g|4g|8g]",
		Short:   "print or change the full scale range",
		Example: "  mma8451 range\n  mma8451 range 8g",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDevice(&cfg)
			if err != nil {
				return err
			}
			defer d.Close()
			if len(args) == 1 {
				r, err := mma8451.ParseRange(args[0])
				if err != nil {
					return err
				}
				if err := d.SetRange(r); err != nil {
					return err
				}
			}
			r, err := d.Range()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "±%s\n", r)
			return nil
		},
	}
}

func newRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rate [frequency]",
		Short:   "print or change the output data rate",
		Example: "  mma8451 rate\n  mma8451 rate 100Hz",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDevice(&cfg)
			if err != nil {
				return err
			}
			defer d.Close()
			if len(args) == 1 {
				r, err := mma8451.ParseDataRate(args[0])
				if err != nil {
					return err
				}
				if err := d.SetDataRate(r); err != nil {
					return err
				}
			}
			r, err := d.DataRate()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func newOrientationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orientation",
		Short: "print the portrait/landscape state and system mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDevice(&cfg)
			if err != nil {
				return err
			}
			defer d.Close()
			o, err := d.Orientation()
			if err != nil {
				return err
			}
			m, err := d.SystemMode()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", o, m)
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage the configuration file",
	}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "write the resolved configuration as a template",
		Example: `  mma8451 config init --print
  mma8451 config init -f /etc/mma8451/config.yaml -y`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if p, _ := cmd.Flags().GetBool("print"); p {
				return config.Write(cmd.OutOrStdout(), cfg)
			}
			path, _ := cmd.Flags().GetString("file")
			overwrite, _ := cmd.Flags().GetBool("yes")
			if err := config.WriteFile(path, cfg, overwrite); err != nil {
				return err
			}
			log.Infof("wrote %s", path)
			return nil
		},
	}
	def := filepath.Join(".", config.DefaultConfigName+".yaml")
	if p := config.SearchPaths(); len(p) != 0 {
		def = filepath.Join(p[0], config.DefaultConfigName+".yaml")
	}
	initCmd.Flags().Bool("print", false, "print to stdout instead of writing a file")
	initCmd.Flags().StringP("file", "f", def, "file to write")
	initCmd.Flags().BoolP("yes", "y", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
