// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/GermanBionicSystems/mma8451/internal/config"
	"github.com/GermanBionicSystems/mma8451/mma8451"
)

func TestCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"config", "orientation", "plot", "range", "rate", "read", "serve", "watch"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("expected command %q, got %q", name, cmd.Name())
		}
	}
	if plot, _, _ := root.Find([]string{"plot"}); plot.Flags().Lookup("output") == nil {
		t.Error("plot: missing --output")
	}
	if serve, _, _ := root.Find([]string{"serve"}); serve.Flags().Lookup("listen") == nil {
		t.Error("serve: missing --listen")
	}
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	return out.String(), err
}

func TestConfigInitPrint(t *testing.T) {
	// An explicit file that does not exist is an error.
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := execute("config", "init", "--print"); err == nil {
		t.Error("expected an error for a missing config file")
	}

	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("range: 8g\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvConfig, p)
	out, err := execute("config", "init", "--print", "--rate", "100Hz", "-n", "7")
	if err != nil {
		t.Fatal(err)
	}
	var got config.Config
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	want := config.Default()
	want.Range = "8g"
	want.DataRate = "100Hz"
	want.Samples = 7
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestConfigInitFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	if err := os.WriteFile(src, []byte("listen: :9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "sub", "out.yaml")
	args := []string{"--config", src, "config", "init", "-f", dst}

	if _, err := execute(args...); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(args...); err == nil || !strings.HasSuffix(err.Error(), "already exists") {
		t.Errorf("expected an already exists error, got %v", err)
	}
	if _, err := execute(append(args, "-y")...); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	var got config.Config
	if err := yaml.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if got.Listen != ":9000" {
		t.Errorf("expected listen :9000, got %q", got.Listen)
	}
}

func TestInitDeviceMismatch(t *testing.T) {
	bus := i2ctest.Playback{
		Ops:       []i2ctest.IO{{Addr: mma8451.DefaultAddress, W: []byte{0x0d}, R: []byte{0x2a}}},
		DontPanic: true,
	}
	if _, err := initDevice(&bus, mma8451.DefaultAddress, &mma8451.DefaultOpts, true); !mma8451.IsIdentityMismatch(err) {
		t.Errorf("expected an identity mismatch, got %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Error(err)
	}
}
