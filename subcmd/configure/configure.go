// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package configure is configure subcommand to modify configuration
// header for a variant build.
package configure

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/ramn-ci/condcov/configedit"
	"github.com/ramn-ci/condcov/matrix"
)

const usage = `modify configuration header for a variant build

 $ condcov configure [-config <header>] \
    [-enable "MACRO1 MACRO2"] [-disable "MACRO3"] \
    [-ecu TARGET_ECUA] [-variant <name>] [-summary <file>]

comments out #define lines of -disable macros, and uncomments
//#define lines of -enable macros in the header.
If GENERATE_RUNTIME_STATS is disabled, FreeRTOSConfig.h next to the header
is also modified.
A step summary is appended to -summary ($GITHUB_STEP_SUMMARY).
`

// Cmd returns the Command for the `configure` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "configure <args>...",
		ShortDesc: "modify configuration header for a variant build",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	header  string
	enable  string
	disable string
	ecu     string
	variant string
	summary string
}

func (c *run) init() {
	c.Flags.StringVar(&c.header, "config", matrix.DefaultHeader, "configuration header")
	c.Flags.StringVar(&c.enable, "enable", "", "space separated macros to enable")
	c.Flags.StringVar(&c.disable, "disable", "", "space separated macros to disable")
	c.Flags.StringVar(&c.ecu, "ecu", "", "ECU target name")
	c.Flags.StringVar(&c.variant, "variant", "", "variant name")
	c.Flags.StringVar(&c.summary, "summary", os.Getenv("GITHUB_STEP_SUMMARY"), "file to append step summary")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("position arguments not expected: %q: %w", args, flag.ErrHelp)
	}
	enable := strings.Fields(c.enable)
	disable := strings.Fields(c.disable)

	buf, err := os.ReadFile(c.header)
	if err != nil {
		return err
	}
	buf, missing := configedit.Toggle(buf, enable, disable)
	for _, macro := range missing {
		log.Warnf("no #define line to toggle for %s in %s", macro, c.header)
	}
	if configedit.NeedsRuntimeStatsPatch(disable) {
		fname := filepath.Join(filepath.Dir(c.header), configedit.FreeRTOSConfigFile)
		frc, err := os.ReadFile(fname)
		if err != nil {
			return err
		}
		err = os.WriteFile(fname, configedit.DisableRuntimeStats(frc), 0644)
		if err != nil {
			return err
		}
		log.Infof("disabled runtime stats in %s", fname)
	}
	err = os.WriteFile(c.header, buf, 0644)
	if err != nil {
		return err
	}
	log.Infof("%s: enable=%q disable=%q", c.header, enable, disable)

	if c.summary == "" {
		return nil
	}
	f, err := os.OpenFile(c.summary, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("step summary: %w", err)
	}
	_, err = f.WriteString(configedit.Summary(c.ecu, c.variant, enable, disable))
	cerr := f.Close()
	if err != nil {
		return fmt.Errorf("step summary: %w", err)
	}
	return cerr
}
