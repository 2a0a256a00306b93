// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package macros is macros subcommand to show macro coverage.
package macros

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/ramn-ci/condcov/matrix"
	"github.com/ramn-ci/condcov/report"
)

const usage = `show macro coverage

 $ condcov macros [-config <header>] [-results <dir>] [-project <condcov.star>]

prints whether each feature macro is built in both ON and OFF states
by the targets' default configurations and variant builds.
`

// Cmd returns the Command for the `macros` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "macros <args>...",
		ShortDesc: "show macro coverage",
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

	matrix matrix.Option
}

func (c *run) init() {
	c.matrix.RegisterFlags(&c.Flags)
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args, a.GetOut())
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

func (c *run) run(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 0 {
		return fmt.Errorf("position arguments not expected: %q: %w", args, flag.ErrHelp)
	}
	m, err := c.matrix.Load(ctx)
	if err != nil {
		return err
	}
	return report.RenderMacros(w, m.Macros())
}
