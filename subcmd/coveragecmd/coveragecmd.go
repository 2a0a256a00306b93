// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package coveragecmd is coverage subcommand to compute source line
// coverage over the build matrix.
package coveragecmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"github.com/ramn-ci/condcov/matrix"
	"github.com/ramn-ci/condcov/o11y/clog"
	"github.com/ramn-ci/condcov/report"
)

const usage = `compute source line coverage over the build matrix

 $ condcov coverage [-config <header>] [-src <dir>] [-results <dir>] \
    [-sources <patterns>] [-project <condcov.star>] [-j <n>]

walks source files in <dir> for each target's default configuration
and each variant in <results>/*/result.txt, and prints

 total_lines=<lines in source files>
 compiled_lines=<lines compiled in at least one configuration>
 coverage_pct=<percent>
`

// DefaultSrc is a default source directory in a RAMN checkout.
const DefaultSrc = "firmware/RAMNV1/Core/Src"

// Cmd returns the Command for the `coverage` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "coverage <args>...",
		ShortDesc: "compute source line coverage",
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

	matrix      matrix.Option
	src         string
	sources     string
	parallelism int
}

func (c *run) init() {
	c.matrix.RegisterFlags(&c.Flags)
	c.Flags.StringVar(&c.src, "src", DefaultSrc, "source directory")
	c.Flags.StringVar(&c.sources, "sources", "", "comma separated glob patterns of source files relative to -src. default is sources in project config, or *.c")
	c.Flags.IntVar(&c.parallelism, "j", 0, "number of files processed concurrently. 0 means the number of CPUs")
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
	ctx, cancel := context.WithCancel(ctx)
	defer signals.HandleInterrupt(cancel)()

	runID := uuid.New().String()
	ctx = clog.WithTrace(ctx, runID)
	log.Infof("coverage run %s", runID)

	stats, err := Compute(ctx, c.matrix, c.src, c.sources, c.parallelism)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "total_lines=%d\ncompiled_lines=%d\ncoverage_pct=%d\n", stats.TotalLines, stats.CompiledLines, stats.Percent)
	return err
}

// Compute loads the build matrix and source files, and computes
// coverage stats.
// sources is comma separated glob patterns, which overrides the
// project config if not empty.
func Compute(ctx context.Context, opt matrix.Option, src, sources string, parallelism int) (report.Stats, error) {
	m, err := opt.Load(ctx)
	if err != nil {
		return report.Stats{}, err
	}
	var patterns []string
	if sources != "" {
		patterns = strings.Split(sources, ",")
	}
	r, err := m.Coverage(ctx, src, patterns, parallelism)
	if err != nil {
		return report.Stats{}, err
	}
	return report.StatsOf(r), nil
}
