// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package reportcmd is report subcommand to generate build and macro
// coverage report.
package reportcmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/ramn-ci/condcov/matrix"
	"github.com/ramn-ci/condcov/report"
)

const usage = `generate build and macro coverage report

 $ condcov report [-config <header>] [-results <dir>] [-metrics <dir>] \
    [-src <dir> [-sources <patterns>] [-j <n>] | \
     -total_lines <n> -compiled_lines <n> -coverage_pct <n>] \
    [-project <condcov.star>] [-o report.md]

writes Markdown report with hex sizes of default builds in
<metrics>/*/hex-sizes.txt, variant build results in <results>/*/result.txt,
source line coverage and macro coverage.
If -src is given, line coverage is computed from sources.
`

// Cmd returns the Command for the `report` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "report <args>...",
		ShortDesc: "generate coverage report",
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
	metrics     string
	src         string
	sources     string
	parallelism int
	stats       report.Stats
	output      string
}

func (c *run) init() {
	c.matrix.RegisterFlags(&c.Flags)
	c.Flags.StringVar(&c.metrics, "metrics", "all-build-metrics", "directory of build metrics (<dir>/*/hex-sizes.txt)")
	c.Flags.StringVar(&c.src, "src", "", "source directory. if empty, use -total_lines, -compiled_lines and -coverage_pct")
	c.Flags.StringVar(&c.sources, "sources", "", "comma separated glob patterns of source files relative to -src")
	c.Flags.IntVar(&c.parallelism, "j", 0, "number of files processed concurrently. 0 means the number of CPUs")
	c.Flags.IntVar(&c.stats.TotalLines, "total_lines", 0, "total source lines")
	c.Flags.IntVar(&c.stats.CompiledLines, "compiled_lines", 0, "source lines compiled in at least one configuration")
	c.Flags.IntVar(&c.stats.Percent, "coverage_pct", 0, "source line coverage in percent")
	c.Flags.StringVar(&c.output, "o", "report.md", "output file. '-' for stdout")
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
	if c.output == "" {
		return fmt.Errorf("empty -o: %w", flag.ErrHelp)
	}
	m, err := c.matrix.Load(ctx)
	if err != nil {
		return err
	}
	stats := c.stats
	if c.src != "" {
		var patterns []string
		if c.sources != "" {
			patterns = strings.Split(c.sources, ",")
		}
		r, err := m.Coverage(ctx, c.src, patterns, c.parallelism)
		if err != nil {
			return err
		}
		stats = report.StatsOf(r)
	}
	sizes, err := report.LoadHexSizes(ctx, c.metrics)
	if err != nil {
		return fmt.Errorf("hex sizes: %w", err)
	}
	in := report.Input{
		Targets:  m.Config.Targets,
		HexSizes: sizes,
		Records:  m.Records,
		Stats:    stats,
		Macros:   m.Macros(),
	}
	if c.output == "-" {
		return report.Render(os.Stdout, in)
	}
	f, err := os.Create(c.output)
	if err != nil {
		return err
	}
	err = report.Render(f, in)
	cerr := f.Close()
	if err != nil {
		return err
	}
	if cerr != nil {
		return cerr
	}
	log.Infof("report written to %s", c.output)
	return nil
}
