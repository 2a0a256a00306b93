// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package help provides help subcommand.
package help

import (
	"flag"
	"fmt"
	"io"

	"github.com/maruel/subcommands"
)

// Cmd returns the Command for the `help` subcommand provided by this package.
// Top-level help also prints global flags in flagSet, e.g. glog flags.
func Cmd(flagSet *flag.FlagSet) *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "help [<command>|-advanced]",
		ShortDesc: "prints help about a command",
		LongDesc:  "Prints commands and global flags or help about a specific command.\nUse -advanced to display all commands.",
		CommandRun: func() subcommands.CommandRun {
			c := &run{global: flagSet}
			c.Flags.BoolVar(&c.advanced, "advanced", false, "show advanced commands")
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase
	global   *flag.FlagSet
	advanced bool
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if len(args) > 0 {
		return subcommands.CmdHelp.CommandRun().Run(a, args, env)
	}
	subcommands.Usage(a.GetOut(), a, c.advanced)
	writeGlobalFlags(a.GetOut(), c.global)
	return 0
}

func writeGlobalFlags(w io.Writer, flagSet *flag.FlagSet) {
	if flagSet == nil {
		return
	}
	fmt.Fprintln(w, "Global flags accepted by all commands:")
	flagSet.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(w, "  -%s\n    \t%s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" {
			fmt.Fprintf(w, " (default %q)", f.DefValue)
		}
		fmt.Fprintln(w)
	})
}
