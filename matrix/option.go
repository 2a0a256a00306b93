// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package matrix

import (
	"context"
	"flag"

	"github.com/ramn-ci/condcov/buildconfig"
)

// Default paths in a RAMN checkout.
const (
	DefaultHeader  = "firmware/RAMNV1/Core/Inc/ramn_config.h"
	DefaultResults = "all-macro-results"
)

// Option is an option to load a build matrix.
type Option struct {
	// Header is a configuration header.
	Header string

	// Results is a directory of variant build results.
	Results string

	// Project is a project config file. Default config is used if empty.
	Project string
}

// RegisterFlags registers flags for the option.
func (o *Option) RegisterFlags(flagSet *flag.FlagSet) {
	flagSet.StringVar(&o.Header, "config", DefaultHeader, "configuration header")
	flagSet.StringVar(&o.Results, "results", DefaultResults, "directory of variant build results (<dir>/*/result.txt)")
	flagSet.StringVar(&o.Project, "project", "", "project config file (Starlark)")
}

// ProjectConfig loads the project config.
func (o Option) ProjectConfig(ctx context.Context) (*buildconfig.Config, error) {
	if o.Project == "" {
		return buildconfig.Default(), nil
	}
	return buildconfig.Load(ctx, o.Project)
}

// Load loads a build matrix.
func (o Option) Load(ctx context.Context) (*Matrix, error) {
	cfg, err := o.ProjectConfig(ctx)
	if err != nil {
		return nil, err
	}
	return Load(ctx, cfg, o.Header, o.Results)
}
