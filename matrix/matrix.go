// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package matrix loads a build matrix: base configurations of targets
// and variant configurations from variant build records.
package matrix

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/ramn-ci/condcov/buildconfig"
	"github.com/ramn-ci/condcov/coverage"
	"github.com/ramn-ci/condcov/cppcond"
	"github.com/ramn-ci/condcov/o11y/clog"
	"github.com/ramn-ci/condcov/srcfs"
	"github.com/ramn-ci/condcov/targetconfig"
	"github.com/ramn-ci/condcov/variant"
)

// ErrNoTargets is returned when a configuration header has no target block.
var ErrNoTargets = errors.New("no target blocks")

// Matrix is a build matrix.
type Matrix struct {
	Config *buildconfig.Config
	Header *targetconfig.Header

	// Base is a base configuration of each target.
	Base []cppcond.Configuration

	Records  []variant.Record
	Variants []cppcond.Configuration
}

// Load loads a build matrix from a configuration header and
// variant records in resultsDir.
// It returns ErrNoTargets if the header has no target block.
func Load(ctx context.Context, cfg *buildconfig.Config, header, resultsDir string) (*Matrix, error) {
	buf, err := os.ReadFile(header)
	if err != nil {
		return nil, err
	}
	opts := cfg.Options()
	h := targetconfig.Scan(ctx, buf, opts)
	if len(h.Found) == 0 {
		return nil, fmt.Errorf("%s: %w for %q", header, ErrNoTargets, opts.Targets)
	}
	m := &Matrix{
		Config: cfg,
		Header: h,
		Base:   h.Configurations(ctx, opts),
	}
	for _, c := range m.Base {
		clog.Infof(ctx, "base %s: %s", c, c.Macros)
	}
	m.Records, err = variant.LoadDir(ctx, resultsDir)
	if err != nil {
		return nil, fmt.Errorf("variant records: %w", err)
	}
	m.Variants = variant.Apply(ctx, m.Base, m.Records, opts.Rules)
	clog.Infof(ctx, "%d base configs, %d variants of %d records", len(m.Base), len(m.Variants), len(m.Records))
	return m, nil
}

// Configurations returns all configurations, base first.
func (m *Matrix) Configurations() []cppcond.Configuration {
	configs := make([]cppcond.Configuration, 0, len(m.Base)+len(m.Variants))
	configs = append(configs, m.Base...)
	configs = append(configs, m.Variants...)
	return configs
}

// Macros returns macro coverage of the matrix.
func (m *Matrix) Macros() *coverage.MacroReport {
	states := m.Header.States(m.Config.InterestingMacros)
	return coverage.ClassifyMacros(states, m.Config.Targets, m.Records)
}

// Coverage loads source files in src, and computes coverage over all
// configurations.
// If patterns is empty, sources in the project config are used.
func (m *Matrix) Coverage(ctx context.Context, src string, patterns []string, parallelism int) (*coverage.Result, error) {
	if len(patterns) == 0 {
		patterns = m.Config.Sources
	}
	files, st, err := srcfs.Glob(ctx, src, patterns)
	if err != nil {
		return nil, err
	}
	clog.Infof(ctx, "loaded %d files (%s) in %s, %d errors", st.Files, humanize.Bytes(uint64(st.Bytes)), src, st.Errors)
	configs := m.Configurations()
	r, err := coverage.Compute(ctx, files, configs, coverage.Options{Parallelism: parallelism})
	if err != nil {
		return nil, err
	}
	clog.Infof(ctx, "%d/%d lines compiled in %d configs", r.Covered(), r.TotalLines, len(configs))
	return r, nil
}
