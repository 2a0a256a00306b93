// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package coverage computes source line coverage over a set of
// build configurations.
package coverage

import (
	"context"
	"math"
	"runtime"
	"sort"

	log "github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/ramn-ci/condcov/cppcond"
	"github.com/ramn-ci/condcov/o11y/clog"
)

// Line identifies a source line.
type Line struct {
	File string
	// Line is 1-based line number.
	Line int
}

// Result is a coverage result.
type Result struct {
	// TotalLines is the number of lines of all files.
	TotalLines int

	// Included is a set of lines compiled in at least one configuration.
	Included map[Line]bool
}

// Covered returns the number of lines compiled in at least one
// configuration.
func (r *Result) Covered() int {
	return len(r.Included)
}

// Percent returns covered lines in percent, rounded to the nearest
// integer, half to even. It returns 0 if there are no lines.
func (r *Result) Percent() int {
	if r.TotalLines == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(r.Covered()) * 100 / float64(r.TotalLines)))
}

// Lines returns sorted included line numbers of file.
func (r *Result) Lines(file string) []int {
	var lines []int
	for l := range r.Included {
		if l.File == file {
			lines = append(lines, l.Line)
		}
	}
	sort.Ints(lines)
	return lines
}

// Options is options for Compute.
type Options struct {
	// Parallelism is the number of files processed concurrently.
	// runtime.NumCPU() if zero or negative.
	Parallelism int
}

// Compute walks files for each of configs, and returns the union of
// included lines.
// A line is covered if it is compiled in any one of configs.
// It fails only if ctx is canceled.
func Compute(ctx context.Context, files []cppcond.SourceFile, configs []cppcond.Configuration, opts Options) (*Result, error) {
	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	// each goroutine owns one slot, merged after Wait.
	included := make([][]int, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, f := range files {
		eg.Go(func() error {
			lines, err := fileCoverage(ctx, f, configs)
			if err != nil {
				return err
			}
			included[i] = lines
			return nil
		})
	}
	err := eg.Wait()
	if err != nil {
		return nil, err
	}
	r := &Result{
		Included: make(map[Line]bool),
	}
	for i, f := range files {
		r.TotalLines += len(f.Lines)
		for _, n := range included[i] {
			r.Included[Line{File: f.Name, Line: n}] = true
		}
	}
	return r, nil
}

func fileCoverage(ctx context.Context, f cppcond.SourceFile, configs []cppcond.Configuration) ([]int, error) {
	seen := make(map[int]bool)
	for _, c := range configs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, n := range cppcond.IncludedLines(f.Lines, c.Macros) {
			seen[n] = true
		}
	}
	lines := make([]int, 0, len(seen))
	for n := range seen {
		lines = append(lines, n)
	}
	sort.Ints(lines)
	if log.V(1) {
		ctx = clog.WithLabels(ctx, map[string]string{"file": f.Name})
		clog.Infof(ctx, "%d/%d lines in %d configs", len(lines), len(f.Lines), len(configs))
	}
	return lines, nil
}
