// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package srcfs loads source files to scan.
package srcfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	log "github.com/golang/glog"
	"github.com/gobwas/glob"

	"github.com/ramn-ci/condcov/cppcond"
	"github.com/ramn-ci/condcov/o11y/clog"
)

// DefaultPatterns are patterns of source files to scan.
var DefaultPatterns = []string{"*.c"}

// Stats is stats of loaded files.
type Stats struct {
	Files  int
	Bytes  int64
	Errors int
}

// Glob loads files in dir whose slash separated path relative to dir
// matches any of patterns, sorted by the relative path.
// "*" doesn't match "/", so "*.c" matches files directly in dir,
// and "**/*.c" matches files in subdirectories.
// If patterns is empty, DefaultPatterns is used.
// A missing dir gives no files. Files that can't be read are logged
// and counted in Stats.Errors.
func Glob(ctx context.Context, dir string, patterns []string) ([]cppcond.SourceFile, Stats, error) {
	var st Stats
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	var globs []glob.Glob
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, st, fmt.Errorf("bad source pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	match := func(name string) bool {
		for _, g := range globs {
			if g.Match(name) {
				return true
			}
		}
		return false
	}

	var names []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			clog.Warningf(ctx, "walk %s: %v", path, err)
			st.Errors++
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if match(rel) {
			names = append(names, rel)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		clog.Warningf(ctx, "no source dir %s", dir)
		return nil, st, nil
	}
	if err != nil {
		return nil, st, err
	}
	sort.Strings(names)

	files := make([]cppcond.SourceFile, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		buf, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			clog.Warningf(ctx, "ignore source: %v", err)
			st.Errors++
			continue
		}
		st.Files++
		st.Bytes += int64(len(buf))
		f := cppcond.NewSourceFile(name, buf)
		if log.V(1) {
			clog.Infof(ctx, "load %s: %d lines", name, len(f.Lines))
		}
		files = append(files, f)
	}
	return files, st, nil
}
