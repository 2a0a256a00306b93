// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package report

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/ramn-ci/condcov/o11y/clog"
)

// HexSizesFile is a filename of hex sizes in a build metrics entry.
const HexSizesFile = "hex-sizes.txt"

// BuildKey identifies a default build.
type BuildKey struct {
	// Conf is a build configuration, e.g. "Release".
	Conf string
	// Tag is a toolchain image tag.
	Tag string
}

// HexSizes is hex sizes of default builds.
// Sizes are keyed by ECU short name, e.g. "ECUA".
type HexSizes map[BuildKey]map[string]string

// Keys returns build keys, sorted by conf and tag.
func (h HexSizes) Keys() []BuildKey {
	keys := make([]BuildKey, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Conf != keys[j].Conf {
			return keys[i].Conf < keys[j].Conf
		}
		return keys[i].Tag < keys[j].Tag
	})
	return keys
}

// LoadHexSizes loads dir/*/hex-sizes.txt.
// An entry name is "<name>-<conf>-<tag>", e.g.
// "build-metrics-RAMNV1-Release-15.0".
// Each file has "<ECU>=<bytes>" lines. Lines without '=' are skipped.
// A missing dir gives no sizes.
func LoadHexSizes(ctx context.Context, dir string) (HexSizes, error) {
	sizes := make(HexSizes)
	ents, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		clog.Infof(ctx, "no build metrics in %s", dir)
		return sizes, nil
	}
	if err != nil {
		return nil, err
	}
	for _, ent := range ents {
		if !ent.IsDir() {
			continue
		}
		parts := strings.Split(ent.Name(), "-")
		if len(parts) < 3 {
			continue
		}
		buf, err := os.ReadFile(filepath.Join(dir, ent.Name(), HexSizesFile))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		f, err := ini.LoadSources(ini.LoadOptions{
			IgnoreContinuation:      true,
			SkipUnrecognizableLines: true,
			KeyValueDelimiters:      "=",
		}, buf)
		if err != nil {
			clog.Warningf(ctx, "ignore %s: %v", ent.Name(), err)
			continue
		}
		key := BuildKey{
			Conf: parts[len(parts)-2],
			Tag:  parts[len(parts)-1],
		}
		m, ok := sizes[key]
		if !ok {
			m = make(map[string]string)
			sizes[key] = m
		}
		for _, k := range f.Section("").Keys() {
			m[k.Name()] = strings.TrimSpace(k.Value())
		}
	}
	return sizes, nil
}
