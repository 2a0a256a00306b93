// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package variant handles variant build records.
//
// A variant build compiles one target with some macros enabled or
// disabled from its default configuration, and leaves a record
// "<results>/<entry>/result.txt" of key=value lines:
//
//	ecu=TARGET_ECUA
//	variant=no-usb
//	enable=ENABLE_GSUSB
//	disable=ENABLE_USB ENABLE_CDC
//	outcome=success
//	hex_size=123456
//	warnings=0
//
// An optional cflags key holds -D and -U flags, which are merged into
// enable and disable.
package variant

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/golang/glog"
	"gopkg.in/ini.v1"

	"github.com/ramn-ci/condcov/cppcond"
	"github.com/ramn-ci/condcov/o11y/clog"
	"github.com/ramn-ci/condcov/targetconfig"
	"github.com/ramn-ci/condcov/toolsupport/gccutil"
	"github.com/ramn-ci/condcov/toolsupport/shutil"
)

// RecordFile is a filename of a variant record in a result entry.
const RecordFile = "result.txt"

// Record is a variant build record.
type Record struct {
	// Name is the result entry name.
	Name string

	ECU     string
	Variant string
	Enable  []string
	Disable []string

	// Outcome is "success" if the variant built.
	Outcome string

	// HexSize is the firmware hex size in bytes, or "N/A".
	HexSize  string
	Warnings string
}

// Passed reports whether the variant build succeeded.
func (r Record) Passed() bool {
	return r.Outcome == "success"
}

// Parse parses a variant record.
// Lines without '=' are ignored. Unknown keys are ignored.
// A trailing '\' doesn't continue a value to the next line.
// Section headers ("[name]") are not allowed; keys after one are not read.
func Parse(name string, buf []byte) (Record, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreContinuation:      true,
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
		PreserveSurroundedQuote: true,
		KeyValueDelimiters:      "=",
	}, buf)
	if err != nil {
		return Record{}, fmt.Errorf("parse %s: %w", name, err)
	}
	sec := f.Section("")
	value := func(key string) string {
		if !sec.HasKey(key) {
			return ""
		}
		return strings.TrimSpace(sec.Key(key).String())
	}
	r := Record{
		Name:     name,
		ECU:      value("ecu"),
		Variant:  value("variant"),
		Enable:   fields(value("enable")),
		Disable:  fields(value("disable")),
		Outcome:  value("outcome"),
		HexSize:  value("hex_size"),
		Warnings: value("warnings"),
	}
	if cflags := value("cflags"); cflags != "" {
		args, err := shutil.Split(cflags)
		if err != nil {
			return Record{}, fmt.Errorf("parse %s: cflags: %w", name, err)
		}
		enable, disable := gccutil.MacroDeltas(args)
		r.Enable = appendUniq(r.Enable, enable...)
		r.Disable = appendUniq(r.Disable, disable...)
	}
	return r, nil
}

func fields(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Fields(s)
}

func appendUniq(list []string, names ...string) []string {
	seen := make(map[string]bool, len(list))
	for _, name := range list {
		seen[name] = true
	}
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		list = append(list, name)
	}
	return list
}

// LoadDir loads variant records in dir/*/result.txt, in entry name order.
// A missing dir or entry without a record is not an error.
// A record that fails to parse is logged and skipped.
func LoadDir(ctx context.Context, dir string) ([]Record, error) {
	ents, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		clog.Infof(ctx, "no variant results in %s", dir)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []Record
	for _, ent := range ents {
		if !ent.IsDir() {
			continue
		}
		fname := filepath.Join(dir, ent.Name(), RecordFile)
		buf, err := os.ReadFile(fname)
		if errors.Is(err, fs.ErrNotExist) {
			if log.V(1) {
				clog.Infof(ctx, "no record in %s", ent.Name())
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		r, err := Parse(ent.Name(), buf)
		if err != nil {
			clog.Warningf(ctx, "ignore variant record: %v", err)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// Apply returns a variant configuration for each record whose ECU is
// one of base configurations.
// Macros of a variant are rules.Derive((base + enable) - disable).
func Apply(ctx context.Context, base []cppcond.Configuration, records []Record, rules targetconfig.Rules) []cppcond.Configuration {
	targets := make(map[string]cppcond.MacroSet, len(base))
	for _, c := range base {
		if c.Origin != cppcond.Base {
			continue
		}
		targets[c.Name] = c.Macros
	}
	var configs []cppcond.Configuration
	for _, r := range records {
		m, ok := targets[r.ECU]
		if !ok {
			clog.Warningf(ctx, "variant %s: unknown ecu %q", r.Name, r.ECU)
			continue
		}
		m = m.Clone()
		m.Add(r.Enable...)
		m.Remove(r.Disable...)
		name := r.Variant
		if name == "" {
			name = r.Name
		}
		configs = append(configs, cppcond.Configuration{
			Name:    r.ECU,
			Origin:  cppcond.Variant,
			Variant: name,
			Macros:  rules.Derive(m),
		})
	}
	return configs
}
