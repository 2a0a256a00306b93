// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package targetconfig extracts per-target macro sets from a structured
// configuration header.
//
// The header is expected to look like
//
//	#ifndef INC_RAMN_CONFIG_H_
//	#define INC_RAMN_CONFIG_H_
//
//	#define ENABLE_COMMON_FEATURE
//
//	#if defined(TARGET_ECUA)
//	#define ENABLE_CDC
//	//#define ENABLE_GSUSB
//	#endif
//
//	#if defined(TARGET_ECUB)
//	...
//	#endif
//
//	#endif
//
// The target block detection is convention based, and this is a
// precondition on the input format:
// a target block is opened by #if whose expression names exactly
// one target identifier, uses defined and has no '!'. #ifdef of a target
// identifier doesn't open a target block. A target block is not nested
// in another target block, and lasts until its matching #endif, so
// #define in its #else branch belongs to the target.
// #elif at the target block depth switches to the target it names (or to
// no target).
// The include guard is #ifndef of a macro with the guard prefix at the top
// level. Macros with the guard prefix are not feature macros.
package targetconfig

import (
	"context"
	"regexp"
	"slices"
	"sort"
	"strings"

	log "github.com/golang/glog"

	"github.com/ramn-ci/condcov/cppcond"
	"github.com/ramn-ci/condcov/o11y/clog"
)

// Options describes the header format.
type Options struct {
	// Targets are target identifiers in declaration order.
	Targets []string

	// GuardPrefix is a prefix of the include guard macro.
	GuardPrefix string

	// HardwareFilterMacro is defined for all targets except the first.
	HardwareFilterMacro string

	// Rules derives implied macros of each target.
	Rules Rules
}

// DefaultOptions returns options for ramn_config.h.
func DefaultOptions() Options {
	return Options{
		Targets:             []string{"TARGET_ECUA", "TARGET_ECUB", "TARGET_ECUC", "TARGET_ECUD"},
		GuardPrefix:         "INC_",
		HardwareFilterMacro: "USE_HARDWARE_CAN_FILTERS",
		Rules:               DefaultRules,
	}
}

// DefaultInterestingMacros matches feature macros reported in
// macro coverage.
var DefaultInterestingMacros = regexp.MustCompile(`^(ENABLE_\w+|WATCHDOG_ENABLE|GENERATE_RUNTIME_STATS)$`)

// Header is a scanned configuration header.
type Header struct {
	// Targets are target identifiers in declaration order.
	Targets []string

	// Found is a set of targets whose block is in the header.
	Found map[string]bool

	// Target is macro states of #define lines in each target's blocks.
	// true for "#define X", false for "//#define X".
	Target map[string]map[string]bool

	// Common is macro states of #define lines at the include guard
	// level, outside of target blocks.
	Common map[string]bool
}

// Scan scans a configuration header.
// It never fails. If no target block is found, Found is empty.
func Scan(ctx context.Context, buf []byte, opts Options) *Header {
	h := &Header{
		Targets: opts.Targets,
		Found:   make(map[string]bool),
		Target:  make(map[string]map[string]bool),
		Common:  make(map[string]bool),
	}
	for _, t := range opts.Targets {
		h.Target[t] = make(map[string]bool)
	}
	isTarget := make(map[string]bool)
	for _, t := range opts.Targets {
		isTarget[t] = true
	}

	current := ""
	depth := 0
	// depth of the conditional block that opened current target.
	targetDepth := 0
	guardDepth := 0
	for i, line := range cppcond.SplitLines(buf) {
		d := cppcond.ParseDirective(line)
		switch d.Kind {
		case cppcond.Ifdef, cppcond.Ifndef, cppcond.If:
			depth++
			if depth == 1 && d.Kind == cppcond.Ifndef && opts.GuardPrefix != "" && strings.HasPrefix(d.Name, opts.GuardPrefix) {
				guardDepth = 1
				continue
			}
			if current != "" || targetDepth > 0 {
				continue
			}
			if t := targetOf(d, isTarget); t != "" {
				current = t
				targetDepth = depth
				h.Found[t] = true
				if log.V(1) {
					clog.Infof(ctx, "line %d: target %s at depth %d", i+1, t, depth)
				}
			}
		case cppcond.Elif:
			if targetDepth == 0 || depth != targetDepth {
				continue
			}
			current = targetOf(d, isTarget)
			if current != "" {
				h.Found[current] = true
			}
			if log.V(1) {
				clog.Infof(ctx, "line %d: elif target %q", i+1, current)
			}
		case cppcond.Endif:
			if targetDepth > 0 && depth == targetDepth {
				current = ""
				targetDepth = 0
			}
			depth = max(depth-1, 0)
		case cppcond.Define, cppcond.CommentedDefine:
			if opts.GuardPrefix != "" && strings.HasPrefix(d.Name, opts.GuardPrefix) {
				continue
			}
			enabled := d.Kind == cppcond.Define
			switch {
			case current != "":
				h.Target[current][d.Name] = h.Target[current][d.Name] || enabled
			case targetDepth == 0 && depth == guardDepth:
				h.Common[d.Name] = h.Common[d.Name] || enabled
			default:
				if log.V(2) {
					clog.Infof(ctx, "line %d: ignore %s %s at depth %d", i+1, d.Kind, d.Name, depth)
				}
			}
		}
	}
	return h
}

// targetOf returns a target that d opens, or "" if d doesn't open a target block.
func targetOf(d cppcond.Directive, isTarget map[string]bool) string {
	if d.Kind != cppcond.If && d.Kind != cppcond.Elif {
		return ""
	}
	if strings.Contains(d.Expr, "!") {
		return ""
	}
	names := cppcond.Idents(d.Expr)
	if !slices.Contains(names, "defined") {
		return ""
	}
	target := ""
	for _, name := range names {
		if !isTarget[name] || name == target {
			continue
		}
		if target != "" {
			// names more than one target.
			return ""
		}
		target = name
	}
	return target
}

func enabledSet(states map[string]bool) cppcond.MacroSet {
	m := cppcond.NewMacroSet()
	for name, enabled := range states {
		if enabled {
			m.Add(name)
		}
	}
	return m
}

// Configurations returns a base configuration for each target,
// in declaration order.
// If no target block was found, macro sets are empty.
func (h *Header) Configurations(ctx context.Context, opts Options) []cppcond.Configuration {
	configs := make([]cppcond.Configuration, 0, len(h.Targets))
	if len(h.Found) == 0 {
		clog.Warningf(ctx, "no target blocks for %q", h.Targets)
		for _, t := range h.Targets {
			configs = append(configs, cppcond.Configuration{
				Name:   t,
				Origin: cppcond.Base,
				Macros: cppcond.NewMacroSet(),
			})
		}
		return configs
	}
	common := enabledSet(h.Common)
	for i, t := range h.Targets {
		if !h.Found[t] {
			clog.Warningf(ctx, "no target block for %s", t)
		}
		m := enabledSet(h.Target[t]).Union(common)
		m.Add(t)
		m = opts.Rules.Derive(m)
		if i > 0 {
			m.Add(opts.HardwareFilterMacro)
		}
		configs = append(configs, cppcond.Configuration{
			Name:   t,
			Origin: cppcond.Base,
			Macros: m,
		})
	}
	return configs
}

// Extract extracts a base configuration for each target from a
// configuration header.
func Extract(ctx context.Context, buf []byte, opts Options) []cppcond.Configuration {
	return Scan(ctx, buf, opts).Configurations(ctx, opts)
}

// MacroState is a default state of a macro in each target.
type MacroState struct {
	Macro string

	// Enabled is target -> whether the macro is defined by default.
	Enabled map[string]bool
}

// States returns default states of macros that match pattern,
// sorted by macro name.
// A state in the target block takes precedence over the common state.
// A macro not in the target block nor in common is disabled.
func (h *Header) States(pattern *regexp.Regexp) []MacroState {
	names := make(map[string]bool)
	for name := range h.Common {
		names[name] = true
	}
	for _, t := range h.Targets {
		for name := range h.Target[t] {
			names[name] = true
		}
	}
	var states []MacroState
	for name := range names {
		if pattern != nil && !pattern.MatchString(name) {
			continue
		}
		s := MacroState{
			Macro:   name,
			Enabled: make(map[string]bool),
		}
		for _, t := range h.Targets {
			enabled, ok := h.Target[t][name]
			if !ok {
				enabled = h.Common[name]
			}
			s.Enabled[t] = enabled
		}
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Macro < states[j].Macro
	})
	return states
}
