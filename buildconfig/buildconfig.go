// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package buildconfig provides project config for condcov.
//
// A project config is a Starlark file, which sets global variables:
//
//	targets = ["TARGET_ECUA", "TARGET_ECUB"]
//	guard_prefix = "INC_"
//	hardware_filter_macro = "USE_HARDWARE_CAN_FILTERS"
//	interesting_macros = r"^ENABLE_\w+$"
//	rules = [
//	    rule(any = ["ENABLE_UDS", "ENABLE_KWP"], implies = ["ENABLE_ISOTP"]),
//	]
//	sources = ["*.c"]
//
// A variable not set keeps its default value.
package buildconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/log"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"github.com/ramn-ci/condcov/srcfs"
	"github.com/ramn-ci/condcov/targetconfig"
)

// Config is a project config.
type Config struct {
	Targets             []string
	GuardPrefix         string
	HardwareFilterMacro string

	// InterestingMacros matches macros reported in macro coverage.
	InterestingMacros *regexp.Regexp

	Rules targetconfig.Rules

	// Sources are glob patterns of source files.
	Sources []string
}

// Default returns a default project config for RAMN.
func Default() *Config {
	opts := targetconfig.DefaultOptions()
	return &Config{
		Targets:             opts.Targets,
		GuardPrefix:         opts.GuardPrefix,
		HardwareFilterMacro: opts.HardwareFilterMacro,
		InterestingMacros:   targetconfig.DefaultInterestingMacros,
		Rules:               opts.Rules,
		Sources:             srcfs.DefaultPatterns,
	}
}

// Options returns target config options.
func (c *Config) Options() targetconfig.Options {
	return targetconfig.Options{
		Targets:             c.Targets,
		GuardPrefix:         c.GuardPrefix,
		HardwareFilterMacro: c.HardwareFilterMacro,
		Rules:               c.Rules,
	}
}

// Load loads a project config from fname.
func Load(ctx context.Context, fname string) (*Config, error) {
	src, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return LoadSource(ctx, fname, src)
}

// LoadSource loads a project config from src.
func LoadSource(ctx context.Context, fname string, src []byte) (*Config, error) {
	thread := &starlark.Thread{
		Name: "load",
		Print: func(thread *starlark.Thread, msg string) {
			log.Infof("thread:%s %s", thread.Name, msg)
		},
	}
	thread.SetLocal("modulename", fname)
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, fname, src, predeclared())
	if err != nil {
		log.Warnf("thread:%s failed to exec file %s: %v", thread.Name, fname, err)
		var eerr *starlark.EvalError
		if errors.As(err, &eerr) {
			log.Warnf("stacktrace:\n%s", eerr.Backtrace())
		}
		return nil, err
	}
	log.Debugf("config: %s", globals)

	cfg := Default()
	if v, ok := globals["targets"]; ok {
		cfg.Targets, err = unpackList(v)
		if err != nil {
			return nil, fmt.Errorf("%s: targets: %w", fname, err)
		}
		if len(cfg.Targets) == 0 {
			return nil, fmt.Errorf("%s: targets: empty", fname)
		}
	}
	for name, p := range map[string]*string{
		"guard_prefix":          &cfg.GuardPrefix,
		"hardware_filter_macro": &cfg.HardwareFilterMacro,
	} {
		v, ok := globals[name]
		if !ok {
			continue
		}
		s, ok := starlark.AsString(v)
		if !ok {
			return nil, fmt.Errorf("%s: %s: got %v; want string", fname, name, v.Type())
		}
		*p = s
	}
	if v, ok := globals["interesting_macros"]; ok {
		s, ok := starlark.AsString(v)
		if !ok {
			return nil, fmt.Errorf("%s: interesting_macros: got %v; want string", fname, v.Type())
		}
		cfg.InterestingMacros, err = regexp.Compile(s)
		if err != nil {
			return nil, fmt.Errorf("%s: interesting_macros: %w", fname, err)
		}
	}
	if v, ok := globals["rules"]; ok {
		cfg.Rules, err = unpackRules(v)
		if err != nil {
			return nil, fmt.Errorf("%s: rules: %w", fname, err)
		}
	}
	if v, ok := globals["sources"]; ok {
		cfg.Sources, err = unpackList(v)
		if err != nil {
			return nil, fmt.Errorf("%s: sources: %w", fname, err)
		}
	}
	return cfg, nil
}

const (
	// rule any. list
	ruleFieldAny = "any"
	// rule implies. list
	ruleFieldImplies = "implies"
)

func predeclared() starlark.StringDict {
	return starlark.StringDict{
		"rule":   starlark.NewBuiltin("rule", starRule),
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
	}
}

// starRule packs a derivation rule into Starlark struct.
func starRule(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var anyMacros, implies starlark.Iterable
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, ruleFieldAny, &anyMacros, ruleFieldImplies, &implies)
	if err != nil {
		return nil, err
	}
	for _, v := range []starlark.Iterable{anyMacros, implies} {
		if _, err := unpackList(v); err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
	}
	return starlarkstruct.FromStringDict(starlark.String("rule"), starlark.StringDict{
		ruleFieldAny:     anyMacros,
		ruleFieldImplies: implies,
	}), nil
}

func unpackRules(v starlark.Value) (targetconfig.Rules, error) {
	iterator := starlark.Iterate(v)
	if iterator == nil {
		return nil, fmt.Errorf("got %v; want iterator", v.Type())
	}
	defer iterator.Done()
	rules := targetconfig.Rules{}
	var elem starlark.Value
	for iterator.Next(&elem) {
		s, ok := elem.(*starlarkstruct.Struct)
		if !ok {
			return nil, fmt.Errorf("got %v in %v; want rule", elem.Type(), v.Type())
		}
		var r targetconfig.Rule
		for name, p := range map[string]*[]string{
			ruleFieldAny:     &r.Any,
			ruleFieldImplies: &r.Implies,
		} {
			fv, err := s.Attr(name)
			if err != nil {
				return nil, err
			}
			*p, err = unpackList(fv)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func unpackList(v starlark.Value) ([]string, error) {
	iterator := starlark.Iterate(v)
	if iterator == nil {
		return nil, fmt.Errorf("got %v; want iterator", v.Type())
	}
	defer iterator.Done()
	var elem starlark.Value
	var list []string
	for iterator.Next(&elem) {
		s, ok := starlark.AsString(elem)
		if !ok {
			return nil, fmt.Errorf("got %v in %v; want string", elem.Type(), v.Type())
		}
		list = append(list, s)
	}
	return list, nil
}
