// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gccutil provides utilities for gcc style command line flags.
package gccutil

import "strings"

// MacroDeltas parses -D and -U flags in args, and returns macros to
// define and to undefine, in order of first appearance.
// A later flag for the same macro overrides earlier ones,
// e.g. "-DFOO -UFOO" undefines FOO.
// Macro values (-DFOO=1) are ignored. Other args are ignored.
func MacroDeltas(args []string) (enable, disable []string) {
	var order []string
	defined := make(map[string]bool)
	set := func(macro string, on bool) {
		macro, _, _ = strings.Cut(macro, "=")
		if macro == "" {
			return
		}
		if _, ok := defined[macro]; !ok {
			order = append(order, macro)
		}
		defined[macro] = on
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-D", "-U":
			if i+1 >= len(args) {
				continue
			}
			i++
			set(args[i], arg == "-D")
			continue
		}
		switch {
		case strings.HasPrefix(arg, "-D"):
			set(strings.TrimPrefix(arg, "-D"), true)
		case strings.HasPrefix(arg, "-U"):
			set(strings.TrimPrefix(arg, "-U"), false)
		}
	}
	for _, macro := range order {
		if defined[macro] {
			enable = append(enable, macro)
		} else {
			disable = append(disable, macro)
		}
	}
	return enable, disable
}
