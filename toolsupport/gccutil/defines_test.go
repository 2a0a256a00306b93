// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package gccutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMacroDeltas(t *testing.T) {
	for _, tc := range []struct {
		name        string
		args        []string
		wantEnable  []string
		wantDisable []string
	}{
		{
			name: "empty",
		},
		{
			name:        "joined",
			args:        []string{"-DENABLE_GSUSB", "-UENABLE_CDC", "-O2", "-c", "main.c"},
			wantEnable:  []string{"ENABLE_GSUSB"},
			wantDisable: []string{"ENABLE_CDC"},
		},
		{
			name:        "separated",
			args:        []string{"-D", "ENABLE_GSUSB", "-U", "ENABLE_CDC"},
			wantEnable:  []string{"ENABLE_GSUSB"},
			wantDisable: []string{"ENABLE_CDC"},
		},
		{
			name:       "value",
			args:       []string{"-DLED_TEST_DURATION_MS=0", "-DFOO="},
			wantEnable: []string{"LED_TEST_DURATION_MS", "FOO"},
		},
		{
			name:        "override",
			args:        []string{"-DFOO", "-DBAR", "-UFOO"},
			wantEnable:  []string{"BAR"},
			wantDisable: []string{"FOO"},
		},
		{
			name: "missing-arg",
			args: []string{"-D"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			enable, disable := MacroDeltas(tc.args)
			if diff := cmp.Diff(tc.wantEnable, enable); diff != "" {
				t.Errorf("MacroDeltas(%q) enable diff -want +got:\n%s", tc.args, diff)
			}
			if diff := cmp.Diff(tc.wantDisable, disable); diff != "" {
				t.Errorf("MacroDeltas(%q) disable diff -want +got:\n%s", tc.args, diff)
			}
		})
	}
}
