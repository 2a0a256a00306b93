// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ramn-ci/condcov/targetconfig"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	cfg, err := Load(ctx, "testdata/condcov.star")
	if err != nil {
		t.Fatalf(`Load(ctx, "testdata/condcov.star")=_, %v; want nil err`, err)
	}
	want := Default()
	if diff := cmp.Diff(want.Options(), cfg.Options()); diff != "" {
		t.Errorf("Options() diff -want +got:\n%s", diff)
	}
	if got, want := cfg.InterestingMacros.String(), want.InterestingMacros.String(); got != want {
		t.Errorf("InterestingMacros=%q; want %q", got, want)
	}
	if diff := cmp.Diff([]string{"*.c"}, cfg.Sources); diff != "" {
		t.Errorf("Sources diff -want +got:\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	ctx := context.Background()
	_, err := Load(ctx, "testdata/missing.star")
	if err == nil {
		t.Errorf(`Load(ctx, "testdata/missing.star")=_, nil; want err`)
	}
}

func TestLoadSource(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name    string
		src     string
		want    *Config
		wantErr bool
	}{
		{
			name: "empty",
			src:  "",
			want: Default(),
		},
		{
			name: "override",
			src: `
targets = ("TARGET_MAIN", "TARGET_SUB")
hardware_filter_macro = "USE_FILTERS"
interesting_macros = "^FEATURE_"
rules = []
sources = ["src/*.c", "lib/**/*.c"]
`,
			want: &Config{
				Targets:             []string{"TARGET_MAIN", "TARGET_SUB"},
				GuardPrefix:         "INC_",
				HardwareFilterMacro: "USE_FILTERS",
				Rules:               targetconfig.Rules{},
				Sources:             []string{"src/*.c", "lib/**/*.c"},
			},
		},
		{
			name: "rule",
			src:  `rules = [rule(any = ["A"], implies = ["B", "C"])]`,
			want: func() *Config {
				cfg := Default()
				cfg.Rules = targetconfig.Rules{{Any: []string{"A"}, Implies: []string{"B", "C"}}}
				return cfg
			}(),
		},
		{
			name:    "syntax-error",
			src:     "targets = [",
			wantErr: true,
		},
		{
			name:    "empty-targets",
			src:     "targets = []",
			wantErr: true,
		},
		{
			name:    "bad-target",
			src:     "targets = [1]",
			wantErr: true,
		},
		{
			name:    "bad-guard-prefix",
			src:     "guard_prefix = 1",
			wantErr: true,
		},
		{
			name:    "bad-regexp",
			src:     `interesting_macros = "(ENABLE_"`,
			wantErr: true,
		},
		{
			name:    "bad-rule",
			src:     `rules = [struct(any = ["A"], implies = ["B"]), "A"]`,
			wantErr: true,
		},
		{
			name:    "bad-rule-args",
			src:     `rules = [rule(any = [1], implies = ["B"])]`,
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadSource(ctx, tc.name+".star", []byte(tc.src))
			if tc.wantErr {
				if err == nil {
					t.Errorf("LoadSource(ctx, %q)=_, nil; want err", tc.src)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadSource(ctx, %q)=_, %v; want nil err", tc.src, err)
			}
			if diff := cmp.Diff(tc.want.Options(), cfg.Options()); diff != "" {
				t.Errorf("LoadSource(ctx, %q).Options() diff -want +got:\n%s", tc.src, diff)
			}
			if diff := cmp.Diff(tc.want.Sources, cfg.Sources); diff != "" {
				t.Errorf("LoadSource(ctx, %q).Sources diff -want +got:\n%s", tc.src, diff)
			}
		})
	}
}
