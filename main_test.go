// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCondcovMain(t *testing.T) {
	dir := t.TempDir()
	header := filepath.Join(dir, "ramn_config.h")
	err := os.WriteFile(header, []byte("#if defined(TARGET_ECUA)\n#define ENABLE_USB\n#endif\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "src")
	err = os.Mkdir(src, 0755)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(src, "usb.c"), []byte("#ifdef ENABLE_USB\nvoid usb(void);\n#endif\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		name string
		args []string
		want int
	}{
		{
			name: "version",
			args: []string{"version", "-vcs=false"},
		},
		{
			name: "coverage",
			args: []string{"coverage", "-config", header, "-src", src, "-results", filepath.Join(dir, "results")},
		},
		{
			name: "coverage-no-header",
			args: []string{"coverage", "-config", filepath.Join(dir, "missing.h"), "-src", src},
			want: 1,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := condcovMain(tc.args)
			if got != tc.want {
				t.Errorf("condcovMain(%q)=%d; want %d", tc.args, got, tc.want)
			}
		})
	}
}
