// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ramn-ci/condcov/coverage"
	"github.com/ramn-ci/condcov/variant"
)

func TestLoadHexSizes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"build-metrics-RAMNV1-Release-15.0/hex-sizes.txt": "ECUA=122880\nECUB=N/A\n",
		"build-metrics-RAMNV1-Debug-15.0/hex-sizes.txt":   "ECUA=131072\nECUB\n",
		"build-metrics-RAMNV1-Debug-15.0/build.log":       "log\n",
		"metrics/hex-sizes.txt":                           "ECUA=1\n",
		"build-metrics-RAMNV1-Release-14.2/other.txt":     "ECUA=1\n",
	} {
		fname := filepath.Join(dir, name)
		err := os.MkdirAll(filepath.Dir(fname), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(fname, []byte(content), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
	got, err := LoadHexSizes(ctx, dir)
	if err != nil {
		t.Fatalf("LoadHexSizes(ctx, %q)=_, %v; want nil err", dir, err)
	}
	want := HexSizes{
		{Conf: "Release", Tag: "15.0"}: {"ECUA": "122880", "ECUB": "N/A"},
		{Conf: "Debug", Tag: "15.0"}:   {"ECUA": "131072"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadHexSizes(ctx, %q) diff -want +got:\n%s", dir, diff)
	}
	if diff := cmp.Diff([]BuildKey{{"Debug", "15.0"}, {"Release", "15.0"}}, got.Keys()); diff != "" {
		t.Errorf("Keys() diff -want +got:\n%s", diff)
	}

	missing := filepath.Join(dir, "missing")
	got, err = LoadHexSizes(ctx, missing)
	if err != nil || len(got) != 0 {
		t.Errorf("LoadHexSizes(ctx, %q)=%v, %v; want empty, nil", missing, got, err)
	}
}

func TestRender(t *testing.T) {
	in := Input{
		Targets: []string{"TARGET_ECUA", "TARGET_ECUB"},
		HexSizes: HexSizes{
			{Conf: "Release", Tag: "15.0"}: {"ECUA": "122880", "ECUB": "N/A"},
			{Conf: "Debug", Tag: "15.0"}:   {"ECUA": "131072"},
		},
		Records: []variant.Record{
			{
				ECU:      "TARGET_ECUA",
				Variant:  "gsusb",
				Enable:   []string{"ENABLE_GSUSB"},
				Disable:  []string{"ENABLE_CDC"},
				Outcome:  "success",
				HexSize:  "125952",
				Warnings: "3",
			},
			{
				ECU:     "TARGET_ECUB",
				Variant: "broken",
				Outcome: "failure",
				HexSize: "N/A",
			},
		},
		Stats: Stats{TotalLines: 100, CompiledLines: 42, Percent: 42},
		Macros: &coverage.MacroReport{
			Macros: []coverage.MacroCoverage{
				{
					Macro:      "ENABLE_CDC",
					DefaultOn:  []string{"TARGET_ECUA"},
					DefaultOff: []string{"TARGET_ECUB"},
					VariantOff: []coverage.VariantRef{{ECU: "TARGET_ECUA", Variant: "gsusb"}},
				},
				{
					Macro:      "ENABLE_GSUSB",
					DefaultOff: []string{"TARGET_ECUA", "TARGET_ECUB"},
					VariantOn:  []coverage.VariantRef{{ECU: "TARGET_ECUA", Variant: "gsusb"}},
				},
				{
					Macro:     "WATCHDOG_ENABLE",
					DefaultOn: []string{"TARGET_ECUA", "TARGET_ECUB"},
				},
			},
		},
	}
	want := strings.Join([]string{
		"<!-- build-coverage-report -->",
		"# 🔨 Build & Macro Coverage Report",
		"",
		"## Default Builds — Hex File Sizes",
		"",
		"| ECU | Debug (tag 15.0) | Release (tag 15.0) |",
		"|-----|-----|-----|",
		"| ECUA | 128 KiB (131,072 bytes) | 120 KiB (122,880 bytes) |",
		"| ECUB | N/A | N/A |",
		"",
		"## Macro Coverage Build Results",
		"",
		"| ECU | Variant | Macros Changed | Result | Hex Size | Warnings |",
		"|-----|---------|----------------|--------|----------|----------|",
		"| `ECUA` | gsusb | +`ENABLE_GSUSB` −`ENABLE_CDC` | ✅ Pass | 123 KiB | 3 |",
		"| `ECUB` | broken |  | ❌ Fail | N/A | 0 |",
		"",
		"## Source Code Compile Coverage",
		"",
		"- **Total .c source lines:** 100",
		"- **Lines compiled in ≥1 configuration:** 42 (~42%)",
		"- **ENABLE_ macro coverage:** 2/3 (66.7%) macros tested in both ON and OFF states",
		"",
		"<details>",
		"<summary>Full ENABLE_ Macro Coverage Table</summary>",
		"",
		"| # | Macro | Tested ON | Tested OFF | Covered |",
		"|---|-------|-----------|------------|---------|",
		"| 1 | `ENABLE_CDC` | default (ECUA) | default (ECUB), variant: gsusb (ECUA) | ✅ |",
		"| 2 | `ENABLE_GSUSB` | variant: gsusb (ECUA) | default (ECUA, ECUB) | ✅ |",
		"| 3 | `WATCHDOG_ENABLE` | default (ECUA, ECUB) | — | ⬜ |",
		"",
		"</details>",
		"",
	}, "\n")

	var sb strings.Builder
	err := Render(&sb, in)
	if err != nil {
		t.Fatalf("Render(w, in)=%v; want nil err", err)
	}
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("Render(w, in) diff -want +got:\n%s", diff)
	}
}

func TestRenderEmpty(t *testing.T) {
	var sb strings.Builder
	err := Render(&sb, Input{Targets: []string{"TARGET_ECUA"}})
	if err != nil {
		t.Fatalf("Render(w, empty)=%v; want nil err", err)
	}
	for _, s := range []string{
		"| ECU | Release | Debug |\n|-----|---------|-------|\n\n",
		"- **ENABLE_ macro coverage:** 0/0 (0%) macros",
	} {
		if !strings.Contains(sb.String(), s) {
			t.Errorf("Render(w, empty)=%q; want to contain %q", sb.String(), s)
		}
	}
}
