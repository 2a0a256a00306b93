// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package macros

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	header := filepath.Join(dir, "ramn_config.h")
	err := os.WriteFile(header, []byte(`#ifndef INC_RAMN_CONFIG_H_
#define INC_RAMN_CONFIG_H_
#define WATCHDOG_ENABLE
#if defined(TARGET_ECUA)
#define ENABLE_USB
#endif
#endif
`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	c := &run{}
	c.init()
	err = c.Flags.Parse([]string{"-config", header, "-results", filepath.Join(dir, "missing")})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	err = c.run(ctx, nil, &out)
	if err != nil {
		t.Fatalf("run(ctx, nil)=%v; want nil err", err)
	}
	want := "| # | Macro | Tested ON | Tested OFF | Covered |\n" +
		"|---|-------|-----------|------------|---------|\n" +
		"| 1 | `ENABLE_USB` | default (ECUA) | default (ECUB, ECUC, ECUD) | ✅ |\n" +
		"| 2 | `WATCHDOG_ENABLE` | default (ECUA, ECUB, ECUC, ECUD) | — | ⬜ |\n" +
		"\n" +
		"1/2 (50.0%) macros tested in both ON and OFF states\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("run(ctx, nil) diff -want +got:\n%s", diff)
	}
}
