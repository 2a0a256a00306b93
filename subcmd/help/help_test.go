// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package help

import (
	"flag"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteGlobalFlags(t *testing.T) {
	flagSet := flag.NewFlagSet("condcov", flag.ContinueOnError)
	flagSet.Bool("logtostderr", false, "log to standard error instead of files")
	flagSet.String("v", "0", "log level for V logs")

	var sb strings.Builder
	writeGlobalFlags(&sb, flagSet)
	want := "Global flags accepted by all commands:\n" +
		"  -logtostderr\n    \tlog to standard error instead of files\n" +
		"  -v\n    \tlog level for V logs (default \"0\")\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("writeGlobalFlags diff -want +got:\n%s", diff)
	}

	sb.Reset()
	writeGlobalFlags(&sb, nil)
	if sb.Len() != 0 {
		t.Errorf("writeGlobalFlags(nil)=%q; want empty", sb.String())
	}
}
