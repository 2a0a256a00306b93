// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cppcond

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDirective(t *testing.T) {
	for _, tc := range []struct {
		line string
		want Directive
	}{
		{line: "int x = 1;", want: Directive{Kind: Plain}},
		{line: "", want: Directive{Kind: Plain}},
		{line: "#ifdef FOO", want: Directive{Kind: Ifdef, Name: "FOO"}},
		{line: "  #  ifdef\tFOO // comment", want: Directive{Kind: Ifdef, Name: "FOO"}},
		{line: "#ifndef INC_RAMN_CONFIG_H_", want: Directive{Kind: Ifndef, Name: "INC_RAMN_CONFIG_H_"}},
		{line: "#ifdef", want: Directive{Kind: Ifdef}},
		{line: "#if defined(FOO) && !defined(BAR)", want: Directive{Kind: If, Expr: "defined(FOO) && !defined(BAR)"}},
		{line: "#if(defined(FOO))", want: Directive{Kind: If, Expr: "(defined(FOO))"}},
		{line: "#elif LED_TEST_DURATION_MS > 0", want: Directive{Kind: Elif, Expr: "LED_TEST_DURATION_MS > 0"}},
		{line: "#else", want: Directive{Kind: Else}},
		{line: "#else // !FOO", want: Directive{Kind: Else}},
		{line: "#endif /* FOO */", want: Directive{Kind: Endif}},
		{line: "#endif//FOO", want: Directive{Kind: Endif}},
		{line: "#define ENABLE_UDS", want: Directive{Kind: Define, Name: "ENABLE_UDS"}},
		{line: "#define MAX(a, b) ((a) > (b) ? (a) : (b))", want: Directive{Kind: Define, Name: "MAX"}},
		{line: "//#define ENABLE_GSUSB", want: Directive{Kind: CommentedDefine, Name: "ENABLE_GSUSB"}},
		{line: "\t// #define ENABLE_GSUSB //comment", want: Directive{Kind: CommentedDefine, Name: "ENABLE_GSUSB"}},
		{line: "// define ENABLE_GSUSB", want: Directive{Kind: Plain}},
		{line: "#include \"main.h\"", want: Directive{Kind: Plain}},
		{line: "#ifdefined FOO", want: Directive{Kind: Plain}},
		{line: "#endiffoo", want: Directive{Kind: Plain}},
		{line: "#define", want: Directive{Kind: Plain}},
	} {
		got := ParseDirective(tc.line)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("ParseDirective(%q) diff -want +got:\n%s", tc.line, diff)
		}
	}
}

func TestIdents(t *testing.T) {
	got := Idents("defined(TARGET_ECUA) && VALUE_2 > 10UL || !defined FOO")
	want := []string{"defined", "TARGET_ECUA", "VALUE_2", "defined", "FOO"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Idents diff -want +got:\n%s", diff)
	}
}
