// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package configedit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testHeader = `#ifndef INC_RAMN_CONFIG_H_
#define INC_RAMN_CONFIG_H_

#if defined(TARGET_ECUA)
#define ENABLE_USB
#define ENABLE_USB_DEBUG
	#define ENABLE_CDC 1
//#define ENABLE_GSUSB
// #define ENABLE_GSUSB_DEBUG
#endif

#endif
`

func TestToggle(t *testing.T) {
	for _, tc := range []struct {
		name        string
		enable      []string
		disable     []string
		want        string
		wantMissing []string
	}{
		{
			name: "noop",
			want: testHeader,
		},
		{
			name:    "disable",
			disable: []string{"ENABLE_USB", "ENABLE_CDC"},
			want: `#ifndef INC_RAMN_CONFIG_H_
#define INC_RAMN_CONFIG_H_

#if defined(TARGET_ECUA)
//#define ENABLE_USB
#define ENABLE_USB_DEBUG
	//#define ENABLE_CDC 1
//#define ENABLE_GSUSB
// #define ENABLE_GSUSB_DEBUG
#endif

#endif
`,
		},
		{
			name:   "enable",
			enable: []string{"ENABLE_GSUSB", "ENABLE_GSUSB_DEBUG"},
			want: `#ifndef INC_RAMN_CONFIG_H_
#define INC_RAMN_CONFIG_H_

#if defined(TARGET_ECUA)
#define ENABLE_USB
#define ENABLE_USB_DEBUG
	#define ENABLE_CDC 1
#define ENABLE_GSUSB
#define ENABLE_GSUSB_DEBUG
#endif

#endif
`,
		},
		{
			name:        "missing",
			enable:      []string{"ENABLE_USB", "ENABLE_KWP"},
			disable:     []string{"ENABLE_GSUSB", "ENABLE_US"},
			want:        testHeader,
			wantMissing: []string{"ENABLE_GSUSB", "ENABLE_US", "ENABLE_USB", "ENABLE_KWP"},
		},
		{
			name:    "swap",
			enable:  []string{"ENABLE_GSUSB"},
			disable: []string{"ENABLE_USB_DEBUG"},
			want: `#ifndef INC_RAMN_CONFIG_H_
#define INC_RAMN_CONFIG_H_

#if defined(TARGET_ECUA)
#define ENABLE_USB
//#define ENABLE_USB_DEBUG
	#define ENABLE_CDC 1
#define ENABLE_GSUSB
// #define ENABLE_GSUSB_DEBUG
#endif

#endif
`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, missing := Toggle([]byte(testHeader), tc.enable, tc.disable)
			if diff := cmp.Diff(tc.want, string(got)); diff != "" {
				t.Errorf("Toggle(_, %q, %q) diff -want +got:\n%s", tc.enable, tc.disable, diff)
			}
			if diff := cmp.Diff(tc.wantMissing, missing); diff != "" {
				t.Errorf("Toggle(_, %q, %q) missing diff -want +got:\n%s", tc.enable, tc.disable, diff)
			}
		})
	}
}

func TestDisableRuntimeStats(t *testing.T) {
	buf := []byte(`#define configUSE_TRACE_FACILITY 1
#define configGENERATE_RUN_TIME_STATS   1
#define portCONFIGURE_TIMER_FOR_RUN_TIME_STATS() RAMN_configureTimer()
#define portGET_RUN_TIME_COUNTER_VALUE() RAMN_getTimerValue()
`)
	want := `#define configUSE_TRACE_FACILITY 1
#define configGENERATE_RUN_TIME_STATS 0
// #define portCONFIGURE_TIMER_FOR_RUN_TIME_STATS() RAMN_configureTimer()
// #define portGET_RUN_TIME_COUNTER_VALUE() RAMN_getTimerValue()
`
	got := DisableRuntimeStats(buf)
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("DisableRuntimeStats diff -want +got:\n%s", diff)
	}
}

func TestSummary(t *testing.T) {
	got := Summary("TARGET_ECUA", "no-stats", []string{"ENABLE_GSUSB"}, []string{"GENERATE_RUNTIME_STATS"})
	want := "## Macro Coverage Build: `TARGET_ECUA` / `no-stats`\n\n" +
		"| Action | Macro |\n" +
		"|--------|-------|\n" +
		"| Disabled | `GENERATE_RUNTIME_STATS` |\n" +
		"| Disabled | `configGENERATE_RUN_TIME_STATS` (FreeRTOS) |\n" +
		"| Enabled | `ENABLE_GSUSB` |\n" +
		"\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summary diff -want +got:\n%s", diff)
	}
}
