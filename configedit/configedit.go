// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package configedit edits configuration headers for variant builds.
package configedit

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

const (
	// RuntimeStatsMacro enables FreeRTOS runtime stats.
	RuntimeStatsMacro = "GENERATE_RUNTIME_STATS"

	// FreeRTOSConfigFile is a FreeRTOS config header next to
	// the configuration header.
	FreeRTOSConfigFile = "FreeRTOSConfig.h"
)

// Toggle comments out "#define M" lines for macros in disable, and
// uncomments "//#define M" lines for macros in enable.
// Disabling is applied before enabling.
// It returns the edited buf, and macros that matched no line.
func Toggle(buf []byte, enable, disable []string) ([]byte, []string) {
	var missing []string
	for _, macro := range disable {
		re := regexp.MustCompile(`(?m)^([ \t]*)#define([ \t]+)` + regexp.QuoteMeta(macro) + `([^A-Za-z0-9_]|$)`)
		if !re.Match(buf) {
			missing = append(missing, macro)
			continue
		}
		buf = re.ReplaceAll(buf, []byte("${1}//#define${2}"+macro+"${3}"))
	}
	for _, macro := range enable {
		re := regexp.MustCompile(`(?m)^([ \t]*)//[ \t]*#define([ \t]+)` + regexp.QuoteMeta(macro) + `([^A-Za-z0-9_]|$)`)
		if !re.Match(buf) {
			missing = append(missing, macro)
			continue
		}
		buf = re.ReplaceAll(buf, []byte("${1}#define${2}"+macro+"${3}"))
	}
	return buf, missing
}

var (
	runtimeStatsRE   = regexp.MustCompile(`#define configGENERATE_RUN_TIME_STATS\s+1`)
	timerForStatsRE  = regexp.MustCompile(`(?m)^#define portCONFIGURE_TIMER_FOR_RUN_TIME_STATS`)
	runtimeCounterRE = regexp.MustCompile(`(?m)^#define portGET_RUN_TIME_COUNTER_VALUE`)
)

// DisableRuntimeStats edits FreeRTOSConfig.h to build without
// runtime stats.
// configGENERATE_RUN_TIME_STATS is set to 0, and the runtime stats
// port macros are commented out.
func DisableRuntimeStats(buf []byte) []byte {
	buf = runtimeStatsRE.ReplaceAll(buf, []byte("#define configGENERATE_RUN_TIME_STATS 0"))
	buf = timerForStatsRE.ReplaceAll(buf, []byte("// #define portCONFIGURE_TIMER_FOR_RUN_TIME_STATS"))
	buf = runtimeCounterRE.ReplaceAll(buf, []byte("// #define portGET_RUN_TIME_COUNTER_VALUE"))
	return buf
}

// NeedsRuntimeStatsPatch reports whether FreeRTOSConfig.h needs
// DisableRuntimeStats for disable.
func NeedsRuntimeStatsPatch(disable []string) bool {
	return slices.Contains(disable, RuntimeStatsMacro)
}

// Summary returns a Markdown summary of a variant build's config edit.
func Summary(ecu, variant string, enable, disable []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Macro Coverage Build: `%s` / `%s`\n\n", ecu, variant)
	sb.WriteString("| Action | Macro |\n")
	sb.WriteString("|--------|-------|\n")
	for _, macro := range disable {
		fmt.Fprintf(&sb, "| Disabled | `%s` |\n", macro)
	}
	if NeedsRuntimeStatsPatch(disable) {
		sb.WriteString("| Disabled | `configGENERATE_RUN_TIME_STATS` (FreeRTOS) |\n")
	}
	for _, macro := range enable {
		fmt.Fprintf(&sb, "| Enabled | `%s` |\n", macro)
	}
	sb.WriteString("\n")
	return sb.String()
}
