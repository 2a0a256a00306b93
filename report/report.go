// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package report renders build and macro coverage report in Markdown.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ramn-ci/condcov/coverage"
	"github.com/ramn-ci/condcov/variant"
)

// Marker is the first line of a report, used to find a report
// comment to update.
const Marker = "<!-- build-coverage-report -->"

// Stats is line coverage stats.
type Stats struct {
	TotalLines    int
	CompiledLines int
	Percent       int
}

// StatsOf returns stats of r.
func StatsOf(r *coverage.Result) Stats {
	return Stats{
		TotalLines:    r.TotalLines,
		CompiledLines: r.Covered(),
		Percent:       r.Percent(),
	}
}

// Input is an input of a report.
type Input struct {
	// Targets are target identifiers in declaration order.
	Targets []string

	HexSizes HexSizes
	Records  []variant.Record
	Stats    Stats
	Macros   *coverage.MacroReport
}

// ShortName returns a short name of target, e.g. "ECUA" for "TARGET_ECUA".
func ShortName(target string) string {
	return strings.TrimPrefix(target, "TARGET_")
}

// Render writes a report of in to w.
func Render(w io.Writer, in Input) error {
	var sb strings.Builder
	sb.WriteString(Marker + "\n")
	sb.WriteString("# 🔨 Build & Macro Coverage Report\n\n")
	sb.WriteString("## Default Builds — Hex File Sizes\n\n")
	sb.WriteString(hexSizeTable(in.Targets, in.HexSizes) + "\n\n")
	sb.WriteString("## Macro Coverage Build Results\n\n")
	sb.WriteString(variantTable(in.Records) + "\n\n")
	sb.WriteString("## Source Code Compile Coverage\n\n")
	fmt.Fprintf(&sb, "- **Total .c source lines:** %d\n", in.Stats.TotalLines)
	fmt.Fprintf(&sb, "- **Lines compiled in ≥1 configuration:** %d (~%d%%)\n", in.Stats.CompiledLines, in.Stats.Percent)
	macros := in.Macros
	if macros == nil {
		macros = &coverage.MacroReport{}
	}
	fmt.Fprintf(&sb, "- **ENABLE_ macro coverage:** %d/%d (%s%%) macros tested in both ON and OFF states\n\n",
		macros.Covered(), macros.Total(), formatPercent(macros))
	sb.WriteString("<details>\n")
	sb.WriteString("<summary>Full ENABLE_ Macro Coverage Table</summary>\n\n")
	sb.WriteString(macroTable(macros) + "\n\n")
	sb.WriteString("</details>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func formatPercent(r *coverage.MacroReport) string {
	if r.Total() == 0 {
		return "0"
	}
	return strconv.FormatFloat(r.Percent(), 'f', 1, 64)
}

func tableRow(cells ...string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func hexSizeTable(targets []string, sizes HexSizes) string {
	keys := sizes.Keys()
	if len(keys) == 0 {
		return "| ECU | Release | Debug |\n|-----|---------|-------|"
	}
	headers := []string{"ECU"}
	for _, k := range keys {
		headers = append(headers, fmt.Sprintf("%s (tag %s)", k.Conf, k.Tag))
	}
	lines := []string{
		tableRow(headers...),
		"|" + strings.Repeat("-----|", len(headers)),
	}
	for _, t := range targets {
		ecu := ShortName(t)
		row := []string{ecu}
		for _, k := range keys {
			size, ok := sizes[k][ecu]
			if !ok {
				size = "N/A"
			}
			row = append(row, formatSize(size))
		}
		lines = append(lines, tableRow(row...))
	}
	return strings.Join(lines, "\n")
}

// formatSize formats raw bytes as "N KiB (N bytes)".
func formatSize(raw string) string {
	if raw == "" || raw == "N/A" {
		return "N/A"
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return raw
	}
	return fmt.Sprintf("%s (%s bytes)", humanize.IBytes(uint64(n)), humanize.Comma(n))
}

func variantTable(records []variant.Record) string {
	lines := []string{
		"| ECU | Variant | Macros Changed | Result | Hex Size | Warnings |",
		"|-----|---------|----------------|--------|----------|----------|",
	}
	for _, r := range records {
		var changed []string
		for _, m := range r.Enable {
			changed = append(changed, "+`"+m+"`")
		}
		for _, m := range r.Disable {
			changed = append(changed, "−`"+m+"`")
		}
		result := "❌ Fail"
		if r.Passed() {
			result = "✅ Pass"
		}
		hexSize := "N/A"
		if r.HexSize != "" && r.HexSize != "N/A" {
			hexSize = r.HexSize
			if n, err := strconv.ParseInt(r.HexSize, 10, 64); err == nil && n >= 0 {
				hexSize = humanize.IBytes(uint64(n))
			}
		}
		warnings := r.Warnings
		if warnings == "" {
			warnings = "0"
		}
		lines = append(lines, tableRow(
			"`"+ShortName(r.ECU)+"`",
			r.Variant,
			strings.Join(changed, " "),
			result,
			hexSize,
			warnings,
		))
	}
	return strings.Join(lines, "\n")
}

func macroTable(r *coverage.MacroReport) string {
	lines := []string{
		"| # | Macro | Tested ON | Tested OFF | Covered |",
		"|---|-------|-----------|------------|---------|",
	}
	for i, m := range r.Macros {
		covered := "⬜"
		if m.Covered() {
			covered = "✅"
		}
		lines = append(lines, tableRow(
			strconv.Itoa(i+1),
			"`"+m.Macro+"`",
			testedDesc(m.DefaultOn, m.VariantOn),
			testedDesc(m.DefaultOff, m.VariantOff),
			covered,
		))
	}
	return strings.Join(lines, "\n")
}

func testedDesc(defaults []string, variants []coverage.VariantRef) string {
	var parts []string
	if len(defaults) > 0 {
		var ecus []string
		for _, t := range defaults {
			ecus = append(ecus, ShortName(t))
		}
		parts = append(parts, "default ("+strings.Join(ecus, ", ")+")")
	}
	for _, v := range variants {
		parts = append(parts, fmt.Sprintf("variant: %s (%s)", v.Variant, ShortName(v.ECU)))
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, ", ")
}

// RenderMacros writes a macro coverage table of r to w.
func RenderMacros(w io.Writer, r *coverage.MacroReport) error {
	_, err := fmt.Fprintf(w, "%s\n\n%d/%d (%s%%) macros tested in both ON and OFF states\n",
		macroTable(r), r.Covered(), r.Total(), formatPercent(r))
	return err
}
