// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package coverage

import (
	"math"
	"slices"

	"github.com/ramn-ci/condcov/targetconfig"
	"github.com/ramn-ci/condcov/variant"
)

// VariantRef refers to a variant build.
type VariantRef struct {
	ECU     string
	Variant string
}

// MacroCoverage is a coverage of a macro's on and off states.
type MacroCoverage struct {
	Macro string

	// DefaultOn and DefaultOff are targets that enable or disable
	// the macro by default, in target order.
	DefaultOn  []string
	DefaultOff []string

	// VariantOn and VariantOff are variants that enable or disable
	// the macro, in record order.
	VariantOn  []VariantRef
	VariantOff []VariantRef
}

// TestedOn reports whether the macro is built enabled in some configuration.
func (m MacroCoverage) TestedOn() bool {
	return len(m.DefaultOn) > 0 || len(m.VariantOn) > 0
}

// TestedOff reports whether the macro is built disabled in some configuration.
func (m MacroCoverage) TestedOff() bool {
	return len(m.DefaultOff) > 0 || len(m.VariantOff) > 0
}

// Covered reports whether the macro is built in both states.
func (m MacroCoverage) Covered() bool {
	return m.TestedOn() && m.TestedOff()
}

// MacroReport is a coverage of macros.
type MacroReport struct {
	Macros []MacroCoverage
}

// Covered returns the number of covered macros.
func (r *MacroReport) Covered() int {
	n := 0
	for _, m := range r.Macros {
		if m.Covered() {
			n++
		}
	}
	return n
}

// Total returns the number of macros.
func (r *MacroReport) Total() int {
	return len(r.Macros)
}

// Percent returns covered macros in percent, rounded to one decimal.
// It returns 0 if there are no macros.
func (r *MacroReport) Percent() float64 {
	if len(r.Macros) == 0 {
		return 0
	}
	pct := float64(r.Covered()) * 100 / float64(len(r.Macros))
	return math.RoundToEven(pct*10) / 10
}

// ClassifyMacros classifies default states of macros and variant
// records into on and off states.
// A variant counts for a macro it names in enable or disable,
// regardless of the macro's default state in the variant's target.
func ClassifyMacros(states []targetconfig.MacroState, targets []string, records []variant.Record) *MacroReport {
	r := &MacroReport{}
	for _, s := range states {
		m := MacroCoverage{Macro: s.Macro}
		for _, t := range targets {
			if s.Enabled[t] {
				m.DefaultOn = append(m.DefaultOn, t)
			} else {
				m.DefaultOff = append(m.DefaultOff, t)
			}
		}
		for _, rec := range records {
			ref := VariantRef{ECU: rec.ECU, Variant: rec.Variant}
			if slices.Contains(rec.Enable, s.Macro) {
				m.VariantOn = append(m.VariantOn, ref)
			}
			if slices.Contains(rec.Disable, s.Macro) {
				m.VariantOff = append(m.VariantOff, ref)
			}
		}
		r.Macros = append(r.Macros, m)
	}
	return r
}
