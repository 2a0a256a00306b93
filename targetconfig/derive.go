// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package targetconfig

import "github.com/ramn-ci/condcov/cppcond"

// Diagnostic feature macros.
const (
	EnableUDS             = "ENABLE_UDS"
	EnableKWP             = "ENABLE_KWP"
	EnableXCP             = "ENABLE_XCP"
	EnableDiag            = "ENABLE_DIAG"
	EnableEEPROMEmulation = "ENABLE_EEPROM_EMULATION"
	EnableISOTP           = "ENABLE_ISOTP"
)

// Rule is a feature implication rule.
// If any of Any is defined, all of Implies are defined.
type Rule struct {
	Any     []string
	Implies []string
}

func (r Rule) matches(macros cppcond.MacroSet) bool {
	for _, name := range r.Any {
		if macros.Defined(name) {
			return true
		}
	}
	return false
}

// Rules is a set of implication rules.
type Rules []Rule

// DefaultRules are the rules of the diagnostic protocols, which share
// the diagnostics infrastructure, EEPROM emulation and ISO-TP.
var DefaultRules = Rules{
	{
		Any:     []string{EnableUDS, EnableKWP, EnableXCP},
		Implies: []string{EnableDiag, EnableEEPROMEmulation},
	},
	{
		Any:     []string{EnableUDS, EnableKWP},
		Implies: []string{EnableISOTP},
	},
}

// Implied returns all macros implied by rs.
func (rs Rules) Implied() cppcond.MacroSet {
	m := cppcond.NewMacroSet()
	for _, r := range rs {
		m.Add(r.Implies...)
	}
	return m
}

// Derive returns macros with implied macros re-derived.
// Implied macros are removed first, so turning a root macro off also
// turns off what it implied. Other macros are kept as is.
// Derive is idempotent.
func (rs Rules) Derive(macros cppcond.MacroSet) cppcond.MacroSet {
	d := macros.Clone()
	for _, r := range rs {
		d.Remove(r.Implies...)
	}
	for changed := true; changed; {
		changed = false
		for _, r := range rs {
			if !r.matches(d) {
				continue
			}
			for _, name := range r.Implies {
				if d.Defined(name) {
					continue
				}
				d.Add(name)
				changed = true
			}
		}
	}
	return d
}

// Derive derives macros by DefaultRules.
func Derive(macros cppcond.MacroSet) cppcond.MacroSet {
	return DefaultRules.Derive(macros)
}
