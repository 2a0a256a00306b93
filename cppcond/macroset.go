// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cppcond

import (
	"sort"
	"strings"
)

// MacroSet is a set of defined macro names for one compilation.
// Only defined macros are stored, with value true.
type MacroSet map[string]bool

// NewMacroSet creates a macro set of names.
func NewMacroSet(names ...string) MacroSet {
	m := make(MacroSet, len(names))
	for _, name := range names {
		m.Add(name)
	}
	return m
}

// Defined reports whether name is defined in m.
func (m MacroSet) Defined(name string) bool {
	return m[name]
}

// Add defines name. Empty name is ignored.
func (m MacroSet) Add(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		m[name] = true
	}
}

// Remove undefines names.
func (m MacroSet) Remove(names ...string) {
	for _, name := range names {
		delete(m, name)
	}
}

// Clone returns a copy of m.
func (m MacroSet) Clone() MacroSet {
	c := make(MacroSet, len(m))
	for name := range m {
		c[name] = true
	}
	return c
}

// Union returns a new set that has macros in m and all others.
func (m MacroSet) Union(others ...MacroSet) MacroSet {
	u := m.Clone()
	for _, o := range others {
		for name := range o {
			u[name] = true
		}
	}
	return u
}

// Equal reports whether m and o define the same macros.
func (m MacroSet) Equal(o MacroSet) bool {
	if len(m) != len(o) {
		return false
	}
	for name := range m {
		if !o[name] {
			return false
		}
	}
	return true
}

// Names returns sorted macro names.
func (m MacroSet) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m MacroSet) String() string {
	return "{" + strings.Join(m.Names(), " ") + "}"
}

// Origin is a provenance of a configuration.
type Origin int

const (
	// Base is a default configuration of a target.
	Base Origin = iota
	// Variant is a configuration derived from a base by macro deltas.
	Variant
)

func (o Origin) String() string {
	switch o {
	case Base:
		return "base"
	case Variant:
		return "variant"
	}
	return "unknown"
}

// Configuration is a named macro set.
type Configuration struct {
	// Name is a target identifier, e.g. TARGET_ECUA.
	Name string

	Origin Origin

	// Variant is a variant name if Origin is Variant.
	Variant string

	Macros MacroSet
}

func (c Configuration) String() string {
	if c.Origin == Variant {
		return c.Name + "/" + c.Variant
	}
	return c.Name
}
