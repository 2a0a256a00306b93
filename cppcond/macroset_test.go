// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cppcond

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMacroSet(t *testing.T) {
	m := NewMacroSet("B", "A", "")
	if diff := cmp.Diff([]string{"A", "B"}, m.Names()); diff != "" {
		t.Errorf("Names() diff -want +got:\n%s", diff)
	}
	u := m.Union(NewMacroSet("C"))
	if !u.Defined("C") || m.Defined("C") {
		t.Errorf("Union=%v, m=%v; want C only in union", u, m)
	}
	c := u.Clone()
	c.Remove("A")
	if !u.Defined("A") {
		t.Errorf("Clone shares storage: %v", u)
	}
	if u.Equal(c) {
		t.Errorf("%v.Equal(%v)=true; want false", u, c)
	}
	if got, want := u.String(), "{A B C}"; got != want {
		t.Errorf("String()=%q; want %q", got, want)
	}
}
