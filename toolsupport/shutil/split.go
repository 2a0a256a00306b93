// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package shutil provides shell command line utilities.
package shutil

import (
	"fmt"
	"strings"
)

// Split splits a command line into arguments, as a POSIX shell would
// for a simple command.
// Double quotes group words, and backslash escapes the next character.
// It returns an error for a command line with other shell
// metacharacters, e.g. pipe, redirect, or variable expansion.
func Split(cmdline string) ([]string, error) {
	var args []string
	var sb strings.Builder
	inArg := false
	inQuote := false
	escaped := false
	for _, ch := range cmdline {
		switch {
		case escaped:
			sb.WriteRune(ch)
			escaped = false
			continue
		case ch == '\\':
			escaped = true
			inArg = true
			continue
		case inQuote:
			if ch == '"' {
				inQuote = false
				continue
			}
			sb.WriteRune(ch)
			continue
		}
		switch ch {
		case '"':
			inQuote = true
			inArg = true
		case ' ', '\t', '\n':
			if inArg {
				args = append(args, sb.String())
				sb.Reset()
				inArg = false
			}
		case ';', '&', '|', '<', '>', '$', '#', '`', '\'':
			return nil, fmt.Errorf("failed to split %q: shell metachar %c", cmdline, ch)
		default:
			sb.WriteRune(ch)
			inArg = true
		}
	}
	if escaped || inQuote {
		return nil, fmt.Errorf("failed to split %q: unterminated escape or quote", cmdline)
	}
	if inArg {
		args = append(args, sb.String())
	}
	return args, nil
}
