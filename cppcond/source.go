// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cppcond

import (
	"bytes"
)

// SourceFile is a source file read in memory.
type SourceFile struct {
	// Name identifies the file. Lines are keyed by name in coverage results.
	Name string

	Lines []string
}

// NewSourceFile creates a source file from buf.
// A newline at the end of buf doesn't make an extra empty line.
func NewSourceFile(name string, buf []byte) SourceFile {
	return SourceFile{
		Name:  name,
		Lines: SplitLines(buf),
	}
}

// SplitLines splits buf into lines without line terminators.
func SplitLines(buf []byte) []string {
	var lines []string
	for len(buf) > 0 {
		var line []byte
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			line = buf
			buf = nil
		} else {
			line = buf[:i]
			buf = buf[i+1:]
		}
		line = bytes.TrimSuffix(line, []byte("\r"))
		lines = append(lines, string(line))
	}
	return lines
}
