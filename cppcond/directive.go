// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cppcond

import "strings"

// Kind is a kind of source line.
type Kind int

// Kinds of source lines.
const (
	Plain Kind = iota
	Ifdef
	Ifndef
	If
	Elif
	Else
	Endif
	Define
	CommentedDefine
)

var kindNames = [...]string{
	Plain:           "plain",
	Ifdef:           "ifdef",
	Ifndef:          "ifndef",
	If:              "if",
	Elif:            "elif",
	Else:            "else",
	Endif:           "endif",
	Define:          "define",
	CommentedDefine: "commented-define",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Directive is a classified source line.
type Directive struct {
	Kind Kind

	// Name is a macro name of Ifdef, Ifndef, Define and CommentedDefine.
	Name string

	// Expr is a condition expression of If and Elif.
	Expr string
}

// Conditional reports whether d is a conditional directive
// (#ifdef, #ifndef, #if, #elif, #else or #endif).
func (d Directive) Conditional() bool {
	switch d.Kind {
	case Ifdef, Ifndef, If, Elif, Else, Endif:
		return true
	}
	return false
}

// Opens reports whether d opens a new conditional block.
func (d Directive) Opens() bool {
	switch d.Kind {
	case Ifdef, Ifndef, If:
		return true
	}
	return false
}

// ParseDirective classifies a source line.
//
// The directive keyword is the identifier right after '#' (spaces
// between '#' and the keyword are allowed), so "#endif // FOO" is Endif
// and "#ifdefined" is Plain.
// "//#define FOO" and "// #define FOO" are CommentedDefine.
// Directives other than conditionals and #define are Plain.
func ParseDirective(line string) Directive {
	s := strings.TrimSpace(line)
	if rest, ok := strings.CutPrefix(s, "//"); ok {
		rest = strings.TrimSpace(rest)
		if !strings.HasPrefix(rest, "#") {
			return Directive{Kind: Plain}
		}
		kw, arg := splitKeyword(rest[1:])
		if kw != "define" {
			return Directive{Kind: Plain}
		}
		name := leadingIdent(arg)
		if name == "" {
			return Directive{Kind: Plain}
		}
		return Directive{Kind: CommentedDefine, Name: name}
	}
	if !strings.HasPrefix(s, "#") {
		return Directive{Kind: Plain}
	}
	kw, arg := splitKeyword(s[1:])
	switch kw {
	case "ifdef":
		return Directive{Kind: Ifdef, Name: leadingIdent(arg)}
	case "ifndef":
		return Directive{Kind: Ifndef, Name: leadingIdent(arg)}
	case "if":
		return Directive{Kind: If, Expr: strings.TrimSpace(arg)}
	case "elif":
		return Directive{Kind: Elif, Expr: strings.TrimSpace(arg)}
	case "else":
		return Directive{Kind: Else}
	case "endif":
		return Directive{Kind: Endif}
	case "define":
		name := leadingIdent(arg)
		if name == "" {
			return Directive{Kind: Plain}
		}
		return Directive{Kind: Define, Name: name}
	}
	return Directive{Kind: Plain}
}

// splitKeyword splits s (text after '#') into the directive keyword and
// the rest.
func splitKeyword(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	i := 0
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func leadingIdent(s string) string {
	s = strings.TrimLeft(s, " \t")
	if s == "" || !isIdentStart(s[0]) {
		return ""
	}
	i := 1
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i]
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || ('0' <= ch && ch <= '9')
}

// Idents returns identifiers that appear in s, in order.
// Numbers are not identifiers.
func Idents(s string) []string {
	var idents []string
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case isIdentStart(ch):
			j := i + 1
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			idents = append(idents, s[i:j])
			i = j
		case isIdentChar(ch):
			// skip number literal, including suffix like 10UL.
			j := i + 1
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			i = j
		default:
			i++
		}
	}
	return idents
}
