// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cppcond

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Evaluate evaluates the condition expression of #if or #elif with macros.
// It returns true if the expression can't be determined, e.g. it refers
// a macro value, or it is not a supported expression.
func Evaluate(expr string, macros MacroSet) bool {
	v, known := EvaluateKnown(expr, macros)
	if !known {
		return true
	}
	return v
}

// EvaluateKnown evaluates expr with macros, and reports whether
// the result is determined only by which macros are defined.
func EvaluateKnown(expr string, macros MacroSet) (bool, bool) {
	toks, err := tokenize(expr)
	if err != nil {
		return false, false
	}
	p := &exprParser{toks: toks, macros: macros}
	v, err := p.parse()
	if err != nil {
		return false, false
	}
	if !v.known {
		return false, false
	}
	return v.n != 0, true
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	n    int64
}

var errSyntax = errors.New("syntax error")

// operators sorted so that longer one matches first.
var operators = []string{
	"||", "&&", "==", "!=", "<=", ">=", "<<", ">>",
	"!", "~", "-", "+", "*", "/", "%", "<", ">", "&", "|", "^", "?", ":", "(", ")",
}

func tokenize(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\v' || ch == '\f':
			i++
			continue
		case strings.HasPrefix(s[i:], "//"):
			i = len(s)
			continue
		case strings.HasPrefix(s[i:], "/*"):
			j := strings.Index(s[i+2:], "*/")
			if j < 0 {
				i = len(s)
				continue
			}
			i += 2 + j + 2
			continue
		case isIdentStart(ch):
			j := i + 1
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: s[i:j]})
			i = j
			continue
		case '0' <= ch && ch <= '9':
			j := i + 1
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			n, err := parseIntLiteral(s[i:j])
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokNumber, text: s[i:j], n: n})
			i = j
			continue
		}
		matched := false
		for _, op := range operators {
			if strings.HasPrefix(s[i:], op) {
				toks = append(toks, token{kind: tokOp, text: op})
				i += len(op)
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("unexpected %q: %w", ch, errSyntax)
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

// parseIntLiteral parses an integer literal in decimal, octal, or hex form, ignoring C suffixes.
func parseIntLiteral(tok string) (int64, error) {
	tok = strings.TrimRightFunc(tok, func(r rune) bool {
		return r == 'u' || r == 'U' || r == 'l' || r == 'L'
	})
	n, err := strconv.ParseInt(tok, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", tok, errSyntax)
	}
	return n, nil
}

// value is a value of an expression.
// known is false when the value depends on a macro value.
type value struct {
	n     int64
	known bool
}

var unknown = value{}

func known(n int64) value {
	return value{n: n, known: true}
}

func knownBool(b bool) value {
	if b {
		return known(1)
	}
	return known(0)
}

func (v value) isTrue() bool  { return v.known && v.n != 0 }
func (v value) isFalse() bool { return v.known && v.n == 0 }

var binaryPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6,
	"<": 7, "<=": 7, ">": 7, ">=": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

type exprParser struct {
	toks   []token
	pos    int
	macros MacroSet
}

func (p *exprParser) peek() token {
	return p.toks[p.pos]
}

func (p *exprParser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *exprParser) isOp(op string) bool {
	tok := p.peek()
	return tok.kind == tokOp && tok.text == op
}

func (p *exprParser) expect(op string) error {
	if !p.isOp(op) {
		return fmt.Errorf("want %q, got %q: %w", op, p.peek().text, errSyntax)
	}
	p.next()
	return nil
}

func (p *exprParser) parse() (value, error) {
	v, err := p.conditional()
	if err != nil {
		return unknown, err
	}
	if p.peek().kind != tokEOF {
		return unknown, fmt.Errorf("extra token %q: %w", p.peek().text, errSyntax)
	}
	return v, nil
}

// conditional parses "cond ? a : b".
func (p *exprParser) conditional() (value, error) {
	cond, err := p.binary(1)
	if err != nil {
		return unknown, err
	}
	if !p.isOp("?") {
		return cond, nil
	}
	p.next()
	a, err := p.conditional()
	if err != nil {
		return unknown, err
	}
	err = p.expect(":")
	if err != nil {
		return unknown, err
	}
	b, err := p.conditional()
	if err != nil {
		return unknown, err
	}
	switch {
	case cond.isTrue():
		return a, nil
	case cond.isFalse():
		return b, nil
	case a.known && b.known && a.n == b.n:
		return a, nil
	}
	return unknown, nil
}

// binary parses binary operators by precedence climbing.
func (p *exprParser) binary(minPrec int) (value, error) {
	lhs, err := p.unary()
	if err != nil {
		return unknown, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokOp {
			return lhs, nil
		}
		prec, ok := binaryPrec[tok.text]
		if !ok || prec < minPrec {
			return lhs, nil
		}
		p.next()
		rhs, err := p.binary(prec + 1)
		if err != nil {
			return unknown, err
		}
		lhs = applyBinary(tok.text, lhs, rhs)
	}
}

func applyBinary(op string, l, r value) value {
	switch op {
	case "||":
		if l.isTrue() || r.isTrue() {
			return known(1)
		}
		if l.known && r.known {
			return known(0)
		}
		return unknown
	case "&&":
		if l.isFalse() || r.isFalse() {
			return known(0)
		}
		if l.known && r.known {
			return known(1)
		}
		return unknown
	}
	if !l.known || !r.known {
		return unknown
	}
	a, b := l.n, r.n
	switch op {
	case "|":
		return known(a | b)
	case "^":
		return known(a ^ b)
	case "&":
		return known(a & b)
	case "==":
		return knownBool(a == b)
	case "!=":
		return knownBool(a != b)
	case "<":
		return knownBool(a < b)
	case "<=":
		return knownBool(a <= b)
	case ">":
		return knownBool(a > b)
	case ">=":
		return knownBool(a >= b)
	case "<<":
		if b < 0 || b >= 64 {
			return unknown
		}
		return known(a << uint(b))
	case ">>":
		if b < 0 || b >= 64 {
			return unknown
		}
		return known(a >> uint(b))
	case "+":
		return known(a + b)
	case "-":
		return known(a - b)
	case "*":
		return known(a * b)
	case "/":
		if b == 0 {
			return unknown
		}
		return known(a / b)
	case "%":
		if b == 0 {
			return unknown
		}
		return known(a % b)
	}
	return unknown
}

func (p *exprParser) unary() (value, error) {
	tok := p.peek()
	if tok.kind == tokOp {
		switch tok.text {
		case "!", "-", "+", "~":
			p.next()
			v, err := p.unary()
			if err != nil {
				return unknown, err
			}
			if !v.known {
				return unknown, nil
			}
			switch tok.text {
			case "!":
				return knownBool(v.n == 0), nil
			case "-":
				return known(-v.n), nil
			case "~":
				return known(^v.n), nil
			}
			return v, nil
		}
	}
	return p.primary()
}

func (p *exprParser) primary() (value, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return known(tok.n), nil
	case tokIdent:
		if tok.text == "defined" {
			return p.defined()
		}
		// macro value is not known.
		return unknown, nil
	case tokOp:
		if tok.text == "(" {
			v, err := p.conditional()
			if err != nil {
				return unknown, err
			}
			err = p.expect(")")
			if err != nil {
				return unknown, err
			}
			return v, nil
		}
	}
	return unknown, fmt.Errorf("unexpected %q: %w", tok.text, errSyntax)
}

// defined parses "defined(NAME)" or "defined NAME" after "defined".
func (p *exprParser) defined() (value, error) {
	paren := p.isOp("(")
	if paren {
		p.next()
	}
	tok := p.next()
	if tok.kind != tokIdent {
		return unknown, fmt.Errorf("defined: want identifier, got %q: %w", tok.text, errSyntax)
	}
	if paren {
		err := p.expect(")")
		if err != nil {
			return unknown, err
		}
	}
	return knownBool(p.macros.Defined(tok.text)), nil
}
