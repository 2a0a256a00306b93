// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cppcond

// frame is a conditional block state on the stack.
type frame struct {
	// parentActive is true iff all enclosing blocks are active.
	parentActive bool
	// branchActive is true iff the current branch of this block is taken.
	branchActive bool
	// taken is true iff some branch of this block was already taken.
	taken bool
}

func (f frame) active() bool {
	return f.parentActive && f.branchActive
}

// Walker tracks conditional blocks line by line for a macro set.
// Zero value is not usable. Use NewWalker.
type Walker struct {
	macros MacroSet

	// stack[0] is the sentinel root frame, never popped.
	stack []frame
}

// NewWalker creates a walker for macros.
func NewWalker(macros MacroSet) *Walker {
	return &Walker{
		macros: macros,
		stack:  []frame{{parentActive: true, branchActive: true, taken: true}},
	}
}

func (w *Walker) top() frame {
	return w.stack[len(w.stack)-1]
}

func (w *Walker) push(f frame) {
	w.stack = append(w.stack, f)
}

// pop pops the top frame. It returns false if only the sentinel remains.
func (w *Walker) pop() (frame, bool) {
	if len(w.stack) <= 1 {
		return frame{}, false
	}
	f := w.top()
	w.stack = w.stack[:len(w.stack)-1]
	return f, true
}

// Depth returns the number of open conditional blocks.
func (w *Walker) Depth() int {
	return len(w.stack) - 1
}

// Step processes one line, and reports whether the line is compiled.
// Conditional directive lines are never reported as compiled.
func (w *Walker) Step(line string) bool {
	d := ParseDirective(line)
	switch d.Kind {
	case Ifdef, Ifndef:
		p := w.top().active()
		a := w.macros.Defined(d.Name)
		if d.Kind == Ifndef {
			a = !a
		}
		branch := p && a
		w.push(frame{parentActive: p, branchActive: branch, taken: branch})
	case If:
		p := w.top().active()
		// don't evaluate in excluded code, where
		// unknown expression would be true.
		a := p && Evaluate(d.Expr, w.macros)
		w.push(frame{parentActive: p, branchActive: a, taken: a})
	case Elif:
		f, ok := w.pop()
		if !ok {
			return false
		}
		a := false
		if !f.taken && f.parentActive {
			a = Evaluate(d.Expr, w.macros)
		}
		w.push(frame{parentActive: f.parentActive, branchActive: f.parentActive && a, taken: f.taken || a})
	case Else:
		f, ok := w.pop()
		if !ok {
			return false
		}
		w.push(frame{parentActive: f.parentActive, branchActive: f.parentActive && !f.taken, taken: true})
	case Endif:
		w.pop()
	default:
		return w.top().active()
	}
	return false
}

// IncludedLines returns line numbers (1-based, ascending) of lines
// compiled with macros.
func IncludedLines(lines []string, macros MacroSet) []int {
	var included []int
	w := NewWalker(macros)
	for i, line := range lines {
		if w.Step(line) {
			included = append(included, i+1)
		}
	}
	return included
}
