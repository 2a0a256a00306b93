// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package cppcond provides forged C preprocessor conditional evaluation
// for compile coverage.
// Compared with a real preprocessor, it only models whether a macro is
// defined or not, and decides which lines of a source file are compiled
// for a given set of defined macros.
//
// It checks the following forms of directives
//
//	#ifdef FOO
//	#ifndef FOO
//	#if defined(FOO) && !defined(BAR)
//	#elif defined FOO || BAZ > 0
//	#else
//	#endif
//
// Macro values are never known, so an expression such as
//
//	#if LED_TEST_DURATION_MS > 0
//
// is treated as true. Code that might be compiled is counted as compiled.
//
// It doesn't allow multiline (\ at the end of line) for the directives,
// and doesn't check whether a directive is in a comment or string literal.
package cppcond
