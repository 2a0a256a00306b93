// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog provides context aware logging.
// It can store a trace (run id) and arbitrary labels to each context,
// e.g. the configuration and the source file being analyzed,
// and adds them to each log entry automatically.
//
// Entries are formatted as Cloud logging.Entry and written with glog.
package clog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/logging"
	"github.com/golang/glog"
)

type contextKeyType int

var contextKey contextKeyType

// DefaultFormatter formats an entry as "[trace k=v ...] payload".
// Empty trace and no labels results in just payload.
func DefaultFormatter(e logging.Entry) string {
	var prefix []string
	if e.Trace != "" {
		prefix = append(prefix, e.Trace)
	}
	keys := make([]string, 0, len(e.Labels))
	for k := range e.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		prefix = append(prefix, k+"="+e.Labels[k])
	}
	if len(prefix) == 0 {
		return fmt.Sprintf("%v", e.Payload)
	}
	return fmt.Sprintf("[%s] %v", strings.Join(prefix, " "), e.Payload)
}

var defaultLogger = &Logger{Formatter: DefaultFormatter}

// New creates a new Logger.
func New() *Logger {
	return &Logger{Formatter: DefaultFormatter}
}

// NewContext sets the given logger to the context.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// FromContext returns a logger in the context,
// or a default logger if it's not set.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey).(*Logger)
	if !ok || logger == nil {
		return defaultLogger
	}
	return logger
}

// WithTrace sets a logger with the trace to the context.
func WithTrace(ctx context.Context, trace string) context.Context {
	l := FromContext(ctx)
	return NewContext(ctx, &Logger{
		Formatter: l.Formatter,
		trace:     trace,
		labels:    l.labels,
	})
}

// WithLabels sets a logger with labels added to the labels
// in the context's logger.
func WithLabels(ctx context.Context, labels map[string]string) context.Context {
	l := FromContext(ctx)
	merged := make(map[string]string, len(l.labels)+len(labels))
	for k, v := range l.labels {
		merged[k] = v
	}
	for k, v := range labels {
		merged[k] = v
	}
	return NewContext(ctx, &Logger{
		Formatter: l.Formatter,
		trace:     l.trace,
		labels:    merged,
	})
}

// Logger holds the trace and arbitrary labels of the context.
type Logger struct {
	// Formatter is a formatter of the entry for glog.
	// Default to DefaultFormatter.
	Formatter func(e logging.Entry) string

	trace  string
	labels map[string]string
}

// Entry creates a new log entry for the given severity.
func (l *Logger) Entry(severity logging.Severity, payload any) logging.Entry {
	return logging.Entry{
		Timestamp: time.Now(),
		Severity:  severity,
		Payload:   payload,
		Labels:    l.labels,
		Trace:     l.trace,
	}
}

func (l *Logger) log(e logging.Entry) {
	format := l.Formatter
	if format == nil {
		format = DefaultFormatter
	}
	msg := format(e)
	switch e.Severity {
	case logging.Info:
		glog.InfoDepth(2, msg)
	case logging.Warning:
		glog.WarningDepth(2, msg)
	case logging.Error:
		glog.ErrorDepth(2, msg)
	default:
		glog.InfoDepth(2, fmt.Sprintf("%s %s", e.Severity, msg))
	}
}

// Infof logs at info log level in the manner of fmt.Printf.
func (l *Logger) Infof(format string, args ...any) {
	l.log(l.Entry(logging.Info, fmt.Sprintf(format, args...)))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func (l *Logger) Warningf(format string, args ...any) {
	l.log(l.Entry(logging.Warning, fmt.Sprintf(format, args...)))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func (l *Logger) Errorf(format string, args ...any) {
	l.log(l.Entry(logging.Error, fmt.Sprintf(format, args...)))
}

// Infof logs at info log level in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...any) {
	l := FromContext(ctx)
	l.log(l.Entry(logging.Info, fmt.Sprintf(format, args...)))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func Warningf(ctx context.Context, format string, args ...any) {
	l := FromContext(ctx)
	l.log(l.Entry(logging.Warning, fmt.Sprintf(format, args...)))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func Errorf(ctx context.Context, format string, args ...any) {
	l := FromContext(ctx)
	l.log(l.Entry(logging.Error, fmt.Sprintf(format, args...)))
}

// Flush flushes pending log entries.
func Flush() {
	glog.Flush()
}
