// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package boardui

import (
	"context"
	"log/slog"
	"strings"
)

// logRecordMsg carries a log record into the model, which shows it as
// a status bar notice.
type logRecordMsg struct {
	// Summary is the one-line text for the status bar.
	Summary string

	// Level picks the notice color (warn vs error).
	Level slog.Level
}

// TUILogHandler is a slog.Handler that turns records into status bar
// notices. Records below the configured level are dropped, as are
// records that arrive before the sink is connected to a program.
//
// Handle never blocks: delivery happens on its own goroutine, so code
// running inside Update may log freely.
//
// Handlers derived via WithAttrs/WithGroup share the sink, so a single
// SetProgram call on it reaches every derived handler.
type TUILogHandler struct {
	level  slog.Level
	sink   *ProgramSink
	attrs  []slog.Attr
	groups []string
}

// NewTUILogHandler creates a handler that delivers records at or
// above level through sink.
func NewTUILogHandler(level slog.Level, sink *ProgramSink) *TUILogHandler {
	return &TUILogHandler{level: level, sink: sink}
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record and posts it to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	handler.sink.post(logRecordMsg{
		Summary: handler.summarize(record),
		Level:   record.Level,
	})
	return nil
}

// summarize builds "message (key=value, ...)". Group names prefix the
// record's own attributes.
func (handler *TUILogHandler) summarize(record slog.Record) string {
	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, attr.Key+"="+attr.Value.String())
	}
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, prefix+attr.Key+"="+attr.Value.String())
		return true
	})

	if len(attrParts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(attrParts, ", ") + ")"
}

// WithAttrs returns a new handler with the given attributes appended.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TUILogHandler{
		level:  handler.level,
		sink:   handler.sink,
		attrs:  append(sliceClone(handler.attrs), attrs...),
		groups: sliceClone(handler.groups),
	}
}

// WithGroup returns a new handler with the given group name appended.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	return &TUILogHandler{
		level:  handler.level,
		sink:   handler.sink,
		attrs:  sliceClone(handler.attrs),
		groups: append(sliceClone(handler.groups), name),
	}
}

// sliceClone returns a shallow copy of a slice so derived handlers
// never share a backing array.
func sliceClone[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}
