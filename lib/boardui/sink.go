// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package boardui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/atomic"
)

// ProgramSink delivers messages into a bubbletea program that may not
// exist yet. Pages and the callback listener hold the sink from
// startup; SetProgram connects it once the program is created.
// Messages sent before that are dropped.
type ProgramSink struct {
	program *atomic.Pointer[tea.Program]
}

// NewProgramSink returns an unconnected sink.
func NewProgramSink() *ProgramSink {
	return &ProgramSink{program: atomic.NewPointer[tea.Program](nil)}
}

// SetProgram connects the sink. Safe to call from any goroutine.
func (sink *ProgramSink) SetProgram(program *tea.Program) {
	sink.program.Store(program)
}

// Send delivers msg. It blocks until the program accepts the message
// or has exited, so it must not be called from Update.
func (sink *ProgramSink) Send(msg tea.Msg) {
	if program := sink.program.Load(); program != nil {
		program.Send(msg)
	}
}

// post delivers msg without blocking the caller.
func (sink *ProgramSink) post(msg tea.Msg) {
	if program := sink.program.Load(); program != nil {
		go program.Send(msg)
	}
}
