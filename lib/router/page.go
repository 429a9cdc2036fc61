// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/store"
	"github.com/trellminal/trellminal/lib/trello"
)

// EventSink delivers messages into the render loop from any goroutine.
// *tea.Program satisfies it.
type EventSink interface {
	Send(msg tea.Msg)
}

// Resources are the shared collaborators handed to every page call.
// Store and API guard themselves with their own short-lived locks.
type Resources struct {
	Store  *store.Store
	API    *trello.Client
	Events EventSink
}

// Area is the space a page may draw into.
type Area struct {
	Width  int
	Height int
}

// Page is a navigable screen. One instance exists per registered
// pattern for the life of the process, so state survives between
// visits unless Mount resets it.
//
// Mount and Unmount run on a navigation goroutine with the router
// locked and may block on network I/O. Draw and Update run on the
// render loop and are only called while the page is mounted; they must
// not block. Work started from Update reports back through
// Resources.Events.
type Page interface {
	Mount(ctx context.Context, resources Resources, params Params) (MountOperation, error)
	Unmount(ctx context.Context, resources Resources)
	Draw(area Area) string
	Update(ctx context.Context, msg tea.Msg, resources Resources) Operation
}

// Phase is a page's lifecycle state.
type Phase int

const (
	PhaseUnmounted Phase = iota
	PhaseMounting
	PhaseMounted
	PhaseUnmounting
)

func (phase Phase) String() string {
	switch phase {
	case PhaseUnmounted:
		return "unmounted"
	case PhaseMounting:
		return "mounting"
	case PhaseMounted:
		return "mounted"
	case PhaseUnmounting:
		return "unmounting"
	default:
		return "unknown"
	}
}
