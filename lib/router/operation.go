// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package router

import "fmt"

// OperationKind tags an Operation.
type OperationKind int

const (
	// OperationNone lets the event continue to the next handler.
	OperationNone OperationKind = iota
	// OperationNavigate moves to Operation.Location.
	OperationNavigate
	// OperationNavigateBackward returns to the previous location.
	OperationNavigateBackward
	// OperationConsume stops the event with no further effect.
	OperationConsume
	// OperationExit quits the application.
	OperationExit
)

func (kind OperationKind) String() string {
	switch kind {
	case OperationNone:
		return "none"
	case OperationNavigate:
		return "navigate"
	case OperationNavigateBackward:
		return "navigate_backward"
	case OperationConsume:
		return "consume"
	case OperationExit:
		return "exit"
	default:
		return fmt.Sprintf("operation(%d)", int(kind))
	}
}

// Operation is the outcome of handling one event. The zero value is
// OperationNone.
type Operation struct {
	Kind     OperationKind
	Location string
}

// Navigate returns an operation moving to location.
func Navigate(location string) Operation {
	return Operation{Kind: OperationNavigate, Location: location}
}

// NavigateBackward returns an operation moving back one history entry.
func NavigateBackward() Operation {
	return Operation{Kind: OperationNavigateBackward}
}

// Consume returns an operation that swallows the event.
func Consume() Operation {
	return Operation{Kind: OperationConsume}
}

// Exit returns an operation that quits the application.
func Exit() Operation {
	return Operation{Kind: OperationExit}
}

func (operation Operation) String() string {
	if operation.Kind == OperationNavigate {
		return "navigate(" + operation.Location + ")"
	}
	return operation.Kind.String()
}

// MountOperation is the outcome of a successful mount. The zero value
// keeps the mounted page; a non-empty RedirectTo continues navigation
// to that location.
type MountOperation struct {
	RedirectTo string
}

// Redirect returns a MountOperation continuing navigation to location.
func Redirect(location string) MountOperation {
	return MountOperation{RedirectTo: location}
}

// IsRedirect reports whether the mount asked for a redirect.
func (operation MountOperation) IsRedirect() bool {
	return operation.RedirectTo != ""
}
