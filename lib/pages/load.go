// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/trello"
)

// loadedMsg delivers the result of a background reload. Location
// identifies the page instance that asked, so a result arriving after
// the user moved on is ignored.
type loadedMsg[T any] struct {
	Location string
	Value    T
	Err      error
}

// reload sends request on a new goroutine and posts the outcome to
// the render loop.
func reload[T any](ctx context.Context, resources router.Resources, location string, request *trello.Request[T]) {
	if resources.Events == nil {
		return
	}
	go func() {
		value, err := request.Send(ctx)
		resources.Events.Send(loadedMsg[T]{Location: location, Value: value, Err: err})
	}()
}
