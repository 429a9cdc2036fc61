// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for testability.
//
// Code that waits on wall-clock time (the callback listener's reply
// timeout, the loading view's elapsed counter, account timestamps)
// accepts a [Clock] instead of calling the time package directly.
// Production wiring passes [Real]; tests pass [Fake] and move time
// forward explicitly with Advance.
//
// Use WaitForTimers before Advance when another goroutine is about to
// register a timer: it removes the race between registration and the
// advance that would otherwise make the test flaky.
package clock
