// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package trello is a typed client for the subset of the Trello REST
// API that trellminal browses: the authenticated member, their
// organizations (workspaces), boards, lists, and cards.
//
// Every endpoint is exposed as a request builder on [Client] that
// returns a [Request]. Builders take the client's credential lock only
// long enough to snapshot the application key and user token into a
// URL; [Request.Send] performs the network call without holding any
// lock, so pages can issue requests while another goroutine re-authorizes
// the client.
//
// Errors from non-2xx responses are returned as *[APIError]. A 401
// response matches [ErrAuthExpired] under errors.Is, which is the one
// failure the navigation engine treats specially.
package trello
