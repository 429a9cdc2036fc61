// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package router is trellminal's navigation engine. It maps string
// locations such as "/w/abc123/boards" to long-lived [Page] objects,
// drives their mount/unmount lifecycle, follows mount-time redirects,
// and keeps a non-empty history stack for backward navigation.
//
// A [Table] holds the registered patterns. Literal patterns live in an
// exact-match map; patterns containing ":name" segments are scanned in
// registration order and the first match wins. There is no specificity
// ranking.
//
// A [Router] serializes navigations behind one mutex that is held for
// the whole resolve, unmount, mount, and history update sequence,
// including any network I/O a page performs while mounting. The render
// loop never waits for that mutex: [Router.TryDraw] and
// [Router.TryUpdate] use TryLock and report false while a navigation
// is in flight, and the caller renders a loading view instead.
//
// Mount failures never escape as errors. A failure matching
// trello.ErrAuthExpired redirects to the session-expired route with the
// intended destination as a parameter; any other failure redirects to
// the error route carrying the error text; an unknown location
// resolves to the not-found route.
package router
