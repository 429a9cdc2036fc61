// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package boardui is the terminal render loop: a bubbletea model that
// owns the status bar, forwards events to the page the router has
// mounted, and runs navigations in the background.
//
// Every bubbletea message passes through Model.Update on the program's
// event goroutine. Keys go to the status bar first and reach the page
// only when the status bar does not consume them. Frame ticks and
// inbound callback requests go straight to the page. A page's
// Operation is carried out by the loop: Navigate and NavigateBackward
// become commands, so the router's lock is taken on a command
// goroutine and the loop keeps drawing (a loading view, while the
// router is busy) and keeps accepting input.
//
// The loop never blocks on the router. Draws and page updates use the
// router's Try methods; when a navigation holds the lock, draws fall
// back to the loading view and page-bound events are dropped.
//
// While the program owns the terminal, log records reach the user
// through TUILogHandler, which turns them into status bar notices.
package boardui
