// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package pages implements every screen of the application as a
// [router.Page] and registers them under their locations.
//
// Pages that need Trello data fetch it in Mount, so the router's
// loading view covers the network round trip and a failed fetch is
// rerouted by the router (an expired token to the session-expired
// screen, anything else to the error screen). Refreshing a mounted
// page runs in a goroutine that reports back through
// Resources.Events with a loadedMsg.
//
// Locations:
//
//	/                              Home (redirects only)
//	/first_load                    FirstLoad
//	/authenticate                  Authenticate
//	/authenticate/browser          BrowserAuthenticate
//	/authenticate/manual           ManualAuthenticate
//	/authenticate/token/:token     VerifyToken (redirects only)
//	/switch_account                SwitchAccount
//	/workspaces                    Workspaces
//	/w/:w/boards                   Boards
//	/b/:board                      Board
//	/c/:card                       Card
//	/help                          Help
//	/session_expired/:destination  SessionExpired
//	/error/:description            Error
//	/404                           NotFound
package pages
