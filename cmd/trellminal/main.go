// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// trellminal is a terminal client for Trello. It signs in through the
// browser or a pasted token, keeps any number of accounts, and browses
// workspaces, boards, lists, and cards.
//
// Usage:
//
//	trellminal [--config FILE] [--store FILE] [--initial LOCATION] [--log-output FILE]
//	trellminal accounts [remove USERNAME]
//	trellminal version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
