// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package event defines the non-keyboard messages that flow through
// the render loop: frame ticks and inbound callback-listener requests.
// Keyboard and window events are bubbletea's own messages.
package event

import (
	"sync"
	"time"
)

// TickMsg is delivered once per frame.
type TickMsg struct {
	Time time.Time
}

// Response is the reply a page gives to an inbound request.
type Response struct {
	Status      int
	ContentType string
	Body        string
}

// RequestMsg carries an HTTP request received by the local callback
// listener. The listener blocks until Respond is called (or its own
// timeout fires); only the first Respond call has any effect.
type RequestMsg struct {
	// URL is the request URL as received (path and query).
	URL string

	reply chan<- Response
	once  *sync.Once
}

// NewRequest returns a RequestMsg whose reply is delivered on reply.
// reply should be buffered so Respond never blocks.
func NewRequest(url string, reply chan<- Response) RequestMsg {
	return RequestMsg{URL: url, reply: reply, once: &sync.Once{}}
}

// Respond answers the request. Subsequent calls are ignored.
func (msg RequestMsg) Respond(status int, contentType, body string) {
	if msg.once == nil {
		return
	}
	msg.once.Do(func() {
		msg.reply <- Response{Status: status, ContentType: contentType, Body: body}
	})
}
