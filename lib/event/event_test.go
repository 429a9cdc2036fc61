// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"testing"
	"time"

	"github.com/trellminal/trellminal/lib/testutil"
)

func TestRespondDeliversOnce(t *testing.T) {
	reply := make(chan Response, 1)
	msg := NewRequest("/token?token=abc", reply)

	msg.Respond(200, "text/html", "ok")
	msg.Respond(500, "text/plain", "ignored")

	got := testutil.RequireReceive(t, reply, time.Second)
	if got.Status != 200 || got.Body != "ok" {
		t.Errorf("got %+v, want first response", got)
	}
	select {
	case extra := <-reply:
		t.Errorf("unexpected second response %+v", extra)
	default:
	}
}

func TestRespondOnZeroValueIsNoop(t *testing.T) {
	var msg RequestMsg
	msg.Respond(200, "text/plain", "nothing to answer")
}
