// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package callback

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/clock"
	"github.com/trellminal/trellminal/lib/event"
	"github.com/trellminal/trellminal/lib/testutil"
)

// channelSink forwards every message to a channel.
type channelSink chan tea.Msg

func (sink channelSink) Send(msg tea.Msg) { sink <- msg }

func startServer(t *testing.T, sink Sink, clk clock.Clock) *Server {
	t.Helper()
	server, err := Start(Config{
		Address: "127.0.0.1:0",
		Sink:    sink,
		Clock:   clk,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { server.Close() })
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	response, err := http.Get(url)
	if err != nil {
		t.Errorf("GET %s: %v", url, err)
		return 0, ""
	}
	defer response.Body.Close()
	body, _ := io.ReadAll(response.Body)
	return response.StatusCode, string(body)
}

func TestForwardsTokenRequest(t *testing.T) {
	sink := make(channelSink, 1)
	server := startServer(t, sink, nil)

	type result struct {
		status int
		body   string
	}
	done := make(chan result, 1)
	go func() {
		status, body := get(t, server.URL("/token?token=abc&state=s1"))
		done <- result{status, body}
	}()

	msg := testutil.RequireReceive(t, sink, 5*time.Second, "request not forwarded")
	request, ok := msg.(event.RequestMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if request.URL != "/token?token=abc&state=s1" {
		t.Errorf("URL = %q", request.URL)
	}
	request.Respond(http.StatusOK, "text/html", "<p>done</p>")

	got := testutil.RequireReceive(t, done, 5*time.Second, "response not delivered")
	if got.status != http.StatusOK || got.body != "<p>done</p>" {
		t.Errorf("got %d %q", got.status, got.body)
	}
}

func TestUnknownPathIsNotForwarded(t *testing.T) {
	sink := make(channelSink, 1)
	server := startServer(t, sink, nil)

	status, _ := get(t, server.URL("/favicon.ico"))
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	select {
	case msg := <-sink:
		t.Errorf("unexpected forwarded message %v", msg)
	default:
	}
}

func TestUnansweredRequestTimesOut(t *testing.T) {
	sink := make(channelSink, 1)
	fake := clock.Fake(time.Unix(1700000000, 0))
	server := startServer(t, sink, fake)

	type result struct {
		status int
	}
	done := make(chan result, 1)
	go func() {
		response, err := http.Get(server.URL("/auth"))
		if err != nil {
			t.Errorf("GET: %v", err)
			done <- result{}
			return
		}
		response.Body.Close()
		done <- result{response.StatusCode}
	}()

	testutil.RequireReceive(t, sink, 5*time.Second, "request not forwarded")
	fake.WaitForTimers(1)
	fake.Advance(10 * time.Second)

	got := testutil.RequireReceive(t, done, 5*time.Second, "request did not time out")
	if got.status != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", got.status)
	}
}

func TestStartRequiresSink(t *testing.T) {
	if _, err := Start(Config{Address: "127.0.0.1:0"}); err == nil {
		t.Fatal("expected error without a sink")
	}
}
