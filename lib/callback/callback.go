// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package callback runs the short-lived local HTTP listener that
// completes browser login. Trello redirects the browser to /auth with
// the token in the URL fragment; the page served there posts the
// fragment back as a /token query. Both requests are handed to the
// render loop as [event.RequestMsg] values and answered by the active
// page.
package callback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/mux"

	"github.com/trellminal/trellminal/lib/clock"
	"github.com/trellminal/trellminal/lib/event"
)

// Sink receives requests as render-loop messages.
type Sink interface {
	Send(msg tea.Msg)
}

// Config configures a Server.
type Config struct {
	// Address is the host:port to bind. Port 0 picks a free port.
	Address string

	// ReplyTimeout bounds how long a request waits for the UI to
	// respond before the browser gets a 504. Default: 10s.
	ReplyTimeout time.Duration

	// Sink receives every accepted request. Required.
	Sink Sink

	// Clock drives the reply timeout. Default: clock.Real().
	Clock clock.Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server is a running callback listener.
type Server struct {
	listener net.Listener
	server   *http.Server
	config   Config
	done     chan struct{}
}

// Start binds the listener and begins serving in the background.
func Start(config Config) (*Server, error) {
	if config.Sink == nil {
		return nil, fmt.Errorf("callback: sink is required")
	}
	if config.ReplyTimeout <= 0 {
		config.ReplyTimeout = 10 * time.Second
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	listener, err := net.Listen("tcp", config.Address)
	if err != nil {
		return nil, fmt.Errorf("callback: listening on %s: %w", config.Address, err)
	}

	server := &Server{
		listener: listener,
		config:   config,
		done:     make(chan struct{}),
	}
	server.server = &http.Server{
		Handler:           server.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		defer close(server.done)
		if err := server.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Error("callback listener stopped", "error", err)
		}
	}()
	config.Logger.Debug("callback listener started", "address", listener.Addr().String())
	return server, nil
}

func (server *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/auth", server.forward).Methods(http.MethodGet)
	router.HandleFunc("/token", server.forward).Methods(http.MethodGet)
	return router
}

// Addr returns the bound address.
func (server *Server) Addr() string {
	return server.listener.Addr().String()
}

// URL returns the absolute URL of path on this listener.
func (server *Server) URL(path string) string {
	return "http://" + server.Addr() + path
}

// Close stops the listener, giving in-flight requests a moment to
// finish.
func (server *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := server.server.Shutdown(ctx)
	<-server.done
	return err
}

// forward hands the request to the render loop and waits for the
// page's reply.
func (server *Server) forward(writer http.ResponseWriter, request *http.Request) {
	reply := make(chan event.Response, 1)
	server.config.Sink.Send(event.NewRequest(request.URL.RequestURI(), reply))

	select {
	case response := <-reply:
		contentType := response.ContentType
		if contentType == "" {
			contentType = "text/plain; charset=utf-8"
		}
		writer.Header().Set("Content-Type", contentType)
		writer.Header().Set("Cache-Control", "no-store")
		writer.WriteHeader(response.Status)
		writer.Write([]byte(response.Body))
	case <-server.config.Clock.After(server.config.ReplyTimeout):
		server.config.Logger.Warn("callback request unanswered", "path", request.URL.Path)
		http.Error(writer, "trellminal did not answer in time", http.StatusGatewayTimeout)
	case <-request.Context().Done():
	}
}
