// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/trello"
)

// Default reserved locations.
const (
	DefaultNotFound       = "/404"
	DefaultSessionExpired = "/session_expired"
	DefaultError          = "/error"
	DefaultMaxRedirects   = 16
)

// Config configures a Router.
type Config struct {
	// NotFound is the literal location used for unresolvable targets.
	// It must be registered. Default: /404.
	NotFound string

	// SessionExpired is the base of the route that receives the
	// intended destination after an authentication failure, registered
	// as SessionExpired + "/:destination". Default: /session_expired.
	SessionExpired string

	// Error is the base of the route that shows other mount failures,
	// registered as Error + "/:description". Default: /error.
	Error string

	// MaxRedirects bounds mount-time redirect hops within one
	// navigation. Default: 16.
	MaxRedirects int

	// Logger receives navigation diagnostics. Default: slog.Default().
	Logger *slog.Logger
}

// navigationMode controls how failures inside a navigation are handled.
type navigationMode int

const (
	// modeFollow follows redirects and reroutes failures.
	modeFollow navigationMode = iota
	// modeTerminal mounts once and stops, whatever the outcome. Used
	// for the error route itself so a broken error page cannot loop.
	modeTerminal
)

// Router owns the route table, the history stack, and the active page.
// All navigation is serialized by mu, which stays locked across page
// Mount and Unmount calls.
type Router struct {
	table     *Table
	resources Resources
	config    Config
	logger    *slog.Logger

	mu      sync.Mutex
	history *History
	active  Page
	phase   Phase
	mounted string
}

// New creates a Router whose history holds only initial. Nothing is
// mounted until Start or Navigate is called. New fails when the
// not-found location is not registered in table.
func New(table *Table, initial string, resources Resources, config Config) (*Router, error) {
	if config.NotFound == "" {
		config.NotFound = DefaultNotFound
	}
	if config.SessionExpired == "" {
		config.SessionExpired = DefaultSessionExpired
	}
	if config.Error == "" {
		config.Error = DefaultError
	}
	if config.MaxRedirects <= 0 {
		config.MaxRedirects = DefaultMaxRedirects
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if !table.Contains(config.NotFound) {
		return nil, fmt.Errorf("not-found location %s is not registered: %w", config.NotFound, ErrRouteNotFound)
	}
	if initial == "" {
		initial = "/"
	}

	return &Router{
		table:     table,
		resources: resources,
		config:    config,
		logger:    config.Logger,
		history:   NewHistory(initial),
	}, nil
}

// SessionExpiredLocation returns the location that re-authenticates
// and then resumes at destination.
func (router *Router) SessionExpiredLocation(destination string) string {
	return router.config.SessionExpired + "/" + EscapeSegment(destination)
}

// ErrorLocation returns the location that displays description.
func (router *Router) ErrorLocation(description string) string {
	return router.config.Error + "/" + EscapeSegment(description)
}

// Start mounts the page for the initial location. The initial history
// entry is replaced by the resolved location (and any redirect hops
// are pushed after it).
func (router *Router) Start(ctx context.Context) {
	router.mu.Lock()
	defer router.mu.Unlock()

	initial := router.history.Peek()
	if router.history.Len() == 1 {
		router.history.takeTop()
	}
	router.navigateLocked(ctx, initial, initial, modeFollow, 0)
}

// Navigate resolves target, unmounts the active page, mounts the new
// one, and updates history. It blocks until the navigation, including
// any redirects, has finished; concurrent calls run one at a time.
func (router *Router) Navigate(ctx context.Context, target string) {
	router.mu.Lock()
	defer router.mu.Unlock()

	router.navigateLocked(ctx, target, router.history.Peek(), modeFollow, 0)
}

// NavigateBackward discards the current location and navigates to the
// one before it. With a single history entry it does nothing.
func (router *Router) NavigateBackward(ctx context.Context) {
	router.mu.Lock()
	defer router.mu.Unlock()

	current, ok := router.history.Pop()
	if !ok {
		return
	}
	// The previous entry is re-pushed by the navigation below, so the
	// history is only empty while the lock is held.
	previous := router.history.takeTop()
	router.navigateLocked(ctx, previous, current, modeFollow, 0)
}

// Peek returns the current location, waiting for any in-flight
// navigation to finish.
func (router *Router) Peek() string {
	router.mu.Lock()
	defer router.mu.Unlock()
	return router.history.Peek()
}

// History returns a snapshot of the history stack, oldest first,
// waiting for any in-flight navigation to finish.
func (router *Router) History() []string {
	router.mu.Lock()
	defer router.mu.Unlock()
	return router.history.Entries()
}

// Phase returns the lifecycle phase of the active page.
func (router *Router) Phase() Phase {
	router.mu.Lock()
	defer router.mu.Unlock()
	return router.phase
}

// TryPeek returns the current location without waiting. It returns
// false while a navigation is in flight.
func (router *Router) TryPeek() (string, bool) {
	if !router.mu.TryLock() {
		return "", false
	}
	defer router.mu.Unlock()
	return router.history.Peek(), true
}

// TryDraw draws the active page without waiting. It returns false
// while a navigation is in flight or when no page is mounted.
func (router *Router) TryDraw(area Area) (string, bool) {
	if !router.mu.TryLock() {
		return "", false
	}
	defer router.mu.Unlock()

	if router.active == nil || router.phase != PhaseMounted {
		return "", false
	}
	return router.active.Draw(area), true
}

// TryUpdate forwards msg to the active page without waiting. It
// returns false, dropping the message, while a navigation is in flight
// or when no page is mounted.
func (router *Router) TryUpdate(ctx context.Context, msg tea.Msg) (Operation, bool) {
	if !router.mu.TryLock() {
		return Operation{}, false
	}
	defer router.mu.Unlock()

	if router.active == nil || router.phase != PhaseMounted {
		return Operation{}, false
	}
	return router.active.Update(ctx, msg, router.resources), true
}

// Shutdown unmounts the active page. The router must not be used
// afterwards.
func (router *Router) Shutdown(ctx context.Context) {
	router.mu.Lock()
	defer router.mu.Unlock()
	router.unmountLocked(ctx)
}

func (router *Router) unmountLocked(ctx context.Context) {
	if router.active == nil {
		return
	}
	router.phase = PhaseUnmounting
	router.active.Unmount(ctx, router.resources)
	router.logger.Debug("unmounted page", "location", router.mounted)
	router.active = nil
	router.mounted = ""
	router.phase = PhaseUnmounted
}

// navigateLocked performs one navigation hop. hops counts the
// redirects already followed in this navigation.
func (router *Router) navigateLocked(ctx context.Context, target, origin string, mode navigationMode, hops int) {
	match, ok := router.table.Resolve(target)
	if !ok {
		router.logger.Info("navigation target not found",
			"target", target,
			"substitute", router.config.NotFound,
		)
		match, _ = router.table.Resolve(router.config.NotFound)
		target = router.config.NotFound
	}

	router.unmountLocked(ctx)

	params := match.Params
	params.seed(target, origin)

	router.phase = PhaseMounting
	operation, err := match.Page.Mount(ctx, router.resources, params)
	if err != nil {
		router.phase = PhaseUnmounted
		router.handleMountFailure(ctx, target, origin, match, err, mode, hops)
		return
	}

	router.active = match.Page
	router.mounted = target
	router.phase = PhaseMounted
	router.history.Push(target)
	router.logger.Debug("mounted page", "location", target, "origin", origin, "pattern", match.Pattern)

	if !operation.IsRedirect() {
		return
	}
	if mode == modeTerminal {
		router.logger.Warn("ignoring redirect from fallback page",
			"location", target,
			"redirect", operation.RedirectTo,
		)
		return
	}
	if hops >= router.config.MaxRedirects {
		router.logger.Warn("redirect limit reached",
			"location", target,
			"redirect", operation.RedirectTo,
			"limit", router.config.MaxRedirects,
		)
		router.navigateLocked(ctx, router.ErrorLocation(ErrTooManyRedirects.Error()), target, modeTerminal, hops)
		return
	}
	router.navigateLocked(ctx, operation.RedirectTo, target, modeFollow, hops+1)
}

func (router *Router) handleMountFailure(ctx context.Context, target, origin string, match Match, err error, mode navigationMode, hops int) {
	// The location can carry a credential (a token being verified),
	// so only the pattern is logged above Debug.
	router.logger.Warn("page mount failed", "pattern", match.Pattern, "error", err)
	router.logger.Debug("failed mount location", "location", target, "origin", origin)

	// A failing fallback page still leaves its location on the stack
	// so history and the rest of the app stay consistent.
	if mode == modeTerminal {
		router.history.Push(target)
		return
	}

	if errors.Is(err, trello.ErrAuthExpired) {
		router.navigateLocked(ctx, router.SessionExpiredLocation(target), origin, modeTerminal, hops)
		return
	}
	router.navigateLocked(ctx, router.ErrorLocation(err.Error()), origin, modeTerminal, hops)
}
