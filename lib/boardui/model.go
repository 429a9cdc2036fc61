// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package boardui

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/atomic"

	"github.com/trellminal/trellminal/lib/clock"
	"github.com/trellminal/trellminal/lib/event"
	"github.com/trellminal/trellminal/lib/locale"
	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/statusbar"
	"github.com/trellminal/trellminal/lib/store"
	"github.com/trellminal/trellminal/lib/tui"
)

// DefaultFrameInterval is the page tick period when Config leaves it
// unset (10 frames per second).
const DefaultFrameInterval = 100 * time.Millisecond

// Config holds the collaborators of a Model.
type Config struct {
	// Context bounds page updates and navigations. Cancelling it
	// aborts the network calls of an in-flight mount.
	Context context.Context

	// Router must be fully configured; the model starts it in Init.
	Router *router.Router

	// Store supplies the account name for the status bar.
	Store *store.Store

	Theme   tui.Theme
	Keys    tui.KeyMap
	Catalog *locale.Catalog
	Clock   clock.Clock

	// FrameInterval is the period of the event.TickMsg sent to pages.
	FrameInterval time.Duration

	Logger *slog.Logger
}

// navigationDoneMsg reports that a background navigation finished.
type navigationDoneMsg struct {
	operation router.Operation
}

// Model is the bubbletea model of the application. Copies share the
// status bar and the navigation bookkeeping, so the value returned by
// tea.Program.Run and the one passed to tea.NewProgram are
// interchangeable.
type Model struct {
	ctx       context.Context
	router    *router.Router
	store     *store.Store
	statusBar *statusbar.Model
	theme     tui.Theme
	keys      tui.KeyMap
	catalog   *locale.Catalog
	clock     clock.Clock
	interval  time.Duration
	logger    *slog.Logger

	spinner     spinner.Model
	navigations *navigations

	width  int
	height int
}

// NewModel creates the render loop model.
func NewModel(config Config) Model {
	if config.Context == nil {
		config.Context = context.Background()
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Catalog == nil {
		config.Catalog = locale.MustNew()
	}
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultFrameInterval
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return Model{
		ctx:       config.Context,
		router:    config.Router,
		store:     config.Store,
		statusBar: statusbar.New(config.Theme, config.Keys, config.Catalog, config.Clock),
		theme:     config.Theme,
		keys:      config.Keys,
		catalog:   config.Catalog,
		clock:     config.Clock,
		interval:  config.FrameInterval,
		logger:    config.Logger,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(config.Theme.Accent)),
		),
		navigations: &navigations{
			inFlight: atomic.NewInt64(0),
			quitting: atomic.NewBool(false),
		},
	}
}

// StatusBar returns the status bar shared by all copies of the model.
func (model Model) StatusBar() *statusbar.Model {
	return model.statusBar
}

// Init implements tea.Model: it mounts the initial location and starts
// the frame tick.
func (model Model) Init() tea.Cmd {
	start := model.track(func() router.Operation {
		model.router.Start(model.ctx)
		return router.Operation{}
	})
	return tea.Batch(start, model.tick(), model.spinner.Tick)
}

func (model Model) tick() tea.Cmd {
	return tea.Tick(model.interval, func(now time.Time) tea.Msg {
		return event.TickMsg{Time: now}
	})
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case tea.KeyMsg:
		return model, model.handleKey(message)

	case event.TickMsg:
		if model.navigations.quitting.Load() {
			return model, nil
		}
		operation, _ := model.router.TryUpdate(model.ctx, message)
		return model, tea.Batch(model.dispatch(operation), model.tick())

	case event.RequestMsg:
		operation, ok := model.router.TryUpdate(model.ctx, message)
		if !ok {
			message.Respond(http.StatusServiceUnavailable, "text/plain; charset=utf-8", "busy, try again\n")
			return model, nil
		}
		// No-op if the page already replied.
		message.Respond(http.StatusNotFound, "text/plain; charset=utf-8", "not found\n")
		return model, model.dispatch(operation)

	case navigationDoneMsg:
		model.refreshAccount()
		return model, nil

	case logRecordMsg:
		model.statusBar.Notify(message.Summary, message.Level)
		return model, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd
	}

	operation, _ := model.router.TryUpdate(model.ctx, message)
	return model, model.dispatch(operation)
}

// handleKey offers a key to the status bar, then to the page. Keys the
// page ignores fall back to the global bindings.
func (model Model) handleKey(message tea.KeyMsg) tea.Cmd {
	if key.Matches(message, model.keys.Quit) {
		return model.dispatch(router.Exit())
	}
	if model.navigations.quitting.Load() {
		return nil
	}

	if operation, consumed := model.statusBar.Update(message); consumed {
		return model.dispatch(operation)
	}

	operation, ok := model.router.TryUpdate(model.ctx, message)
	if !ok {
		return nil
	}
	if operation.Kind == router.OperationNone {
		switch {
		case key.Matches(message, model.keys.Help):
			operation = router.Navigate(statusbar.HelpLocation)
		case key.Matches(message, model.keys.NavigateBack):
			operation = router.NavigateBackward()
		}
	}
	return model.dispatch(operation)
}

// dispatch carries out an operation. Navigations run as commands so
// the loop is free while the router is locked.
func (model Model) dispatch(operation router.Operation) tea.Cmd {
	switch operation.Kind {
	case router.OperationNavigate:
		location := operation.Location
		return model.track(func() router.Operation {
			model.router.Navigate(model.ctx, location)
			return operation
		})
	case router.OperationNavigateBackward:
		return model.track(func() router.Operation {
			model.router.NavigateBackward(model.ctx)
			return operation
		})
	case router.OperationExit:
		model.navigations.quitting.Store(true)
		return tea.Quit
	default:
		return nil
	}
}

// track wraps a navigation in a command that registers with the
// in-flight bookkeeping when it runs. A command that only runs after
// Wait has started does nothing.
func (model Model) track(navigate func() router.Operation) tea.Cmd {
	if model.navigations.quitting.Load() {
		return nil
	}
	return func() tea.Msg {
		if !model.navigations.begin(model.clock.Now()) {
			return nil
		}
		defer model.navigations.end()
		return navigationDoneMsg{operation: navigate()}
	}
}

func (model Model) refreshAccount() {
	if model.store == nil {
		return
	}
	if account, ok := model.store.ActiveAccount(); ok {
		model.statusBar.SetUsername(account.Username)
	} else {
		model.statusBar.SetUsername("")
	}
}

// View implements tea.Model. The page fills every row but the last;
// the status bar takes the last.
func (model Model) View() string {
	if model.width <= 0 || model.height <= 0 {
		return ""
	}
	area := router.Area{Width: model.width, Height: max(model.height-1, 0)}

	page, ok := model.router.TryDraw(area)
	if !ok {
		page = model.loadingView(area)
	}
	location, _ := model.router.TryPeek()
	return tui.FitView(page, area.Width, area.Height) + "\n" + model.statusBar.View(model.width, location)
}

// loadingView is drawn while a navigation holds the router.
func (model Model) loadingView(area router.Area) string {
	text := model.spinner.View() + " " + model.catalog.T("Loading")
	if since, busy := model.navigations.busySince(); busy {
		if elapsed := model.clock.Now().Sub(since); elapsed >= time.Second {
			text += fmt.Sprintf(" (%ds)", int(elapsed/time.Second))
		}
	}
	return tui.Center(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text), area.Width, area.Height)
}

// InFlight returns the number of navigations that are running.
func (model Model) InFlight() int64 {
	return model.navigations.inFlight.Load()
}

// Wait blocks until every running navigation has finished or timeout
// elapses, and reports whether they all finished. Call it after the
// program exits so a navigation that is still updating the store can
// complete before the store is saved. Navigation commands that had not
// started by then are dropped.
func (model Model) Wait(timeout time.Duration) bool {
	model.navigations.close()
	done := make(chan struct{})
	go func() {
		model.navigations.wait.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-model.clock.After(timeout):
		model.logger.Warn("navigations still running at exit",
			"in_flight", model.navigations.inFlight.Load(),
			"timeout", timeout,
		)
		return false
	}
}

// navigations is the bookkeeping shared by all copies of a Model.
type navigations struct {
	wait     sync.WaitGroup
	inFlight *atomic.Int64
	quitting *atomic.Bool

	mu     sync.Mutex
	since  time.Time
	closed bool
}

// begin registers a navigation and reports false once close has run.
func (state *navigations) begin(now time.Time) bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.closed {
		return false
	}
	state.wait.Add(1)
	if state.inFlight.Inc() == 1 {
		state.since = now
	}
	return true
}

func (state *navigations) close() {
	state.mu.Lock()
	state.closed = true
	state.mu.Unlock()
}

func (state *navigations) end() {
	state.inFlight.Dec()
	state.wait.Done()
}

// busySince returns when the current run of navigations started.
func (state *navigations) busySince() (time.Time, bool) {
	if state.inFlight.Load() == 0 {
		return time.Time{}, false
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.since, true
}
