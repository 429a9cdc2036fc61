// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/testutil"
	"github.com/trellminal/trellminal/lib/trello"
)

// lifecycleLog records page calls in order across all fake pages.
type lifecycleLog struct {
	mu      sync.Mutex
	entries []string
}

func (log *lifecycleLog) add(entry string) {
	if log == nil {
		return
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	log.entries = append(log.entries, entry)
}

func (log *lifecycleLog) snapshot() []string {
	log.mu.Lock()
	defer log.mu.Unlock()
	return slices.Clone(log.entries)
}

// fakePage is a scriptable Page.
type fakePage struct {
	name string
	log  *lifecycleLog

	mu         sync.Mutex
	mountFunc  func(params Params) (MountOperation, error)
	lastParams Params
	updates    []tea.Msg
	update     Operation
	mountGate  chan struct{}
	mountEnter chan struct{}
}

func newFakePage(name string, log *lifecycleLog) *fakePage {
	return &fakePage{name: name, log: log}
}

func (page *fakePage) Mount(ctx context.Context, resources Resources, params Params) (MountOperation, error) {
	page.log.add("mount " + page.name)
	page.mu.Lock()
	page.lastParams = params
	mountFunc := page.mountFunc
	gate := page.mountGate
	enter := page.mountEnter
	page.mu.Unlock()

	if enter != nil {
		close(enter)
	}
	if gate != nil {
		<-gate
	}
	if mountFunc != nil {
		return mountFunc(params)
	}
	return MountOperation{}, nil
}

func (page *fakePage) Unmount(ctx context.Context, resources Resources) {
	page.log.add("unmount " + page.name)
}

func (page *fakePage) Draw(area Area) string {
	return page.name
}

func (page *fakePage) Update(ctx context.Context, msg tea.Msg, resources Resources) Operation {
	page.mu.Lock()
	defer page.mu.Unlock()
	page.updates = append(page.updates, msg)
	return page.update
}

func (page *fakePage) params() Params {
	page.mu.Lock()
	defer page.mu.Unlock()
	return page.lastParams
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// routerFixture registers home, not-found, session-expired, and error
// pages plus any extra routes.
type routerFixture struct {
	log            *lifecycleLog
	home           *fakePage
	notFound       *fakePage
	sessionExpired *fakePage
	errorPage      *fakePage
	router         *Router
}

func newRouterFixture(t *testing.T, extra map[string]*fakePage) *routerFixture {
	t.Helper()
	fixture := &routerFixture{log: &lifecycleLog{}}
	fixture.home = newFakePage("home", fixture.log)
	fixture.notFound = newFakePage("not_found", fixture.log)
	fixture.sessionExpired = newFakePage("session_expired", fixture.log)
	fixture.errorPage = newFakePage("error", fixture.log)

	table := NewTable().
		Insert("/", fixture.home).
		Insert("/404", fixture.notFound).
		Insert("/session_expired/:destination", fixture.sessionExpired).
		Insert("/error/:description", fixture.errorPage)
	for pattern, page := range extra {
		page.log = fixture.log
		table.Insert(pattern, page)
	}

	router, err := New(table, "/", Resources{}, Config{Logger: quietLogger(), MaxRedirects: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fixture.router = router
	return fixture
}

func (fixture *routerFixture) drawn(t *testing.T) string {
	t.Helper()
	view, ok := fixture.router.TryDraw(Area{Width: 80, Height: 24})
	if !ok {
		t.Fatal("expected a mounted page")
	}
	return view
}

func TestNew_RequiresNotFoundRoute(t *testing.T) {
	table := NewTable().Insert("/", newFakePage("home", nil))
	_, err := New(table, "/", Resources{}, Config{Logger: quietLogger()})
	if !errors.Is(err, ErrRouteNotFound) {
		t.Fatalf("expected ErrRouteNotFound, got %v", err)
	}
}

func TestNavigate_UnknownLocationResolvesToNotFound(t *testing.T) {
	fixture := newRouterFixture(t, nil)

	fixture.router.Navigate(context.Background(), "/missing")

	if got := fixture.router.History(); !slices.Equal(got, []string{"/", "/404"}) {
		t.Errorf("History() = %v, want [/ /404]", got)
	}
	if fixture.drawn(t) != "not_found" {
		t.Errorf("expected the not-found page to be active")
	}
	if got := fixture.notFound.params()[ParamLocation]; got != "/404" {
		t.Errorf("location param = %q, want /404", got)
	}
}

func TestNavigate_SeedsLocationAndOrigin(t *testing.T) {
	card := newFakePage("card", nil)
	fixture := newRouterFixture(t, map[string]*fakePage{"/c/:card": card})

	fixture.router.Navigate(context.Background(), "/c/42")

	params := card.params()
	if params["card"] != "42" || params[ParamLocation] != "/c/42" || params[ParamOrigin] != "/" {
		t.Errorf("params = %v", params)
	}
}

func TestNavigate_UnmountsBeforeMount(t *testing.T) {
	first := newFakePage("first", nil)
	second := newFakePage("second", nil)
	fixture := newRouterFixture(t, map[string]*fakePage{"/first": first, "/second": second})

	fixture.router.Navigate(context.Background(), "/first")
	fixture.router.Navigate(context.Background(), "/second")

	want := []string{"mount first", "unmount first", "mount second"}
	if got := fixture.log.snapshot(); !slices.Equal(got, want) {
		t.Errorf("lifecycle = %v, want %v", got, want)
	}
}

func TestNavigate_RoundTrip(t *testing.T) {
	pageA := newFakePage("a", nil)
	pageB := newFakePage("b", nil)
	fixture := newRouterFixture(t, map[string]*fakePage{"/a": pageA, "/b": pageB})
	ctx := context.Background()

	fixture.router.Navigate(ctx, "/a")
	fixture.router.Navigate(ctx, "/b")
	fixture.router.NavigateBackward(ctx)

	if got := fixture.router.Peek(); got != "/a" {
		t.Errorf("Peek() = %q, want /a", got)
	}
	if got := fixture.router.History(); !slices.Equal(got, []string{"/", "/a"}) {
		t.Errorf("History() = %v", got)
	}
	if fixture.drawn(t) != "a" {
		t.Error("expected page a to be active")
	}
	if got := pageA.params()[ParamOrigin]; got != "/b" {
		t.Errorf("origin after backward = %q, want /b", got)
	}
}

func TestNavigateBackward_AtRootIsNoop(t *testing.T) {
	fixture := newRouterFixture(t, nil)

	fixture.router.NavigateBackward(context.Background())

	if got := fixture.router.History(); !slices.Equal(got, []string{"/"}) {
		t.Errorf("History() = %v, want [/]", got)
	}
	if len(fixture.log.snapshot()) != 0 {
		t.Errorf("no page calls expected, got %v", fixture.log.snapshot())
	}
}

func TestNavigate_RedirectPushesEveryHop(t *testing.T) {
	source := newFakePage("source", nil)
	source.mountFunc = func(Params) (MountOperation, error) { return Redirect("/target"), nil }
	target := newFakePage("target", nil)
	fixture := newRouterFixture(t, map[string]*fakePage{"/source": source, "/target": target})

	fixture.router.Navigate(context.Background(), "/source")

	if got := fixture.router.History(); !slices.Equal(got, []string{"/", "/source", "/target"}) {
		t.Errorf("History() = %v", got)
	}
	if fixture.drawn(t) != "target" {
		t.Error("redirect target must be the active page")
	}
	if got := target.params()[ParamOrigin]; got != "/source" {
		t.Errorf("target origin = %q, want /source", got)
	}
	want := []string{"mount source", "unmount source", "mount target"}
	if got := fixture.log.snapshot(); !slices.Equal(got, want) {
		t.Errorf("lifecycle = %v, want %v", got, want)
	}
}

func TestNavigate_RedirectLoopIsBounded(t *testing.T) {
	ping := newFakePage("ping", nil)
	ping.mountFunc = func(Params) (MountOperation, error) { return Redirect("/pong"), nil }
	pong := newFakePage("pong", nil)
	pong.mountFunc = func(Params) (MountOperation, error) { return Redirect("/ping"), nil }
	fixture := newRouterFixture(t, map[string]*fakePage{"/ping": ping, "/pong": pong})

	done := make(chan struct{})
	go func() {
		fixture.router.Navigate(context.Background(), "/ping")
		close(done)
	}()
	testutil.RequireClosed(t, done, 5*time.Second, "redirect loop did not terminate")

	if fixture.drawn(t) != "error" {
		t.Fatal("expected the error page after too many redirects")
	}
	if got := fixture.errorPage.params().Unescaped("description"); got != ErrTooManyRedirects.Error() {
		t.Errorf("description = %q", got)
	}
	// Initial entry, MaxRedirects+1 hops, then the error route.
	if got := len(fixture.router.History()); got != 1+5+1 {
		t.Errorf("history length = %d, want 7: %v", got, fixture.router.History())
	}
}

func TestNavigate_AuthExpiredGoesToSessionExpired(t *testing.T) {
	board := newFakePage("board", nil)
	board.mountFunc = func(Params) (MountOperation, error) {
		return MountOperation{}, fmt.Errorf("loading lists: %w", &trello.APIError{StatusCode: 401, Message: "invalid token"})
	}
	fixture := newRouterFixture(t, map[string]*fakePage{"/b/:board": board})

	fixture.router.Navigate(context.Background(), "/b/xyz")

	want := []string{"/", "/session_expired/%2Fb%2Fxyz"}
	if got := fixture.router.History(); !slices.Equal(got, want) {
		t.Errorf("History() = %v, want %v", got, want)
	}
	if fixture.drawn(t) != "session_expired" {
		t.Error("expected the session-expired page")
	}
	params := fixture.sessionExpired.params()
	if params.Unescaped("destination") != "/b/xyz" {
		t.Errorf("destination = %q", params.Unescaped("destination"))
	}
	if params[ParamOrigin] != "/" {
		t.Errorf("origin = %q, want /", params[ParamOrigin])
	}
}

func TestNavigate_OtherFailureGoesToErrorRoute(t *testing.T) {
	broken := newFakePage("broken", nil)
	broken.mountFunc = func(Params) (MountOperation, error) {
		return MountOperation{}, errors.New("connection refused")
	}
	fixture := newRouterFixture(t, map[string]*fakePage{"/broken": broken})

	fixture.router.Navigate(context.Background(), "/broken")

	if fixture.drawn(t) != "error" {
		t.Fatal("expected the error page")
	}
	if got := fixture.errorPage.params().Unescaped("description"); got != "connection refused" {
		t.Errorf("description = %q", got)
	}
	// The failed location is not pushed; backward returns to where the
	// user was.
	if got := fixture.router.History(); len(got) != 2 || got[0] != "/" {
		t.Errorf("History() = %v", got)
	}
	fixture.router.NavigateBackward(context.Background())
	if fixture.drawn(t) != "home" {
		t.Error("backward from the error page should return home")
	}
}

func TestNavigate_FailingErrorPageStillPushes(t *testing.T) {
	broken := newFakePage("broken", nil)
	broken.mountFunc = func(Params) (MountOperation, error) { return MountOperation{}, errors.New("boom") }
	fixture := newRouterFixture(t, map[string]*fakePage{"/broken": broken})
	fixture.errorPage.mountFunc = func(Params) (MountOperation, error) {
		return MountOperation{}, errors.New("error page also broken")
	}

	fixture.router.Navigate(context.Background(), "/broken")

	history := fixture.router.History()
	if len(history) != 2 || history[1] != "/error/boom" {
		t.Errorf("History() = %v, want [/ /error/boom]", history)
	}
	if _, ok := fixture.router.TryDraw(Area{}); ok {
		t.Error("nothing should be mounted after the error page failed")
	}
	if fixture.router.Phase() != PhaseUnmounted {
		t.Errorf("Phase() = %v", fixture.router.Phase())
	}
}

func TestStart_ReplacesInitialEntry(t *testing.T) {
	fixture := newRouterFixture(t, nil)
	fixture.home.mountFunc = func(Params) (MountOperation, error) { return Redirect("/404"), nil }

	fixture.router.Start(context.Background())

	if got := fixture.router.History(); !slices.Equal(got, []string{"/", "/404"}) {
		t.Errorf("History() = %v, want [/ /404]", got)
	}
}

func TestTryUpdate_ForwardsToMountedPage(t *testing.T) {
	fixture := newRouterFixture(t, nil)
	if _, ok := fixture.router.TryUpdate(context.Background(), "ignored"); ok {
		t.Fatal("update must not reach an unmounted page")
	}

	fixture.router.Start(context.Background())
	fixture.home.update = Navigate("/elsewhere")

	operation, ok := fixture.router.TryUpdate(context.Background(), "key")
	if !ok {
		t.Fatal("expected update to reach the mounted page")
	}
	if operation.Kind != OperationNavigate || operation.Location != "/elsewhere" {
		t.Errorf("operation = %v", operation)
	}
}

func TestSlowMountDoesNotBlockDraw(t *testing.T) {
	slow := newFakePage("slow", nil)
	slow.mountGate = make(chan struct{})
	slow.mountEnter = make(chan struct{})
	fixture := newRouterFixture(t, map[string]*fakePage{"/slow": slow})
	fixture.router.Start(context.Background())

	done := make(chan struct{})
	go func() {
		fixture.router.Navigate(context.Background(), "/slow")
		close(done)
	}()
	testutil.RequireClosed(t, slow.mountEnter, 5*time.Second, "mount never started")

	drawReturned := make(chan bool, 1)
	go func() {
		_, ok := fixture.router.TryDraw(Area{Width: 80, Height: 24})
		drawReturned <- ok
	}()
	if ok := testutil.RequireReceive(t, drawReturned, 5*time.Second, "TryDraw blocked on a slow mount"); ok {
		t.Error("TryDraw must report false while a navigation holds the router")
	}
	if _, ok := fixture.router.TryPeek(); ok {
		t.Error("TryPeek must report false while a navigation holds the router")
	}
	if _, ok := fixture.router.TryUpdate(context.Background(), "key"); ok {
		t.Error("TryUpdate must report false while a navigation holds the router")
	}

	close(slow.mountGate)
	testutil.RequireClosed(t, done, 5*time.Second, "navigation did not finish")
	if fixture.drawn(t) != "slow" {
		t.Error("expected the slow page after its mount finished")
	}
}

func TestConcurrentNavigationsAreSerialized(t *testing.T) {
	pages := map[string]*fakePage{}
	for i := range 8 {
		pages[fmt.Sprintf("/p%d", i)] = newFakePage(fmt.Sprintf("p%d", i), nil)
	}
	fixture := newRouterFixture(t, pages)
	fixture.router.Start(context.Background())

	var wg sync.WaitGroup
	for location := range pages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fixture.router.Navigate(context.Background(), location)
		}()
	}
	wg.Wait()

	// Every mount after the first is preceded by an unmount of the
	// previously mounted page.
	entries := fixture.log.snapshot()
	mounted := ""
	for _, entry := range entries {
		var verb, name string
		fmt.Sscanf(entry, "%s %s", &verb, &name)
		switch verb {
		case "mount":
			if mounted != "" {
				t.Fatalf("mount %s while %s still mounted: %v", name, mounted, entries)
			}
			mounted = name
		case "unmount":
			if name != mounted {
				t.Fatalf("unmount %s but %s is mounted: %v", name, mounted, entries)
			}
			mounted = ""
		}
	}
	if got := fixture.router.History(); len(got) != 1+len(pages) {
		t.Errorf("History() = %v", got)
	}
}

func TestHistoryInvariantUnderRandomNavigation(t *testing.T) {
	pages := map[string]*fakePage{
		"/a":      newFakePage("a", nil),
		"/b":      newFakePage("b", nil),
		"/w/:w/x": newFakePage("w", nil),
	}
	fixture := newRouterFixture(t, pages)
	locations := []string{"/a", "/b", "/w/1/x", "/missing", "/"}
	random := rand.New(rand.NewPCG(1, 2))
	ctx := context.Background()

	for step := range 200 {
		if random.IntN(3) == 0 {
			fixture.router.NavigateBackward(ctx)
		} else {
			fixture.router.Navigate(ctx, locations[random.IntN(len(locations))])
		}
		if got := len(fixture.router.History()); got < 1 {
			t.Fatalf("step %d: history length %d", step, got)
		}
	}
}
