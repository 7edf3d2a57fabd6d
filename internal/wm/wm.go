// Package wm runs the window manager event loop: it reads transport events,
// dispatches them to the keyboard and mouse registries or to the built-in
// lifecycle handling, and reconciles the model back onto the transport.
package wm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1broseidon/tagwm/internal/config"
	"github.com/1broseidon/tagwm/internal/keyboard"
	"github.com/1broseidon/tagwm/internal/model"
	"github.com/1broseidon/tagwm/internal/mouse"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// ErrStopped is returned by requests posted after the loop has exited.
var ErrStopped = errors.New("window manager is not running")

// SpawnFunc starts a program without waiting for it.
type SpawnFunc func(name string, args ...string) error

// Options configures a WindowManager.
type Options struct {
	Config   *config.Config
	Keyboard *keyboard.Keyboard
	Mouse    *mouse.Mouse
	Logger   *slog.Logger
	// Spawn defaults to starting the program with os/exec.
	Spawn SpawnFunc
}

// appearance is the part of the configuration reconcile needs.
type appearance struct {
	border   int
	active   uint32
	inactive uint32
	focusNew bool
}

// request is a closure posted to the loop from another goroutine.
type request struct {
	fn   func() error
	done chan error
}

// WindowManager owns the screens and the transport. All model mutations
// happen on the goroutine running Run.
type WindowManager struct {
	transport platform.Transport
	keyboard  *keyboard.Keyboard
	mouse     *mouse.Mouse
	logger    *slog.Logger
	spawn     SpawnFunc

	screens []*model.Screen
	focused atomic.Int32
	look    appearance
	cfgMu   sync.RWMutex
	cfg     *config.Config

	// order lists managed windows in the order they were adopted.
	order []platform.WindowID
	docks map[platform.WindowID]*platform.StrutPartial
	// pendingUnmaps counts unmaps the window manager issued itself and
	// whose UnmapNotify must not unmanage the window.
	pendingUnmaps map[platform.WindowID]int

	// queued holds direct event responses, flushed first by reconcile.
	queued  []platform.Command
	applied appliedState

	requests chan request
	stopped  chan struct{}
	quit     bool
	started  time.Time
}

// New builds a window manager with one screen per transport display.
func New(transport platform.Transport, opts Options) (*WindowManager, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	kb := opts.Keyboard
	if kb == nil {
		kb = keyboard.New()
	}
	ms := opts.Mouse
	if ms == nil {
		ms = mouse.New()
	}
	spawn := opts.Spawn
	if spawn == nil {
		spawn = spawnDetached
	}

	displays, err := transport.Displays()
	if err != nil {
		return nil, fmt.Errorf("list displays: %w", err)
	}
	if len(displays) == 0 {
		return nil, fmt.Errorf("no displays found")
	}

	layout, params, err := layoutFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	w := &WindowManager{
		transport:     transport,
		keyboard:      kb,
		mouse:         ms,
		logger:        logger,
		spawn:         spawn,
		cfg:           cfg,
		docks:         make(map[platform.WindowID]*platform.StrutPartial),
		pendingUnmaps: make(map[platform.WindowID]int),
		applied:       newAppliedState(),
		requests:      make(chan request),
		stopped:       make(chan struct{}),
		started:       time.Now(),
	}
	for i, d := range displays {
		s := model.NewScreen(i, d.Name, rectFromPlatform(d.Bounds), model.TagOptions{
			Names:  cfg.Tags,
			Layout: layout,
			Params: params,
		})
		s.SetPadding(paddingFromConfig(cfg))
		w.screens = append(w.screens, s)
	}
	w.look = appearanceFromConfig(cfg)
	applyFocusPolicy(ms, cfg.Focus)
	return w, nil
}

// Screens returns the managed screens. The slice is fixed after New.
func (w *WindowManager) Screens() []*model.Screen {
	return w.screens
}

// FocusedScreen returns the index of the screen receiving key events.
func (w *WindowManager) FocusedScreen() int {
	return int(w.focused.Load())
}

// Config returns the active configuration.
func (w *WindowManager) Config() *config.Config {
	w.cfgMu.RLock()
	defer w.cfgMu.RUnlock()
	return w.cfg
}

type eventOrError struct {
	event platform.Event
	err   error
}

// Run grabs input, adopts existing windows and processes events until ctx
// is cancelled, a quit is requested or the transport fails. A final
// reconcile runs before it returns. Clients are never destroyed on exit.
func (w *WindowManager) Run(ctx context.Context) error {
	defer close(w.stopped)

	if err := w.transport.GrabKeys(w.keyboard.Chords()); err != nil {
		w.logger.Warn("some keybindings could not be grabbed", "error", err)
	}
	if err := w.transport.SelectPointer(w.mouse.Selection()); err != nil {
		w.logger.Warn("pointer selection failed", "error", err)
	}
	w.adoptExisting()
	w.reconcile()

	done := make(chan struct{})
	defer close(done)
	events := make(chan eventOrError)
	go w.pump(events, done)

	w.logger.Info("window manager started", "screens", len(w.screens), "keybindings", len(w.keyboard.Bindings()))
	for {
		select {
		case <-ctx.Done():
			w.handle(platform.Event{Type: platform.EventShutdown})
		case req := <-w.requests:
			req.done <- req.fn()
		case ee := <-events:
			if ee.err != nil {
				w.reconcile()
				return fmt.Errorf("transport: %w", ee.err)
			}
			w.handle(ee.event)
		}
		w.reconcile()
		if w.quit {
			w.logger.Info("window manager stopped")
			return nil
		}
	}
}

// pump owns NextEvent and forwards events in arrival order.
func (w *WindowManager) pump(events chan<- eventOrError, done <-chan struct{}) {
	for {
		ev, err := w.transport.NextEvent()
		select {
		case events <- eventOrError{event: ev, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

// Shutdown asks the loop to exit after a final reconcile.
func (w *WindowManager) Shutdown(ctx context.Context) error {
	return w.post(ctx, func() error {
		w.handle(platform.Event{Type: platform.EventShutdown})
		return nil
	})
}

// post runs fn on the loop goroutine and waits for its result.
func (w *WindowManager) post(ctx context.Context, fn func() error) error {
	req := request{fn: fn, done: make(chan error, 1)}
	select {
	case w.requests <- req:
	case <-w.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// handle classifies and dispatches one event.
func (w *WindowManager) handle(ev platform.Event) {
	kind := Classify(ev)
	switch kind {
	case KindKeyPress:
		w.handleKey(ev)
	case KindClick, KindEnter, KindMotion:
		w.handlePointer(kind, ev)
	case KindMapRequest:
		w.handleMapRequest(ev)
	case KindUnmapNotify:
		w.handleUnmapNotify(ev)
	case KindDestroyNotify:
		w.handleDestroyNotify(ev)
	case KindConfigureRequest:
		w.handleConfigureRequest(ev)
	case KindClientMessage:
		w.handleClientMessage(ev)
	case KindPropertyNotify:
		w.handlePropertyNotify(ev)
	case KindMappingNotify:
		if err := w.transport.RefreshKeymap(); err != nil {
			w.logger.Warn("re-grab keys after mapping change", "error", err)
		}
	case KindShutdown:
		w.quit = true
	}
}

// Reload applies layout, gap, padding, border and focus settings from cfg to
// every tag. Keybindings stay as they were at startup.
func (w *WindowManager) Reload(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	layout, params, err := layoutFromConfig(cfg)
	if err != nil {
		return err
	}
	return w.post(ctx, func() error {
		for _, s := range w.screens {
			s.Lock()
			s.SetPadding(paddingFromConfig(cfg))
			s.Configure(layout, params)
			s.Unlock()
		}
		w.look = appearanceFromConfig(cfg)
		w.cfgMu.Lock()
		w.cfg = cfg
		w.cfgMu.Unlock()
		applyFocusPolicy(w.mouse, cfg.Focus)
		if err := w.transport.SelectPointer(w.mouse.Selection()); err != nil {
			w.logger.Warn("pointer selection failed", "error", err)
		}
		w.logger.Info("configuration reloaded")
		return nil
	})
}

// Uptime is the time since the window manager was created.
func (w *WindowManager) Uptime() time.Duration {
	return time.Since(w.started)
}

func layoutFromConfig(cfg *config.Config) (tiling.Layout, tiling.Params, error) {
	layout, err := tiling.Lookup(string(cfg.Layout.Default))
	if err != nil {
		return nil, tiling.Params{}, err
	}
	params := tiling.Params{
		Gap:         cfg.GapSize,
		MasterCount: cfg.Layout.MasterCount,
		MasterRatio: cfg.Layout.MasterWidthPercent,
	}
	return layout, params.Normalize(), nil
}

func paddingFromConfig(cfg *config.Config) platform.Padding {
	return platform.Padding{
		Top:    cfg.ScreenPadding.Top,
		Bottom: cfg.ScreenPadding.Bottom,
		Left:   cfg.ScreenPadding.Left,
		Right:  cfg.ScreenPadding.Right,
	}
}

func appearanceFromConfig(cfg *config.Config) appearance {
	return appearance{
		border:   cfg.Border.Width,
		active:   cfg.ActiveBorderColor(),
		inactive: cfg.InactiveBorderColor(),
		focusNew: cfg.Focus.NewWindows,
	}
}

// applyFocusPolicy registers or clears the built-in focus handlers.
func applyFocusPolicy(m *mouse.Mouse, f config.Focus) {
	if f.FollowsClick {
		m.On(mouse.Click, mouse.FocusOnClick())
	} else {
		m.On(mouse.Click, nil)
	}
	if f.FollowsMouse {
		m.On(mouse.Enter, mouse.FocusOnEnter())
	} else {
		m.On(mouse.Enter, nil)
	}
}

func spawnDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child once it exits.
	go func() { _ = cmd.Wait() }()
	return nil
}

func rectFromPlatform(r platform.Rect) tiling.Rect {
	return tiling.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func rectToPlatform(r tiling.Rect) platform.Rect {
	return platform.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
