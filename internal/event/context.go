// Package event provides the context handed to keyboard and mouse handlers.
package event

import (
	"log/slog"

	"github.com/1broseidon/tagwm/internal/model"
	"github.com/1broseidon/tagwm/internal/platform"
)

// Transfer asks for a client to move to another screen.
type Transfer struct {
	Window platform.WindowID
	Screen int
}

// Spawn asks for a program to be started.
type Spawn struct {
	Command string
	Args    []string
}

// Requests are side effects a handler cannot perform while holding its
// screen lock. The window manager applies them after the handler returns.
type Requests struct {
	Close     []platform.WindowID
	Transfers []Transfer
	Spawns    []Spawn
	Focus     *int
	Quit      bool
}

// Empty reports whether nothing was requested.
func (r *Requests) Empty() bool {
	return len(r.Close) == 0 && len(r.Transfers) == 0 && len(r.Spawns) == 0 && r.Focus == nil && !r.Quit
}

// Context is built fresh for every dispatched event. The screen it exposes
// is locked for the lifetime of the handler call.
type Context struct {
	screen      *model.Screen
	screenCount int
	logger      *slog.Logger
	requests    Requests
}

// NewContext creates a context for a handler running against screen.
func NewContext(screen *model.Screen, screenCount int, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{screen: screen, screenCount: screenCount, logger: logger}
}

// Screen returns the locked screen.
func (c *Context) Screen() *model.Screen {
	return c.screen
}

// FocusedTag returns the viewed tag of the locked screen.
func (c *Context) FocusedTag() *model.Tag {
	return c.screen.FocusedTag()
}

// ScreenCount is the number of screens the window manager drives.
func (c *Context) ScreenCount() int {
	return c.screenCount
}

// Logger returns the window manager's logger.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// Close asks the window to close.
func (c *Context) Close(id platform.WindowID) {
	c.requests.Close = append(c.requests.Close, id)
}

// SendToScreen moves a client to another screen's viewed tag.
func (c *Context) SendToScreen(id platform.WindowID, screen int) {
	c.requests.Transfers = append(c.requests.Transfers, Transfer{Window: id, Screen: screen})
}

// FocusScreen makes another screen the focused one.
func (c *Context) FocusScreen(screen int) {
	c.requests.Focus = &screen
}

// Spawn starts a program detached from the window manager.
func (c *Context) Spawn(command string, args ...string) {
	c.requests.Spawns = append(c.requests.Spawns, Spawn{Command: command, Args: args})
}

// Quit stops the event loop after the current event.
func (c *Context) Quit() {
	c.requests.Quit = true
}

// Requests returns what the handler asked for.
func (c *Context) Requests() *Requests {
	return &c.requests
}
