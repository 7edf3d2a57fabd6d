package model

import (
	"errors"

	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

var (
	// ErrClientNotFound is returned when an id is not managed by the tag or screen.
	ErrClientNotFound = errors.New("client not found")
	// ErrInvalidTag is returned for tag indices outside the screen's tag list.
	ErrInvalidTag = errors.New("invalid tag index")
	// ErrNotControlled is returned when focus is requested for an ignored client.
	ErrNotControlled = errors.New("client is not controlled")
	// ErrNoFocusedClient is returned by operations that act on the focused client.
	ErrNoFocusedClient = errors.New("no focused client")
)

// Client is a managed top-level window.
type Client struct {
	ID             platform.WindowID
	Name           string
	Class          string
	Type           platform.WindowType
	TransientFor   platform.WindowID
	SupportsDelete bool

	// Geometry is the outer frame, border included. For tiled clients it
	// is owned by the tag layout.
	Geometry      tiling.Rect
	// SavedGeometry is restored when the client leaves fullscreen.
	SavedGeometry tiling.Rect

	Floating   bool
	Controlled bool
	Mapped     bool
	Fullscreen bool

	// Screen and Tag are indices of the owning screen and tag.
	Screen int
	Tag    int
}

// NewClient builds a client from window metadata. Transients and non-normal
// windows float; splash, notification, menu and desktop windows are ignored
// for focus.
func NewClient(w platform.Window) *Client {
	c := &Client{
		ID:             w.ID,
		Name:           w.Title,
		Class:          w.AppID,
		Type:           w.Type,
		TransientFor:   w.TransientFor,
		SupportsDelete: w.SupportsDelete,
		Geometry:       tiling.Rect{X: w.Bounds.X, Y: w.Bounds.Y, Width: w.Bounds.Width, Height: w.Bounds.Height},
		Mapped:         true,
		Fullscreen:     w.Fullscreen,
		Controlled:     true,
	}

	switch w.Type {
	case platform.WindowTypeSplash, platform.WindowTypeNotification,
		platform.WindowTypeMenu, platform.WindowTypeDesktop:
		c.Controlled = false
		c.Floating = true
	case platform.WindowTypeDialog, platform.WindowTypeUtility:
		c.Floating = true
	}
	if w.TransientFor != 0 {
		c.Floating = true
	}
	return c
}

// IsControlled reports whether the client takes part in focus management.
func IsControlled(c *Client) bool {
	return c.Controlled
}

// Tiled reports whether the layout places this client.
func (c *Client) Tiled() bool {
	return c.Mapped && !c.Floating && !c.Fullscreen
}
