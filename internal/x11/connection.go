package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// ErrOtherWM is returned by BecomeWM when another client already holds
// substructure redirection on the root window.
var ErrOtherWM = errors.New("another window manager is already running")

// ErrConnectionClosed is returned by WaitForEvent once the server is gone.
var ErrConnectionClosed = errors.New("x11 connection closed")

// rootEventMask is what the window manager always listens to on the root.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// support is the _NET_SUPPORTING_WM_CHECK window, zero until created.
	support  xproto.Window
	rootMask uint32
}

// NewConnection establishes a connection to the X11 server and loads the
// keyboard mapping.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	keybind.Initialize(xu)
	configureIgnoreMods(xu)

	return &Connection{
		XUtil:    xu,
		Root:     xu.RootWin(),
		rootMask: rootEventMask,
	}, nil
}

// BecomeWM selects substructure redirection on the root window.
func (c *Connection) BecomeWM() error {
	err := xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), c.Root, xproto.CwEventMask,
		[]uint32{c.rootMask}).Check()
	if err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return ErrOtherWM
		}
		return fmt.Errorf("select root events: %w", err)
	}
	return nil
}

// SetRootPointerMotion adds or removes pointer motion from the root event mask.
func (c *Connection) SetRootPointerMotion(on bool) error {
	mask := uint32(rootEventMask)
	if on {
		mask |= xproto.EventMaskPointerMotion
	}
	if mask == c.rootMask {
		return nil
	}
	c.rootMask = mask
	return xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), c.Root, xproto.CwEventMask,
		[]uint32{mask}).Check()
}

// WaitForEvent blocks for the next event. Protocol errors are returned as
// errors with a nil event; the connection stays usable after them.
func (c *Connection) WaitForEvent() (xgb.Event, error) {
	ev, xerr := c.XUtil.Conn().WaitForEvent()
	if ev == nil && xerr == nil {
		return nil, ErrConnectionClosed
	}
	if xerr != nil {
		return nil, xerr
	}
	return ev, nil
}

// RootSize returns the root window dimensions.
func (c *Connection) RootSize() (width, height int) {
	s := c.XUtil.Screen()
	return int(s.WidthInPixels), int(s.HeightInPixels)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	if c.support != 0 {
		xproto.DestroyWindow(c.XUtil.Conn(), c.support)
	}
	c.XUtil.Conn().Close()
}
