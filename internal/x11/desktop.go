package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// supportedHints are advertised in _NET_SUPPORTED.
var supportedHints = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_CLOSE_WINDOW",
	"_NET_WM_DESKTOP",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_WM_STRUT",
	"_NET_WM_STRUT_PARTIAL",
}

// Announce creates the _NET_SUPPORTING_WM_CHECK window and publishes the
// supported hints under the given window manager name.
func (c *Connection) Announce(name string) error {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return fmt.Errorf("create support window: %w", err)
	}
	if err := win.CreateChecked(c.Root, -1, -1, 1, 1, xproto.CwOverrideRedirect, 1); err != nil {
		return fmt.Errorf("create support window: %w", err)
	}
	c.support = win.Id

	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, win.Id); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, win.Id, win.Id); err != nil {
		return err
	}
	if err := ewmh.WmNameSet(c.XUtil, win.Id, name); err != nil {
		return err
	}
	return ewmh.SupportedSet(c.XUtil, supportedHints)
}

// SetDesktops publishes the tag names of the focused screen as desktops.
func (c *Connection) SetDesktops(names []string) error {
	if err := ewmh.NumberOfDesktopsSet(c.XUtil, uint(len(names))); err != nil {
		return err
	}
	return ewmh.DesktopNamesSet(c.XUtil, names)
}

// SetCurrentDesktop publishes the viewed tag index.
func (c *Connection) SetCurrentDesktop(index int) error {
	return ewmh.CurrentDesktopSet(c.XUtil, uint(index))
}

// SetActiveWindow publishes the focused window, zero for none.
func (c *Connection) SetActiveWindow(windowID xproto.Window) error {
	return ewmh.ActiveWindowSet(c.XUtil, windowID)
}

// SetClientList publishes the managed windows in mapping order.
func (c *Connection) SetClientList(windows []xproto.Window) error {
	return ewmh.ClientListSet(c.XUtil, windows)
}

// SetWindowDesktop records which tag a window lives on.
func (c *Connection) SetWindowDesktop(windowID xproto.Window, desktop int) error {
	return ewmh.WmDesktopSet(c.XUtil, windowID, uint(desktop))
}

// SetFullscreenState adds or removes _NET_WM_STATE_FULLSCREEN, keeping any
// other states the client set.
func (c *Connection) SetFullscreenState(windowID xproto.Window, on bool) error {
	const fullscreen = "_NET_WM_STATE_FULLSCREEN"
	states, _ := ewmh.WmStateGet(c.XUtil, windowID)
	out := make([]string, 0, len(states)+1)
	for _, s := range states {
		if s != fullscreen {
			out = append(out, s)
		}
	}
	if on {
		out = append(out, fullscreen)
	}
	return ewmh.WmStateSet(c.XUtil, windowID, out)
}
