package x11

import (
	"github.com/BurntSushi/xgb/xproto"
)

// GrabClicks installs a synchronous passive grab for the primary buttons on
// the root window. Every click is held until AllowReplay releases it to the
// window underneath.
func (c *Connection) GrabClicks(on bool) error {
	conn := c.XUtil.Conn()
	for _, b := range []byte{xproto.ButtonIndex1, xproto.ButtonIndex2, xproto.ButtonIndex3} {
		xproto.UngrabButton(conn, b, c.Root, xproto.ModMaskAny)
		if !on {
			continue
		}
		err := xproto.GrabButtonChecked(conn, false, c.Root, xproto.EventMaskButtonPress,
			xproto.GrabModeSync, xproto.GrabModeAsync, xproto.WindowNone, xproto.CursorNone,
			b, xproto.ModMaskAny).Check()
		if err != nil {
			return err
		}
	}
	return nil
}

// AllowReplay releases a frozen click to the client it was aimed at.
func (c *Connection) AllowReplay() error {
	return xproto.AllowEventsChecked(c.XUtil.Conn(), xproto.AllowReplayPointer, xproto.TimeCurrentTime).Check()
}

// Pointer returns the pointer position in root coordinates.
func (c *Connection) Pointer() (x, y int, err error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}
