package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// ErrConnectionClosed is returned once the server has gone away.
var ErrConnectionClosed = errors.New("x11 connection closed")

// rootEventMask is what a window manager needs on the root to see clients
// come and go and to intercept their map and configure requests.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskEnterWindow

// clientEventMask is selected on each managed client. Unmap and destroy
// already arrive through SubstructureNotify on the root.
const clientEventMask = xproto.EventMaskPropertyChange |
	xproto.EventMaskEnterWindow

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnectionDisplay connects to the given display. An empty name means
// $DISPLAY.
func NewConnectionDisplay(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	// EWMH and RandR extensions are initialized lazily
	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// SelectRootEvents installs the window manager event mask on the root. It
// fails if another window manager already holds SubstructureRedirect.
func (c *Connection) SelectRootEvents() error {
	err := xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(),
		c.Root,
		xproto.CwEventMask,
		[]uint32{uint32(rootEventMask)},
	).Check()
	if err != nil {
		return fmt.Errorf("failed to select root events (is another window manager running?): %w", err)
	}
	return nil
}

// SelectClientEvents subscribes to property and crossing events on a client.
func (c *Connection) SelectClientEvents(windowID xproto.Window) {
	xproto.ChangeWindowAttributes(
		c.XUtil.Conn(),
		windowID,
		xproto.CwEventMask,
		[]uint32{uint32(clientEventMask)},
	)
}

// WaitForEvent blocks until the next event or protocol error arrives.
// WaitForEvent returns either an event or an error and never both; both nil
// means the connection is gone.
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

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
