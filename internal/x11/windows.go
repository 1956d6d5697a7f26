package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Attributes are the raw window attributes the eligibility check needs.
type Attributes struct {
	MapState         uint8
	OverrideRedirect bool
	Root             xproto.Window
}

// Strut is a dock's reserved space in _NET_WM_STRUT_PARTIAL form.
type Strut struct {
	Left, Right, Top, Bottom                     int
	LeftStartY, LeftEndY                         int
	RightStartY, RightEndY                       int
	TopStartX, TopEndX, BottomStartX, BottomEndX int
	// Partial is false when only _NET_WM_STRUT was set; the start/end
	// fields are then zero and the edges span the whole root.
	Partial bool
}

// TopLevelWindows lists the children of the root, bottom to top.
func (c *Connection) TopLevelWindows() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query window tree: %w", err)
	}
	return tree.Children, nil
}

// WindowAttributes fetches map state and override-redirect for a window.
func (c *Connection) WindowAttributes(windowID xproto.Window) (Attributes, error) {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return Attributes{}, fmt.Errorf("failed to get attributes of window %d: %w", windowID, err)
	}

	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	root := c.Root
	if err == nil {
		root = geom.Root
	}

	return Attributes{
		MapState:         attrs.MapState,
		OverrideRedirect: attrs.OverrideRedirect,
		Root:             root,
	}, nil
}

// TransientFor returns the WM_TRANSIENT_FOR owner of a window, if any.
func (c *Connection) TransientFor(windowID xproto.Window) (xproto.Window, bool) {
	owner, err := icccm.WmTransientForGet(c.XUtil, windowID)
	if err != nil || owner == 0 {
		return 0, false
	}
	return owner, true
}

// WindowTitle prefers _NET_WM_NAME and falls back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	return ""
}

// WindowTypes returns the _NET_WM_WINDOW_TYPE atoms of a window. A window
// without the property yields nil.
func (c *Connection) WindowTypes(windowID xproto.Window) []string {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return nil
	}
	return types
}

// WindowGeometry returns a window's position relative to the root and size.
func (c *Connection) WindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// WindowStrut reads the space a dock reserves, preferring
// _NET_WM_STRUT_PARTIAL over _NET_WM_STRUT.
func (c *Connection) WindowStrut(windowID xproto.Window) (Strut, bool) {
	if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
		return Strut{
			Left:         int(sp.Left),
			Right:        int(sp.Right),
			Top:          int(sp.Top),
			Bottom:       int(sp.Bottom),
			LeftStartY:   int(sp.LeftStartY),
			LeftEndY:     int(sp.LeftEndY),
			RightStartY:  int(sp.RightStartY),
			RightEndY:    int(sp.RightEndY),
			TopStartX:    int(sp.TopStartX),
			TopEndX:      int(sp.TopEndX),
			BottomStartX: int(sp.BottomStartX),
			BottomEndX:   int(sp.BottomEndX),
			Partial:      true,
		}, true
	}

	s, err := ewmh.WmStrutGet(c.XUtil, windowID)
	if err != nil {
		return Strut{}, false
	}
	return Strut{
		Left:   int(s.Left),
		Right:  int(s.Right),
		Top:    int(s.Top),
		Bottom: int(s.Bottom),
	}, true
}

// AtomName resolves an atom for property notifications.
func (c *Connection) AtomName(atom xproto.Atom) string {
	name, err := xprop.AtomName(c.XUtil, atom)
	if err != nil {
		return ""
	}
	return name
}

// MoveResizeWindow configures a window's geometry directly. As the window
// manager we own placement, so no EWMH request round-trip is needed.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	xproto.ConfigureWindow(
		c.XUtil.Conn(),
		windowID,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(x)), uint32(int32(y)), uint32(width), uint32(height)},
	)
}

// SetMapped maps or unmaps a window.
func (c *Connection) SetMapped(windowID xproto.Window, mapped bool) {
	if mapped {
		xproto.MapWindow(c.XUtil.Conn(), windowID)
		return
	}
	xproto.UnmapWindow(c.XUtil.Conn(), windowID)
}
