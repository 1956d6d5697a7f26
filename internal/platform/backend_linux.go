//go:build linux

package platform

import (
	"errors"
	"fmt"
	"sync"

	"github.com/1broseidon/tilewm/internal/model"
	"github.com/1broseidon/tilewm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn      *x11.Connection
	closeOnce sync.Once
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a new X11 connection to display ("" means
// $DISPLAY).
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnectionDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection. Later calls are no-ops.
func (b *LinuxBackend) Disconnect() {
	if b == nil || b.conn == nil {
		return
	}
	b.closeOnce.Do(b.conn.Close)
}

func (b *LinuxBackend) SelectEvents() error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SelectRootEvents()
}

// Monitors returns all active RandR outputs.
func (b *LinuxBackend) Monitors() ([]model.Monitor, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.Monitors()
	if err != nil {
		return nil, err
	}

	out := make([]model.Monitor, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, monitorFromX11(m))
	}
	return out, nil
}

func (b *LinuxBackend) RootWindow() (WindowID, model.BBox, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, model.BBox{}, err
	}
	x, y, w, h, err := conn.RootGeometry()
	if err != nil {
		return 0, model.BBox{}, err
	}
	return WindowID(conn.Root), model.BBox{X: int32(x), Y: int32(y), Width: int32(w), Height: int32(h)}, nil
}

func (b *LinuxBackend) TopLevelWindows() ([]WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	children, err := conn.TopLevelWindows()
	if err != nil {
		return nil, err
	}
	ids := make([]WindowID, 0, len(children))
	for _, w := range children {
		ids = append(ids, WindowID(w))
	}
	return ids, nil
}

func (b *LinuxBackend) WindowAttributes(windowID WindowID) (Attributes, error) {
	conn, err := b.connection()
	if err != nil {
		return Attributes{}, err
	}
	attrs, err := conn.WindowAttributes(xproto.Window(windowID))
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{
		MapState:         attrs.MapState,
		OverrideRedirect: attrs.OverrideRedirect,
		Root:             WindowID(attrs.Root),
	}, nil
}

func (b *LinuxBackend) TransientFor(windowID WindowID) (WindowID, bool) {
	if b == nil || b.conn == nil {
		return 0, false
	}
	owner, ok := b.conn.TransientFor(xproto.Window(windowID))
	return WindowID(owner), ok
}

func (b *LinuxBackend) WindowInfo(windowID WindowID) WindowInfo {
	if b == nil || b.conn == nil {
		return WindowInfo{}
	}
	win := xproto.Window(windowID)

	info := WindowInfo{
		Name: b.conn.WindowTitle(win),
		Type: windowTypeFromEWMH(b.conn.WindowTypes(win)),
	}
	if x, y, w, h, err := b.conn.WindowGeometry(win); err == nil {
		info.BBox = model.BBox{X: int32(x), Y: int32(y), Width: int32(w), Height: int32(h)}
	}
	if s, ok := b.conn.WindowStrut(win); ok {
		var rootWidth, rootHeight int32
		if !s.Partial {
			_, _, w, h, err := b.conn.RootGeometry()
			if err != nil {
				return info
			}
			rootWidth, rootHeight = int32(w), int32(h)
		}
		dock := dockAreaFromStrut(s, rootWidth, rootHeight)
		info.Strut = &dock
	}
	return info
}

// NextEvent blocks on the X connection and reduces the event to a RawEvent.
func (b *LinuxBackend) NextEvent() (RawEvent, error) {
	conn, err := b.connection()
	if err != nil {
		return RawEvent{}, err
	}

	ev, err := conn.WaitForEvent()
	if err != nil {
		if errors.Is(err, x11.ErrConnectionClosed) {
			return RawEvent{}, ErrConnectionClosed
		}
		return RawEvent{}, err
	}

	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return RawEvent{Kind: RawMapRequest, Window: WindowID(e.Window), Event: WindowID(e.Parent)}, nil
	case xproto.UnmapNotifyEvent:
		return RawEvent{Kind: RawUnmapNotify, Window: WindowID(e.Window), Event: WindowID(e.Event)}, nil
	case xproto.DestroyNotifyEvent:
		return RawEvent{Kind: RawDestroyNotify, Window: WindowID(e.Window), Event: WindowID(e.Event)}, nil
	case xproto.ConfigureRequestEvent:
		return RawEvent{
			Kind:      RawConfigureRequest,
			Window:    WindowID(e.Window),
			ValueMask: e.ValueMask,
			BBox: model.BBox{
				X:      int32(e.X),
				Y:      int32(e.Y),
				Width:  int32(e.Width),
				Height: int32(e.Height),
			},
		}, nil
	case xproto.PropertyNotifyEvent:
		return RawEvent{
			Kind:     RawPropertyNotify,
			Window:   WindowID(e.Window),
			Event:    WindowID(e.Window),
			Property: conn.AtomName(e.Atom),
		}, nil
	case xproto.EnterNotifyEvent:
		return RawEvent{
			Kind:   RawEnterNotify,
			Window: WindowID(e.Event),
			Event:  WindowID(e.Event),
			RootX:  int32(e.RootX),
			RootY:  int32(e.RootY),
		}, nil
	}
	return RawEvent{Kind: RawOther}, nil
}

func (b *LinuxBackend) WatchWindow(windowID WindowID) {
	if b == nil || b.conn == nil {
		return
	}
	b.conn.SelectClientEvents(xproto.Window(windowID))
}

func (b *LinuxBackend) ConfigureWindow(windowID WindowID, bbox model.BBox, visible bool) {
	if b == nil || b.conn == nil {
		return
	}
	win := xproto.Window(windowID)
	if !visible {
		b.conn.SetMapped(win, false)
		return
	}
	b.conn.MoveResizeWindow(win, int(bbox.X), int(bbox.Y), int(bbox.Width), int(bbox.Height))
	b.conn.SetMapped(win, true)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func monitorFromX11(m x11.Monitor) model.Monitor {
	return model.Monitor{
		Name:     m.Name,
		X:        int32(m.X),
		Y:        int32(m.Y),
		WidthPx:  int32(m.Width),
		HeightPx: int32(m.Height),
		Primary:  m.Primary,
	}
}

// dockAreaFromStrut converts a strut; a plain _NET_WM_STRUT is expanded to
// span a root of the given size.
func dockAreaFromStrut(s x11.Strut, rootWidth, rootHeight int32) model.DockArea {
	if !s.Partial {
		return model.FullWidthDockArea(int32(s.Left), int32(s.Right), int32(s.Top), int32(s.Bottom), rootWidth, rootHeight)
	}
	return model.DockArea{
		Top:          int32(s.Top),
		TopStartX:    int32(s.TopStartX),
		TopEndX:      int32(s.TopEndX),
		Bottom:       int32(s.Bottom),
		BottomStartX: int32(s.BottomStartX),
		BottomEndX:   int32(s.BottomEndX),
		Left:         int32(s.Left),
		LeftStartY:   int32(s.LeftStartY),
		LeftEndY:     int32(s.LeftEndY),
		Right:        int32(s.Right),
		RightStartY:  int32(s.RightStartY),
		RightEndY:    int32(s.RightEndY),
	}
}

// windowTypeFromEWMH picks the first recognised _NET_WM_WINDOW_TYPE. Windows
// without the property are normal.
func windowTypeFromEWMH(types []string) model.WindowType {
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			return model.WindowTypeNormal
		case "_NET_WM_WINDOW_TYPE_DIALOG":
			return model.WindowTypeDialog
		case "_NET_WM_WINDOW_TYPE_DOCK":
			return model.WindowTypeDock
		case "_NET_WM_WINDOW_TYPE_UTILITY":
			return model.WindowTypeUtility
		case "_NET_WM_WINDOW_TYPE_SPLASH":
			return model.WindowTypeSplash
		case "_NET_WM_WINDOW_TYPE_MENU", "_NET_WM_WINDOW_TYPE_DROPDOWN_MENU", "_NET_WM_WINDOW_TYPE_POPUP_MENU":
			return model.WindowTypeMenu
		case "_NET_WM_WINDOW_TYPE_TOOLBAR":
			return model.WindowTypeToolbar
		case "_NET_WM_WINDOW_TYPE_DESKTOP":
			return model.WindowTypeDesktop
		}
	}
	return model.WindowTypeNormal
}
