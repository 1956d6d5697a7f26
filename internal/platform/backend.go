package platform

import (
	"errors"

	"github.com/1broseidon/tilewm/internal/model"
)

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// ErrConnectionClosed is returned by NextEvent once the display is gone.
var ErrConnectionClosed = errors.New("display connection closed")

// Attributes are the raw per-window attributes used for eligibility.
// MapState keeps the protocol's numeric encoding.
type Attributes struct {
	MapState         uint8
	OverrideRedirect bool
	Root             WindowID
}

// WindowInfo is descriptive metadata for a window. Lookups are best-effort;
// missing properties leave zero values.
type WindowInfo struct {
	Name  string
	Type  model.WindowType
	BBox  model.BBox
	Strut *model.DockArea
}

// RawEventKind tags a RawEvent.
type RawEventKind int

const (
	RawOther RawEventKind = iota
	RawMapRequest
	RawUnmapNotify
	RawDestroyNotify
	RawConfigureRequest
	RawPropertyNotify
	RawEnterNotify
)

// RawEvent is a protocol event reduced to the fields the adapter reads.
type RawEvent struct {
	Kind   RawEventKind
	Window WindowID
	// Event is the window the event was reported on. For unmap and destroy
	// it is the parent when delivered through SubstructureNotify, and the
	// window itself when delivered through StructureNotify.
	Event WindowID
	// BBox and ValueMask are set for configure requests.
	BBox      model.BBox
	ValueMask uint16
	// Property is the atom name for property notifications.
	Property string
	// RootX and RootY are the pointer position for enter notifications.
	RootX int32
	RootY int32
}

// Backend abstracts the display server for the event adapter.
type Backend interface {
	// SelectEvents installs the event mask needed to receive live events.
	SelectEvents() error
	Monitors() ([]model.Monitor, error)
	RootWindow() (WindowID, model.BBox, error)
	TopLevelWindows() ([]WindowID, error)
	WindowAttributes(windowID WindowID) (Attributes, error)
	TransientFor(windowID WindowID) (WindowID, bool)
	WindowInfo(windowID WindowID) WindowInfo
	// WatchWindow subscribes to property and crossing events on a client.
	WatchWindow(windowID WindowID)
	// NextEvent blocks until the next raw event.
	NextEvent() (RawEvent, error)
	// ConfigureWindow pushes geometry and visibility without waiting for a reply.
	ConfigureWindow(windowID WindowID, bbox model.BBox, visible bool)
}
