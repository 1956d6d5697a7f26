// Package events defines the items the display adapter hands to the
// workspace engine. Items are immutable values consumed in emission order.
package events

import (
	"fmt"

	"github.com/1broseidon/tilewm/internal/model"
)

// Item is one manager-visible fact.
type Item interface {
	Kind() string
	isItem()
}

// ScreenCreate announces an output.
type ScreenCreate struct {
	Screen model.Screen
}

// WindowCreate announces a window eligible for management.
type WindowCreate struct {
	Window model.Window
}

// WindowDestroy reports a window that is gone or withdrawn.
type WindowDestroy struct {
	Handle model.WindowHandle
}

// WindowConfigure carries a client's request to change its own geometry.
type WindowConfigure struct {
	Handle model.WindowHandle
	BBox   model.BBox
	// Mask has one bit per requested field, as in ConfigureRequest.
	Mask uint16
}

// WindowNameChange reports a new title.
type WindowNameChange struct {
	Handle model.WindowHandle
	Name   string
}

// MouseEnterWindow reports the pointer crossing into a window.
type MouseEnterWindow struct {
	Handle model.WindowHandle
	X      int32
	Y      int32
}

func (ScreenCreate) Kind() string     { return "screen_create" }
func (WindowCreate) Kind() string     { return "window_create" }
func (WindowDestroy) Kind() string    { return "window_destroy" }
func (WindowConfigure) Kind() string  { return "window_configure" }
func (WindowNameChange) Kind() string { return "window_name_change" }
func (MouseEnterWindow) Kind() string { return "mouse_enter_window" }

func (ScreenCreate) isItem()     {}
func (WindowCreate) isItem()     {}
func (WindowDestroy) isItem()    {}
func (WindowConfigure) isItem()  {}
func (WindowNameChange) isItem() {}
func (MouseEnterWindow) isItem() {}

// Describe renders an item for logs.
func Describe(item Item) string {
	switch it := item.(type) {
	case ScreenCreate:
		b := it.Screen.BBox
		return fmt.Sprintf("%s %dx%d+%d+%d", it.Kind(), b.Width, b.Height, b.X, b.Y)
	case WindowCreate:
		return fmt.Sprintf("%s %s %q", it.Kind(), it.Window.Handle, it.Window.Name)
	case WindowDestroy:
		return fmt.Sprintf("%s %s", it.Kind(), it.Handle)
	case WindowConfigure:
		b := it.BBox
		return fmt.Sprintf("%s %s %dx%d+%d+%d", it.Kind(), it.Handle, b.Width, b.Height, b.X, b.Y)
	case WindowNameChange:
		return fmt.Sprintf("%s %s %q", it.Kind(), it.Handle, it.Name)
	case MouseEnterWindow:
		return fmt.Sprintf("%s %s at %d,%d", it.Kind(), it.Handle, it.X, it.Y)
	}
	return item.Kind()
}
