package model

// WindowType is the EWMH role a client declares.
type WindowType string

const (
	WindowTypeNormal  WindowType = "normal"
	WindowTypeDialog  WindowType = "dialog"
	WindowTypeDock    WindowType = "dock"
	WindowTypeUtility WindowType = "utility"
	WindowTypeSplash  WindowType = "splash"
	WindowTypeMenu    WindowType = "menu"
	WindowTypeToolbar WindowType = "toolbar"
	WindowTypeDesktop WindowType = "desktop"
)

// Window is a top-level client the manager tracks.
type Window struct {
	Handle    WindowHandle  `json:"handle"`
	Transient *WindowHandle `json:"transient,omitempty"`
	Name      string        `json:"name"`
	Type      WindowType    `json:"type"`
	BBox      BBox          `json:"bbox"`
	Visible   bool          `json:"visible"`
	Strut     *DockArea     `json:"strut,omitempty"`
}

// NewWindow returns a visible normal window.
func NewWindow(h WindowHandle, name string) Window {
	return Window{
		Handle:  h,
		Name:    name,
		Type:    WindowTypeNormal,
		Visible: true,
	}
}

// IsDock reports whether the window reserves screen space.
func (w Window) IsDock() bool {
	return w.Type == WindowTypeDock || (w.Strut != nil && !w.Strut.IsEmpty())
}
