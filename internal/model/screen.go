package model

// Screen is one physical output as known to the manager. Screens are replaced
// wholesale on topology change, never mutated.
type Screen struct {
	Root           WindowHandle `json:"root"`
	BBox           BBox         `json:"bbox"`
	WorkspaceID    *int32       `json:"workspace_id,omitempty"`
	MaxWindowWidth *Size        `json:"max_window_width,omitempty"`
}

// NewScreen returns a screen with a mock root and no workspace link.
func NewScreen(bbox BBox) Screen {
	return Screen{Root: MockHandle(0), BBox: bbox}
}

// DefaultScreen is the 800x600 fallback used when nothing better is known.
func DefaultScreen() Screen {
	return NewScreen(BBox{X: 0, Y: 0, Width: 800, Height: 600})
}

// ScreenFromMonitor builds an unassigned screen from a live monitor.
func ScreenFromMonitor(m Monitor) Screen {
	return NewScreen(BBoxFromMonitor(m))
}

// ScreenFromRootGeometry builds a screen for a root window of the given size.
func ScreenFromRootGeometry(root WindowHandle, bbox BBox) Screen {
	return Screen{Root: root, BBox: bbox}
}

// ContainsPoint reports whether (x, y) lies in the screen, edges included.
func (s Screen) ContainsPoint(x, y int32) bool {
	b := s.BBox
	maxX := b.X + b.Width
	maxY := b.Y + b.Height
	return (b.X <= x && x <= maxX) && (b.Y <= y && y <= maxY)
}

// ContainsDockArea reports whether a dock's reserved strip belongs to this
// screen. Only the first edge with a positive thickness is tested, in the order
// top, bottom, left, right.
//
// The sample points are kept as they have always been: bottom subtracts from
// screensArea[0] and right from screensArea[1], and the left sample point uses
// the strut thickness as its x coordinate. Dock placement in existing setups
// depends on these exact points.
func (s Screen) ContainsDockArea(dock DockArea, screensArea [2]int32) bool {
	switch {
	case dock.Top > 0:
		return s.ContainsPoint(dock.TopStartX, dock.Top)
	case dock.Bottom > 0:
		return s.ContainsPoint(dock.BottomStartX, screensArea[0]-dock.Bottom)
	case dock.Left > 0:
		return s.ContainsPoint(dock.Left, dock.LeftStartY)
	case dock.Right > 0:
		return s.ContainsPoint(screensArea[1]-dock.Right, dock.RightStartY)
	}
	return false
}
