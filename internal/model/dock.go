package model

// DockArea is the space a dock reserves along the screen edges, in the shape of
// _NET_WM_STRUT_PARTIAL.
type DockArea struct {
	Top          int32 `json:"top"`
	TopStartX    int32 `json:"top_start_x"`
	TopEndX      int32 `json:"top_end_x"`
	Bottom       int32 `json:"bottom"`
	BottomStartX int32 `json:"bottom_start_x"`
	BottomEndX   int32 `json:"bottom_end_x"`
	Left         int32 `json:"left"`
	LeftStartY   int32 `json:"left_start_y"`
	LeftEndY     int32 `json:"left_end_y"`
	Right        int32 `json:"right"`
	RightStartY  int32 `json:"right_start_y"`
	RightEndY    int32 `json:"right_end_y"`
}

// IsEmpty reports whether no edge is reserved.
func (d DockArea) IsEmpty() bool {
	return d.Top <= 0 && d.Bottom <= 0 && d.Left <= 0 && d.Right <= 0
}

// FullWidthDockArea expands a plain _NET_WM_STRUT into partial form spanning
// the whole root of the given size.
func FullWidthDockArea(left, right, top, bottom, rootWidth, rootHeight int32) DockArea {
	return DockArea{
		Top:          top,
		TopStartX:    0,
		TopEndX:      rootWidth - 1,
		Bottom:       bottom,
		BottomStartX: 0,
		BottomEndX:   rootWidth - 1,
		Left:         left,
		LeftStartY:   0,
		LeftEndY:     rootHeight - 1,
		Right:        right,
		RightStartY:  0,
		RightEndY:    rootHeight - 1,
	}
}
