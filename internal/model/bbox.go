package model

// BBox is a rectangle in output pixel coordinates.
type BBox struct {
	X      int32 `yaml:"x" json:"x"`
	Y      int32 `yaml:"y" json:"y"`
	Width  int32 `yaml:"width" json:"width"`
	Height int32 `yaml:"height" json:"height"`
}

// Center returns the midpoint of the box, rounded toward the origin.
func (b BBox) Center() (int32, int32) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Intersects reports whether b and o share a region of positive area.
func (b BBox) Intersects(o BBox) bool {
	x1 := max(b.X, o.X)
	y1 := max(b.Y, o.Y)
	x2 := min(b.X+b.Width, o.X+o.Width)
	y2 := min(b.Y+b.Height, o.Y+o.Height)
	return x2 > x1 && y2 > y1
}

// Monitor is a physical output as reported by the display server.
type Monitor struct {
	Name     string `json:"name"`
	X        int32  `json:"x"`
	Y        int32  `json:"y"`
	WidthPx  int32  `json:"width_px"`
	HeightPx int32  `json:"height_px"`
	Primary  bool   `json:"primary,omitempty"`
}

// BBoxFromMonitor returns the monitor's rectangle.
func BBoxFromMonitor(m Monitor) BBox {
	return BBox{
		X:      m.X,
		Y:      m.Y,
		Width:  m.WidthPx,
		Height: m.HeightPx,
	}
}
