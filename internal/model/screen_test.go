package model

import "testing"

func TestContainsPoint_InclusiveBounds(t *testing.T) {
	s := NewScreen(BBox{X: 0, Y: 0, Width: 100, Height: 50})

	cases := []struct {
		x, y int32
		want bool
	}{
		{0, 0, true},
		{100, 50, true},
		{50, 25, true},
		{101, 0, false},
		{0, 51, false},
		{-1, 0, false},
	}
	for _, tc := range cases {
		if got := s.ContainsPoint(tc.x, tc.y); got != tc.want {
			t.Fatalf("ContainsPoint(%d,%d): expected %v, got %v", tc.x, tc.y, tc.want, got)
		}
	}
}

func TestContainsPoint_OffsetScreen(t *testing.T) {
	s := NewScreen(BBox{X: 1920, Y: 0, Width: 1280, Height: 1024})
	if s.ContainsPoint(1919, 10) {
		t.Fatalf("expected point left of screen to be outside")
	}
	if !s.ContainsPoint(3200, 1024) {
		t.Fatalf("expected far corner to be inside")
	}
}

func TestContainsDockArea_EdgePriority(t *testing.T) {
	s := NewScreen(BBox{X: 0, Y: 0, Width: 1920, Height: 1080})
	area := [2]int32{1080, 1920}

	// Top wins even though bottom would fail.
	dock := DockArea{Top: 30, TopStartX: 10, Bottom: 30, BottomStartX: 5000}
	if !s.ContainsDockArea(dock, area) {
		t.Fatalf("expected top strut to decide")
	}

	// Top starting off-screen is rejected without consulting other edges.
	dock = DockArea{Top: 30, TopStartX: 5000, Left: 20, LeftStartY: 10}
	if s.ContainsDockArea(dock, area) {
		t.Fatalf("expected only the top edge to be tested")
	}
}

// The bottom and right sample points subtract from opposite elements of
// screensArea.
// These cases pin that behavior; change them only together with ContainsDockArea.
func TestContainsDockArea_LegacySamplePoints(t *testing.T) {
	s := NewScreen(BBox{X: 0, Y: 0, Width: 1920, Height: 1080})

	bottom := DockArea{Bottom: 40, BottomStartX: 100}
	// y = screensArea[0] - 40
	if !s.ContainsDockArea(bottom, [2]int32{1080, 99999}) {
		t.Fatalf("expected bottom sample point to use screensArea[0]")
	}
	if s.ContainsDockArea(bottom, [2]int32{99999, 1080}) {
		t.Fatalf("expected bottom sample point to ignore screensArea[1]")
	}

	right := DockArea{Right: 40, RightStartY: 100}
	// x = screensArea[1] - 40
	if !s.ContainsDockArea(right, [2]int32{99999, 1920}) {
		t.Fatalf("expected right sample point to use screensArea[1]")
	}
	if s.ContainsDockArea(right, [2]int32{1920, 99999}) {
		t.Fatalf("expected right sample point to ignore screensArea[0]")
	}

	// Left sample points (thickness, start_y).
	left := DockArea{Left: 2000, LeftStartY: 0}
	if s.ContainsDockArea(left, [2]int32{1080, 1920}) {
		t.Fatalf("expected left sample point to use thickness as x")
	}
}

func TestContainsDockArea_EmptyIsFalse(t *testing.T) {
	s := DefaultScreen()
	if s.ContainsDockArea(DockArea{}, [2]int32{600, 800}) {
		t.Fatalf("expected empty dock area to match no screen")
	}
}

func TestScreenFromMonitor(t *testing.T) {
	s := ScreenFromMonitor(Monitor{Name: "HDMI-1", X: 10, Y: 20, WidthPx: 1920, HeightPx: 1080})
	want := BBox{X: 10, Y: 20, Width: 1920, Height: 1080}
	if s.BBox != want {
		t.Fatalf("expected %+v, got %+v", want, s.BBox)
	}
	if !s.Root.IsMock() {
		t.Fatalf("expected mock root, got %s", s.Root)
	}
	if s.WorkspaceID != nil || s.MaxWindowWidth != nil {
		t.Fatalf("expected unassigned screen, got %+v", s)
	}
}

func TestBBoxIntersects(t *testing.T) {
	a := BBox{X: 0, Y: 0, Width: 100, Height: 100}
	if !a.Intersects(BBox{X: 50, Y: 50, Width: 100, Height: 100}) {
		t.Fatalf("expected overlap")
	}
	if a.Intersects(BBox{X: 100, Y: 0, Width: 10, Height: 10}) {
		t.Fatalf("expected touching edges not to intersect")
	}
}
