package model

import "testing"

func TestFullWidthDockArea(t *testing.T) {
	d := FullWidthDockArea(0, 0, 32, 0, 2560, 1440)
	if d.Top != 32 || d.TopStartX != 0 || d.TopEndX != 2559 {
		t.Fatalf("expected top edge across the root, got %+v", d)
	}
	if d.LeftEndY != 1439 || d.RightEndY != 1439 || d.BottomEndX != 2559 {
		t.Fatalf("expected every edge to span the root, got %+v", d)
	}
	if d.IsEmpty() {
		t.Fatalf("expected a 32px top strut to be non-empty")
	}
}

func TestWindowIsDock(t *testing.T) {
	w := NewWindow(XHandle(1), "panel")
	if w.IsDock() {
		t.Fatalf("expected a plain window not to be a dock")
	}

	w.Type = WindowTypeDock
	if !w.IsDock() {
		t.Fatalf("expected a dock-typed window to be a dock")
	}

	w = NewWindow(XHandle(2), "bar")
	empty := DockArea{}
	w.Strut = &empty
	if w.IsDock() {
		t.Fatalf("expected an empty strut not to make a dock")
	}
	strut := FullWidthDockArea(0, 0, 0, 24, 1920, 1080)
	w.Strut = &strut
	if !w.IsDock() {
		t.Fatalf("expected a reserving strut to make a dock")
	}
}
