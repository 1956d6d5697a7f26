//go:build linux

package platform

import (
	"testing"

	"github.com/1broseidon/tilewm/internal/model"
	"github.com/1broseidon/tilewm/internal/x11"
)

func TestWindowTypeFromEWMH(t *testing.T) {
	cases := []struct {
		types []string
		want  model.WindowType
	}{
		{nil, model.WindowTypeNormal},
		{[]string{"_NET_WM_WINDOW_TYPE_DIALOG"}, model.WindowTypeDialog},
		{[]string{"_KDE_NET_WM_WINDOW_TYPE_OVERRIDE", "_NET_WM_WINDOW_TYPE_DOCK"}, model.WindowTypeDock},
		{[]string{"_NET_WM_WINDOW_TYPE_POPUP_MENU"}, model.WindowTypeMenu},
	}
	for _, tc := range cases {
		if got := windowTypeFromEWMH(tc.types); got != tc.want {
			t.Fatalf("types %v: expected %s, got %s", tc.types, tc.want, got)
		}
	}
}

func TestDockAreaFromStrut(t *testing.T) {
	got := dockAreaFromStrut(x11.Strut{Top: 30, TopStartX: 0, TopEndX: 1279, Partial: true}, 1920, 1080)
	if got.Top != 30 || got.TopEndX != 1279 || got.Bottom != 0 {
		t.Fatalf("unexpected dock area %+v", got)
	}
}

func TestDockAreaFromPlainStrutSpansRoot(t *testing.T) {
	got := dockAreaFromStrut(x11.Strut{Bottom: 24, Left: 48}, 1920, 1080)
	want := model.DockArea{
		Bottom: 24, BottomStartX: 0, BottomEndX: 1919,
		Top: 0, TopStartX: 0, TopEndX: 1919,
		Left: 48, LeftStartY: 0, LeftEndY: 1079,
		Right: 0, RightStartY: 0, RightEndY: 1079,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMonitorFromX11(t *testing.T) {
	m := monitorFromX11(x11.Monitor{Output: 66, Name: "DP-1", X: 1920, Y: 0, Width: 2560, Height: 1440, Primary: true})
	want := model.Monitor{Name: "DP-1", X: 1920, Y: 0, WidthPx: 2560, HeightPx: 1440, Primary: true}
	if m != want {
		t.Fatalf("expected %+v, got %+v", want, m)
	}
}

func TestNilBackendIsSafe(t *testing.T) {
	var b *LinuxBackend
	if _, err := b.Monitors(); err == nil {
		t.Fatalf("expected error from nil backend")
	}
	if _, ok := b.TransientFor(1); ok {
		t.Fatalf("expected no transient owner from nil backend")
	}
	b.ConfigureWindow(1, model.BBox{}, true)
	b.WatchWindow(1)
	b.Disconnect()
}
