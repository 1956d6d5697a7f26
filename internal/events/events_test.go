package events

import (
	"strings"
	"testing"

	"github.com/1broseidon/tilewm/internal/model"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		item Item
		want string
	}{
		{ScreenCreate{Screen: model.NewScreen(model.BBox{X: 0, Y: 0, Width: 1920, Height: 1080})}, "screen_create 1920x1080+0+0"},
		{WindowCreate{Window: model.NewWindow(model.XHandle(0x1a), "term")}, `window_create x11:0x1a "term"`},
		{WindowDestroy{Handle: model.XHandle(0x2b)}, "window_destroy x11:0x2b"},
	}
	for _, tc := range cases {
		if got := Describe(tc.item); !strings.HasPrefix(got, tc.want) {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
