package display

import (
	"testing"

	"github.com/1broseidon/tilewm/internal/events"
	"github.com/1broseidon/tilewm/internal/model"
	"github.com/1broseidon/tilewm/internal/platform"
)

// liveItems drains the bootstrap batch and returns the items of the next call.
func liveItems(t *testing.T, a *Adapter, b *fakeBackend, raw platform.RawEvent) []events.Item {
	t.Helper()
	a.NextEvents()
	b.queue = append(b.queue, raw)
	return a.NextEvents()
}

func TestTranslate_MapRequest(t *testing.T) {
	b := newFakeBackend()
	b.monitors = []model.Monitor{{Name: "eDP-1", WidthPx: 1920, HeightPx: 1080}}
	a := newTestAdapter(t, b)
	a.NextEvents()

	b.windows[50] = fakeWindow{info: platform.WindowInfo{Name: "editor", Type: model.WindowTypeDialog}}
	b.queue = append(b.queue, platform.RawEvent{Kind: platform.RawMapRequest, Window: 50})
	items := a.NextEvents()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	wc, ok := items[0].(events.WindowCreate)
	if !ok {
		t.Fatalf("expected window_create, got %s", items[0].Kind())
	}
	if wc.Window.Name != "editor" || wc.Window.Type != model.WindowTypeDialog {
		t.Fatalf("unexpected window %+v", wc.Window)
	}
	if len(b.watched) != 1 || b.watched[0] != 50 {
		t.Fatalf("expected mapped window 50 to be watched, got %v", b.watched)
	}
}

func TestTranslate_MapRequestOverrideRedirectDropped(t *testing.T) {
	b := newFakeBackend()
	a := newTestAdapter(t, b)
	b.windows[51] = fakeWindow{attrs: platform.Attributes{OverrideRedirect: true}}

	items := liveItems(t, a, b, platform.RawEvent{Kind: platform.RawMapRequest, Window: 51})
	if len(items) != 0 {
		t.Fatalf("expected override-redirect map request to be dropped, got %d items", len(items))
	}
}

func TestTranslate_UnmapAfterHideIsDropped(t *testing.T) {
	b := newFakeBackend()
	a := newTestAdapter(t, b)
	a.NextEvents()

	w := model.NewWindow(model.XHandle(60), "")
	w.Visible = false
	a.UpdateWindows([]model.Window{w})

	b.queue = append(b.queue,
		platform.RawEvent{Kind: platform.RawUnmapNotify, Window: 60, Event: 1},
		platform.RawEvent{Kind: platform.RawUnmapNotify, Window: 60, Event: 1},
	)
	if items := a.NextEvents(); len(items) != 0 {
		t.Fatalf("expected our own unmap to be dropped, got %d items", len(items))
	}
	items := a.NextEvents()
	if len(items) != 1 {
		t.Fatalf("expected client unmap to be reported, got %d items", len(items))
	}
	if d, ok := items[0].(events.WindowDestroy); !ok || d.Handle != model.XHandle(60) {
		t.Fatalf("expected window_destroy for 60, got %+v", items[0])
	}
}

func TestTranslate_HiddenWindowSurvivesDuplicateUnmap(t *testing.T) {
	b := newFakeBackend()
	a := newTestAdapter(t, b)
	a.NextEvents()

	w := model.NewWindow(model.XHandle(7), "")
	w.Visible = false
	a.UpdateWindows([]model.Window{w})

	// One unmap reaches the root through SubstructureNotify, a second copy
	// may be reported on the window itself.
	b.queue = append(b.queue,
		platform.RawEvent{Kind: platform.RawUnmapNotify, Window: 7, Event: 1},
		platform.RawEvent{Kind: platform.RawUnmapNotify, Window: 7, Event: 7},
	)
	for i := 0; i < 2; i++ {
		if items := a.NextEvents(); len(items) != 0 {
			t.Fatalf("expected hidden window to stay known, got %s", events.Describe(items[0]))
		}
	}
}

func TestTranslate_DestroyReportedOnce(t *testing.T) {
	b := newFakeBackend()
	a := newTestAdapter(t, b)
	a.NextEvents()

	b.queue = append(b.queue,
		platform.RawEvent{Kind: platform.RawDestroyNotify, Window: 9, Event: 1},
		platform.RawEvent{Kind: platform.RawDestroyNotify, Window: 9, Event: 9},
		platform.RawEvent{Kind: platform.RawUnmapNotify, Window: 10, Event: 10},
	)
	var destroyed int
	for i := 0; i < 3; i++ {
		for _, it := range a.NextEvents() {
			if _, ok := it.(events.WindowDestroy); ok {
				destroyed++
			}
		}
	}
	if destroyed != 1 {
		t.Fatalf("expected 1 window_destroy, got %d", destroyed)
	}
}

func TestTranslate_LiveEvents(t *testing.T) {
	cases := []struct {
		name string
		raw  platform.RawEvent
		want events.Item
	}{
		{
			name: "destroy",
			raw:  platform.RawEvent{Kind: platform.RawDestroyNotify, Window: 70, Event: 1},
			want: events.WindowDestroy{Handle: model.XHandle(70)},
		},
		{
			name: "configure request",
			raw:  platform.RawEvent{Kind: platform.RawConfigureRequest, Window: 71, BBox: model.BBox{X: 5, Y: 6, Width: 7, Height: 8}, ValueMask: 15},
			want: events.WindowConfigure{Handle: model.XHandle(71), BBox: model.BBox{X: 5, Y: 6, Width: 7, Height: 8}, Mask: 15},
		},
		{
			name: "enter",
			raw:  platform.RawEvent{Kind: platform.RawEnterNotify, Window: 72, RootX: 100, RootY: 200},
			want: events.MouseEnterWindow{Handle: model.XHandle(72), X: 100, Y: 200},
		},
		{
			name: "name change",
			raw:  platform.RawEvent{Kind: platform.RawPropertyNotify, Window: 73, Property: "_NET_WM_NAME"},
			want: events.WindowNameChange{Handle: model.XHandle(73), Name: "renamed"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newFakeBackend()
			b.windows[73] = fakeWindow{info: platform.WindowInfo{Name: "renamed"}}
			a := newTestAdapter(t, b)

			items := liveItems(t, a, b, tc.raw)
			if len(items) != 1 {
				t.Fatalf("expected 1 item, got %d", len(items))
			}
			if items[0] != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, items[0])
			}
		})
	}
}

func TestTranslate_IrrelevantEventsDropped(t *testing.T) {
	for _, raw := range []platform.RawEvent{
		{Kind: platform.RawOther, Window: 80},
		{Kind: platform.RawPropertyNotify, Window: 80, Property: "_NET_WM_ICON"},
	} {
		b := newFakeBackend()
		a := newTestAdapter(t, b)
		if items := liveItems(t, a, b, raw); len(items) != 0 {
			t.Fatalf("expected %+v to be dropped, got %d items", raw, len(items))
		}
	}
}
