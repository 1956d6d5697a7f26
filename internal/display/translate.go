package display

import (
	"github.com/1broseidon/tilewm/internal/events"
	"github.com/1broseidon/tilewm/internal/model"
	"github.com/1broseidon/tilewm/internal/platform"
)

var nameProperties = map[string]struct{}{
	"WM_NAME":      {},
	"_NET_WM_NAME": {},
}

// translate turns one raw event into at most one item. Events the workspace
// engine has no use for yield nil.
func (a *Adapter) translate(raw platform.RawEvent) events.Item {
	handle := model.XHandle(uint32(raw.Window))

	switch raw.Kind {
	case platform.RawMapRequest:
		// A map request is the moment a client asks to become visible; it is
		// not viewable yet, so only override-redirect and transience matter.
		attrs, err := a.backend.WindowAttributes(raw.Window)
		if err != nil {
			a.logger.Warn("map request for unreadable window", "window_id", uint32(raw.Window), "error", err)
			return nil
		}
		owner, hasOwner := a.backend.TransientFor(raw.Window)
		if attrs.OverrideRedirect && !hasOwner {
			return nil
		}
		a.backend.WatchWindow(raw.Window)
		return events.WindowCreate{Window: a.buildWindow(raw.Window, owner, hasOwner)}

	// Unmap and destroy copies reported on the window itself duplicate the
	// ones reported on its parent.
	case platform.RawUnmapNotify:
		if raw.Event == raw.Window {
			return nil
		}
		if a.consumeHidden(raw.Window) {
			return nil
		}
		return events.WindowDestroy{Handle: handle}

	case platform.RawDestroyNotify:
		if raw.Event == raw.Window {
			return nil
		}
		a.mu.Lock()
		delete(a.hidden, raw.Window)
		a.mu.Unlock()
		return events.WindowDestroy{Handle: handle}

	case platform.RawConfigureRequest:
		return events.WindowConfigure{Handle: handle, BBox: raw.BBox, Mask: raw.ValueMask}

	case platform.RawPropertyNotify:
		if _, ok := nameProperties[raw.Property]; !ok {
			return nil
		}
		return events.WindowNameChange{Handle: handle, Name: a.backend.WindowInfo(raw.Window).Name}

	case platform.RawEnterNotify:
		return events.MouseEnterWindow{Handle: handle, X: raw.RootX, Y: raw.RootY}
	}
	return nil
}
