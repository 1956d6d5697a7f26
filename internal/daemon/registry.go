package daemon

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/1broseidon/tilewm/internal/events"
	"github.com/1broseidon/tilewm/internal/model"
)

// Registry records the screens and windows announced by the adapter. It is
// the daemon's view of ground truth; placement policy lives elsewhere.
type Registry struct {
	mu      sync.RWMutex
	screens []model.Screen
	windows map[model.WindowHandle]model.Window
	order   []model.WindowHandle
	// docks maps each dock window to the screen its strut falls on, or -1.
	docks  map[model.WindowHandle]int
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		windows: make(map[model.WindowHandle]model.Window),
		docks:   make(map[model.WindowHandle]int),
		logger:  logger,
	}
}

// Apply folds one item into the registry. It satisfies Handler.
func (r *Registry) Apply(item events.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch it := item.(type) {
	case events.ScreenCreate:
		r.screens = append(r.screens, it.Screen)
		r.logger.Debug("screen registered", "bbox", it.Screen.BBox, "screens", len(r.screens))

	case events.WindowCreate:
		h := it.Window.Handle
		if _, ok := r.windows[h]; ok {
			r.logger.Warn("window announced twice", "window", h.String())
			r.windows[h] = it.Window
			return
		}
		r.windows[h] = it.Window
		r.order = append(r.order, h)
		r.logger.Debug("window registered", "window", h.String(), "name", it.Window.Name)
		if it.Window.IsDock() {
			screen := -1
			if it.Window.Strut != nil {
				screen = r.dockScreenLocked(*it.Window.Strut)
			}
			r.docks[h] = screen
			r.logger.Debug("dock registered", "window", h.String(), "screen", screen)
		}

	case events.WindowDestroy:
		if _, ok := r.windows[it.Handle]; !ok {
			return
		}
		delete(r.windows, it.Handle)
		delete(r.docks, it.Handle)
		for i, h := range r.order {
			if h == it.Handle {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
		r.logger.Debug("window removed", "window", it.Handle.String())

	case events.WindowNameChange:
		if w, ok := r.windows[it.Handle]; ok {
			w.Name = it.Name
			r.windows[it.Handle] = w
		}
	}
}

// Screens returns a copy of the registered screens in announcement order.
func (r *Registry) Screens() []model.Screen {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Screen, len(r.screens))
	copy(out, r.screens)
	return out
}

// Windows returns the registered windows in announcement order.
func (r *Registry) Windows() []model.Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Window, 0, len(r.order))
	for _, h := range r.order {
		out = append(out, r.windows[h])
	}
	return out
}

// Docks returns each registered dock window and the index of the screen its
// strut belongs to (-1 when none matches).
func (r *Registry) Docks() map[model.WindowHandle]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[model.WindowHandle]int, len(r.docks))
	for h, i := range r.docks {
		out[h] = i
	}
	return out
}

// ScreenFor returns the index of the screen containing the window's centre,
// or -1.
func (r *Registry) ScreenFor(w model.Window) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	x, y := w.BBox.Center()
	idx := make([]int, len(r.screens))
	for i := range idx {
		idx[i] = i
	}
	// Smaller screens first so nested config screens win over whole outputs.
	sort.SliceStable(idx, func(a, b int) bool {
		sa, sb := r.screens[idx[a]].BBox, r.screens[idx[b]].BBox
		return int64(sa.Width)*int64(sa.Height) < int64(sb.Width)*int64(sb.Height)
	})
	for _, i := range idx {
		if r.screens[i].ContainsPoint(x, y) {
			return i
		}
	}
	return -1
}

// DockScreen returns the index of the screen a dock's reserved strip belongs
// to, or -1.
func (r *Registry) DockScreen(dock model.DockArea) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dockScreenLocked(dock)
}

func (r *Registry) dockScreenLocked(dock model.DockArea) int {
	area := r.screensAreaLocked()
	for i, s := range r.screens {
		if s.ContainsDockArea(dock, area) {
			return i
		}
	}
	return -1
}

// screensAreaLocked is the extent of all screens as (height, width).
func (r *Registry) screensAreaLocked() [2]int32 {
	var maxX, maxY int32
	for _, s := range r.screens {
		maxX = max(maxX, s.BBox.X+s.BBox.Width)
		maxY = max(maxY, s.BBox.Y+s.BBox.Height)
	}
	return [2]int32{maxY, maxX}
}
