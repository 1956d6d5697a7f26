// Package display owns the connection to the display server and turns its
// state and events into events.Item values for the workspace engine.
package display

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/1broseidon/tilewm/internal/events"
	"github.com/1broseidon/tilewm/internal/manage"
	"github.com/1broseidon/tilewm/internal/model"
	"github.com/1broseidon/tilewm/internal/platform"
)

// ErrAttributeQueryFailed marks a window whose attributes could not be read.
// The window is left out of the bootstrap set.
var ErrAttributeQueryFailed = errors.New("attribute query failed")

// Adapter is the pull-based event source for one display connection. Only one
// Adapter should exist per connection.
type Adapter struct {
	backend platform.Backend
	logger  *slog.Logger

	bootstrap sync.Once
	closed    atomic.Bool

	mu sync.Mutex
	// hidden counts unmaps we requested ourselves, so the matching
	// UnmapNotify is not mistaken for the client withdrawing.
	hidden map[platform.WindowID]int
}

// New installs the event mask and returns an adapter. An error here means the
// window manager cannot run; there is no degraded mode.
func New(backend platform.Backend, logger *slog.Logger) (*Adapter, error) {
	if backend == nil {
		return nil, errors.New("display backend is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := backend.SelectEvents(); err != nil {
		return nil, fmt.Errorf("install event mask: %w", err)
	}
	return &Adapter{
		backend: backend,
		logger:  logger,
		hidden:  make(map[platform.WindowID]int),
	}, nil
}

// UpdateWindows pushes each window's geometry and visibility to the server.
// Nothing is acknowledged.
func (a *Adapter) UpdateWindows(windows []model.Window) {
	for _, w := range windows {
		if w.Handle.Kind != model.HandleX11 {
			continue
		}
		id := platform.WindowID(w.Handle.ID)
		if !w.Visible {
			a.mu.Lock()
			a.hidden[id]++
			a.mu.Unlock()
		}
		a.backend.ConfigureWindow(id, w.BBox, w.Visible)
	}
}

// consumeHidden reports whether an UnmapNotify for id was caused by us.
func (a *Adapter) consumeHidden(id platform.WindowID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.hidden[id]
	if n == 0 {
		return false
	}
	if n == 1 {
		delete(a.hidden, id)
	} else {
		a.hidden[id] = n - 1
	}
	return true
}

// NextEvents blocks for the next raw event and returns what it translates to.
// The first call also returns the bootstrap batch ahead of it: every screen,
// then every manageable pre-existing window. Concurrent first callers wait
// for the bootstrap to finish and only one of them receives it.
func (a *Adapter) NextEvents() []events.Item {
	var items []events.Item
	a.bootstrap.Do(func() {
		items = a.initialEvents()
	})

	if a.closed.Load() {
		return items
	}

	raw, err := a.backend.NextEvent()
	if err != nil {
		if errors.Is(err, platform.ErrConnectionClosed) {
			a.closed.Store(true)
			a.logger.Error("display connection closed")
		} else {
			a.logger.Warn("display event error", "error", err)
		}
		return items
	}

	if item := a.translate(raw); item != nil {
		items = append(items, item)
	}
	return items
}

// Closed reports whether the display connection has gone away.
func (a *Adapter) Closed() bool {
	return a.closed.Load()
}

func (a *Adapter) initialEvents() []events.Item {
	var items []events.Item
	for _, s := range a.screens() {
		items = append(items, events.ScreenCreate{Screen: s})
	}
	for _, w := range a.findAllWindows() {
		items = append(items, events.WindowCreate{Window: w})
	}
	a.logger.Debug("bootstrap complete", "items", len(items))
	return items
}

// screens lists one screen per RandR output, or the root window when RandR
// reports nothing.
func (a *Adapter) screens() []model.Screen {
	screens, err := Screens(a.backend, a.logger)
	if err != nil {
		a.logger.Error("screen discovery failed, using default screen", "error", err)
		return []model.Screen{model.DefaultScreen()}
	}
	return screens
}

// findAllWindows returns the manageable windows in stacking order and
// subscribes to their property and crossing events. A window whose
// attributes cannot be read is logged and skipped.
func (a *Adapter) findAllWindows() []model.Window {
	handles, err := a.backend.TopLevelWindows()
	if err != nil {
		a.logger.Error("window enumeration failed", "error", err)
		return nil
	}

	var all []model.Window
	for _, id := range handles {
		w, decision, err := a.inspect(id)
		if err != nil {
			a.logger.Warn("skipping window",
				"window_id", uint32(id),
				"error", fmt.Errorf("%w: %v", ErrAttributeQueryFailed, err))
			continue
		}
		if !decision.Managed() {
			a.logger.Debug("ignoring window", "window_id", uint32(id), "reason", decision.String())
			continue
		}
		a.backend.WatchWindow(id)
		all = append(all, w)
	}
	return all
}

// inspect classifies a window and, if it is manageable, builds its model.
func (a *Adapter) inspect(id platform.WindowID) (model.Window, manage.Decision, error) {
	attrs, err := a.backend.WindowAttributes(id)
	if err != nil {
		return model.Window{}, manage.SkipNotViewable, err
	}
	owner, hasOwner := a.backend.TransientFor(id)

	decision := manage.Classify(manage.Attributes{
		MapState:          manage.MapStateFromProtocol(attrs.MapState),
		OverrideRedirect:  attrs.OverrideRedirect,
		HasTransientOwner: hasOwner,
	})
	if !decision.Managed() {
		return model.Window{}, decision, nil
	}

	return a.buildWindow(id, owner, hasOwner), decision, nil
}

func (a *Adapter) buildWindow(id, owner platform.WindowID, hasOwner bool) model.Window {
	info := a.backend.WindowInfo(id)
	w := model.NewWindow(model.XHandle(uint32(id)), info.Name)
	w.BBox = info.BBox
	w.Strut = info.Strut
	if info.Type != "" {
		w.Type = info.Type
	}
	if hasOwner {
		h := model.XHandle(uint32(owner))
		w.Transient = &h
	}
	return w
}
