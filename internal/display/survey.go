package display

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/tilewm/internal/manage"
	"github.com/1broseidon/tilewm/internal/model"
	"github.com/1broseidon/tilewm/internal/platform"
)

// WindowReport is the eligibility verdict for one top-level window.
type WindowReport struct {
	ID       platform.WindowID `json:"id"`
	Name     string            `json:"name"`
	MapState string            `json:"map_state"`
	Decision string            `json:"decision"`
	Managed  bool              `json:"managed"`
	Error    string            `json:"error,omitempty"`
}

// Survey classifies every top-level window without installing an event mask,
// so it can run next to another window manager.
func Survey(backend platform.Backend) ([]WindowReport, error) {
	ids, err := backend.TopLevelWindows()
	if err != nil {
		return nil, err
	}

	reports := make([]WindowReport, 0, len(ids))
	for _, id := range ids {
		r := WindowReport{ID: id}
		attrs, err := backend.WindowAttributes(id)
		if err != nil {
			r.Error = fmt.Errorf("%w: %v", ErrAttributeQueryFailed, err).Error()
			reports = append(reports, r)
			continue
		}
		_, hasOwner := backend.TransientFor(id)
		state := manage.MapStateFromProtocol(attrs.MapState)
		d := manage.Classify(manage.Attributes{
			MapState:          state,
			OverrideRedirect:  attrs.OverrideRedirect,
			HasTransientOwner: hasOwner,
		})
		r.MapState = state.String()
		r.Decision = d.String()
		r.Managed = d.Managed()
		if d.Managed() {
			r.Name = backend.WindowInfo(id).Name
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// Screens returns the screens the adapter would announce at bootstrap: one
// per RandR monitor, else the root window. The reason for a root fallback is
// logged.
func Screens(backend platform.Backend, logger *slog.Logger) ([]model.Screen, error) {
	if logger == nil {
		logger = slog.Default()
	}
	monitors, err := backend.Monitors()
	if err == nil && len(monitors) > 0 {
		out := make([]model.Screen, 0, len(monitors))
		for _, m := range monitors {
			out = append(out, model.ScreenFromMonitor(m))
		}
		return out, nil
	}
	if err != nil {
		logger.Warn("monitor query failed, using root window geometry", "error", err)
	} else {
		logger.Info("no monitors reported, using root window geometry")
	}

	root, bbox, rootErr := backend.RootWindow()
	if rootErr != nil {
		return nil, errors.Join(err, rootErr)
	}
	return []model.Screen{model.ScreenFromRootGeometry(model.XHandle(uint32(root)), bbox)}, nil
}
