package display

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/1broseidon/tilewm/internal/platform"
)

func TestSurvey(t *testing.T) {
	b := newFakeBackend()
	b.addWindow(1, fakeWindow{attrs: platform.Attributes{MapState: viewable}, info: platform.WindowInfo{Name: "term"}})
	b.addWindow(2, fakeWindow{attrsErr: errors.New("BadWindow")})
	b.addWindow(3, fakeWindow{attrs: platform.Attributes{MapState: viewable, OverrideRedirect: true}})

	reports, err := Survey(b)
	if err != nil {
		t.Fatalf("survey: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if !reports[0].Managed || reports[0].Name != "term" {
		t.Fatalf("expected window 1 managed, got %+v", reports[0])
	}
	if reports[1].Error == "" || reports[1].Managed {
		t.Fatalf("expected window 2 to report its error, got %+v", reports[1])
	}
	if reports[2].Managed || reports[2].Decision != "skip: override-redirect" {
		t.Fatalf("expected window 3 skipped for override-redirect, got %+v", reports[2])
	}
	if b.eventCalls != 0 {
		t.Fatalf("expected survey not to read events")
	}
	if len(b.watched) != 0 {
		t.Fatalf("expected survey not to subscribe to windows, got %v", b.watched)
	}
}

func TestSurvey_EnumerationError(t *testing.T) {
	b := newFakeBackend()
	b.enumErr = errors.New("QueryTree failed")
	if _, err := Survey(b); err == nil {
		t.Fatalf("expected enumeration error")
	}
}

func TestScreens_FallsBackToRoot(t *testing.T) {
	b := newFakeBackend()
	b.monitors = nil
	screens, err := Screens(b, testLogger())
	if err != nil {
		t.Fatalf("screens: %v", err)
	}
	if len(screens) != 1 || screens[0].BBox != b.rootBBox {
		t.Fatalf("expected root screen, got %+v", screens)
	}
}

func TestScreens_LogsMonitorErrorOnFallback(t *testing.T) {
	b := newFakeBackend()
	b.monitors = nil
	b.monitorsErr = errors.New("randr extension missing")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	screens, err := Screens(b, logger)
	if err != nil {
		t.Fatalf("screens: %v", err)
	}
	if len(screens) != 1 || screens[0].BBox != b.rootBBox {
		t.Fatalf("expected root screen, got %+v", screens)
	}
	if !strings.Contains(buf.String(), "randr extension missing") {
		t.Fatalf("expected monitor error in log, got %q", buf.String())
	}
}

func TestScreens_BothQueriesFail(t *testing.T) {
	b := newFakeBackend()
	b.monitorsErr = errors.New("randr extension missing")
	b.rootErr = errors.New("bad drawable")

	_, err := Screens(b, testLogger())
	if err == nil || !strings.Contains(err.Error(), "randr extension missing") || !strings.Contains(err.Error(), "bad drawable") {
		t.Fatalf("expected both errors, got %v", err)
	}
}
