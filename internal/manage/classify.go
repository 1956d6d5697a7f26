// Package manage decides which windows the tiler should track.
package manage

// MapState is a window's mapping state, independent of protocol encoding.
type MapState uint8

const (
	MapStateUnmapped MapState = iota
	MapStateUnviewable
	MapStateViewable
)

func (m MapState) String() string {
	switch m {
	case MapStateUnmapped:
		return "unmapped"
	case MapStateUnviewable:
		return "unviewable"
	case MapStateViewable:
		return "viewable"
	}
	return "unknown"
}

// X11 map_state codes from GetWindowAttributes.
const (
	protoIsUnmapped   = 0
	protoIsUnviewable = 1
	protoIsViewable   = 2
)

// MapStateFromProtocol maps a raw X11 map_state code. Unknown codes are
// treated as unmapped.
func MapStateFromProtocol(code uint8) MapState {
	switch code {
	case protoIsViewable:
		return MapStateViewable
	case protoIsUnviewable:
		return MapStateUnviewable
	case protoIsUnmapped:
		return MapStateUnmapped
	}
	return MapStateUnmapped
}

// Attributes is the input to Classify.
type Attributes struct {
	MapState          MapState
	OverrideRedirect  bool
	HasTransientOwner bool
}

// Decision is the outcome of Classify.
type Decision uint8

const (
	Manage Decision = iota
	SkipNotViewable
	SkipOverrideRedirect
)

func (d Decision) String() string {
	switch d {
	case Manage:
		return "manage"
	case SkipNotViewable:
		return "skip: not viewable"
	case SkipOverrideRedirect:
		return "skip: override-redirect"
	}
	return "unknown"
}

// Managed reports whether the decision admits the window.
func (d Decision) Managed() bool {
	return d == Manage
}

// Classify decides whether a window should be managed. Windows with a
// transient owner (dialogs) only need to be viewable; everything else must
// also not be override-redirect, which keeps menus and tooltips out.
func Classify(a Attributes) Decision {
	if a.HasTransientOwner {
		if a.MapState == MapStateViewable {
			return Manage
		}
		return SkipNotViewable
	}
	if a.OverrideRedirect {
		return SkipOverrideRedirect
	}
	if a.MapState != MapStateViewable {
		return SkipNotViewable
	}
	return Manage
}
