package model

import "fmt"

// HandleKind tells which backend a WindowHandle belongs to.
type HandleKind uint8

const (
	// HandleMock is used for screens built from config or monitors, and in tests.
	HandleMock HandleKind = iota
	// HandleX11 wraps an X11 window id.
	HandleX11
)

// WindowHandle identifies a window or root across backends.
type WindowHandle struct {
	Kind HandleKind `json:"kind"`
	ID   uint32     `json:"id"`
}

// MockHandle returns a handle that does not refer to a live window.
func MockHandle(id uint32) WindowHandle {
	return WindowHandle{Kind: HandleMock, ID: id}
}

// XHandle wraps an X11 window id.
func XHandle(id uint32) WindowHandle {
	return WindowHandle{Kind: HandleX11, ID: id}
}

// IsMock reports whether h refers to no live window.
func (h WindowHandle) IsMock() bool {
	return h.Kind == HandleMock
}

func (h WindowHandle) String() string {
	if h.Kind == HandleX11 {
		return fmt.Sprintf("x11:0x%x", h.ID)
	}
	return fmt.Sprintf("mock:%d", h.ID)
}
