package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// Handle is an opaque identifier for a live OS top-level window. Handles are
// borrowed from the OS, never owned: a handle may become invalid at any time
// and may be reused for an unrelated window after the one it denoted is
// destroyed, so a stale handle must be treated as untrustworthy.
type Handle uintptr

// Rect describes a rectangular region in screen coordinates using the native
// left/top/right/bottom convention.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int32 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int32 {
	return r.Bottom - r.Top
}

// UnknownProcessName is used when a window's owning process cannot be resolved.
const UnknownProcessName = "Unknown"

// Window contains metadata for a visible top-level window at enumeration time.
// Records are derived fresh on every enumeration and never persisted.
type Window struct {
	Handle      Handle
	PID         int32
	ProcessName string
	Title       string
}

// StyleState is a window's style bits, extended-style bits and bounding
// rectangle, read or written as a unit.
type StyleState struct {
	Style   int32
	ExStyle int32
	Rect    Rect
}

// Monitor describes a physical display.
type Monitor struct {
	Device  string
	Rect    Rect
	Primary bool
}

// Well-known failure modes surfaced by backends. Callers match with errors.Is.
var (
	// ErrHandleInvalid reports that a handle no longer denotes a live window.
	ErrHandleInvalid = errors.New("window handle is invalid")
	// ErrStyleRead reports that the OS refused to report a window's styles.
	ErrStyleRead = errors.New("window style read failed")
)

// Backend abstracts the native windowing API surface the engine runs against.
type Backend interface {
	// Windows enumerates the currently visible, titled top-level windows.
	// A failure while inspecting one window skips that window only.
	Windows() ([]Window, error)

	// ReadStyles returns the window's current style bits, extended-style bits
	// and bounding rectangle.
	ReadStyles(h Handle) (StyleState, error)

	// WriteStyles replaces the window's style and extended-style bits.
	WriteStyles(h Handle, style, exStyle int32) error

	// Place moves and resizes the window to the given rectangle, requesting a
	// frame change and forcing it visible at the top of the z-order.
	Place(h Handle, r Rect) error

	// Monitors enumerates display monitors. Implementations fall back to a
	// single synthetic primary-display entry when enumeration is unavailable.
	Monitors() ([]Monitor, error)

	// PrimaryRect returns the primary display's full rectangle with origin (0,0).
	PrimaryRect() Rect

	// WindowProcess resolves a window to its owning process id and name.
	WindowProcess(h Handle) (pid int32, name string, err error)

	// PidAlive reports whether the process id denotes a live process.
	PidAlive(pid int32) bool
}

// ErrUnsupported is returned on platforms without a native backend.
var ErrUnsupported = fmt.Errorf("noborders requires the Win32 window API; unsupported on %s/%s", runtime.GOOS, runtime.GOARCH)

// NewBackendFunc is set by the platform-specific package via init().
// See internal/winapi for the Windows registration.
var NewBackendFunc func() (Backend, error)

// IsElevatedFunc reports whether the current process runs elevated. Set by the
// platform-specific package; nil means "unknown", reported as false.
var IsElevatedFunc func() bool

// NewBackend returns the native backend for the current OS.
func NewBackend() (Backend, error) {
	if NewBackendFunc == nil {
		return nil, ErrUnsupported
	}
	return NewBackendFunc()
}

// IsElevated reports whether the current process has elevated privileges.
func IsElevated() bool {
	if IsElevatedFunc == nil {
		return false
	}
	return IsElevatedFunc()
}
