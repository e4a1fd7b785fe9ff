//go:build windows

// Package winapi implements the platform backend on the Win32 window API.
package winapi

import (
	"fmt"
	"syscall"

	"github.com/lxn/win"

	"github.com/1broseidon/noborders/internal/platform"
)

var (
	user32                   = syscall.NewLazyDLL("user32.dll")
	procEnumWindows          = user32.NewProc("EnumWindows")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procIsWindow             = user32.NewProc("IsWindow")
	procEnumDisplayMonitors  = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW      = user32.NewProc("GetMonitorInfoW")
)

// Backend implements platform.Backend against user32.
type Backend struct{}

var _ platform.Backend = (*Backend)(nil)

// New creates the Win32 backend.
func New() *Backend {
	return &Backend{}
}

func init() {
	platform.NewBackendFunc = func() (platform.Backend, error) {
		return New(), nil
	}
	platform.IsElevatedFunc = isElevated
}

func isWindow(hwnd win.HWND) bool {
	ret, _, _ := procIsWindow.Call(uintptr(hwnd))
	return ret != 0
}

// ReadStyles returns the window's current style bits, extended-style bits and
// bounding rectangle.
func (b *Backend) ReadStyles(h platform.Handle) (platform.StyleState, error) {
	hwnd := win.HWND(h)
	if !isWindow(hwnd) {
		return platform.StyleState{}, fmt.Errorf("read styles for %#x: %w", uintptr(h), platform.ErrHandleInvalid)
	}

	style := win.GetWindowLong(hwnd, win.GWL_STYLE)
	exStyle := win.GetWindowLong(hwnd, win.GWL_EXSTYLE)

	var rect win.RECT
	if !win.GetWindowRect(hwnd, &rect) {
		return platform.StyleState{}, fmt.Errorf("GetWindowRect for %#x: %w", uintptr(h), platform.ErrStyleRead)
	}

	return platform.StyleState{
		Style:   style,
		ExStyle: exStyle,
		Rect:    fromNativeRect(rect),
	}, nil
}

// WriteStyles replaces the window's style and extended-style bits.
func (b *Backend) WriteStyles(h platform.Handle, style, exStyle int32) error {
	hwnd := win.HWND(h)
	if !isWindow(hwnd) {
		return fmt.Errorf("write styles for %#x: %w", uintptr(h), platform.ErrHandleInvalid)
	}
	win.SetWindowLong(hwnd, win.GWL_STYLE, style)
	win.SetWindowLong(hwnd, win.GWL_EXSTYLE, exStyle)
	return nil
}

// Place moves and resizes the window in one call, requesting a frame change
// and forcing the window visible at the top of the z-order without changing
// its topmost status.
func (b *Backend) Place(h platform.Handle, r platform.Rect) error {
	hwnd := win.HWND(h)
	ok := win.SetWindowPos(
		hwnd,
		win.HWND_TOP,
		r.Left,
		r.Top,
		r.Width(),
		r.Height(),
		win.SWP_FRAMECHANGED|win.SWP_NOZORDER|win.SWP_SHOWWINDOW,
	)
	if !ok {
		if !isWindow(hwnd) {
			return fmt.Errorf("place %#x: %w", uintptr(h), platform.ErrHandleInvalid)
		}
		return fmt.Errorf("SetWindowPos failed for %#x", uintptr(h))
	}
	return nil
}

// PrimaryRect returns the primary display's full rectangle with origin (0,0).
func (b *Backend) PrimaryRect() platform.Rect {
	return platform.Rect{
		Left:   0,
		Top:    0,
		Right:  win.GetSystemMetrics(win.SM_CXSCREEN),
		Bottom: win.GetSystemMetrics(win.SM_CYSCREEN),
	}
}

// WindowProcess resolves a window to its owning process id and name. Name
// resolution failure degrades to the Unknown sentinel rather than failing.
func (b *Backend) WindowProcess(h platform.Handle) (int32, string, error) {
	hwnd := win.HWND(h)
	var pid uint32
	win.GetWindowThreadProcessId(hwnd, &pid)
	if pid == 0 {
		return 0, "", fmt.Errorf("resolve process for %#x: %w", uintptr(h), platform.ErrHandleInvalid)
	}
	name, err := processName(int32(pid))
	if err != nil || name == "" {
		name = platform.UnknownProcessName
	}
	return int32(pid), name, nil
}

// PidAlive reports whether the process id denotes a live process.
func (b *Backend) PidAlive(pid int32) bool {
	return pidAlive(pid)
}

func fromNativeRect(r win.RECT) platform.Rect {
	return platform.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}
