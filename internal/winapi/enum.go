//go:build windows

package winapi

import (
	"fmt"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"

	"github.com/1broseidon/noborders/internal/platform"
)

// EnumWindows wants a C callback. syscall.NewCallback may only be called a
// bounded number of times per process, so the callback is created once and
// results flow through a mutex-guarded package collector.
var (
	enumOnce sync.Once
	enumCB   uintptr

	enumMu  sync.Mutex
	enumOut *[]platform.Window
)

// Windows enumerates visible, titled top-level windows.
func (b *Backend) Windows() ([]platform.Window, error) {
	enumOnce.Do(func() {
		enumCB = syscall.NewCallback(enumWindowsProc)
	})

	enumMu.Lock()
	defer enumMu.Unlock()

	out := make([]platform.Window, 0, 32)
	enumOut = &out
	ret, _, callErr := procEnumWindows.Call(enumCB, 0)
	enumOut = nil
	if ret == 0 {
		return nil, fmt.Errorf("EnumWindows: %w", callErr)
	}
	return out, nil
}

func enumWindowsProc(hwnd win.HWND, _ uintptr) uintptr {
	if !win.IsWindowVisible(hwnd) {
		return 1
	}
	title := windowTitle(hwnd)
	if strings.TrimSpace(title) == "" {
		return 1
	}

	var pid uint32
	win.GetWindowThreadProcessId(hwnd, &pid)
	if pid == 0 {
		return 1
	}
	name, err := processName(int32(pid))
	if err != nil || name == "" {
		name = platform.UnknownProcessName
	}

	*enumOut = append(*enumOut, platform.Window{
		Handle:      platform.Handle(hwnd),
		PID:         int32(pid),
		ProcessName: name,
		Title:       title,
	})
	return 1
}

func windowTitle(hwnd win.HWND) string {
	length, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	copied, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), length+1)
	if copied == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf[:copied])
}
