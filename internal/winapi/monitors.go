//go:build windows

package winapi

import (
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"

	"github.com/1broseidon/noborders/internal/platform"
)

const monitorDeviceChars = 32

// monitorInfoEx mirrors MONITORINFOEXW: MONITORINFO followed by the device
// name.
type monitorInfoEx struct {
	win.MONITORINFO
	Device [monitorDeviceChars]uint16
}

var (
	monitorOnce sync.Once
	monitorCB   uintptr

	monitorMu  sync.Mutex
	monitorOut *[]platform.Monitor
)

// Monitors enumerates attached displays. If enumeration fails or reports
// nothing, a synthetic primary built from the system metrics is returned so
// callers always have a target.
func (b *Backend) Monitors() ([]platform.Monitor, error) {
	monitorOnce.Do(func() {
		monitorCB = syscall.NewCallback(enumMonitorsProc)
	})

	monitorMu.Lock()
	defer monitorMu.Unlock()

	out := make([]platform.Monitor, 0, 2)
	monitorOut = &out
	ret, _, _ := procEnumDisplayMonitors.Call(0, 0, monitorCB, 0)
	monitorOut = nil
	if ret == 0 || len(out) == 0 {
		return []platform.Monitor{{
			Device:  `\\.\DISPLAY1`,
			Rect:    b.PrimaryRect(),
			Primary: true,
		}}, nil
	}
	return out, nil
}

func enumMonitorsProc(hMonitor win.HMONITOR, _ win.HDC, _ *win.RECT, _ uintptr) uintptr {
	var info monitorInfoEx
	info.CbSize = uint32(unsafe.Sizeof(info))
	ret, _, _ := procGetMonitorInfoW.Call(uintptr(hMonitor), uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return 1
	}
	*monitorOut = append(*monitorOut, platform.Monitor{
		Device:  syscall.UTF16ToString(info.Device[:]),
		Rect:    fromNativeRect(info.RcMonitor),
		Primary: info.DwFlags&win.MONITORINFOF_PRIMARY != 0,
	})
	return 1
}
