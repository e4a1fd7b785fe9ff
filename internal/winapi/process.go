//go:build windows

package winapi

import (
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/windows"
)

func processName(pid int32) (string, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return "", err
	}
	return p.Name()
}

func pidAlive(pid int32) bool {
	alive, err := process.PidExists(pid)
	return err == nil && alive
}

func isElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
