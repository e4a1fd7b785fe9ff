package platform

import (
	"fmt"
	"sync"
)

// Fake is an in-memory Backend used by engine and daemon tests. Failure hooks
// let tests inject faults at specific steps of a transform.
type Fake struct {
	mu          sync.Mutex
	windows     []Window
	styles      map[Handle]StyleState
	monitorList []Monitor
	primary     Rect
	alive       map[int32]bool

	// Failure hooks. A nil hook means the operation succeeds.
	ReadStylesErr  func(h Handle) error
	WriteStylesErr func(h Handle) error
	PlaceErr       func(h Handle) error
	MonitorsErr    error

	placeCalls  int
	writesCalls int
}

var _ Backend = (*Fake)(nil)

// NewFake creates an empty fake backend with a 1920x1080 primary display.
func NewFake() *Fake {
	return &Fake{
		styles:  make(map[Handle]StyleState),
		alive:   make(map[int32]bool),
		primary: Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080},
	}
}

// AddWindow registers a window with its current style state and marks its
// process alive.
func (f *Fake) AddWindow(w Window, s StyleState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows = append(f.windows, w)
	f.styles[w.Handle] = s
	f.alive[w.PID] = true
}

// RemoveWindow drops a window from enumeration and destroys its style state.
func (f *Fake) RemoveWindow(h Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.windows[:0]
	for _, w := range f.windows {
		if w.Handle != h {
			out = append(out, w)
		}
	}
	f.windows = out
	delete(f.styles, h)
}

// SetAlive overrides process liveness for a pid.
func (f *Fake) SetAlive(pid int32, alive bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alive[pid] = alive
}

// SetMonitors configures the monitor list returned by Monitors.
func (f *Fake) SetMonitors(monitors ...Monitor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.monitorList = monitors
}

// StyleOf returns the current style state of a window as the fake OS sees it.
func (f *Fake) StyleOf(h Handle) (StyleState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.styles[h]
	return s, ok
}

// PlaceCount returns how many placements have been applied.
func (f *Fake) PlaceCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.placeCalls
}

func (f *Fake) Windows() ([]Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Window, len(f.windows))
	copy(out, f.windows)
	return out, nil
}

func (f *Fake) ReadStyles(h Handle) (StyleState, error) {
	if f.ReadStylesErr != nil {
		if err := f.ReadStylesErr(h); err != nil {
			return StyleState{}, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.styles[h]
	if !ok {
		return StyleState{}, fmt.Errorf("read styles for %#x: %w", uintptr(h), ErrHandleInvalid)
	}
	return s, nil
}

func (f *Fake) WriteStyles(h Handle, style, exStyle int32) error {
	if f.WriteStylesErr != nil {
		if err := f.WriteStylesErr(h); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.styles[h]
	if !ok {
		return fmt.Errorf("write styles for %#x: %w", uintptr(h), ErrHandleInvalid)
	}
	s.Style = style
	s.ExStyle = exStyle
	f.styles[h] = s
	f.writesCalls++
	return nil
}

func (f *Fake) Place(h Handle, r Rect) error {
	if f.PlaceErr != nil {
		if err := f.PlaceErr(h); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.styles[h]
	if !ok {
		return fmt.Errorf("place %#x: %w", uintptr(h), ErrHandleInvalid)
	}
	s.Rect = r
	f.styles[h] = s
	f.placeCalls++
	return nil
}

func (f *Fake) Monitors() ([]Monitor, error) {
	if f.MonitorsErr != nil {
		return nil, f.MonitorsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.monitorList) == 0 {
		return []Monitor{{Device: `\\.\DISPLAY1`, Rect: f.primary, Primary: true}}, nil
	}
	out := make([]Monitor, len(f.monitorList))
	copy(out, f.monitorList)
	return out, nil
}

func (f *Fake) PrimaryRect() Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.primary
}

func (f *Fake) WindowProcess(h Handle) (int32, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.windows {
		if w.Handle == h {
			return w.PID, w.ProcessName, nil
		}
	}
	return 0, "", fmt.Errorf("resolve process for %#x: %w", uintptr(h), ErrHandleInvalid)
}

func (f *Fake) PidAlive(pid int32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alive[pid]
}
