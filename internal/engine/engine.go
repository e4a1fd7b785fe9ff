// Package engine implements the borderless-fullscreen window-state engine:
// the style/geometry cache that makes the transform reversible, the
// fullscreen membership set, and the per-process preference table that drives
// automatic reapplication when a tracked process recreates its window.
package engine

import (
	"log/slog"
	"sync"

	"github.com/1broseidon/noborders/internal/platform"
)

// Win32 chrome style bits cleared for borderless fullscreen. Only these bits
// are touched; application-specific style flags are preserved.
const (
	wsBorder      = 0x00800000
	wsDlgFrame    = 0x00400000
	wsCaption     = wsBorder | wsDlgFrame
	wsThickFrame  = 0x00040000
	wsMinimizeBox = 0x00020000
	wsMaximizeBox = 0x00010000
	wsSysMenu     = 0x00080000

	wsExDlgModalFrame = 0x00000001
	wsExClientEdge    = 0x00000200
	wsExStaticEdge    = 0x00020000

	chromeStyleMask   = wsCaption | wsThickFrame | wsMinimizeBox | wsMaximizeBox | wsSysMenu
	chromeExStyleMask = wsExDlgModalFrame | wsExClientEdge | wsExStaticEdge
)

// Preference records the monitor a process's window was last forced onto.
// A nil Target means the primary display.
type Preference struct {
	ProcessName string
	Target      *platform.Rect
}

// Engine owns all shared window-tracking state behind a single mutex: the
// style snapshot cache, the fullscreen membership set, and the pid-keyed
// preference table. The cache and membership set stay bijective; every
// mutation path preserves that invariant even when the underlying OS calls
// fail partway.
type Engine struct {
	backend platform.Backend
	logger  *slog.Logger
	match   MatchFunc

	mu      sync.Mutex
	cache   map[platform.Handle]platform.StyleState
	members map[platform.Handle]struct{}
	prefs   map[int32]Preference
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMatcher overrides the process-identity predicate used during
// reapplication.
func WithMatcher(match MatchFunc) Option {
	return func(e *Engine) { e.match = match }
}

// New creates an engine on top of the given backend.
func New(backend platform.Backend, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		logger:  slog.Default(),
		match:   ExactMatch,
		cache:   make(map[platform.Handle]platform.StyleState),
		members: make(map[platform.Handle]struct{}),
		prefs:   make(map[int32]Preference),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enumerate returns the currently visible, titled top-level windows.
func (e *Engine) Enumerate() ([]platform.Window, error) {
	return e.backend.Windows()
}

// Monitors returns the display monitors known to the backend.
func (e *Engine) Monitors() ([]platform.Monitor, error) {
	return e.backend.Monitors()
}

// Tracked returns the number of handles currently in borderless fullscreen
// and the number of processes with a recorded fullscreen preference.
func (e *Engine) Tracked() (handles, processes int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.members), len(e.prefs)
}

// IsFullscreen reports whether the handle is currently tracked as borderless
// fullscreen.
func (e *Engine) IsFullscreen(h platform.Handle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, member := e.members[h]
	return member
}

// Snapshot returns the cached original style state for a handle, if tracked.
func (e *Engine) Snapshot(h platform.Handle) (platform.StyleState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.cache[h]
	return s, ok
}

// preference returns a copy of the preference recorded for pid.
func (e *Engine) preference(pid int32) (Preference, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.prefs[pid]
	return p, ok
}

func cloneRect(r *platform.Rect) *platform.Rect {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
