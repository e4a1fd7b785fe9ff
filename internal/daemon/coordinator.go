// Package daemon runs the background refresh loop that keeps the engine's
// tracked state reconciled with the live window list.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/noborders/internal/engine"
)

// ErrStopped is returned by Refresh once shutdown has begun.
var ErrStopped = errors.New("refresh coordinator is stopped")

// UpdateFunc receives the reconciled windowed/fullscreen partition after each
// background or on-demand refresh. The partition holds copies; callers may
// retain it.
type UpdateFunc func(engine.Partition)

// Config holds coordinator settings.
type Config struct {
	// Interval is the refresh cadence while the UI is visible.
	Interval time.Duration
	// IdleInterval is the relaxed cadence while the UI is hidden or
	// minimized, trading freshness for cost when no one is watching.
	IdleInterval time.Duration
	Logger       *slog.Logger
	OnUpdate     UpdateFunc
}

// Coordinator drives enumeration and reconciliation on a timer and on
// demand. The interval is reconfigurable at runtime via SetVisible;
// cancellation is deterministic: after Run observes shutdown, no further
// refresh pass starts.
type Coordinator struct {
	eng      *engine.Engine
	logger   *slog.Logger
	onUpdate UpdateFunc
	interval time.Duration
	idle     time.Duration

	// kick wakes the run loop to pick up an interval change.
	kick chan struct{}

	// runMu serializes refresh passes.
	runMu sync.Mutex

	mu      sync.Mutex
	visible bool
	stopped bool
	started time.Time
	last    engine.Partition
	lastAt  time.Time
}

// NewCoordinator creates a coordinator for the given engine.
func NewCoordinator(eng *engine.Engine, cfg Config) *Coordinator {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	idle := cfg.IdleInterval
	if idle <= 0 {
		idle = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		eng:      eng,
		logger:   logger,
		onUpdate: cfg.OnUpdate,
		interval: interval,
		idle:     idle,
		kick:     make(chan struct{}, 1),
		visible:  true,
		started:  time.Now(),
	}
}

// Run executes the refresh loop until the context is cancelled. An initial
// pass runs immediately so state is populated before the first tick.
func (c *Coordinator) Run(ctx context.Context) {
	c.logger.Info("refresh coordinator started",
		"interval", c.currentInterval(), "idle_interval", c.idle)

	if _, err := c.Refresh(); err != nil && !errors.Is(err, ErrStopped) {
		c.logger.Warn("initial refresh failed", "error", err)
	}

	timer := time.NewTimer(c.currentInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			c.stopped = true
			c.mu.Unlock()
			c.logger.Info("refresh coordinator stopped")
			return
		case <-c.kick:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(c.currentInterval())
		case <-timer.C:
			if _, err := c.Refresh(); err != nil && !errors.Is(err, ErrStopped) {
				c.logger.Warn("background refresh failed", "error", err)
			}
			timer.Reset(c.currentInterval())
		}
	}
}

// Refresh performs one enumeration+reconciliation pass synchronously and
// publishes the result. It is safe to call from any goroutine.
func (c *Coordinator) Refresh() (engine.Partition, error) {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return engine.Partition{}, ErrStopped
	}
	c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("refresh pass panic recovered", "panic", r)
		}
	}()

	records, err := c.eng.Enumerate()
	if err != nil {
		return engine.Partition{}, err
	}
	part := c.eng.Reconcile(records)

	c.mu.Lock()
	c.last = part
	c.lastAt = time.Now()
	c.mu.Unlock()

	if c.onUpdate != nil {
		c.onUpdate(part)
	}
	return part, nil
}

// SetVisible switches the refresh cadence between the visible and idle
// intervals and nudges the run loop so the change takes effect immediately.
func (c *Coordinator) SetVisible(visible bool) {
	c.mu.Lock()
	changed := c.visible != visible
	c.visible = visible
	c.mu.Unlock()
	if !changed {
		return
	}
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// Last returns the most recently published partition and when it was taken.
func (c *Coordinator) Last() (engine.Partition, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.lastAt
}

// Status summarizes the coordinator for status reporting.
type Status struct {
	Uptime          time.Duration
	Interval        time.Duration
	Visible         bool
	WindowedCount   int
	FullscreenCount int
}

// CurrentStatus returns a snapshot of the coordinator state.
func (c *Coordinator) CurrentStatus() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	interval := c.interval
	if !c.visible {
		interval = c.idle
	}
	return Status{
		Uptime:          time.Since(c.started),
		Interval:        interval,
		Visible:         c.visible,
		WindowedCount:   len(c.last.Windowed),
		FullscreenCount: len(c.last.Fullscreen),
	}
}

func (c *Coordinator) currentInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.visible {
		return c.interval
	}
	return c.idle
}
