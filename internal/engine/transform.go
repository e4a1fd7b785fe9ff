package engine

import (
	"github.com/1broseidon/noborders/internal/platform"
)

// Transform strips the window's chrome and stretches it over the target
// monitor rectangle, or over the primary display when target is nil. The
// original style state is snapshotted on first transform so the operation is
// reversible; calling Transform again on a tracked handle re-places it (for
// example onto a different monitor) without touching the snapshot.
func (e *Engine) Transform(h platform.Handle, target *platform.Rect) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transformLocked(h, target)
}

func (e *Engine) transformLocked(h platform.Handle, target *platform.Rect) error {
	snap, cached := e.cache[h]
	if !cached {
		read, err := e.backend.ReadStyles(h)
		if err != nil {
			// Nothing was mutated; the handle stays untracked.
			return err
		}
		snap = read
		e.cache[h] = snap
	}

	// Remember which monitor this process was forced onto so reapplication
	// can target the same display after the window is recreated. Resolution
	// failure is non-fatal; the transform proceeds without a preference.
	if pid, name, err := e.backend.WindowProcess(h); err == nil {
		e.prefs[pid] = Preference{ProcessName: name, Target: cloneRect(target)}
	}

	// Strip chrome from the window's current bits, not the snapshot: on a
	// re-transform the live bits are already stripped and stay that way.
	cur, err := e.backend.ReadStyles(h)
	if err != nil {
		if !cached {
			delete(e.cache, h)
		}
		return err
	}
	if err := e.backend.WriteStyles(h, cur.Style&^chromeStyleMask, cur.ExStyle&^chromeExStyleMask); err != nil {
		// The OS rejected the write, so the window still carries its original
		// chrome. Roll back to the previous valid state: no snapshot, no
		// membership.
		if !cached {
			delete(e.cache, h)
		}
		return err
	}

	rect := e.resolveTarget(target)
	if err := e.backend.Place(h, rect); err != nil {
		// The style write already landed, so the OS state has diverged from
		// the snapshot. Membership must stand for revert to remain possible.
		e.members[h] = struct{}{}
		e.logger.Warn("window placed with stripped chrome but move failed",
			"handle", h, "error", err)
		return err
	}

	e.members[h] = struct{}{}
	return nil
}

func (e *Engine) resolveTarget(target *platform.Rect) platform.Rect {
	if target != nil {
		return *target
	}
	return e.backend.PrimaryRect()
}

// RevertOutcome describes what Revert did.
type RevertOutcome int

const (
	// RevertNoOp means the handle had no snapshot; nothing to restore.
	RevertNoOp RevertOutcome = iota
	// Reverted means the snapshot was popped and restoration was attempted.
	Reverted
)

// Revert restores the window's snapshotted style bits, extended-style bits
// and bounding rectangle. Restoration is best-effort: if the window is
// already gone the OS calls are logged and skipped, but the handle always
// leaves the membership set and cache, and the owning process's fullscreen
// preference is dropped when resolvable.
func (e *Engine) Revert(h platform.Handle) (RevertOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, ok := e.cache[h]
	if !ok {
		return RevertNoOp, nil
	}
	delete(e.cache, h)
	delete(e.members, h)

	if err := e.backend.WriteStyles(h, snap.Style, snap.ExStyle); err != nil {
		e.logger.Warn("failed to restore window styles", "handle", h, "error", err)
	}
	if err := e.backend.Place(h, snap.Rect); err != nil {
		e.logger.Warn("failed to restore window geometry", "handle", h, "error", err)
	}

	if pid, _, err := e.backend.WindowProcess(h); err == nil {
		delete(e.prefs, pid)
	}
	return Reverted, nil
}
