package engine

import "github.com/1broseidon/noborders/internal/platform"

// Partition is the reconciled windowed/fullscreen split published after each
// pass. Slices are fresh copies; internal state is never exposed.
type Partition struct {
	Windowed   []platform.Window
	Fullscreen []platform.Window
}

// Reconcile folds a fresh enumeration result into the tracked state:
//  1. reapply borderless fullscreen to new windows of remembered processes,
//  2. partition the records into windowed and fullscreen,
//  3. drop tracking for handles whose windows are gone (no revert attempt;
//     the window no longer exists),
//  4. drop preferences whose process has exited.
//
// After Reconcile returns, the membership set and cache are bijective and
// contain only handles present in records.
func (e *Engine) Reconcile(records []platform.Window) Partition {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reapplyLocked(records)

	part := Partition{}
	seen := make(map[platform.Handle]struct{}, len(records))
	for _, w := range records {
		_, member := e.members[w.Handle]
		_, snapshotted := e.cache[w.Handle]
		if member && snapshotted {
			part.Fullscreen = append(part.Fullscreen, w)
			seen[w.Handle] = struct{}{}
		} else {
			part.Windowed = append(part.Windowed, w)
		}
	}

	for h := range e.members {
		if _, ok := seen[h]; ok {
			continue
		}
		delete(e.members, h)
		delete(e.cache, h)
		e.logger.Debug("dropped tracking for closed window", "handle", h)
	}

	for pid := range e.prefs {
		if !e.backend.PidAlive(pid) {
			delete(e.prefs, pid)
			e.logger.Debug("dropped preference for exited process", "pid", pid)
		}
	}

	return part
}

// reapplyLocked re-transforms newly observed windows belonging to processes
// with a recorded fullscreen preference. A transform failure for one
// candidate never blocks the rest.
func (e *Engine) reapplyLocked(records []platform.Window) {
	if len(e.prefs) == 0 {
		return
	}

	byPID := make(map[int32][]platform.Window)
	for _, w := range records {
		byPID[w.PID] = append(byPID[w.PID], w)
	}

	// Snapshot the pid list first: transforms upsert the preference table.
	pids := make([]int32, 0, len(e.prefs))
	for pid := range e.prefs {
		pids = append(pids, pid)
	}

	for _, pid := range pids {
		pref := e.prefs[pid]
		for _, w := range byPID[pid] {
			if !e.match(pref.ProcessName, w.ProcessName) {
				continue
			}
			if _, ok := e.members[w.Handle]; ok {
				continue
			}
			if _, ok := e.cache[w.Handle]; ok {
				continue
			}
			if err := e.transformLocked(w.Handle, pref.Target); err != nil {
				e.logger.Debug("reapply failed",
					"handle", w.Handle, "process", w.ProcessName, "error", err)
				continue
			}
			e.logger.Info("reapplied borderless fullscreen",
				"handle", w.Handle, "process", w.ProcessName, "pid", pid)
		}
	}
}
