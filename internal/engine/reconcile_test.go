package engine

import (
	"errors"
	"testing"

	"github.com/1broseidon/noborders/internal/platform"
)

func enumerate(t *testing.T, e *Engine) []platform.Window {
	t.Helper()
	records, err := e.Enumerate()
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	return records
}

func TestReconcilePartition(t *testing.T) {
	fake := platform.NewFake()
	w1, s1 := newTestWindow(0x2001, 1, "A.exe", "A")
	w2, s2 := newTestWindow(0x2002, 2, "B.exe", "B")
	fake.AddWindow(w1, s1)
	fake.AddWindow(w2, s2)
	e := New(fake)

	if err := e.Transform(w1.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	part := e.Reconcile(enumerate(t, e))
	if len(part.Fullscreen) != 1 || part.Fullscreen[0].Handle != w1.Handle {
		t.Fatalf("unexpected fullscreen partition: %+v", part.Fullscreen)
	}
	if len(part.Windowed) != 1 || part.Windowed[0].Handle != w2.Handle {
		t.Fatalf("unexpected windowed partition: %+v", part.Windowed)
	}
}

func TestReconcileReapplication(t *testing.T) {
	fake := platform.NewFake()
	w1, s1 := newTestWindow(0x2101, 40, "App.exe", "App")
	fake.AddWindow(w1, s1)
	e := New(fake)

	target := platform.Rect{Left: 1920, Top: 0, Right: 3840, Bottom: 1080}
	if err := e.Transform(w1.Handle, &target); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// The app closes its window and opens a replacement with a new handle.
	fake.RemoveWindow(w1.Handle)
	w2, s2 := newTestWindow(0x2102, 40, "App.exe", "App reborn")
	fake.AddWindow(w2, s2)

	part := e.Reconcile(enumerate(t, e))
	if len(part.Fullscreen) != 1 || part.Fullscreen[0].Handle != w2.Handle {
		t.Fatalf("replacement window not reapplied: %+v", part)
	}
	snap, ok := e.Snapshot(w2.Handle)
	if !ok {
		t.Fatalf("no snapshot for reapplied window")
	}
	if snap != s2 {
		t.Fatalf("snapshot should equal the style read at enumeration time: want %+v, got %+v", s2, snap)
	}
	got, _ := fake.StyleOf(w2.Handle)
	if got.Rect != target {
		t.Fatalf("reapplied window on wrong monitor: want %+v, got %+v", target, got.Rect)
	}
	// The stale handle is gone from tracking.
	if e.IsFullscreen(w1.Handle) {
		t.Fatalf("closed handle still tracked")
	}
}

func TestReconcileNameMismatchBlocksReapplication(t *testing.T) {
	fake := platform.NewFake()
	w1, s1 := newTestWindow(0x2201, 41, "App.exe", "App")
	fake.AddWindow(w1, s1)
	e := New(fake)

	if err := e.Transform(w1.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// The pid is reused by an unrelated process.
	fake.RemoveWindow(w1.Handle)
	w2, s2 := newTestWindow(0x2202, 41, "Other.exe", "Other")
	fake.AddWindow(w2, s2)

	part := e.Reconcile(enumerate(t, e))
	if len(part.Windowed) != 1 || part.Windowed[0].Handle != w2.Handle {
		t.Fatalf("mismatched process must stay windowed: %+v", part)
	}
	if len(part.Fullscreen) != 0 {
		t.Fatalf("unexpected fullscreen records: %+v", part.Fullscreen)
	}
	if e.IsFullscreen(w2.Handle) {
		t.Fatalf("mismatched window was transformed")
	}
}

func TestReconcileGCClosedHandles(t *testing.T) {
	fake := platform.NewFake()
	w, s := newTestWindow(0x2301, 42, "App.exe", "App")
	fake.AddWindow(w, s)
	e := New(fake)

	if err := e.Transform(w.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	fake.RemoveWindow(w.Handle)
	fake.SetAlive(42, false)

	part := e.Reconcile(enumerate(t, e))
	if len(part.Fullscreen) != 0 || len(part.Windowed) != 0 {
		t.Fatalf("expected empty partitions, got %+v", part)
	}
	if e.IsFullscreen(w.Handle) {
		t.Fatalf("closed handle still in membership set")
	}
	if _, ok := e.Snapshot(w.Handle); ok {
		t.Fatalf("closed handle still cache-keyed")
	}
}

func TestReconcileGCDeadProcessPreference(t *testing.T) {
	fake := platform.NewFake()
	w, s := newTestWindow(0x2401, 43, "App.exe", "App")
	fake.AddWindow(w, s)
	e := New(fake)

	if err := e.Transform(w.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	fake.RemoveWindow(w.Handle)
	fake.SetAlive(43, false)

	e.Reconcile(enumerate(t, e))
	if _, ok := e.preference(43); ok {
		t.Fatalf("preference for dead process not collected")
	}
	_, processes := e.Tracked()
	if processes != 0 {
		t.Fatalf("expected 0 tracked processes, got %d", processes)
	}
}

func TestReconcilePreferenceSurvivesWhileProcessAlive(t *testing.T) {
	fake := platform.NewFake()
	w, s := newTestWindow(0x2501, 44, "App.exe", "App")
	fake.AddWindow(w, s)
	e := New(fake)

	if err := e.Transform(w.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	// Window gone but process still alive: preference must survive so the
	// next window of that process is reapplied.
	fake.RemoveWindow(w.Handle)
	e.Reconcile(enumerate(t, e))
	if _, ok := e.preference(44); !ok {
		t.Fatalf("preference dropped while process still alive")
	}
}

func TestReconcileReapplyFailureDoesNotBlockOthers(t *testing.T) {
	fake := platform.NewFake()
	w1, s1 := newTestWindow(0x2601, 50, "A.exe", "A")
	w2, s2 := newTestWindow(0x2602, 51, "B.exe", "B")
	fake.AddWindow(w1, s1)
	fake.AddWindow(w2, s2)
	e := New(fake)

	if err := e.Transform(w1.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if err := e.Transform(w2.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	fake.RemoveWindow(w1.Handle)
	fake.RemoveWindow(w2.Handle)
	r1, rs1 := newTestWindow(0x2611, 50, "A.exe", "A2")
	r2, rs2 := newTestWindow(0x2612, 51, "B.exe", "B2")
	fake.AddWindow(r1, rs1)
	fake.AddWindow(r2, rs2)

	// Style reads fail for the first replacement only.
	injected := errors.New("injected read fault")
	fake.ReadStylesErr = func(h platform.Handle) error {
		if h == r1.Handle {
			return injected
		}
		return nil
	}

	part := e.Reconcile(enumerate(t, e))
	if e.IsFullscreen(r1.Handle) {
		t.Fatalf("failed candidate must not be tracked")
	}
	if !e.IsFullscreen(r2.Handle) {
		t.Fatalf("healthy candidate was not reapplied")
	}
	if len(part.Fullscreen) != 1 || part.Fullscreen[0].Handle != r2.Handle {
		t.Fatalf("unexpected partition: %+v", part)
	}
}

func TestReconcileDoesNotDoubleTransformTrackedHandles(t *testing.T) {
	fake := platform.NewFake()
	w, s := newTestWindow(0x2701, 60, "App.exe", "App")
	fake.AddWindow(w, s)
	e := New(fake)

	if err := e.Transform(w.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	placements := fake.PlaceCount()

	e.Reconcile(enumerate(t, e))
	e.Reconcile(enumerate(t, e))

	if fake.PlaceCount() != placements {
		t.Fatalf("reconciliation re-transformed an already tracked handle")
	}
	handles, _ := e.Tracked()
	if handles != 1 {
		t.Fatalf("expected 1 tracked handle, got %d", handles)
	}
}
