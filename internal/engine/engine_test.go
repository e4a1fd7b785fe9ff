package engine

import (
	"errors"
	"testing"

	"github.com/1broseidon/noborders/internal/platform"
)

const (
	testStyle   = int32(0x16CF0000) // WS_OVERLAPPEDWINDOW | WS_VISIBLE | WS_CLIPSIBLINGS
	testExStyle = int32(0x00000301) // WS_EX_DLGMODALFRAME | WS_EX_CLIENTEDGE | WS_EX_LEFT
)

func newTestWindow(h platform.Handle, pid int32, name, title string) (platform.Window, platform.StyleState) {
	w := platform.Window{Handle: h, PID: pid, ProcessName: name, Title: title}
	s := platform.StyleState{
		Style:   testStyle,
		ExStyle: testExStyle,
		Rect:    platform.Rect{Left: 100, Top: 120, Right: 900, Bottom: 720},
	}
	return w, s
}

func TestTransformRevertRoundTrip(t *testing.T) {
	fake := platform.NewFake()
	w, orig := newTestWindow(0x1001, 42, "Game.exe", "Game")
	fake.AddWindow(w, orig)
	e := New(fake)

	target := platform.Rect{Left: 1920, Top: 0, Right: 3840, Bottom: 1080}
	if err := e.Transform(w.Handle, &target); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	got, ok := fake.StyleOf(w.Handle)
	if !ok {
		t.Fatalf("window disappeared from fake backend")
	}
	if got.Style&chromeStyleMask != 0 {
		t.Fatalf("chrome style bits not cleared: %#x", got.Style)
	}
	if got.ExStyle&chromeExStyleMask != 0 {
		t.Fatalf("chrome exstyle bits not cleared: %#x", got.ExStyle)
	}
	if got.Rect != target {
		t.Fatalf("expected rect %+v, got %+v", target, got.Rect)
	}

	outcome, err := e.Revert(w.Handle)
	if err != nil {
		t.Fatalf("Revert failed: %v", err)
	}
	if outcome != Reverted {
		t.Fatalf("expected Reverted, got %v", outcome)
	}

	got, _ = fake.StyleOf(w.Handle)
	if got != orig {
		t.Fatalf("round trip mismatch: want %+v, got %+v", orig, got)
	}
	if e.IsFullscreen(w.Handle) {
		t.Fatalf("handle still tracked after revert")
	}
}

func TestTransformNilTargetUsesPrimary(t *testing.T) {
	fake := platform.NewFake()
	w, s := newTestWindow(0x1002, 7, "App.exe", "App")
	fake.AddWindow(w, s)
	e := New(fake)

	if err := e.Transform(w.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	got, _ := fake.StyleOf(w.Handle)
	want := fake.PrimaryRect()
	if got.Rect != want {
		t.Fatalf("expected primary rect %+v, got %+v", want, got.Rect)
	}
	if got.Rect.Left != 0 || got.Rect.Top != 0 {
		t.Fatalf("primary target must have origin (0,0), got %+v", got.Rect)
	}
}

func TestTransformIdempotentMembership(t *testing.T) {
	fake := platform.NewFake()
	w, orig := newTestWindow(0x1003, 9, "App.exe", "App")
	fake.AddWindow(w, orig)
	e := New(fake)

	if err := e.Transform(w.Handle, nil); err != nil {
		t.Fatalf("first Transform failed: %v", err)
	}
	if err := e.Transform(w.Handle, nil); err != nil {
		t.Fatalf("second Transform failed: %v", err)
	}

	handles, _ := e.Tracked()
	if handles != 1 {
		t.Fatalf("expected 1 tracked handle, got %d", handles)
	}
	snap, ok := e.Snapshot(w.Handle)
	if !ok {
		t.Fatalf("snapshot missing")
	}
	if snap != orig {
		t.Fatalf("second transform corrupted snapshot: want %+v, got %+v", orig, snap)
	}

	// Both invocations perform the placement; neither creates a second entry.
	if fake.PlaceCount() != 2 {
		t.Fatalf("expected 2 placements, got %d", fake.PlaceCount())
	}
}

func TestRetransformMovesDisplayAndKeepsSnapshot(t *testing.T) {
	fake := platform.NewFake()
	w, orig := newTestWindow(0x1004, 11, "App.exe", "App")
	fake.AddWindow(w, orig)
	e := New(fake)

	if err := e.Transform(w.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	second := platform.Rect{Left: 1920, Top: 0, Right: 4480, Bottom: 1440}
	if err := e.Transform(w.Handle, &second); err != nil {
		t.Fatalf("re-transform failed: %v", err)
	}

	got, _ := fake.StyleOf(w.Handle)
	if got.Rect != second {
		t.Fatalf("expected window on %+v, got %+v", second, got.Rect)
	}
	pref, ok := e.preference(w.PID)
	if !ok {
		t.Fatalf("preference missing")
	}
	if pref.Target == nil || *pref.Target != second {
		t.Fatalf("preference not retargeted: %+v", pref.Target)
	}

	outcome, err := e.Revert(w.Handle)
	if err != nil || outcome != Reverted {
		t.Fatalf("Revert failed: %v %v", outcome, err)
	}
	got, _ = fake.StyleOf(w.Handle)
	if got != orig {
		t.Fatalf("round trip mismatch after display change: want %+v, got %+v", orig, got)
	}
}

func TestTransformRecordsPreference(t *testing.T) {
	fake := platform.NewFake()
	w, s := newTestWindow(0x1005, 55, "App.exe", "App")
	fake.AddWindow(w, s)
	e := New(fake)

	target := platform.Rect{Left: 1920, Top: 0, Right: 3840, Bottom: 1080}
	if err := e.Transform(w.Handle, &target); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	pref, ok := e.preference(55)
	if !ok {
		t.Fatalf("expected preference for pid 55")
	}
	if pref.ProcessName != "App.exe" {
		t.Fatalf("expected process name App.exe, got %q", pref.ProcessName)
	}
	if pref.Target == nil || *pref.Target != target {
		t.Fatalf("expected target %+v, got %+v", target, pref.Target)
	}
}

func TestTransformInvalidHandle(t *testing.T) {
	fake := platform.NewFake()
	e := New(fake)

	err := e.Transform(0xDEAD, nil)
	if !errors.Is(err, platform.ErrHandleInvalid) {
		t.Fatalf("expected ErrHandleInvalid, got %v", err)
	}
	handles, processes := e.Tracked()
	if handles != 0 || processes != 0 {
		t.Fatalf("state mutated on failed transform: %d handles, %d processes", handles, processes)
	}
}

func TestTransformStyleWriteFailureRollsBack(t *testing.T) {
	fake := platform.NewFake()
	w, s := newTestWindow(0x1006, 66, "App.exe", "App")
	fake.AddWindow(w, s)
	injected := errors.New("injected style write fault")
	fake.WriteStylesErr = func(platform.Handle) error { return injected }
	e := New(fake)

	err := e.Transform(w.Handle, nil)
	if !errors.Is(err, injected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if e.IsFullscreen(w.Handle) {
		t.Fatalf("handle must not be in membership set after style-write failure")
	}
	if _, ok := e.Snapshot(w.Handle); ok {
		t.Fatalf("cache must not retain a stale entry after style-write failure")
	}
	got, _ := fake.StyleOf(w.Handle)
	if got != s {
		t.Fatalf("fake window mutated despite failure: %+v", got)
	}
}

func TestTransformPlaceFailureKeepsMembershipForRevert(t *testing.T) {
	fake := platform.NewFake()
	w, orig := newTestWindow(0x1007, 77, "App.exe", "App")
	fake.AddWindow(w, orig)
	injected := errors.New("injected placement fault")
	fake.PlaceErr = func(platform.Handle) error { return injected }
	e := New(fake)

	err := e.Transform(w.Handle, nil)
	if !errors.Is(err, injected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	// Styles were already stripped on the OS side, so the handle must remain
	// tracked: the snapshot is the only way back.
	if !e.IsFullscreen(w.Handle) {
		t.Fatalf("handle must stay in membership set after placement failure")
	}

	fake.PlaceErr = nil
	outcome, err := e.Revert(w.Handle)
	if err != nil || outcome != Reverted {
		t.Fatalf("Revert failed: %v %v", outcome, err)
	}
	got, _ := fake.StyleOf(w.Handle)
	if got != orig {
		t.Fatalf("revert did not restore original state: %+v", got)
	}
}

func TestRevertNoOp(t *testing.T) {
	fake := platform.NewFake()
	e := New(fake)

	outcome, err := e.Revert(0xBEEF)
	if err != nil {
		t.Fatalf("no-op revert returned error: %v", err)
	}
	if outcome != RevertNoOp {
		t.Fatalf("expected RevertNoOp, got %v", outcome)
	}
	handles, processes := e.Tracked()
	if handles != 0 || processes != 0 {
		t.Fatalf("no-op revert mutated state")
	}
}

func TestRevertRemovesPreference(t *testing.T) {
	fake := platform.NewFake()
	w, s := newTestWindow(0x1008, 88, "App.exe", "App")
	fake.AddWindow(w, s)
	e := New(fake)

	if err := e.Transform(w.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if _, ok := e.preference(88); !ok {
		t.Fatalf("preference not recorded")
	}
	if _, err := e.Revert(w.Handle); err != nil {
		t.Fatalf("Revert failed: %v", err)
	}
	if _, ok := e.preference(88); ok {
		t.Fatalf("preference not removed by revert")
	}
}

func TestRevertDestroyedWindowStillCleansTracking(t *testing.T) {
	fake := platform.NewFake()
	w, s := newTestWindow(0x1009, 99, "App.exe", "App")
	fake.AddWindow(w, s)
	e := New(fake)

	if err := e.Transform(w.Handle, nil); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	fake.RemoveWindow(w.Handle)

	outcome, err := e.Revert(w.Handle)
	if err != nil {
		t.Fatalf("Revert on destroyed window returned error: %v", err)
	}
	if outcome != Reverted {
		t.Fatalf("expected Reverted, got %v", outcome)
	}
	if e.IsFullscreen(w.Handle) {
		t.Fatalf("destroyed window still tracked after revert")
	}
	if _, ok := e.Snapshot(w.Handle); ok {
		t.Fatalf("cache retains entry for destroyed window")
	}
}

func TestMonitorsFallbackToPrimary(t *testing.T) {
	fake := platform.NewFake()
	e := New(fake)

	monitors, err := e.Monitors()
	if err != nil {
		t.Fatalf("Monitors failed: %v", err)
	}
	if len(monitors) != 1 {
		t.Fatalf("got %d monitors, want 1 synthetic primary", len(monitors))
	}
	m := monitors[0]
	if !m.Primary {
		t.Error("fallback monitor is not primary")
	}
	if m.Rect != fake.PrimaryRect() {
		t.Errorf("fallback rect = %+v, want %+v", m.Rect, fake.PrimaryRect())
	}
}
