package mcp

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Refresh bool `json:"refresh,omitempty" jsonschema:"When true, run a refresh pass before listing so the answer reflects the current desktop state"`
}

// WindowEntry describes a single top-level window.
type WindowEntry struct {
	Handle  uint64 `json:"handle"`
	PID     int32  `json:"pid"`
	Process string `json:"process"`
	Title   string `json:"title"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windowed   []WindowEntry `json:"windowed"`
	Fullscreen []WindowEntry `json:"fullscreen"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorEntry describes a single attached display.
type MonitorEntry struct {
	ID      int    `json:"id"`
	Device  string `json:"device"`
	Left    int32  `json:"left"`
	Top     int32  `json:"top"`
	Right   int32  `json:"right"`
	Bottom  int32  `json:"bottom"`
	Primary bool   `json:"primary"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorEntry `json:"monitors"`
}

// MakeBorderlessInput is the input for the make_borderless tool.
type MakeBorderlessInput struct {
	Handle  uint64 `json:"handle" jsonschema:"required,Window handle from list_windows"`
	Monitor *int   `json:"monitor,omitempty" jsonschema:"Monitor id from list_monitors to stretch onto (default: primary display)"`
}

// MakeBorderlessOutput is the output for the make_borderless tool.
type MakeBorderlessOutput struct {
	Handle uint64 `json:"handle"`
}

// RevertWindowInput is the input for the revert_window tool.
type RevertWindowInput struct {
	Handle uint64 `json:"handle" jsonschema:"required,Window handle to restore"`
}

// RevertWindowOutput is the output for the revert_window tool.
type RevertWindowOutput struct {
	Handle  uint64 `json:"handle"`
	Outcome string `json:"outcome"` // "reverted" or "noop"
}

// RefreshInput is the input for the refresh tool.
type RefreshInput struct{}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	DaemonRunning    bool  `json:"daemon_running"`
	UptimeSeconds    int64 `json:"uptime_seconds"`
	IntervalSeconds  int   `json:"interval_seconds"`
	Visible          bool  `json:"visible"`
	WindowedCount    int   `json:"windowed_count"`
	FullscreenCount  int   `json:"fullscreen_count"`
	TrackedHandles   int   `json:"tracked_handles"`
	TrackedProcesses int   `json:"tracked_processes"`
	Elevated         bool  `json:"elevated"`
}
