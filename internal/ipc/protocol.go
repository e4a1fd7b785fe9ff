// Package ipc implements the newline-delimited JSON protocol the shell and
// CLI use to talk to the daemon.
package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandListWindows  CommandType = "LIST_WINDOWS"
	CommandListMonitors CommandType = "LIST_MONITORS"
	CommandFullscreen   CommandType = "FULLSCREEN"
	CommandRevert       CommandType = "REVERT"
	CommandRefresh      CommandType = "REFRESH"
	CommandGetStatus    CommandType = "GET_STATUS"
	CommandSetVisible   CommandType = "SET_VISIBLE"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// WindowInfo describes one enumerated window.
type WindowInfo struct {
	Handle  uint64 `json:"handle"`
	PID     int32  `json:"pid"`
	Process string `json:"process"`
	Title   string `json:"title"`
}

// WindowsData is the partitioned result returned by LIST_WINDOWS.
type WindowsData struct {
	Windowed   []WindowInfo `json:"windowed"`
	Fullscreen []WindowInfo `json:"fullscreen"`
}

// MonitorInfo describes a single display monitor.
type MonitorInfo struct {
	ID      int    `json:"id"`
	Device  string `json:"device"`
	Left    int32  `json:"left"`
	Top     int32  `json:"top"`
	Right   int32  `json:"right"`
	Bottom  int32  `json:"bottom"`
	Primary bool   `json:"primary"`
}

// MonitorsData is the data returned by LIST_MONITORS.
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// FullscreenPayload is the payload for FULLSCREEN. A nil Monitor targets the
// primary display; otherwise it is an index into LIST_MONITORS.
type FullscreenPayload struct {
	Handle  uint64 `json:"handle"`
	Monitor *int   `json:"monitor,omitempty"`
}

// RevertPayload is the payload for REVERT.
type RevertPayload struct {
	Handle uint64 `json:"handle"`
}

// RevertData reports the revert outcome: "reverted" or "noop".
type RevertData struct {
	Outcome string `json:"outcome"`
}

// SetVisiblePayload is the payload for SET_VISIBLE.
type SetVisiblePayload struct {
	Visible bool `json:"visible"`
}

// StatusData represents the data returned by GET_STATUS.
type StatusData struct {
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

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
